package redisx

import "time"

const (
	// Cache of a full order document: order:{order_id} -> order JSON
	KeyOrder = "order:%s"

	// Cache of the site settings document: settings:site -> settings JSON
	KeySiteSettings = "settings:site"

	// Dedup for event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLOrderCache    = 5 * time.Minute
	TTLSettingsCache = 10 * time.Minute
	TTLDedup         = 48 * time.Hour
)
