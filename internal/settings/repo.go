package settings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The settings document lives in a single row under a fixed key.
const siteSettingsID = "site_settings"

type Repo struct{ DB *pgxpool.Pool }

// Get loads the settings document, creating it with defaults on first use.
func (r *Repo) Get(ctx context.Context) (*SiteSettings, error) {
	var s SiteSettings
	err := r.DB.QueryRow(ctx, `SELECT data FROM site_settings WHERE id=$1`, siteSettingsID).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		def := Defaults()
		if err := r.Save(ctx, &def); err != nil {
			return nil, err
		}
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) Save(ctx context.Context, s *SiteSettings) error {
	s.UpdatedAt = time.Now().UTC()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO site_settings(id, data) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		siteSettingsID, s)
	return err
}
