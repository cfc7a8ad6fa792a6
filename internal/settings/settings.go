package settings

import "time"

// SiteSettings is a single document keyed by a fixed ID; every field is
// edited from the admin panel.
type SiteSettings struct {
	StoreName        string `json:"store_name"`
	StoreTagline     string `json:"store_tagline"`
	StoreDescription string `json:"store_description"`
	StoreEmail       string `json:"store_email"`
	StorePhone       string `json:"store_phone"`
	StoreAddress     string `json:"store_address"`
	StoreCity        string `json:"store_city"`
	StoreState       string `json:"store_state"`
	StorePincode     string `json:"store_pincode"`
	StoreGSTIN       string `json:"store_gstin"`

	HeroTitle     string `json:"hero_title"`
	HeroHighlight string `json:"hero_highlight"`
	HeroSubtitle  string `json:"hero_subtitle"`
	HeroBadge     string `json:"hero_badge"`

	Features        []map[string]any    `json:"features"`
	TrustIndicators []map[string]string `json:"trust_indicators"`

	AboutTitle       string `json:"about_title"`
	AboutSubtitle    string `json:"about_subtitle"`
	AboutDescription string `json:"about_description"`
	AboutYearFounded string `json:"about_year_founded"`

	Categories        []map[string]string `json:"categories"`
	ProductCategories []string            `json:"product_categories"`
	ProductSizes      []string            `json:"product_sizes"`
	ProductFlavors    []string            `json:"product_flavors"`
	ProductDietary    []string            `json:"product_dietary"`
	CarouselImages    []string            `json:"carousel_images"`

	TaxRatePercent             float64 `json:"tax_rate_percent"`
	DeliveryCents              int64   `json:"delivery_cents"`
	FreeDeliveryThresholdCents int64   `json:"free_delivery_threshold_cents"`
	MinOrderCents              int64   `json:"min_order_cents"`
	EstimatedDeliveryDays      int     `json:"estimated_delivery_days"`
	LowStockThreshold          int     `json:"low_stock_threshold"`

	EnableCOD  bool `json:"enable_cod"`
	EnableUPI  bool `json:"enable_upi"`
	EnableCard bool `json:"enable_card"`

	OrderPrefix   string `json:"order_prefix"`
	InvoicePrefix string `json:"invoice_prefix"`

	SocialInstagram string `json:"social_instagram"`
	SocialFacebook  string `json:"social_facebook"`
	SocialTwitter   string `json:"social_twitter"`
	SocialWhatsApp  string `json:"social_whatsapp"`

	FooterText          string `json:"footer_text"`
	EnableNotifications bool   `json:"enable_notifications"`

	UpdatedAt time.Time `json:"updated_at"`
}

func Defaults() SiteSettings {
	return SiteSettings{
		StoreName:             "Baba Dairy",
		TaxRatePercent:        5,
		DeliveryCents:         4000,
		EstimatedDeliveryDays: 2,
		LowStockThreshold:     10,
		EnableCOD:             true,
		EnableUPI:             true,
		OrderPrefix:           "ORD",
		InvoicePrefix:         "INV",
		EnableNotifications:   true,
	}
}

// Update is a sparse patch over SiteSettings: nil fields are untouched.
type Update struct {
	StoreName        *string `json:"store_name"`
	StoreTagline     *string `json:"store_tagline"`
	StoreDescription *string `json:"store_description"`
	StoreEmail       *string `json:"store_email"`
	StorePhone       *string `json:"store_phone"`
	StoreAddress     *string `json:"store_address"`
	StoreCity        *string `json:"store_city"`
	StoreState       *string `json:"store_state"`
	StorePincode     *string `json:"store_pincode"`
	StoreGSTIN       *string `json:"store_gstin"`

	HeroTitle     *string `json:"hero_title"`
	HeroHighlight *string `json:"hero_highlight"`
	HeroSubtitle  *string `json:"hero_subtitle"`
	HeroBadge     *string `json:"hero_badge"`

	Features        *[]map[string]any    `json:"features"`
	TrustIndicators *[]map[string]string `json:"trust_indicators"`

	AboutTitle       *string `json:"about_title"`
	AboutSubtitle    *string `json:"about_subtitle"`
	AboutDescription *string `json:"about_description"`
	AboutYearFounded *string `json:"about_year_founded"`

	Categories        *[]map[string]string `json:"categories"`
	ProductCategories *[]string            `json:"product_categories"`
	ProductSizes      *[]string            `json:"product_sizes"`
	ProductFlavors    *[]string            `json:"product_flavors"`
	ProductDietary    *[]string            `json:"product_dietary"`
	CarouselImages    *[]string            `json:"carousel_images"`

	TaxRatePercent             *float64 `json:"tax_rate_percent"`
	DeliveryCents              *int64   `json:"delivery_cents"`
	FreeDeliveryThresholdCents *int64   `json:"free_delivery_threshold_cents"`
	MinOrderCents              *int64   `json:"min_order_cents"`
	EstimatedDeliveryDays      *int     `json:"estimated_delivery_days"`
	LowStockThreshold          *int     `json:"low_stock_threshold"`

	EnableCOD  *bool `json:"enable_cod"`
	EnableUPI  *bool `json:"enable_upi"`
	EnableCard *bool `json:"enable_card"`

	OrderPrefix   *string `json:"order_prefix"`
	InvoicePrefix *string `json:"invoice_prefix"`

	SocialInstagram *string `json:"social_instagram"`
	SocialFacebook  *string `json:"social_facebook"`
	SocialTwitter   *string `json:"social_twitter"`
	SocialWhatsApp  *string `json:"social_whatsapp"`

	FooterText          *string `json:"footer_text"`
	EnableNotifications *bool   `json:"enable_notifications"`
}

func (u Update) Apply(s *SiteSettings) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&s.StoreName, u.StoreName)
	setStr(&s.StoreTagline, u.StoreTagline)
	setStr(&s.StoreDescription, u.StoreDescription)
	setStr(&s.StoreEmail, u.StoreEmail)
	setStr(&s.StorePhone, u.StorePhone)
	setStr(&s.StoreAddress, u.StoreAddress)
	setStr(&s.StoreCity, u.StoreCity)
	setStr(&s.StoreState, u.StoreState)
	setStr(&s.StorePincode, u.StorePincode)
	setStr(&s.StoreGSTIN, u.StoreGSTIN)
	setStr(&s.HeroTitle, u.HeroTitle)
	setStr(&s.HeroHighlight, u.HeroHighlight)
	setStr(&s.HeroSubtitle, u.HeroSubtitle)
	setStr(&s.HeroBadge, u.HeroBadge)
	setStr(&s.AboutTitle, u.AboutTitle)
	setStr(&s.AboutSubtitle, u.AboutSubtitle)
	setStr(&s.AboutDescription, u.AboutDescription)
	setStr(&s.AboutYearFounded, u.AboutYearFounded)
	setStr(&s.OrderPrefix, u.OrderPrefix)
	setStr(&s.InvoicePrefix, u.InvoicePrefix)
	setStr(&s.SocialInstagram, u.SocialInstagram)
	setStr(&s.SocialFacebook, u.SocialFacebook)
	setStr(&s.SocialTwitter, u.SocialTwitter)
	setStr(&s.SocialWhatsApp, u.SocialWhatsApp)
	setStr(&s.FooterText, u.FooterText)

	if u.Features != nil {
		s.Features = *u.Features
	}
	if u.TrustIndicators != nil {
		s.TrustIndicators = *u.TrustIndicators
	}
	if u.Categories != nil {
		s.Categories = *u.Categories
	}
	if u.ProductCategories != nil {
		s.ProductCategories = *u.ProductCategories
	}
	if u.ProductSizes != nil {
		s.ProductSizes = *u.ProductSizes
	}
	if u.ProductFlavors != nil {
		s.ProductFlavors = *u.ProductFlavors
	}
	if u.ProductDietary != nil {
		s.ProductDietary = *u.ProductDietary
	}
	if u.CarouselImages != nil {
		s.CarouselImages = *u.CarouselImages
	}
	if u.TaxRatePercent != nil {
		s.TaxRatePercent = *u.TaxRatePercent
	}
	if u.DeliveryCents != nil {
		s.DeliveryCents = *u.DeliveryCents
	}
	if u.FreeDeliveryThresholdCents != nil {
		s.FreeDeliveryThresholdCents = *u.FreeDeliveryThresholdCents
	}
	if u.MinOrderCents != nil {
		s.MinOrderCents = *u.MinOrderCents
	}
	if u.EstimatedDeliveryDays != nil {
		s.EstimatedDeliveryDays = *u.EstimatedDeliveryDays
	}
	if u.LowStockThreshold != nil {
		s.LowStockThreshold = *u.LowStockThreshold
	}
	if u.EnableCOD != nil {
		s.EnableCOD = *u.EnableCOD
	}
	if u.EnableUPI != nil {
		s.EnableUPI = *u.EnableUPI
	}
	if u.EnableCard != nil {
		s.EnableCard = *u.EnableCard
	}
	if u.EnableNotifications != nil {
		s.EnableNotifications = *u.EnableNotifications
	}
}

// Public returns the customer-facing projection: everything except
// credentials-adjacent admin fields (GSTIN, notification toggles,
// thresholds used internally).
func (s SiteSettings) Public() map[string]any {
	return map[string]any{
		"storeName":        s.StoreName,
		"storeTagline":     s.StoreTagline,
		"storeDescription": s.StoreDescription,
		"storeEmail":       s.StoreEmail,
		"storePhone":       s.StorePhone,
		"storeAddress":     s.StoreAddress,
		"storeCity":        s.StoreCity,
		"storeState":       s.StoreState,
		"storePincode":     s.StorePincode,

		"heroTitle":     s.HeroTitle,
		"heroHighlight": s.HeroHighlight,
		"heroSubtitle":  s.HeroSubtitle,
		"heroBadge":     s.HeroBadge,

		"features":        s.Features,
		"trustIndicators": s.TrustIndicators,

		"aboutTitle":       s.AboutTitle,
		"aboutSubtitle":    s.AboutSubtitle,
		"aboutDescription": s.AboutDescription,
		"aboutYearFounded": s.AboutYearFounded,

		"categories":        s.Categories,
		"carouselImages":    s.CarouselImages,
		"productCategories": s.ProductCategories,
		"productSizes":      s.ProductSizes,
		"productFlavors":    s.ProductFlavors,
		"productDietary":    s.ProductDietary,

		"taxRatePercent":             s.TaxRatePercent,
		"deliveryCents":              s.DeliveryCents,
		"freeDeliveryThresholdCents": s.FreeDeliveryThresholdCents,
		"minOrderCents":              s.MinOrderCents,
		"estimatedDeliveryDays":      s.EstimatedDeliveryDays,

		"enableCOD":  s.EnableCOD,
		"enableUPI":  s.EnableUPI,
		"enableCard": s.EnableCard,

		"socialInstagram": s.SocialInstagram,
		"socialFacebook":  s.SocialFacebook,
		"socialTwitter":   s.SocialTwitter,
		"socialWhatsapp":  s.SocialWhatsApp,

		"footerText": s.FooterText,
	}
}
