package catalog

import "time"

type Product struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Category          string         `json:"category"`
	Description       string         `json:"description"`
	PriceCents        int64          `json:"price_cents"`
	DiscountCents     int64          `json:"discount_cents"`
	Images            []string       `json:"images"`
	Sizes             []string       `json:"sizes"`
	Stock             int            `json:"stock"`
	LowStockThreshold int            `json:"low_stock_threshold"`
	Flavors           []string       `json:"flavors"`
	Dietary           []string       `json:"dietary"`
	Rating            float64        `json:"rating"`
	ReviewCount       int            `json:"review_count"`
	Ingredients       string         `json:"ingredients"`
	Nutrition         map[string]any `json:"nutrition"`
	Status            string         `json:"status"`
	Featured          bool           `json:"featured"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// Patch is a sparse update: nil fields are left untouched. Stock is
// included here because catalog management may correct it directly;
// order-driven stock changes go through Repo.AdjustStock instead.
type Patch struct {
	Name              *string         `json:"name"`
	Category          *string         `json:"category"`
	Description       *string         `json:"description"`
	PriceCents        *int64          `json:"price_cents"`
	DiscountCents     *int64          `json:"discount_cents"`
	Images            *[]string       `json:"images"`
	Sizes             *[]string       `json:"sizes"`
	Stock             *int            `json:"stock"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
	Flavors           *[]string       `json:"flavors"`
	Dietary           *[]string       `json:"dietary"`
	Ingredients       *string         `json:"ingredients"`
	Nutrition         *map[string]any `json:"nutrition"`
	Status            *string         `json:"status"`
	Featured          *bool           `json:"featured"`
}

func (p Patch) Apply(dst *Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.PriceCents != nil {
		dst.PriceCents = *p.PriceCents
	}
	if p.DiscountCents != nil {
		dst.DiscountCents = *p.DiscountCents
	}
	if p.Images != nil {
		dst.Images = *p.Images
	}
	if p.Sizes != nil {
		dst.Sizes = *p.Sizes
	}
	if p.Stock != nil {
		dst.Stock = *p.Stock
	}
	if p.LowStockThreshold != nil {
		dst.LowStockThreshold = *p.LowStockThreshold
	}
	if p.Flavors != nil {
		dst.Flavors = *p.Flavors
	}
	if p.Dietary != nil {
		dst.Dietary = *p.Dietary
	}
	if p.Ingredients != nil {
		dst.Ingredients = *p.Ingredients
	}
	if p.Nutrition != nil {
		dst.Nutrition = *p.Nutrition
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Featured != nil {
		dst.Featured = *p.Featured
	}
}
