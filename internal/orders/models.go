package orders

import "time"

// CustomerInfo is a snapshot of the buyer's contact details at order time.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// LineItem snapshots a product at order time. It is never updated after
// the order is created, even if the catalog entry changes or is deleted;
// cancel/restore replay exactly this snapshot.
type LineItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name,omitempty"`
	Size           string `json:"size,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}

// StatusChange is one entry of the append-only status audit trail.
type StatusChange struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type Order struct {
	ID                string         `json:"id"`
	OrderNumber       string         `json:"order_number"`
	UserID            string         `json:"user_id"`
	Customer          CustomerInfo   `json:"customer"`
	Items             []LineItem     `json:"items"`
	SubtotalCents     int64          `json:"subtotal_cents"`
	TaxCents          int64          `json:"tax_cents"`
	DeliveryCents     int64          `json:"delivery_cents"`
	DiscountCents     int64          `json:"discount_cents"`
	TotalCents        int64          `json:"total_cents"`
	PaymentMethod     string         `json:"payment_method"`
	PaymentStatus     string         `json:"payment_status"`
	InvoiceNumber     string         `json:"invoice_number,omitempty"`
	Status            Status         `json:"status"`
	StatusHistory     []StatusChange `json:"status_history"`
	EstimatedDelivery string         `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
