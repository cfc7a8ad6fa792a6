package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/babadairy/backend/internal/kafka"
)

// OrderStore is the durable storage contract the lifecycle logic runs
// against. Save never touches the item snapshots or the customer snapshot;
// those are written once at insert.
type OrderStore interface {
	FindByID(ctx context.Context, id string) (*Order, error)
	Insert(ctx context.Context, o *Order) error
	Save(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]Order, error)
}

// Publisher is the fire-and-forget event outlet. Publish must not block
// and must not return errors to the caller.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service orchestrates the order lifecycle. Persisting the order is the
// operation of record; stock adjustment and event publishing are secondary
// effects that are logged on failure, never propagated.
type Service struct {
	Store       OrderStore
	Inventory   *InventoryAdjuster
	Producer    Publisher
	ServiceName string
	Log         *zap.Logger
}

type CreateInput struct {
	ID                string       `json:"id"`
	OrderNumber       string       `json:"order_number"`
	UserID            string       `json:"user_id"`
	Customer          CustomerInfo `json:"customer"`
	Items             []LineItem   `json:"items"`
	SubtotalCents     int64        `json:"subtotal_cents"`
	TaxCents          int64        `json:"tax_cents"`
	DeliveryCents     int64        `json:"delivery_cents"`
	DiscountCents     int64        `json:"discount_cents"`
	TotalCents        int64        `json:"total_cents"`
	PaymentMethod     string       `json:"payment_method"`
	PaymentStatus     string       `json:"payment_status"`
	InvoiceNumber     string       `json:"invoice_number"`
	Status            Status       `json:"status"`
	EstimatedDelivery string       `json:"estimated_delivery"`
}

// UpdateInput is a sparse patch: nil fields are left untouched. Only a
// status change has side effects beyond the order record itself.
type UpdateInput struct {
	Status        *Status `json:"status"`
	PaymentStatus *string `json:"payment_status"`
	TotalCents    *int64  `json:"total_cents"`
}

// Create inserts the order, reserves stock for every line item and
// schedules the confirmation notification. Stock reservation and the
// notification are best-effort: the order stands even if they fail.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	now := time.Now().UTC()

	o := &Order{
		ID:                in.ID,
		OrderNumber:       in.OrderNumber,
		UserID:            in.UserID,
		Customer:          in.Customer,
		Items:             normalizeItems(in.Items),
		SubtotalCents:     in.SubtotalCents,
		TaxCents:          in.TaxCents,
		DeliveryCents:     in.DeliveryCents,
		DiscountCents:     in.DiscountCents,
		TotalCents:        in.TotalCents,
		PaymentMethod:     in.PaymentMethod,
		PaymentStatus:     in.PaymentStatus,
		InvoiceNumber:     in.InvoiceNumber,
		Status:            in.Status,
		EstimatedDelivery: in.EstimatedDelivery,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = "pending"
	}
	// The initial status is part of the audit trail too.
	o.StatusHistory = []StatusChange{{Status: o.Status, Timestamp: now}}

	if err := s.Store.Insert(ctx, o); err != nil {
		return nil, err
	}

	s.Inventory.Adjust(ctx, o.Items, StockDecrease)
	s.publishCreated(o)

	return o, nil
}

// Update applies a sparse patch. A transition into cancelled restores
// stock, a transition out of cancelled re-reserves it; transitions between
// non-cancelled statuses only extend the history. Updating to the current
// status is a no-op for both stock and history.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Order, error) {
	o, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && *in.Status != o.Status {
		prev := o.Status
		o.Status = *in.Status
		o.StatusHistory = append(o.StatusHistory, StatusChange{
			Status:    o.Status,
			Timestamp: time.Now().UTC(),
		})

		switch {
		case o.Status.Cancelled() && !prev.Cancelled():
			s.Inventory.Adjust(ctx, o.Items, StockIncrease)
			s.Log.Info("stock restored for cancelled order", zap.String("order_id", o.ID))
		case prev.Cancelled() && !o.Status.Cancelled():
			s.Inventory.Adjust(ctx, o.Items, StockDecrease)
			s.Log.Info("stock re-reserved for reactivated order", zap.String("order_id", o.ID))
		}
	}
	if in.PaymentStatus != nil {
		o.PaymentStatus = *in.PaymentStatus
	}
	if in.TotalCents != nil {
		o.TotalCents = *in.TotalCents
	}
	o.UpdatedAt = time.Now().UTC()

	if err := s.Store.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete removes the order, first returning its items to stock unless the
// order was already cancelled (its stock is already back).
func (s *Service) Delete(ctx context.Context, id string) error {
	o, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !o.Status.Cancelled() {
		s.Inventory.Adjust(ctx, o.Items, StockIncrease)
		s.Log.Info("stock restored for deleted order", zap.String("order_id", o.ID))
	}
	return s.Store.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.Store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, userID string, skip, limit int) ([]Order, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.Store.List(ctx, ListFilter{UserID: userID, Skip: skip, Limit: limit})
}

func (s *Service) publishCreated(o *Order) {
	if s.Producer == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(OrderCreatedPayload{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			Email:       o.Customer.Email,
			Phone:       o.Customer.Phone,
			TotalCents:  o.TotalCents,
		}),
	}
	s.Producer.Publish(PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

// normalizeItems fills snapshot defaults: quantity 1 when unspecified and
// the line total computed from the captured unit price.
func normalizeItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		if it.Quantity <= 0 {
			it.Quantity = 1
		}
		if it.TotalCents == 0 {
			it.TotalCents = it.UnitPriceCents * int64(it.Quantity)
		}
		out[i] = it
	}
	return out
}
