package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/babadairy/backend/internal/kafka"
	"github.com/babadairy/backend/internal/orders"
	"github.com/babadairy/backend/internal/redisx"
)

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type PhoneSender interface {
	Send(ctx context.Context, toPhone, message string) error
}

// Service turns order.created events into customer notifications. Sends
// are best-effort: a failed send is logged and the event is still
// committed, never retried into the order flow.
type Service struct {
	Redis    *redis.Client
	Email    EmailSender
	WhatsApp PhoneSender
	Log      *zap.Logger
}

// HandleOrderCreated is wired as the consumer handler for
// orders.TopicOrderCreated.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// Malformed message: commit and move on, redelivery cannot fix it.
		s.Log.Warn("dropping undecodable event", zap.Error(err))
		return nil
	}
	if env.EventType != orders.EventOrderCreated {
		return nil
	}

	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
		if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
	if err != nil {
		s.Log.Warn("dropping event with undecodable payload",
			zap.String("event_id", env.EventID), zap.Error(err))
		return nil
	}

	if p.Email != "" {
		subject := fmt.Sprintf("Order Confirmation #%s", p.OrderNumber)
		body := fmt.Sprintf("Thank you for your order! Your Order ID is %s.", p.OrderNumber)
		if err := s.Email.Send(ctx, p.Email, subject, body); err != nil {
			s.Log.Error("order confirmation email failed",
				zap.String("order_id", p.OrderID), zap.Error(err))
		}
	}
	if p.Phone != "" {
		msg := fmt.Sprintf("Order #%s confirmed! Total: %s", p.OrderNumber, FormatRupees(p.TotalCents))
		if err := s.WhatsApp.Send(ctx, p.Phone, msg); err != nil {
			s.Log.Error("order confirmation whatsapp failed",
				zap.String("order_id", p.OrderID), zap.Error(err))
		}
	}
	return nil
}

func FormatRupees(cents int64) string {
	return fmt.Sprintf("₹%d.%02d", cents/100, cents%100)
}
