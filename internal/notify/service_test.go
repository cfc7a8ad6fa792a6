package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/babadairy/backend/internal/orders"
)

type sentMail struct {
	to, subject, body string
}

type fakeEmail struct {
	sent []sentMail
	err  error
}

func (f *fakeEmail) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

type sentMsg struct {
	phone, message string
}

type fakeWhatsApp struct {
	sent []sentMsg
	err  error
}

func (f *fakeWhatsApp) Send(_ context.Context, phone, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMsg{phone, message})
	return nil
}

func orderCreatedMessage(t *testing.T, p orders.OrderCreatedPayload) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(p)
	require.NoError(t, err)
	env := orders.Envelope{
		EventID:       "ev-1",
		EventType:     orders.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      "test-api",
		CorrelationID: p.OrderID,
		Payload:       payload,
	}
	value, err := json.Marshal(env)
	require.NoError(t, err)
	return kafkago.Message{Value: value}
}

func TestHandleOrderCreated(t *testing.T) {
	ctx := context.Background()

	newSvc := func(t *testing.T) (*Service, *fakeEmail, *fakeWhatsApp) {
		email := &fakeEmail{}
		wa := &fakeWhatsApp{}
		return &Service{Email: email, WhatsApp: wa, Log: zaptest.NewLogger(t)}, email, wa
	}

	payload := orders.OrderCreatedPayload{
		OrderID:     "o1",
		OrderNumber: "ORD-1001",
		Email:       "asha@example.com",
		Phone:       "+911234567890",
		TotalCents:  31550,
	}

	t.Run("sends email and whatsapp with order details", func(t *testing.T) {
		svc, email, wa := newSvc(t)

		require.NoError(t, svc.HandleOrderCreated(ctx, orderCreatedMessage(t, payload)))

		require.Len(t, email.sent, 1)
		assert.Equal(t, "asha@example.com", email.sent[0].to)
		assert.Equal(t, "Order Confirmation #ORD-1001", email.sent[0].subject)
		assert.Contains(t, email.sent[0].body, "ORD-1001")

		require.Len(t, wa.sent, 1)
		assert.Equal(t, "+911234567890", wa.sent[0].phone)
		assert.Equal(t, "Order #ORD-1001 confirmed! Total: ₹315.50", wa.sent[0].message)
	})

	t.Run("skips channels without an address", func(t *testing.T) {
		svc, email, wa := newSvc(t)

		p := payload
		p.Phone = ""
		require.NoError(t, svc.HandleOrderCreated(ctx, orderCreatedMessage(t, p)))
		assert.Len(t, email.sent, 1)
		assert.Empty(t, wa.sent)
	})

	t.Run("send failures are swallowed", func(t *testing.T) {
		svc, email, wa := newSvc(t)
		email.err = errors.New("smtp down")

		require.NoError(t, svc.HandleOrderCreated(ctx, orderCreatedMessage(t, payload)))
		assert.Empty(t, email.sent)
		assert.Len(t, wa.sent, 1, "whatsapp still goes out when email fails")
	})

	t.Run("ignores other event types", func(t *testing.T) {
		svc, email, wa := newSvc(t)

		env := orders.Envelope{EventID: "ev-2", EventType: "order.updated"}
		value, err := json.Marshal(env)
		require.NoError(t, err)
		require.NoError(t, svc.HandleOrderCreated(ctx, kafkago.Message{Value: value}))
		assert.Empty(t, email.sent)
		assert.Empty(t, wa.sent)
	})

	t.Run("drops undecodable messages without error", func(t *testing.T) {
		svc, email, _ := newSvc(t)
		require.NoError(t, svc.HandleOrderCreated(ctx, kafkago.Message{Value: []byte("not json")}))
		assert.Empty(t, email.sent)
	})
}

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹0.00", FormatRupees(0))
	assert.Equal(t, "₹0.05", FormatRupees(5))
	assert.Equal(t, "₹315.50", FormatRupees(31550))
	assert.Equal(t, "₹1.00", FormatRupees(100))
}
