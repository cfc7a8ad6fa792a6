package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/babadairy/backend/internal/orders"
)

type memOrderStore struct {
	orders map[string]orders.Order
}

func (m *memOrderStore) FindByID(_ context.Context, id string) (*orders.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, orders.ErrNotFound
	}
	return &o, nil
}

func (m *memOrderStore) Insert(_ context.Context, o *orders.Order) error {
	for _, ex := range m.orders {
		if ex.OrderNumber == o.OrderNumber {
			return orders.ErrConflict
		}
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *memOrderStore) Save(_ context.Context, o *orders.Order) error {
	if _, ok := m.orders[o.ID]; !ok {
		return orders.ErrNotFound
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *memOrderStore) Delete(_ context.Context, id string) error {
	if _, ok := m.orders[id]; !ok {
		return orders.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *memOrderStore) List(_ context.Context, f orders.ListFilter) ([]orders.Order, error) {
	out := []orders.Order{}
	for _, o := range m.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

type memProductStock struct {
	stock map[string]int
}

func (m *memProductStock) AdjustStock(_ context.Context, id string, delta int) (bool, error) {
	cur, ok := m.stock[id]
	if !ok {
		return false, nil
	}
	cur += delta
	if cur < 0 {
		cur = 0
	}
	m.stock[id] = cur
	return true, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(_, _ []byte, _ ...kafkago.Header) {}

func newTestRouter(t *testing.T, stock map[string]int) (*chiRouter, *memOrderStore, *memProductStock) {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := &memOrderStore{orders: map[string]orders.Order{}}
	products := &memProductStock{stock: stock}
	svc := &orders.Service{
		Store:       store,
		Inventory:   &orders.InventoryAdjuster{Products: products, Log: log},
		Producer:    nopPublisher{},
		ServiceName: "test-api",
		Log:         log,
	}
	r := NewRouter()
	(&OrdersHandler{Svc: svc, Log: log}).Register(r)
	return &chiRouter{r}, store, products
}

type chiRouter struct{ h http.Handler }

func (c *chiRouter) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

func validOrderBody() map[string]any {
	return map[string]any{
		"order_number":   "ORD-2001",
		"user_id":        "u1",
		"payment_method": "cod",
		"total_cents":    15000,
		"customer":       map[string]any{"name": "Asha", "email": "asha@example.com"},
		"items": []map[string]any{
			{"product_id": "p1", "name": "Paneer 500g", "quantity": 2, "unit_price_cents": 7500},
		},
	}
}

func TestOrdersHandler_Create(t *testing.T) {
	t.Run("creates the order and reserves stock", func(t *testing.T) {
		router, _, products := newTestRouter(t, map[string]int{"p1": 5})

		rec := router.do(t, http.MethodPost, "/orders", validOrderBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		var o orders.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
		assert.NotEmpty(t, o.ID)
		assert.Equal(t, orders.StatusPending, o.Status)
		assert.Equal(t, 3, products.stock["p1"])
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		router, _, _ := newTestRouter(t, nil)

		for field, msg := range map[string]string{
			"order_number":   "order_number is required",
			"user_id":        "user_id is required",
			"items":          "items must not be empty",
			"customer":       "customer is required",
			"payment_method": "payment_method is required",
			"total_cents":    "total_cents must be positive",
		} {
			body := validOrderBody()
			delete(body, field)
			rec := router.do(t, http.MethodPost, "/orders", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, field)
			assert.Contains(t, rec.Body.String(), msg)
		}
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		router, _, _ := newTestRouter(t, nil)
		body := validOrderBody()
		body["status"] = "teleported"
		rec := router.do(t, http.MethodPost, "/orders", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		router, _, _ := newTestRouter(t, nil)
		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		router.h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate order number conflicts", func(t *testing.T) {
		router, _, _ := newTestRouter(t, map[string]int{"p1": 5})
		require.Equal(t, http.StatusCreated, router.do(t, http.MethodPost, "/orders", validOrderBody()).Code)
		rec := router.do(t, http.MethodPost, "/orders", validOrderBody())
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestOrdersHandler_GetUpdateDelete(t *testing.T) {
	router, _, products := newTestRouter(t, map[string]int{"p1": 5})

	rec := router.do(t, http.MethodPost, "/orders", validOrderBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created orders.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	t.Run("get returns the order", func(t *testing.T) {
		rec := router.do(t, http.MethodGet, "/orders/"+created.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var o orders.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
		assert.Equal(t, created.OrderNumber, o.OrderNumber)
	})

	t.Run("get unknown id is 404", func(t *testing.T) {
		rec := router.do(t, http.MethodGet, "/orders/nope", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("cancelling restores stock", func(t *testing.T) {
		rec := router.do(t, http.MethodPut, "/orders/"+created.ID, map[string]any{"status": "cancelled"})
		require.Equal(t, http.StatusOK, rec.Code)
		var o orders.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
		assert.Equal(t, orders.StatusCancelled, o.Status)
		assert.Len(t, o.StatusHistory, 2)
		assert.Equal(t, 5, products.stock["p1"])
	})

	t.Run("update with unknown status is rejected", func(t *testing.T) {
		rec := router.do(t, http.MethodPut, "/orders/"+created.ID, map[string]any{"status": "vanished"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update unknown id is 404", func(t *testing.T) {
		rec := router.do(t, http.MethodPut, "/orders/nope", map[string]any{"payment_status": "paid"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete acknowledges and removes", func(t *testing.T) {
		rec := router.do(t, http.MethodDelete, "/orders/"+created.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Order deleted successfully")

		rec = router.do(t, http.MethodGet, "/orders/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete unknown id is 404", func(t *testing.T) {
		rec := router.do(t, http.MethodDelete, "/orders/nope", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOrdersHandler_List(t *testing.T) {
	router, _, _ := newTestRouter(t, map[string]int{"p1": 50})

	first := validOrderBody()
	require.Equal(t, http.StatusCreated, router.do(t, http.MethodPost, "/orders", first).Code)

	second := validOrderBody()
	second["order_number"] = "ORD-2002"
	second["user_id"] = "u2"
	require.Equal(t, http.StatusCreated, router.do(t, http.MethodPost, "/orders", second).Code)

	rec := router.do(t, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []orders.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	rec = router.do(t, http.MethodGet, "/orders?user_id=u2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []orders.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "ORD-2002", mine[0].OrderNumber)
}
