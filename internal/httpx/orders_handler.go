package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/babadairy/backend/internal/orders"
	"github.com/babadairy/backend/internal/redisx"
)

type OrdersHandler struct {
	Svc   *orders.Service
	Redis *redis.Client
	Log   *zap.Logger
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var in orders.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	// Boundary validation; the lifecycle service does not re-validate.
	switch {
	case in.OrderNumber == "":
		writeError(w, http.StatusBadRequest, "order_number is required")
		return
	case in.UserID == "":
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	case len(in.Items) == 0:
		writeError(w, http.StatusBadRequest, "items must not be empty")
		return
	case in.Customer.Name == "":
		writeError(w, http.StatusBadRequest, "customer is required")
		return
	case in.PaymentMethod == "":
		writeError(w, http.StatusBadRequest, "payment_method is required")
		return
	case in.TotalCents <= 0:
		writeError(w, http.StatusBadRequest, "total_cents must be positive")
		return
	}
	if in.Status != "" && !in.Status.Known() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	ctx, cancel := contextTimeout(r, 5*time.Second)
	defer cancel()

	o, err := h.Svc.Create(ctx, in)
	if err != nil {
		if errors.Is(err, orders.ErrConflict) {
			writeError(w, http.StatusConflict, "order already exists")
			return
		}
		h.Log.Error("create order failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not create order")
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in orders.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Status != nil && !in.Status.Known() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	ctx, cancel := contextTimeout(r, 5*time.Second)
	defer cancel()

	o, err := h.Svc.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.Log.Error("update order failed", zap.String("order_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not update order")
		return
	}
	h.invalidate(r, o.ID)
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := contextTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.Log.Error("delete order failed", zap.String("order_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete order")
		return
	}
	h.invalidate(r, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := contextTimeout(r, 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrder, id)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	o, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.Log.Error("get order failed", zap.String("order_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load order")
		return
	}
	if h.Redis != nil {
		if b, err := json.Marshal(o); err == nil {
			_ = h.Redis.Set(ctx, key, b, redisx.TTLOrderCache).Err()
		}
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextTimeout(r, 3*time.Second)
	defer cancel()

	q := r.URL.Query()
	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	out, err := h.Svc.List(ctx, q.Get("user_id"), skip, limit)
	if err != nil {
		h.Log.Error("list orders failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list orders")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) invalidate(r *http.Request, id string) {
	if h.Redis == nil {
		return
	}
	_ = h.Redis.Del(r.Context(), fmt.Sprintf(redisx.KeyOrder, id)).Err()
}
