package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/babadairy/backend/internal/catalog"
)

type ProductsHandler struct {
	Repo *catalog.Repo
	Log  *zap.Logger
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextTimeout(r, 3*time.Second)
	defer cancel()

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	out, err := h.Repo.List(ctx, skip, limit)
	if err != nil {
		h.Log.Error("list products failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list products")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextTimeout(r, 3*time.Second)
	defer cancel()

	p, err := h.Repo.FindByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.Log.Error("get product failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	switch {
	case p.Name == "":
		writeError(w, http.StatusBadRequest, "name is required")
		return
	case p.Category == "":
		writeError(w, http.StatusBadRequest, "category is required")
		return
	case p.PriceCents <= 0:
		writeError(w, http.StatusBadRequest, "price_cents must be positive")
		return
	case p.Stock < 0:
		writeError(w, http.StatusBadRequest, "stock must not be negative")
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = "active"
	}
	if p.LowStockThreshold == 0 {
		p.LowStockThreshold = 10
	}

	ctx, cancel := contextTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Repo.Insert(ctx, &p); err != nil {
		if errors.Is(err, catalog.ErrConflict) {
			writeError(w, http.StatusConflict, "product already exists")
			return
		}
		h.Log.Error("create product failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not create product")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch catalog.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := contextTimeout(r, 5*time.Second)
	defer cancel()

	p, err := h.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.Log.Error("load product failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load product")
		return
	}

	patch.Apply(p)
	if err := h.Repo.Save(ctx, p); err != nil {
		h.Log.Error("save product failed", zap.String("product_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not update product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.Log.Error("delete product failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
