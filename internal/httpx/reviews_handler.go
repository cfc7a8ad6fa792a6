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
	"github.com/babadairy/backend/internal/reviews"
)

type ReviewsHandler struct {
	Repo    *reviews.Repo
	Catalog *catalog.Repo
	Log     *zap.Logger
}

func (h *ReviewsHandler) Register(r *chi.Mux) {
	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Delete("/{id}", h.delete)
	})
}

func (h *ReviewsHandler) list(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	ctx, cancel := contextTimeout(r, 3*time.Second)
	defer cancel()

	out, err := h.Repo.ListByProduct(ctx, productID, skip, limit)
	if err != nil {
		h.Log.Error("list reviews failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list reviews")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReviewsHandler) create(w http.ResponseWriter, r *http.Request) {
	var v reviews.Review
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	switch {
	case v.ProductID == "":
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	case v.UserID == "":
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	case v.Rating < 1 || v.Rating > 5:
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Images == nil {
		v.Images = []string{}
	}

	ctx, cancel := contextTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Repo.Insert(ctx, &v); err != nil {
		h.Log.Error("create review failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not create review")
		return
	}
	// Aggregate refresh is best-effort; the review itself is already stored.
	if err := h.Catalog.RefreshRatingStats(ctx, v.ProductID); err != nil {
		h.Log.Warn("rating refresh failed", zap.String("product_id", v.ProductID), zap.Error(err))
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *ReviewsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := contextTimeout(r, 5*time.Second)
	defer cancel()

	v, err := h.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			writeError(w, http.StatusNotFound, "review not found")
			return
		}
		h.Log.Error("load review failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load review")
		return
	}
	if err := h.Repo.Delete(ctx, id); err != nil && !errors.Is(err, reviews.ErrNotFound) {
		h.Log.Error("delete review failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete review")
		return
	}
	if err := h.Catalog.RefreshRatingStats(ctx, v.ProductID); err != nil {
		h.Log.Warn("rating refresh failed", zap.String("product_id", v.ProductID), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}
