package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/babadairy/backend/internal/redisx"
	"github.com/babadairy/backend/internal/settings"
)

type SettingsHandler struct {
	Repo  *settings.Repo
	Redis *redis.Client
	Log   *zap.Logger
}

func (h *SettingsHandler) Register(r *chi.Mux) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/", h.update)
		r.Get("/public", h.getPublic)
	})
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextTimeout(r, 3*time.Second)
	defer cancel()

	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, redisx.KeySiteSettings).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	s, err := h.Repo.Get(ctx)
	if err != nil {
		h.Log.Error("load settings failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	if h.Redis != nil {
		if b, err := json.Marshal(s); err == nil {
			_ = h.Redis.Set(ctx, redisx.KeySiteSettings, b, redisx.TTLSettingsCache).Err()
		}
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SettingsHandler) getPublic(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextTimeout(r, 3*time.Second)
	defer cancel()

	s, err := h.Repo.Get(ctx)
	if err != nil {
		h.Log.Error("load settings failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	writeJSON(w, http.StatusOK, s.Public())
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch settings.Update
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := contextTimeout(r, 5*time.Second)
	defer cancel()

	s, err := h.Repo.Get(ctx)
	if err != nil {
		h.Log.Error("load settings failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	patch.Apply(s)
	if err := h.Repo.Save(ctx, s); err != nil {
		h.Log.Error("save settings failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save settings")
		return
	}
	if h.Redis != nil {
		_ = h.Redis.Del(ctx, redisx.KeySiteSettings).Err()
	}
	writeJSON(w, http.StatusOK, s)
}
