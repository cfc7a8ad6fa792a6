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

	"github.com/babadairy/backend/internal/users"
)

type UsersHandler struct {
	Repo *users.Repo
	Log  *zap.Logger
}

type createUserReq struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Password  string           `json:"password"`
	Role      string           `json:"role"`
	Addresses []map[string]any `json:"addresses"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UsersHandler) Register(r *chi.Mux) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Post("/login", h.login)
		r.Get("/{id}", h.get)
		r.Put("/{id}/addresses", h.updateAddresses)
	})
}

func (h *UsersHandler) list(w http.ResponseWriter, r *http.Request) {
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
		h.Log.Error("list users failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list users")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *UsersHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextTimeout(r, 3*time.Second)
	defer cancel()

	u, err := h.Repo.FindByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("get user failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load user")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := users.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not create user")
		return
	}

	u := &users.User{
		ID:           req.ID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         req.Role,
		Addresses:    req.Addresses,
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = "customer"
	}
	if u.Addresses == nil {
		u.Addresses = []map[string]any{}
	}

	ctx, cancel := contextTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Repo.Insert(ctx, u); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		h.Log.Error("create user failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not create user")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *UsersHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := contextTimeout(r, 3*time.Second)
	defer cancel()

	// Same response for unknown email and wrong password.
	u, err := h.Repo.FindByEmail(ctx, req.Email)
	if err != nil || !users.CheckPassword(u.PasswordHash, req.Password) {
		if err != nil && !errors.Is(err, users.ErrNotFound) {
			h.Log.Error("login lookup failed", zap.Error(err))
		}
		writeError(w, http.StatusBadRequest, "invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) updateAddresses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Addresses []map[string]any `json:"addresses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Addresses == nil {
		req.Addresses = []map[string]any{}
	}

	ctx, cancel := contextTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Repo.SaveAddresses(ctx, id, req.Addresses); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("update addresses failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not update addresses")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Addresses updated successfully",
		"addresses": req.Addresses,
	})
}
