package api

import (
	"net/http"

	"rentx/internal/auth"
	"rentx/internal/entities"
	apperr "rentx/internal/errors"
	"rentx/internal/service"
	"rentx/internal/validation"
)

type AuthHandler struct {
	Service   service.AuthService
	Validator *validation.Validator
}

func NewAuthHandler(svc service.AuthService, v *validation.Validator) *AuthHandler {
	return &AuthHandler{Service: svc, Validator: v}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Validator.Validate(req); err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.Service.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Validator.Validate(req); err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.Service.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me handles GET /api/auth/me behind the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("missing credentials"))
		return
	}
	profile, err := h.Service.Profile(r.Context(), claims.UserID, claims.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
