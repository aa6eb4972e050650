package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/gateway/middleware"
	"github.com/lendly/lendly-backend/internal/modules/push/application"
	"github.com/lendly/lendly-backend/internal/modules/push/domain"
	"github.com/lendly/lendly-backend/internal/shared/utils"
)

type DeviceTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type TokenHandler struct {
	service  *application.TokenService
	validate *validator.Validate
}

func NewTokenHandler(service *application.TokenService) *TokenHandler {
	return &TokenHandler{
		service:  service,
		validate: validator.New(),
	}
}

// Register handles POST /push/tokens. Re-registering an existing token
// re-binds it to the caller, which is what happens when a device
// changes hands between accounts.
func (h *TokenHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req DeviceTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	if err := h.service.Register(r.Context(), userID, req.Token); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unregister handles DELETE /push/tokens.
func (h *TokenHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req DeviceTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	if err := h.service.Unregister(r.Context(), userID, req.Token); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TokenHandler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTokenNotFound):
		utils.WriteError(w, http.StatusNotFound, "token not found", nil)
	case errors.Is(err, domain.ErrEmptyToken):
		utils.WriteError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		utils.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
