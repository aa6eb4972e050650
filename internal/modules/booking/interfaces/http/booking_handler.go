package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/gateway/middleware"
	"github.com/lendly/lendly-backend/internal/modules/booking/application"
	"github.com/lendly/lendly-backend/internal/modules/booking/domain"
	"github.com/lendly/lendly-backend/internal/shared/utils"
)

type BookingHandler struct {
	service  *application.BookingService
	validate *validator.Validate
}

func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{
		service:  service,
		validate: validator.New(),
	}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	b, err := h.service.Create(r.Context(), userID, req.PostID, req.CommunityID,
		domain.TimeFrame(req.TimeFrame), req.DateNeed, req.DateReturn)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ToBookingResponse(b))
}

// UpdateStatus handles PATCH /bookings/{id}/status.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	bookingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid booking id", nil)
		return
	}

	var req UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	b, err := h.service.UpdateStatus(r.Context(), bookingID, userID, domain.Status(req.Status))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ToBookingResponse(b))
}

// Get handles GET /bookings/{id}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	bookingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid booking id", nil)
		return
	}

	b, err := h.service.Get(r.Context(), bookingID, userID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ToBookingResponse(b))
}

func (h *BookingHandler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrPostNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrNotPostOwner):
		utils.WriteError(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidTransition):
		utils.WriteError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrOwnPost),
		errors.Is(err, domain.ErrInvalidTimeFrame),
		errors.Is(err, domain.ErrMissingDates),
		errors.Is(err, domain.ErrReturnBeforeNeed),
		errors.Is(err, domain.ErrInvalidStatus):
		utils.WriteError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		utils.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
