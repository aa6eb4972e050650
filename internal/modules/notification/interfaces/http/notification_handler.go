package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/gateway/middleware"
	"github.com/lendly/lendly-backend/internal/modules/notification/application"
	"github.com/lendly/lendly-backend/internal/modules/notification/domain"
	"github.com/lendly/lendly-backend/internal/shared/utils"
)

type NotificationHandler struct {
	service  *application.NotificationService
	validate *validator.Validate
}

func NewNotificationHandler(service *application.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service:  service,
		validate: validator.New(),
	}
}

// StartChat handles POST /chats. Returns 201 when the thread was just
// created and 200 when an existing thread between the pair was reused.
func (h *NotificationHandler) StartChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req StartChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	n, created, err := h.service.StartChat(r.Context(), userID, req.RecipientID, req.CommunityID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.WriteJSON(w, status, ToNotificationResponse(n, userID))
}

// CreateMessage handles POST /notifications/{id}/messages.
func (h *NotificationHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	notificationID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid notification id", nil)
		return
	}

	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	msg, err := h.service.AppendMessage(r.Context(), notificationID, userID, req.Content)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ToMessageResponse(msg))
}

// MarkRead handles PATCH /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	notificationID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid notification id", nil)
		return
	}

	if err := h.service.MarkRead(r.Context(), notificationID, userID); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateRequestNotification handles POST /requests.
func (h *NotificationHandler) CreateRequestNotification(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req CreateRequestNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	n, err := h.service.CreateRequestNotification(r.Context(), userID, req.RecipientID, req.CommunityID, req.PostID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ToNotificationResponse(n, userID))
}

// ListForCommunity handles GET /communities/{id}/notifications.
func (h *NotificationHandler) ListForCommunity(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	communityID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid community id", nil)
		return
	}

	offset, limit := pageParams(r)
	notifications, hasMore, err := h.service.ListForCommunity(r.Context(), communityID, userID, offset, limit)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = *ToNotificationResponse(&notifications[i], userID)
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":     responses,
		"metadata": PageMetadata{Offset: offset, Limit: limit, HasMore: hasMore},
	})
}

// ListMessages handles GET /notifications/{id}/messages. With ?after=
// it returns the keyset continuation past the given message; otherwise
// it returns the requested offset window, oldest first.
func (h *NotificationHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	notificationID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid notification id", nil)
		return
	}

	offset, limit := pageParams(r)

	if after := r.URL.Query().Get("after"); after != "" {
		afterID, err := uuid.Parse(after)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "invalid after cursor", nil)
			return
		}

		messages, err := h.service.MessagesAfter(r.Context(), notificationID, userID, afterID, limit)
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		h.writeMessages(w, messages, PageMetadata{Limit: limit, HasMore: len(messages) == limit})
		return
	}

	messages, hasMore, err := h.service.PaginateMessages(r.Context(), notificationID, userID, offset, limit)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeMessages(w, messages, PageMetadata{Offset: offset, Limit: limit, HasMore: hasMore})
}

func (h *NotificationHandler) writeMessages(w http.ResponseWriter, messages []domain.Message, meta PageMetadata) {
	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = *ToMessageResponse(&messages[i])
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":     responses,
		"metadata": meta,
	})
}

func (h *NotificationHandler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotificationNotFound):
		utils.WriteError(w, http.StatusNotFound, "notification not found", nil)
	case errors.Is(err, domain.ErrNotParticipant):
		utils.WriteError(w, http.StatusForbidden, "not a participant", nil)
	case errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrInvalidNotification),
		errors.Is(err, domain.ErrUnknownCursor):
		utils.WriteError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrChatConflict),
		errors.Is(err, domain.ErrDuplicateChat):
		utils.WriteError(w, http.StatusConflict, err.Error(), nil)
	default:
		utils.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

func pageParams(r *http.Request) (int, int) {
	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
