package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lendly/lendly-backend/internal/gateway/middleware"
	"github.com/lendly/lendly-backend/internal/modules/catalog/application"
	"github.com/lendly/lendly-backend/internal/modules/catalog/domain"
	"github.com/lendly/lendly-backend/internal/shared/utils"
)

type CreatePostRequest struct {
	CommunityID uuid.UUID `json:"community_id" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
}

type PostHandler struct {
	service  *application.PostService
	validate *validator.Validate
}

func NewPostHandler(service *application.PostService) *PostHandler {
	return &PostHandler{
		service:  service,
		validate: validator.New(),
	}
}

// Create handles POST /posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "validation failed", err)
		return
	}

	p, err := h.service.Create(r.Context(), userID, req.CommunityID, req.Title)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

// Get handles GET /posts/{id}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid post id", nil)
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

// ListByCommunity handles GET /communities/{id}/posts.
func (h *PostHandler) ListByCommunity(w http.ResponseWriter, r *http.Request) {
	communityID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid community id", nil)
		return
	}

	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	posts, hasMore, err := h.service.ListByCommunity(r.Context(), communityID, offset, limit)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data": posts,
		"metadata": map[string]interface{}{
			"has_more": hasMore,
		},
	})
}

func (h *PostHandler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		utils.WriteError(w, http.StatusNotFound, "post not found", nil)
	case errors.Is(err, domain.ErrEmptyTitle):
		utils.WriteError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		utils.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
