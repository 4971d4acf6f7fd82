package adaptor

import (
	"encoding/json"
	"net/http"

	"review-hub/internal/dto/request"
	"review-hub/internal/usecase"
	"review-hub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// GetReviewComments handles GET /api/v1/titles/{title_id}/reviews/{review_id}/comments (public)
func (h *CommentHandler) GetReviewComments(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	if titleID == "" || reviewID == "" {
		utils.ResponseBadRequest(w, "Title ID and review ID are required", nil)
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	comments, err := h.service.GetReviewComments(r.Context(), titleID, reviewID, req)
	if err != nil {
		handleServiceError(h.log, w, err, "get review comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// GetComment handles GET /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id} (public)
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	commentID := chi.URLParam(r, "comment_id")
	if titleID == "" || reviewID == "" || commentID == "" {
		utils.ResponseBadRequest(w, "Title ID, review ID and comment ID are required", nil)
		return
	}

	comment, err := h.service.GetCommentByID(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		handleServiceError(h.log, w, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// CreateComment handles POST /api/v1/titles/{title_id}/reviews/{review_id}/comments (authenticated)
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	principal := utils.GetPrincipalFromContext(r.Context())
	if !principal.Authenticated {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	if titleID == "" || reviewID == "" {
		utils.ResponseBadRequest(w, "Title ID and review ID are required", nil)
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), principal, titleID, reviewID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

// UpdateComment handles PATCH /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id} (author or moderator)
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	principal := utils.GetPrincipalFromContext(r.Context())
	if !principal.Authenticated {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	commentID := chi.URLParam(r, "comment_id")
	if titleID == "" || reviewID == "" || commentID == "" {
		utils.ResponseBadRequest(w, "Title ID, review ID and comment ID are required", nil)
		return
	}

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), principal, titleID, reviewID, commentID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// DeleteComment handles DELETE /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id} (author or moderator)
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	principal := utils.GetPrincipalFromContext(r.Context())
	if !principal.Authenticated {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	commentID := chi.URLParam(r, "comment_id")
	if titleID == "" || reviewID == "" || commentID == "" {
		utils.ResponseBadRequest(w, "Title ID, review ID and comment ID are required", nil)
		return
	}

	if err := h.service.DeleteComment(r.Context(), principal, titleID, reviewID, commentID); err != nil {
		handleServiceError(h.log, w, err, "delete comment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
