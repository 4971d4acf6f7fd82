package wire

import (
	"review-hub/internal/adaptor"
	"review-hub/internal/data/repository"
	"review-hub/internal/policy"
	"review-hub/pkg/middleware"
	"review-hub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	base := "/api/v1/titles/{title_id}/reviews/{review_id}/comments"

	// ==================== PUBLIC ROUTES ====================
	// GET .../comments - List comments on a review (anyone)
	r.Get(base, commentHandler.GetReviewComments)

	// GET .../comments/{comment_id} - Comment details (anyone)
	r.Get(base+"/{comment_id}", commentHandler.GetComment)

	// ==================== AUTHENTICATED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT, log))

		r.With(middleware.Authorize(policy.ResourceComment, policy.ActionCreate, log)).
			Post(base, commentHandler.CreateComment)
		r.With(middleware.Authorize(policy.ResourceComment, policy.ActionUpdate, log)).
			Patch(base+"/{comment_id}", commentHandler.UpdateComment)
		r.With(middleware.Authorize(policy.ResourceComment, policy.ActionDelete, log)).
			Delete(base+"/{comment_id}", commentHandler.DeleteComment)
	})
}
