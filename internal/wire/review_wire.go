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

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/v1/titles/{title_id}/reviews - List reviews for a title (anyone)
	r.Get("/api/v1/titles/{title_id}/reviews", reviewHandler.GetTitleReviews)

	// GET /api/v1/titles/{title_id}/reviews/{review_id} - Review details (anyone)
	r.Get("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.GetReview)

	// ==================== AUTHENTICATED ROUTES ====================
	// Fine-grained ownership checks happen in the service after the
	// review is loaded; moderators and admins pass them.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT, log))

		r.With(middleware.Authorize(policy.ResourceReview, policy.ActionCreate, log)).
			Post("/api/v1/titles/{title_id}/reviews", reviewHandler.CreateReview)
		r.With(middleware.Authorize(policy.ResourceReview, policy.ActionUpdate, log)).
			Patch("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.UpdateReview)
		r.With(middleware.Authorize(policy.ResourceReview, policy.ActionDelete, log)).
			Delete("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.DeleteReview)
	})
}
