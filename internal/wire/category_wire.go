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

func wireCategory(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/v1/categories - List categories (anyone)
	r.Get("/api/v1/categories", categoryHandler.GetCategories)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT, log))

		r.With(middleware.Authorize(policy.ResourceCategory, policy.ActionCreate, log)).
			Post("/api/v1/categories", categoryHandler.CreateCategory)
		r.With(middleware.Authorize(policy.ResourceCategory, policy.ActionDelete, log)).
			Delete("/api/v1/categories/{slug}", categoryHandler.DeleteCategory)
	})
}
