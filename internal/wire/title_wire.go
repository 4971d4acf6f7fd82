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

func wireTitle(
	r chi.Router,
	titleHandler *adaptor.TitleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/v1/titles - List titles with filters (anyone)
	r.Get("/api/v1/titles", titleHandler.GetTitles)

	// GET /api/v1/titles/{id} - Title details with derived rating (anyone)
	r.Get("/api/v1/titles/{id}", titleHandler.GetTitle)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT, log))

		r.With(middleware.Authorize(policy.ResourceTitle, policy.ActionCreate, log)).
			Post("/api/v1/titles", titleHandler.CreateTitle)
		r.With(middleware.Authorize(policy.ResourceTitle, policy.ActionUpdate, log)).
			Patch("/api/v1/titles/{id}", titleHandler.UpdateTitle)
		r.With(middleware.Authorize(policy.ResourceTitle, policy.ActionDelete, log)).
			Delete("/api/v1/titles/{id}", titleHandler.DeleteTitle)
	})
}
