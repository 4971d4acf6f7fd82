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

func wireGenre(
	r chi.Router,
	genreHandler *adaptor.GenreHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/v1/genres - List genres (anyone)
	r.Get("/api/v1/genres", genreHandler.GetGenres)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT, log))

		r.With(middleware.Authorize(policy.ResourceGenre, policy.ActionCreate, log)).
			Post("/api/v1/genres", genreHandler.CreateGenre)
		r.With(middleware.Authorize(policy.ResourceGenre, policy.ActionDelete, log)).
			Delete("/api/v1/genres/{slug}", genreHandler.DeleteGenre)
	})
}
