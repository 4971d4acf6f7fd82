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

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT, log))

		// ==================== SELF ROUTES ====================
		// The static "me" segment wins over {username}, and "me" is a
		// reserved username, so the two route sets cannot collide.
		r.With(middleware.Authorize(policy.ResourceUserSelf, policy.ActionRead, log)).
			Get("/api/v1/users/me", userHandler.GetSelf)
		r.With(middleware.Authorize(policy.ResourceUserSelf, policy.ActionUpdate, log)).
			Patch("/api/v1/users/me", userHandler.UpdateSelf)

		// ==================== ADMIN ROUTES ====================
		r.With(middleware.Authorize(policy.ResourceUser, policy.ActionRead, log)).
			Get("/api/v1/users", userHandler.GetUsers)
		r.With(middleware.Authorize(policy.ResourceUser, policy.ActionCreate, log)).
			Post("/api/v1/users", userHandler.CreateUser)
		r.With(middleware.Authorize(policy.ResourceUser, policy.ActionRead, log)).
			Get("/api/v1/users/{username}", userHandler.GetUser)
		r.With(middleware.Authorize(policy.ResourceUser, policy.ActionUpdate, log)).
			Patch("/api/v1/users/{username}", userHandler.UpdateUser)
		r.With(middleware.Authorize(policy.ResourceUser, policy.ActionDelete, log)).
			Delete("/api/v1/users/{username}", userHandler.DeleteUser)
	})
}
