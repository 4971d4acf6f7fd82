package wire

import (
	"review-hub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/v1/auth/signup - Register and receive a confirmation code
	r.Post("/api/v1/auth/signup", authHandler.Signup)

	// POST /api/v1/auth/token - Exchange the confirmation code for a token
	r.Post("/api/v1/auth/token", authHandler.IssueToken)
}
