package wire

import (
	"book-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /login - form or JSON credentials, returns a bearer token
	r.Post("/login", authHandler.Login)
}
