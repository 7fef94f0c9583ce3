package wire

import (
	"book-catalog/internal/adaptor"
	"book-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	auth middleware.TokenAuthenticator,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(auth, log))

		// POST /books/{id}/reviews - create or overwrite the caller's review
		r.Post("/books/{id}/reviews", reviewHandler.AddOrUpdateReview)

		// GET /books/{id}/reviews - newest first
		r.Get("/books/{id}/reviews", reviewHandler.GetReviews)
	})
}
