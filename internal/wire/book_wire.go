package wire

import (
	"book-catalog/internal/adaptor"
	"book-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBook(
	r chi.Router,
	bookHandler *adaptor.BookHandler,
	auth middleware.TokenAuthenticator,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(auth, log))

		// GET /books?q= - list or search books with average ratings
		r.Get("/books", bookHandler.ListBooks)

		// GET /books/{id} - single book with average rating
		r.Get("/books/{id}", bookHandler.GetBook)
	})
}
