package adaptor

import (
	"net/http"

	"book-catalog/internal/usecase"
	"book-catalog/pkg/utils"

	"go.uber.org/zap"
)

type BookHandler struct {
	service usecase.BookService
	log     *zap.Logger
}

func NewBookHandler(service usecase.BookService, log *zap.Logger) *BookHandler {
	return &BookHandler{
		service: service,
		log:     log.With(zap.String("handler", "book")),
	}
}

// ListBooks handles GET /books?q= (protected)
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListBooksWithRatings(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleServiceError(w, h.log, err, "list books", "")
		return
	}

	utils.ResponseSuccess(w, books)
}

// GetBook handles GET /books/{id} (protected)
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	book, err := h.service.GetBook(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get book", "Book not found")
		return
	}

	utils.ResponseSuccess(w, book)
}
