package adaptor

import (
	"errors"
	"net/http"

	"book-catalog/internal/usecase"
	"book-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	Book   *BookHandler
	Review *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		Book:   NewBookHandler(service.Book, log),
		Review: NewReviewHandler(service.Book, log),
	}
}

// handleServiceError maps service failures to HTTP responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string, notFoundDetail string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, notFoundDetail)

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, "Bad credentials")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// bookID parses the {id} path parameter, writing a 400 when it is not a positive integer
func bookID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"id": "Must be a positive integer"})
		return 0, false
	}
	return id, true
}
