package adaptor

import (
	"encoding/json"
	"net/http"

	"book-catalog/internal/dto/request"
	"book-catalog/internal/usecase"
	"book-catalog/pkg/utils"

	"go.uber.org/zap"
)

// maxReviewBody bounds the JSON accepted for a single review.
const maxReviewBody = 1 << 20

type ReviewHandler struct {
	service usecase.BookService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.BookService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// AddOrUpdateReview handles POST /books/{id}/reviews (protected)
func (h *ReviewHandler) AddOrUpdateReview(w http.ResponseWriter, r *http.Request) {
	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	id, ok := bookID(w, r)
	if !ok {
		return
	}

	var req request.ReviewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReviewBody)).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.service.AddOrUpdateReview(r.Context(), id, username, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add review", "Book not found")
		return
	}

	utils.ResponseSuccess(w, review)
}

// GetReviews handles GET /books/{id}/reviews (protected)
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.GetReviews(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get reviews", "Book not found")
		return
	}

	utils.ResponseSuccess(w, reviews)
}
