package usecase

import (
	"context"
	"errors"
	"fmt"

	"book-catalog/internal/data/entity"
	"book-catalog/internal/data/repository"
	"book-catalog/internal/dto/request"
	"book-catalog/internal/dto/response"

	"go.uber.org/zap"
)

type BookService interface {
	ListBooksWithRatings(ctx context.Context, query string) ([]response.BookResponse, error)
	GetBook(ctx context.Context, bookID int64) (*response.BookResponse, error)

	// Reviews
	AddOrUpdateReview(ctx context.Context, bookID int64, username string, req *request.ReviewRequest) (*response.ReviewResponse, error)
	GetReviews(ctx context.Context, bookID int64) ([]response.ReviewResponse, error)
}

type bookService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookService(repo *repository.Repository, log *zap.Logger) BookService {
	return &bookService{
		repo: repo,
		log:  log.With(zap.String("service", "book")),
	}
}

func (s *bookService) ListBooksWithRatings(ctx context.Context, query string) ([]response.BookResponse, error) {
	books, err := s.repo.Book.ListBooks(ctx, query)
	if err != nil {
		s.log.Error("Failed to list books", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("list books: %w", err)
	}

	result := make([]response.BookResponse, 0, len(books))
	for _, book := range books {
		avg, err := s.repo.Book.AverageRating(ctx, book.ID)
		if err != nil {
			s.log.Error("Failed to get average rating", zap.Error(err), zap.Int64("book_id", book.ID))
			return nil, fmt.Errorf("average rating for book %d: %w", book.ID, err)
		}
		result = append(result, response.BookToResponse(book, avg))
	}

	s.log.Debug("Books listed",
		zap.String("query", query),
		zap.Int("count", len(result)))

	return result, nil
}

func (s *bookService) GetBook(ctx context.Context, bookID int64) (*response.BookResponse, error) {
	book, err := s.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	avg, err := s.repo.Book.AverageRating(ctx, book.ID)
	if err != nil {
		s.log.Error("Failed to get average rating", zap.Error(err), zap.Int64("book_id", book.ID))
		return nil, fmt.Errorf("average rating for book %d: %w", book.ID, err)
	}

	resp := response.BookToResponse(book, avg)
	return &resp, nil
}

func (s *bookService) AddOrUpdateReview(ctx context.Context, bookID int64, username string, req *request.ReviewRequest) (*response.ReviewResponse, error) {
	if _, err := s.findBook(ctx, bookID); err != nil {
		return nil, err
	}

	review, err := s.repo.Review.Upsert(ctx, &entity.Review{
		BookID:   bookID,
		Username: username,
		Rating:   req.Rating,
		Text:     req.TextOrEmpty(),
	})
	if err != nil {
		// the book can disappear between the lookup and the write
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, fmt.Errorf("%w: book %d", ErrNotFound, bookID)
		}
		s.log.Error("Failed to save review",
			zap.Error(err),
			zap.Int64("book_id", bookID),
			zap.String("username", username))
		return nil, fmt.Errorf("save review: %w", err)
	}

	s.log.Info("Review saved",
		zap.Int64("review_id", review.ID),
		zap.Int64("book_id", bookID),
		zap.String("username", username),
		zap.Int("rating", review.Rating))

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *bookService) GetReviews(ctx context.Context, bookID int64) ([]response.ReviewResponse, error) {
	if _, err := s.findBook(ctx, bookID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.ListByBook(ctx, bookID)
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err), zap.Int64("book_id", bookID))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

// ==================== HELPER METHODS ====================

func (s *bookService) findBook(ctx context.Context, bookID int64) (*entity.Book, error) {
	book, err := s.repo.Book.FindByID(ctx, bookID)
	if err != nil {
		s.log.Error("Failed to find book", zap.Error(err), zap.Int64("book_id", bookID))
		return nil, fmt.Errorf("find book %d: %w", bookID, err)
	}
	if book == nil {
		return nil, fmt.Errorf("%w: book %d", ErrNotFound, bookID)
	}
	return book, nil
}
