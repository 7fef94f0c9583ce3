package repository

import (
	"context"
	"errors"
	"fmt"

	"book-catalog/internal/data/entity"
	"book-catalog/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

type ReviewRepository interface {
	// Upsert inserts the review or, when the user already reviewed the book,
	// overwrites rating and text in place. ID and timestamps are filled in.
	Upsert(ctx context.Context, review *entity.Review) (*entity.Review, error)
	ListByBook(ctx context.Context, bookID int64) ([]*entity.Review, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Upsert(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	query := `
		INSERT INTO reviews (book_id, username, rating, text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT uq_review_per_user_per_book DO UPDATE SET
			rating = EXCLUDED.rating,
			text = EXCLUDED.text,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		review.BookID,
		review.Username,
		review.Rating,
		review.Text,
	).Scan(
		&review.ID,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, fmt.Errorf("upsert review for book %d: %w", review.BookID, ErrBookNotFound)
		}

		r.log.Error("Failed to upsert review",
			zap.Error(err),
			zap.Int64("book_id", review.BookID),
			zap.String("username", review.Username),
		)
		return nil, fmt.Errorf("upsert review for book %d by %s: %w", review.BookID, review.Username, err)
	}

	return review, nil
}

// ListByBook returns newest reviews first.
func (r *reviewRepository) ListByBook(ctx context.Context, bookID int64) ([]*entity.Review, error) {
	query := `
		SELECT id, book_id, username, rating, text, created_at, updated_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY id DESC
	`

	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		r.log.Error("Failed to list reviews by book",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return nil, fmt.Errorf("list reviews for book %d: %w", bookID, err)
	}
	defer rows.Close()

	reviews := make([]*entity.Review, 0)
	for rows.Next() {
		var review entity.Review
		if err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.Username,
			&review.Rating,
			&review.Text,
			&review.CreatedAt,
			&review.UpdatedAt,
		); err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to iterate review rows", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
