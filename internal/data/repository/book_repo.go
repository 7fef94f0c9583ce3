package repository

import (
	"book-catalog/internal/data/entity"
	"book-catalog/pkg/database"
	"book-catalog/pkg/utils"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookRepository interface {
	// ListBooks returns every book when query is empty, otherwise books whose title or
	// author contains query case-insensitively. Ordered by title.
	ListBooks(ctx context.Context, query string) ([]*entity.Book, error)
	FindByID(ctx context.Context, id int64) (*entity.Book, error)
	AverageRating(ctx context.Context, bookID int64) (float64, error)

	// Seeding
	Count(ctx context.Context) (int64, error)
	CreateMany(ctx context.Context, books []*entity.Book) error
}

type bookRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookRepository(db database.PgxIface, log *zap.Logger) BookRepository {
	return &bookRepository{
		db:  db,
		log: log.With(zap.String("repository", "book")),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns user input into an ILIKE pattern that matches it literally.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

func (r *bookRepository) ListBooks(ctx context.Context, query string) ([]*entity.Book, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(`
		SELECT id, title, author, genre, created_at
		FROM books`)

	if query != "" {
		queryBuilder.WriteString(`
		WHERE title ILIKE $1 ESCAPE '\' OR author ILIKE $1 ESCAPE '\'`)
		args = append(args, containsPattern(query))
	}

	queryBuilder.WriteString(`
		ORDER BY title ASC, id ASC`)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to list books",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("list books matching %q: %w", query, err)
	}
	defer rows.Close()

	books := make([]*entity.Book, 0)
	for rows.Next() {
		var book entity.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Genre,
			&book.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan book row", zap.Error(err))
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to iterate book rows", zap.Error(err))
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}

	return books, nil
}

func (r *bookRepository) FindByID(ctx context.Context, id int64) (*entity.Book, error) {
	query := `
		SELECT id, title, author, genre, created_at
		FROM books
		WHERE id = $1
	`

	var book entity.Book
	err := r.db.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find book by ID",
			zap.Error(err),
			zap.Int64("book_id", id),
		)
		return nil, fmt.Errorf("find book by ID %d: %w", id, err)
	}

	return &book, nil
}

// AverageRating is 0 when the book has no reviews or does not exist.
func (r *bookRepository) AverageRating(ctx context.Context, bookID int64) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0)::float8 FROM reviews WHERE book_id = $1`

	var avgRating float64
	if err := r.db.QueryRow(ctx, query, bookID).Scan(&avgRating); err != nil {
		r.log.Error("Failed to get book average rating",
			zap.Error(err),
			zap.Int64("book_id", bookID),
		)
		return 0, fmt.Errorf("get average rating for book %d: %w", bookID, err)
	}

	return utils.RoundRating(avgRating), nil
}

func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM books`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count books", zap.Error(err))
		return 0, fmt.Errorf("count books: %w", err)
	}

	return count, nil
}

// CreateMany inserts all books in one transaction and fills in their ids.
func (r *bookRepository) CreateMany(ctx context.Context, books []*entity.Book) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin create books: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO books (title, author, genre)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	for _, book := range books {
		if err := tx.QueryRow(ctx, query, book.Title, book.Author, book.Genre).Scan(&book.ID, &book.CreatedAt); err != nil {
			r.log.Error("Failed to create book",
				zap.Error(err),
				zap.String("title", book.Title),
			)
			return fmt.Errorf("create book %q: %w", book.Title, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit books", zap.Error(err))
		return fmt.Errorf("commit create books: %w", err)
	}

	r.log.Info("Books created", zap.Int("count", len(books)))
	return nil
}
