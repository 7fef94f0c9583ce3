package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"book-catalog/internal/data/entity"
	"book-catalog/internal/data/repository"
	"book-catalog/internal/dto/request"
	"book-catalog/pkg/utils"

	"go.uber.org/zap"
)

// inserted when the seed file is missing so a fresh install has something to show
var fallbackBook = request.SeedBook{Title: "Fallback Book", Author: "Unknown", Genre: "Misc"}

type SeedService interface {
	// SeedBooks fills an empty catalog from the JSON file at path and reports how many
	// books were inserted. A non-empty catalog is left untouched.
	SeedBooks(ctx context.Context, path string) (int, error)
}

type seedService struct {
	books repository.BookRepository
	log   *zap.Logger
}

func NewSeedService(books repository.BookRepository, log *zap.Logger) SeedService {
	return &seedService{
		books: books,
		log:   log.With(zap.String("service", "seed")),
	}
}

func (s *seedService) SeedBooks(ctx context.Context, path string) (int, error) {
	count, err := s.books.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	if count > 0 {
		s.log.Info("Catalog already populated, skipping seed", zap.Int64("books", count))
		return 0, nil
	}

	entries, err := s.readSeedFile(path)
	if err != nil {
		return 0, err
	}

	books := make([]*entity.Book, 0, len(entries))
	for i, entry := range entries {
		if errs := utils.ValidateStruct(entry); len(errs) > 0 {
			return 0, fmt.Errorf("%w: seed entry %d: %s", ErrValidation, i, utils.FormatValidationErrors(errs))
		}
		books = append(books, &entity.Book{
			Title:  entry.Title,
			Author: entry.Author,
			Genre:  entry.Genre,
		})
	}

	if len(books) == 0 {
		s.log.Warn("Seed file has no books", zap.String("path", path))
		return 0, nil
	}

	if err := s.books.CreateMany(ctx, books); err != nil {
		return 0, fmt.Errorf("insert seed books: %w", err)
	}

	s.log.Info("Catalog seeded",
		zap.String("path", path),
		zap.Int("books", len(books)))

	return len(books), nil
}

func (s *seedService) readSeedFile(path string) ([]request.SeedBook, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("Seed file not found, inserting placeholder book", zap.String("path", path))
		return []request.SeedBook{fallbackBook}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	var entries []request.SeedBook
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse seed file %s: %w", ErrValidation, path, err)
	}

	return entries, nil
}
