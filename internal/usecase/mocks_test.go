package usecase

import (
	"context"

	"book-catalog/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) ListBooks(ctx context.Context, query string) ([]*entity.Book, error) {
	args := m.Called(ctx, query)
	books, _ := args.Get(0).([]*entity.Book)
	return books, args.Error(1)
}

func (m *mockBookRepo) FindByID(ctx context.Context, id int64) (*entity.Book, error) {
	args := m.Called(ctx, id)
	book, _ := args.Get(0).(*entity.Book)
	return book, args.Error(1)
}

func (m *mockBookRepo) AverageRating(ctx context.Context, bookID int64) (float64, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockBookRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookRepo) CreateMany(ctx context.Context, books []*entity.Book) error {
	return m.Called(ctx, books).Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Upsert(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	args := m.Called(ctx, review)
	saved, _ := args.Get(0).(*entity.Review)
	return saved, args.Error(1)
}

func (m *mockReviewRepo) ListByBook(ctx context.Context, bookID int64) ([]*entity.Review, error) {
	args := m.Called(ctx, bookID)
	reviews, _ := args.Get(0).([]*entity.Review)
	return reviews, args.Error(1)
}

type mockCredentialRepo struct {
	mock.Mock
}

func (m *mockCredentialRepo) Verify(ctx context.Context, username, password string) bool {
	return m.Called(ctx, username, password).Bool(0)
}

func (m *mockCredentialRepo) Exists(ctx context.Context, username string) bool {
	return m.Called(ctx, username).Bool(0)
}
