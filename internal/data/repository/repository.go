package repository

import (
	"errors"

	"book-catalog/pkg/database"

	"go.uber.org/zap"
)

var ErrBookNotFound = errors.New("book not found")

type Repository struct {
	Book       BookRepository
	Review     ReviewRepository
	Credential CredentialRepository
}

func NewRepository(db database.PgxIface, credentials CredentialRepository, log *zap.Logger) *Repository {
	return &Repository{
		Book:       NewBookRepository(db, log),
		Review:     NewReviewRepository(db, log),
		Credential: credentials,
	}
}
