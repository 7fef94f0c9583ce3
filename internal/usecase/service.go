package usecase

import (
	"book-catalog/internal/data/repository"
	"book-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth AuthService
	Book BookService
	Seed SeedService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth: NewAuthService(repo.Credential, config.JWT, log),
		Book: NewBookService(repo, log),
		Seed: NewSeedService(repo.Book, log),
	}
}
