package usecase

import (
	"store-ratings/internal/data/repository"
	"store-ratings/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Store  StoreService
	Rating RatingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		User:   NewUserService(repo, config, log),
		Store:  NewStoreService(repo, log),
		Rating: NewRatingService(repo, log),
	}
}
