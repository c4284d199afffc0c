package usecase

import (
	"context"
	"fmt"
	"time"

	"store-ratings/internal/data/entity"
	"store-ratings/internal/data/repository"
	"store-ratings/internal/dto/request"
	"store-ratings/internal/dto/response"
	"store-ratings/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RatingService interface {
	// SubmitRating upserts satu rating per (user, store) dan recompute
	// average store sebelum return
	SubmitRating(ctx context.Context, userID string, req *request.SubmitRatingRequest) (*response.SubmitRatingResponse, error)
	GetRatingsForStore(ctx context.Context, storeID string) ([]response.RatingResponse, error)
	GetRatingsByUser(ctx context.Context, userID string) ([]response.RatingResponse, error)
}

type ratingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRatingService(repo *repository.Repository, log *zap.Logger) RatingService {
	return &ratingService{
		repo: repo,
		log:  log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) SubmitRating(ctx context.Context, userID string, req *request.SubmitRatingRequest) (*response.SubmitRatingResponse, error) {
	// 1. Validasi: nilai di luar 1-5 ditolak sebelum sentuh database
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit rating validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Parse IDs
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("invalid store ID format %s: %w", req.StoreID, err)
	}

	// 3. User dan store harus ada
	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	store, err := s.repo.Store.FindByID(ctx, storeID)
	if err != nil {
		s.log.Error("Failed to find store", zap.Error(err), zap.String("store_id", req.StoreID))
		return nil, fmt.Errorf("failed to find store")
	}
	if store == nil {
		return nil, fmt.Errorf("store %s not found", req.StoreID)
	}

	// 4. Upsert + recompute average dalam satu transaksi.
	// Resubmission oleh user yang sama overwrite row yang ada, tidak nambah.
	now := time.Now()
	rating := &entity.Rating{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:  userUUID,
		StoreID: storeID,
		Value:   req.Value,
	}

	if err := s.repo.Rating.Upsert(ctx, rating); err != nil {
		s.log.Error("Failed to submit rating",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("store_id", req.StoreID),
		)
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	s.log.Info("Rating submitted",
		zap.String("user_id", userID),
		zap.String("store_id", req.StoreID),
		zap.Int("rating", req.Value),
	)

	// Average tidak ikut di response, caller re-fetch store untuk lihat
	return &response.SubmitRatingResponse{Success: true}, nil
}

func (s *ratingService) GetRatingsForStore(ctx context.Context, storeID string) ([]response.RatingResponse, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return nil, fmt.Errorf("invalid store ID format %s: %w", storeID, err)
	}

	store, err := s.repo.Store.FindByID(ctx, storeUUID)
	if err != nil {
		s.log.Error("Failed to find store", zap.Error(err), zap.String("store_id", storeID))
		return nil, fmt.Errorf("failed to find store")
	}
	if store == nil {
		return nil, fmt.Errorf("store %s not found", storeID)
	}

	ratings, err := s.repo.Rating.FindByStoreID(ctx, storeUUID)
	if err != nil {
		s.log.Error("Failed to get store ratings",
			zap.Error(err),
			zap.String("store_id", storeID),
		)
		return nil, fmt.Errorf("get store ratings: %w", err)
	}

	// Tiap row dilengkapi nama rater untuk display
	ratingResponses := make([]response.RatingResponse, len(ratings))
	for i, rating := range ratings {
		userName := ""
		user, _ := s.repo.User.FindByID(ctx, rating.UserID)
		if user != nil {
			userName = user.Name
		}

		ratingResponses[i] = response.RatingToResponse(rating, userName, store.Name)
	}

	s.log.Info("Store ratings retrieved",
		zap.String("store_id", storeID),
		zap.Int("count", len(ratings)),
	)

	return ratingResponses, nil
}

func (s *ratingService) GetRatingsByUser(ctx context.Context, userID string) ([]response.RatingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	ratings, err := s.repo.Rating.FindByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to get user ratings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user ratings: %w", err)
	}

	// Tiap row dilengkapi nama store untuk display
	ratingResponses := make([]response.RatingResponse, len(ratings))
	for i, rating := range ratings {
		storeName := ""
		store, _ := s.repo.Store.FindByID(ctx, rating.StoreID)
		if store != nil {
			storeName = store.Name
		}

		ratingResponses[i] = response.RatingToResponse(rating, user.Name, storeName)
	}

	s.log.Info("User ratings retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(ratings)),
	)

	return ratingResponses, nil
}
