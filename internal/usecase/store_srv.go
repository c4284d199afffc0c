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

type StoreService interface {
	CreateStore(ctx context.Context, req *request.CreateStoreRequest) (*response.StoreResponse, error)
	GetStore(ctx context.Context, storeID string) (*response.StoreResponse, error)
	GetAllStores(ctx context.Context, filter *request.ListStoresFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.StoreResponse], error)
	UpdateStore(ctx context.Context, storeID string, req *request.UpdateStoreRequest) (*response.StoreResponse, error)
	DeleteStore(ctx context.Context, storeID string) error

	// Stats
	GetStoreRatingStats(ctx context.Context, storeID string) (*response.StoreRatingStats, error)
}

type storeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStoreService(repo *repository.Repository, log *zap.Logger) StoreService {
	return &storeService{
		repo: repo,
		log:  log.With(zap.String("service", "store")),
	}
}

func (s *storeService) CreateStore(ctx context.Context, req *request.CreateStoreRequest) (*response.StoreResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create store validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Cek email store sudah dipakai
	existing, err := s.repo.Store.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check store email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check store email")
	}
	if existing != nil {
		return nil, fmt.Errorf("store email already registered")
	}

	now := time.Now()
	store := &entity.Store{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          req.Name,
		Email:         req.Email,
		Address:       req.Address,
		AverageRating: 0,
	}

	ownerName := ""

	// 3. Optional owner: resolve user dan promote ke OWNER.
	// Promotion adalah langkah eksplisit di sini, bukan side effect ORM.
	if req.OwnerID != nil && *req.OwnerID != "" {
		ownerID, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("invalid owner ID format %s: %w", *req.OwnerID, err)
		}

		owner, err := s.repo.User.FindByID(ctx, ownerID)
		if err != nil {
			s.log.Error("Failed to find owner", zap.Error(err), zap.String("owner_id", *req.OwnerID))
			return nil, fmt.Errorf("failed to find owner")
		}
		if owner == nil {
			return nil, fmt.Errorf("user %s not found", *req.OwnerID)
		}

		if owner.Role != entity.RoleOwner {
			if err := s.repo.User.UpdateRole(ctx, ownerID, entity.RoleOwner); err != nil {
				s.log.Error("Failed to promote owner", zap.Error(err), zap.String("owner_id", *req.OwnerID))
				return nil, fmt.Errorf("failed to promote owner")
			}
			s.log.Info("User promoted to OWNER",
				zap.String("user_id", ownerID.String()),
				zap.String("previous_role", string(owner.Role)),
			)
		}

		store.OwnerID = &ownerID
		ownerName = owner.Name
	}

	// 4. Save store
	if err := s.repo.Store.Create(ctx, store); err != nil {
		s.log.Error("Failed to create store", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create store")
	}

	s.log.Info("Store created",
		zap.String("store_id", store.ID.String()),
		zap.String("name", store.Name),
	)

	resp := response.StoreToResponse(store, ownerName)
	return &resp, nil
}

func (s *storeService) GetStore(ctx context.Context, storeID string) (*response.StoreResponse, error) {
	id, err := uuid.Parse(storeID)
	if err != nil {
		return nil, fmt.Errorf("invalid store ID format %s: %w", storeID, err)
	}

	store, err := s.repo.Store.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find store", zap.Error(err), zap.String("store_id", storeID))
		return nil, fmt.Errorf("failed to get store")
	}
	if store == nil {
		return nil, fmt.Errorf("store %s not found", storeID)
	}

	return s.buildStoreResponse(ctx, store), nil
}

func (s *storeService) GetAllStores(ctx context.Context, filter *request.ListStoresFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.StoreResponse], error) {
	repoFilter := repository.StoreFilter{
		Name:    filter.Name,
		Address: filter.Address,
	}

	stores, err := s.repo.Store.FindAll(ctx, repoFilter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to get all stores",
			zap.Error(err),
			zap.Int("page", page.Page),
			zap.Int("per_page", page.PerPage),
		)
		return nil, fmt.Errorf("failed to get stores")
	}

	total, err := s.repo.Store.CountAll(ctx, repoFilter)
	if err != nil {
		s.log.Error("Failed to count stores", zap.Error(err))
		return nil, fmt.Errorf("failed to count stores")
	}

	storeResponses := make([]response.StoreResponse, len(stores))
	for i, store := range stores {
		storeResponses[i] = *s.buildStoreResponse(ctx, store)
	}

	s.log.Info("Stores retrieved",
		zap.Int("count", len(stores)),
		zap.Int64("total", total),
		zap.Int("page", page.Page),
		zap.Int("per_page", page.PerPage),
	)

	return response.NewPaginatedResponse(storeResponses, page.Page, page.PerPage, total), nil
}

func (s *storeService) UpdateStore(ctx context.Context, storeID string, req *request.UpdateStoreRequest) (*response.StoreResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update store validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Parse ID
	id, err := uuid.Parse(storeID)
	if err != nil {
		return nil, fmt.Errorf("invalid store ID format %s: %w", storeID, err)
	}

	// 3. Get existing store
	store, err := s.repo.Store.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find store for update", zap.Error(err), zap.String("store_id", storeID))
		return nil, fmt.Errorf("failed to get store")
	}
	if store == nil {
		return nil, fmt.Errorf("store %s not found", storeID)
	}

	// 4. Partial update, average_rating tidak pernah diset dari sini
	if req.Email != nil && *req.Email != store.Email {
		existing, err := s.repo.Store.FindByEmail(ctx, *req.Email)
		if err != nil {
			s.log.Error("Failed to check store email", zap.Error(err), zap.String("email", *req.Email))
			return nil, fmt.Errorf("failed to check store email")
		}
		if existing != nil {
			return nil, fmt.Errorf("store email already registered")
		}
		store.Email = *req.Email
	}
	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Address != nil {
		store.Address = *req.Address
	}

	// 5. Save
	if err := s.repo.Store.Update(ctx, store); err != nil {
		s.log.Error("Failed to update store", zap.Error(err), zap.String("store_id", storeID))
		return nil, fmt.Errorf("failed to update store")
	}

	s.log.Info("Store updated", zap.String("store_id", storeID))

	return s.buildStoreResponse(ctx, store), nil
}

func (s *storeService) DeleteStore(ctx context.Context, storeID string) error {
	id, err := uuid.Parse(storeID)
	if err != nil {
		return fmt.Errorf("invalid store ID format %s: %w", storeID, err)
	}

	store, err := s.repo.Store.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get store for delete", zap.Error(err), zap.String("store_id", storeID))
		return fmt.Errorf("failed to get store")
	}
	if store == nil {
		return fmt.Errorf("store %s not found", storeID)
	}

	// ratings milik store ikut terhapus (cascade)
	if err := s.repo.Store.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete store", zap.Error(err), zap.String("store_id", storeID))
		return fmt.Errorf("failed to delete store")
	}

	s.log.Info("Store deleted", zap.String("store_id", storeID), zap.String("name", store.Name))
	return nil
}

func (s *storeService) GetStoreRatingStats(ctx context.Context, storeID string) (*response.StoreRatingStats, error) {
	id, err := uuid.Parse(storeID)
	if err != nil {
		return nil, fmt.Errorf("invalid store ID format %s: %w", storeID, err)
	}

	avgRating, ratingCount, err := s.repo.Rating.GetStoreRatingStats(ctx, id)
	if err != nil {
		s.log.Error("Failed to get store rating stats",
			zap.Error(err),
			zap.String("store_id", storeID),
		)
		return nil, fmt.Errorf("get store rating stats: %w", err)
	}

	return &response.StoreRatingStats{
		AverageRating: avgRating,
		RatingCount:   ratingCount,
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *storeService) buildStoreResponse(ctx context.Context, store *entity.Store) *response.StoreResponse {
	ownerName := ""
	if store.OwnerID != nil {
		owner, _ := s.repo.User.FindByID(ctx, *store.OwnerID)
		if owner != nil {
			ownerName = owner.Name
		}
	}

	resp := response.StoreToResponse(store, ownerName)
	return &resp
}
