package usecase

import (
	"context"
	"sort"
	"strings"

	"store-ratings/internal/data/entity"
	"store-ratings/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory fakes behind the repository interfaces. The rating fake mirrors
// the transactional semantics of the real repo: upsert and average recompute
// happen together.

type memStore struct {
	users   map[uuid.UUID]*entity.User
	stores  map[uuid.UUID]*entity.Store
	ratings map[uuid.UUID]*entity.Rating
}

func newTestRepo() (*repository.Repository, *memStore) {
	m := &memStore{
		users:   make(map[uuid.UUID]*entity.User),
		stores:  make(map[uuid.UUID]*entity.Store),
		ratings: make(map[uuid.UUID]*entity.Rating),
	}

	return &repository.Repository{
		User:   &fakeUserRepo{m: m},
		Store:  &fakeStoreRepo{m: m},
		Rating: &fakeRatingRepo{m: m},
	}, m
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ==================== USER ====================

type fakeUserRepo struct {
	m *memStore
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	cp := *user
	f.m.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.m.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, filter repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range f.m.users {
		if !f.matches(user, filter) {
			continue
		}
		cp := *user
		users = append(users, &cp)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })

	if offset >= len(users) {
		return nil, nil
	}
	users = users[offset:]
	if limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

func (f *fakeUserRepo) CountAll(_ context.Context, filter repository.UserFilter) (int64, error) {
	var total int64
	for _, user := range f.m.users {
		if f.matches(user, filter) {
			total++
		}
	}
	return total, nil
}

func (f *fakeUserRepo) matches(user *entity.User, filter repository.UserFilter) bool {
	if filter.Name != nil && *filter.Name != "" && !containsFold(user.Name, *filter.Name) {
		return false
	}
	if filter.Email != nil && *filter.Email != "" && !containsFold(user.Email, *filter.Email) {
		return false
	}
	if filter.Address != nil && *filter.Address != "" && !containsFold(user.Address, *filter.Address) {
		return false
	}
	if filter.Role != nil && *filter.Role != "" && user.Role != *filter.Role {
		return false
	}
	return true
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	cp := *user
	f.m.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	if user, ok := f.m.users[id]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role entity.UserRole) error {
	if user, ok := f.m.users[id]; ok {
		user.Role = role
	}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.m.users, id)
	// cascade ratings
	for ratingID, rating := range f.m.ratings {
		if rating.UserID == id {
			delete(f.m.ratings, ratingID)
		}
	}
	return nil
}

// ==================== STORE ====================

type fakeStoreRepo struct {
	m *memStore
}

func (f *fakeStoreRepo) Create(_ context.Context, store *entity.Store) error {
	cp := *store
	f.m.stores[store.ID] = &cp
	return nil
}

func (f *fakeStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Store, error) {
	store, ok := f.m.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *store
	return &cp, nil
}

func (f *fakeStoreRepo) FindByEmail(_ context.Context, email string) (*entity.Store, error) {
	for _, store := range f.m.stores {
		if store.Email == email {
			cp := *store
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStoreRepo) FindAll(_ context.Context, filter repository.StoreFilter, limit, offset int) ([]*entity.Store, error) {
	var stores []*entity.Store
	for _, store := range f.m.stores {
		if !f.matches(store, filter) {
			continue
		}
		cp := *store
		stores = append(stores, &cp)
	}

	sort.Slice(stores, func(i, j int) bool { return stores[i].Name < stores[j].Name })

	if offset >= len(stores) {
		return nil, nil
	}
	stores = stores[offset:]
	if limit < len(stores) {
		stores = stores[:limit]
	}
	return stores, nil
}

func (f *fakeStoreRepo) CountAll(_ context.Context, filter repository.StoreFilter) (int64, error) {
	var total int64
	for _, store := range f.m.stores {
		if f.matches(store, filter) {
			total++
		}
	}
	return total, nil
}

func (f *fakeStoreRepo) matches(store *entity.Store, filter repository.StoreFilter) bool {
	if filter.Name != nil && *filter.Name != "" && !containsFold(store.Name, *filter.Name) {
		return false
	}
	if filter.Address != nil && *filter.Address != "" && !containsFold(store.Address, *filter.Address) {
		return false
	}
	return true
}

func (f *fakeStoreRepo) Update(_ context.Context, store *entity.Store) error {
	existing, ok := f.m.stores[store.ID]
	if !ok {
		return nil
	}
	cp := *store
	cp.AverageRating = existing.AverageRating // derived field stays
	f.m.stores[store.ID] = &cp
	return nil
}

func (f *fakeStoreRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.m.stores, id)
	// cascade ratings
	for ratingID, rating := range f.m.ratings {
		if rating.StoreID == id {
			delete(f.m.ratings, ratingID)
		}
	}
	return nil
}

func (f *fakeStoreRepo) UpdateAverageRating(_ context.Context, storeID uuid.UUID, avg float64) error {
	if store, ok := f.m.stores[storeID]; ok {
		store.AverageRating = avg
	}
	return nil
}

// ==================== RATING ====================

type fakeRatingRepo struct {
	m *memStore
}

func (f *fakeRatingRepo) Upsert(_ context.Context, rating *entity.Rating) error {
	// overwrite existing (user, store) row kalau ada
	for _, existing := range f.m.ratings {
		if existing.UserID == rating.UserID && existing.StoreID == rating.StoreID {
			existing.Value = rating.Value
			existing.UpdatedAt = rating.UpdatedAt
			f.recompute(rating.StoreID)
			return nil
		}
	}

	cp := *rating
	f.m.ratings[rating.ID] = &cp
	f.recompute(rating.StoreID)
	return nil
}

func (f *fakeRatingRepo) recompute(storeID uuid.UUID) {
	var sum, count int
	for _, rating := range f.m.ratings {
		if rating.StoreID == storeID {
			sum += rating.Value
			count++
		}
	}

	avg := 0.0
	if count > 0 {
		avg = float64(sum) / float64(count)
	}

	if store, ok := f.m.stores[storeID]; ok {
		store.AverageRating = avg
	}
}

func (f *fakeRatingRepo) FindByUserAndStore(_ context.Context, userID, storeID uuid.UUID) (*entity.Rating, error) {
	for _, rating := range f.m.ratings {
		if rating.UserID == userID && rating.StoreID == storeID {
			cp := *rating
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) FindByStoreID(_ context.Context, storeID uuid.UUID) ([]*entity.Rating, error) {
	var ratings []*entity.Rating
	for _, rating := range f.m.ratings {
		if rating.StoreID == storeID {
			cp := *rating
			ratings = append(ratings, &cp)
		}
	}
	return ratings, nil
}

func (f *fakeRatingRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Rating, error) {
	var ratings []*entity.Rating
	for _, rating := range f.m.ratings {
		if rating.UserID == userID {
			cp := *rating
			ratings = append(ratings, &cp)
		}
	}
	return ratings, nil
}

func (f *fakeRatingRepo) CountByStoreID(_ context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	for _, rating := range f.m.ratings {
		if rating.StoreID == storeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRatingRepo) GetStoreAverageRating(_ context.Context, storeID uuid.UUID) (float64, error) {
	avg, _, err := f.GetStoreRatingStats(context.Background(), storeID)
	return avg, err
}

func (f *fakeRatingRepo) GetStoreRatingStats(_ context.Context, storeID uuid.UUID) (float64, int64, error) {
	var sum int
	var count int64
	for _, rating := range f.m.ratings {
		if rating.StoreID == storeID {
			sum += rating.Value
			count++
		}
	}

	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}
