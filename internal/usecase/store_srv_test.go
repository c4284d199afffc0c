package usecase

import (
	"context"
	"testing"

	"store-ratings/internal/data/entity"
	"store-ratings/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func TestCreateStore_WithOwnerPromotesUser(t *testing.T) {
	repo, m := newTestRepo()
	svc := NewStoreService(repo, zap.NewNop())

	owner := seedUser(m, "Dewi", "dewi@example.com", entity.RoleUser)
	ownerID := owner.ID.String()

	resp, err := svc.CreateStore(context.Background(), &request.CreateStoreRequest{
		Name:    "Toko Maju",
		Email:   "maju@example.com",
		Address: "Jl. Toko No. 2",
		OwnerID: &ownerID,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.OwnerID)
	require.Equal(t, ownerID, *resp.OwnerID)
	require.Equal(t, "Dewi", resp.OwnerName)
	require.Equal(t, 0.0, resp.AverageRating)

	// USER dipromosikan jadi OWNER saat ditunjuk sebagai pemilik store
	require.Equal(t, entity.RoleOwner, m.users[owner.ID].Role)
}

func TestCreateStore_AdminOwnerAlsoPromoted(t *testing.T) {
	repo, m := newTestRepo()
	svc := NewStoreService(repo, zap.NewNop())

	admin := seedUser(m, "Admin", "admin@example.com", entity.RoleAdmin)
	adminID := admin.ID.String()

	_, err := svc.CreateStore(context.Background(), &request.CreateStoreRequest{
		Name:    "Toko Admin",
		Email:   "tokoadmin@example.com",
		Address: "Jl. Toko No. 3",
		OwnerID: &adminID,
	})
	require.NoError(t, err)

	// promotion berlaku untuk role apapun selain OWNER, exact match tanpa hierarchy
	require.Equal(t, entity.RoleOwner, m.users[admin.ID].Role)
}

func TestCreateStore_WithoutOwnerNoPromotion(t *testing.T) {
	repo, m := newTestRepo()
	svc := NewStoreService(repo, zap.NewNop())

	user := seedUser(m, "Budi", "budi@example.com", entity.RoleUser)

	resp, err := svc.CreateStore(context.Background(), &request.CreateStoreRequest{
		Name:    "Toko Tanpa Pemilik",
		Email:   "anon@example.com",
		Address: "Jl. Toko No. 4",
	})
	require.NoError(t, err)

	require.Nil(t, resp.OwnerID)
	require.Equal(t, entity.RoleUser, m.users[user.ID].Role)
}

func TestCreateStore_UnknownOwnerRejected(t *testing.T) {
	repo, m := newTestRepo()
	svc := NewStoreService(repo, zap.NewNop())

	unknown := uuid.NewString()
	_, err := svc.CreateStore(context.Background(), &request.CreateStoreRequest{
		Name:    "Toko Gagal",
		Email:   "gagal@example.com",
		Address: "Jl. Toko No. 5",
		OwnerID: &unknown,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
	require.Empty(t, m.stores)
}

func TestCreateStore_DuplicateEmailRejected(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewStoreService(repo, zap.NewNop())

	ctx := context.Background()
	_, err := svc.CreateStore(ctx, &request.CreateStoreRequest{
		Name:    "Toko Maju",
		Email:   "maju@example.com",
		Address: "Jl. Toko No. 2",
	})
	require.NoError(t, err)

	_, err = svc.CreateStore(ctx, &request.CreateStoreRequest{
		Name:    "Toko Lain",
		Email:   "maju@example.com",
		Address: "Jl. Toko No. 6",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already registered")
}

func TestUpdateStore_NeverTouchesAverageRating(t *testing.T) {
	repo, m := newTestRepo()
	storeSvc := NewStoreService(repo, zap.NewNop())
	ratingSvc := NewRatingService(repo, zap.NewNop())

	user := seedUser(m, "Budi", "budi@example.com", entity.RoleUser)
	store := seedStore(m, "Toko Maju", "maju@example.com", nil)

	ctx := context.Background()
	_, err := ratingSvc.SubmitRating(ctx, user.ID.String(), &request.SubmitRatingRequest{
		StoreID: store.ID.String(),
		Value:   4,
	})
	require.NoError(t, err)

	resp, err := storeSvc.UpdateStore(ctx, store.ID.String(), &request.UpdateStoreRequest{
		Name:    strPtr("Toko Maju Jaya"),
		Address: strPtr("Jl. Baru No. 7"),
	})
	require.NoError(t, err)

	require.Equal(t, "Toko Maju Jaya", resp.Name)
	require.Equal(t, 4.0, resp.AverageRating)
	require.Equal(t, 4.0, m.stores[store.ID].AverageRating)
}

func TestGetAllStores_FilterAndPagination(t *testing.T) {
	repo, m := newTestRepo()
	svc := NewStoreService(repo, zap.NewNop())

	seedStore(m, "Toko Maju", "maju@example.com", nil)
	seedStore(m, "Toko Jaya", "jaya@example.com", nil)
	seedStore(m, "Warung Berkah", "berkah@example.com", nil)

	ctx := context.Background()

	all, err := svc.GetAllStores(ctx, &request.ListStoresFilter{}, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, all.Data, 3)
	require.Equal(t, int64(3), all.Pagination.Total)

	filtered, err := svc.GetAllStores(ctx, &request.ListStoresFilter{Name: strPtr("toko")}, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, filtered.Data, 2)

	paged, err := svc.GetAllStores(ctx, &request.ListStoresFilter{}, &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, paged.Data, 2)
	require.Equal(t, 2, paged.Pagination.TotalPages)
}

func TestGetStoreRatingStats(t *testing.T) {
	repo, m := newTestRepo()
	storeSvc := NewStoreService(repo, zap.NewNop())
	ratingSvc := NewRatingService(repo, zap.NewNop())

	userA := seedUser(m, "Budi", "budi@example.com", entity.RoleUser)
	userB := seedUser(m, "Citra", "citra@example.com", entity.RoleUser)
	store := seedStore(m, "Toko Maju", "maju@example.com", nil)

	ctx := context.Background()

	// Store tanpa rating: avg 0, count 0
	stats, err := storeSvc.GetStoreRatingStats(ctx, store.ID.String())
	require.NoError(t, err)
	require.Equal(t, 0.0, stats.AverageRating)
	require.Equal(t, int64(0), stats.RatingCount)

	_, err = ratingSvc.SubmitRating(ctx, userA.ID.String(), &request.SubmitRatingRequest{StoreID: store.ID.String(), Value: 2})
	require.NoError(t, err)
	_, err = ratingSvc.SubmitRating(ctx, userB.ID.String(), &request.SubmitRatingRequest{StoreID: store.ID.String(), Value: 5})
	require.NoError(t, err)

	stats, err = storeSvc.GetStoreRatingStats(ctx, store.ID.String())
	require.NoError(t, err)
	require.Equal(t, 3.5, stats.AverageRating)
	require.Equal(t, int64(2), stats.RatingCount)
}

func TestDeleteStore_CascadesRatings(t *testing.T) {
	repo, m := newTestRepo()
	storeSvc := NewStoreService(repo, zap.NewNop())
	ratingSvc := NewRatingService(repo, zap.NewNop())

	user := seedUser(m, "Budi", "budi@example.com", entity.RoleUser)
	store := seedStore(m, "Toko Maju", "maju@example.com", nil)

	ctx := context.Background()
	_, err := ratingSvc.SubmitRating(ctx, user.ID.String(), &request.SubmitRatingRequest{StoreID: store.ID.String(), Value: 3})
	require.NoError(t, err)
	require.Len(t, m.ratings, 1)

	require.NoError(t, storeSvc.DeleteStore(ctx, store.ID.String()))
	require.Empty(t, m.stores)
	require.Empty(t, m.ratings)

	err = storeSvc.DeleteStore(ctx, store.ID.String())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}
