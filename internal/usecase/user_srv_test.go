package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"store-ratings/internal/data/entity"
	"store-ratings/internal/dto/request"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_DefaultsToUserRole(t *testing.T) {
	repo, m := newTestRepo()
	svc := NewUserService(repo, testConfig(), zap.NewNop())

	resp, err := svc.Register(context.Background(), &request.CreateUserRequest{
		Name:     "Budi Santoso",
		Email:    "budi@example.com",
		Password: "Secret#123",
		Address:  "Jl. Testing No. 1",
	})
	require.NoError(t, err)

	require.Equal(t, entity.RoleUser, resp.Role)
	require.Equal(t, "budi@example.com", resp.Email)
	require.Len(t, m.users, 1)

	// password disimpan sebagai bcrypt hash, bukan plaintext
	for _, user := range m.users {
		require.NotEqual(t, "Secret#123", user.PasswordHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Secret#123")))
	}
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	repo, m := newTestRepo()
	svc := NewUserService(repo, testConfig(), zap.NewNop())

	ctx := context.Background()
	req := &request.CreateUserRequest{
		Name:     "Budi Santoso",
		Email:    "budi@example.com",
		Password: "Secret#123",
		Address:  "Jl. Testing No. 1",
	}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already registered")
	require.Len(t, m.users, 1)
}

func TestRegister_ValidationRules(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewUserService(repo, testConfig(), zap.NewNop())

	cases := []struct {
		name string
		req  request.CreateUserRequest
	}{
		{"short name", request.CreateUserRequest{Name: "B", Email: "b@example.com", Password: "Secret#123", Address: "Jl. 1"}},
		{"bad email", request.CreateUserRequest{Name: "Budi", Email: "not-an-email", Password: "Secret#123", Address: "Jl. 1"}},
		{"password too short", request.CreateUserRequest{Name: "Budi", Email: "b@example.com", Password: "Sh#1", Address: "Jl. 1"}},
		{"password no uppercase", request.CreateUserRequest{Name: "Budi", Email: "b@example.com", Password: "secret#123", Address: "Jl. 1"}},
		{"password no special char", request.CreateUserRequest{Name: "Budi", Email: "b@example.com", Password: "Secret1234", Address: "Jl. 1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tc.req)
			require.Error(t, err)
			require.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestUserResponses_NeverExposePassword(t *testing.T) {
	repo, m := newTestRepo()
	svc := NewUserService(repo, testConfig(), zap.NewNop())

	seedUserWithPassword(t, m, "budi@example.com", "Secret#123")

	ctx := context.Background()
	list, err := svc.GetAllUsers(ctx, &request.ListUsersRequest{}, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	// serialized response tidak boleh mengandung hash
	raw, err := json.Marshal(list.Data[0])
	require.NoError(t, err)
	require.NotContains(t, string(raw), "password")
	require.NotContains(t, string(raw), "$2a$")
}

func TestGetAllUsers_RoleFilterExactMatch(t *testing.T) {
	repo, m := newTestRepo()
	svc := NewUserService(repo, testConfig(), zap.NewNop())

	seedUser(m, "Budi", "budi@example.com", entity.RoleUser)
	seedUser(m, "Dewi", "dewi@example.com", entity.RoleOwner)
	seedUser(m, "Admin", "admin@example.com", entity.RoleAdmin)

	role := "OWNER"
	list, err := svc.GetAllUsers(context.Background(), &request.ListUsersRequest{Role: &role}, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	require.Equal(t, "Dewi", list.Data[0].Name)
}

func TestUpdateUser_PartialAndEmailConflict(t *testing.T) {
	repo, m := newTestRepo()
	svc := NewUserService(repo, testConfig(), zap.NewNop())

	user := seedUser(m, "Budi", "budi@example.com", entity.RoleUser)
	seedUser(m, "Citra", "citra@example.com", entity.RoleUser)

	ctx := context.Background()

	resp, err := svc.UpdateUser(ctx, user.ID.String(), &request.UpdateUserRequest{
		Name: strPtr("Budi Santoso"),
	})
	require.NoError(t, err)
	require.Equal(t, "Budi Santoso", resp.Name)
	require.Equal(t, "budi@example.com", resp.Email)

	// pindah ke email yang sudah dipakai user lain
	_, err = svc.UpdateUser(ctx, user.ID.String(), &request.UpdateUserRequest{
		Email: strPtr("citra@example.com"),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already in use")
}

func TestDeleteUser_CascadesRatingsAndRecountWorks(t *testing.T) {
	repo, m := newTestRepo()
	userSvc := NewUserService(repo, testConfig(), zap.NewNop())
	ratingSvc := NewRatingService(repo, zap.NewNop())

	user := seedUser(m, "Budi", "budi@example.com", entity.RoleUser)
	store := seedStore(m, "Toko Maju", "maju@example.com", nil)

	ctx := context.Background()
	_, err := ratingSvc.SubmitRating(ctx, user.ID.String(), &request.SubmitRatingRequest{
		StoreID: store.ID.String(),
		Value:   5,
	})
	require.NoError(t, err)

	require.NoError(t, userSvc.DeleteUser(ctx, user.ID.String()))
	require.Empty(t, m.ratings)

	// Average tidak otomatis recompute saat cascade delete; stats endpoint
	// hitung langsung dari rows yang tersisa
	count, err := repo.Rating.CountByStoreID(ctx, store.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}
