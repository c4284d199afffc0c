package repository

import (
	"context"
	"fmt"
	"strings"

	"store-ratings/internal/data/entity"
	"store-ratings/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// StoreFilter holds optional substring filters for listing stores
type StoreFilter struct {
	Name    *string
	Address *string
}

type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	FindByEmail(ctx context.Context, email string) (*entity.Store, error)
	FindAll(ctx context.Context, filter StoreFilter, limit, offset int) ([]*entity.Store, error)
	CountAll(ctx context.Context, filter StoreFilter) (int64, error)
	Update(ctx context.Context, store *entity.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateAverageRating(ctx context.Context, storeID uuid.UUID, avg float64) error
}

type storeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStoreRepository(db database.PgxIface, log *zap.Logger) StoreRepository {
	return &storeRepository{
		db:  db,
		log: log.With(zap.String("repository", "store")),
	}
}

func (r *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, email, address, average_rating, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		store.ID,
		store.Name,
		store.Email,
		store.Address,
		store.AverageRating,
		store.OwnerID,
		store.CreatedAt,
		store.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create store",
			zap.Error(err),
			zap.String("email", store.Email),
		)
		return fmt.Errorf("create store %s: %w", store.Email, err)
	}

	return nil
}

func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	query := `
		SELECT id, name, email, address, average_rating, owner_id, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var store entity.Store
	err := r.db.QueryRow(ctx, query, id).Scan(
		&store.ID,
		&store.Name,
		&store.Email,
		&store.Address,
		&store.AverageRating,
		&store.OwnerID,
		&store.CreatedAt,
		&store.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find store by ID",
			zap.Error(err),
			zap.String("store_id", id.String()),
		)
		return nil, fmt.Errorf("find store by ID %s: %w", id.String(), err)
	}

	return &store, nil
}

func (r *storeRepository) FindByEmail(ctx context.Context, email string) (*entity.Store, error) {
	query := `
		SELECT id, name, email, address, average_rating, owner_id, created_at, updated_at
		FROM stores
		WHERE email = $1
	`

	var store entity.Store
	err := r.db.QueryRow(ctx, query, email).Scan(
		&store.ID,
		&store.Name,
		&store.Email,
		&store.Address,
		&store.AverageRating,
		&store.OwnerID,
		&store.CreatedAt,
		&store.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find store by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find store by email %s: %w", email, err)
	}

	return &store, nil
}

func (r *storeRepository) FindAll(ctx context.Context, filter StoreFilter, limit, offset int) ([]*entity.Store, error) {
	// Build query dengan optional filters
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, name, email, address, average_rating, owner_id, created_at, updated_at
		FROM stores
		WHERE 1=1
	`)

	args := []interface{}{}
	argCount := 1

	if filter.Name != nil && *filter.Name != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argCount))
		args = append(args, "%"+*filter.Name+"%")
		argCount++
	}
	if filter.Address != nil && *filter.Address != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND address ILIKE $%d", argCount))
		args = append(args, "%"+*filter.Address+"%")
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all stores",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Stringp("name_filter", filter.Name),
			zap.Stringp("address_filter", filter.Address),
		)
		return nil, fmt.Errorf("find all stores limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var stores []*entity.Store
	for rows.Next() {
		var store entity.Store
		err := rows.Scan(
			&store.ID,
			&store.Name,
			&store.Email,
			&store.Address,
			&store.AverageRating,
			&store.OwnerID,
			&store.CreatedAt,
			&store.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan store row", zap.Error(err))
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		stores = append(stores, &store)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate store rows: %w", err)
	}

	return stores, nil
}

func (r *storeRepository) CountAll(ctx context.Context, filter StoreFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM stores WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filter.Name != nil && *filter.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argCount)
		args = append(args, "%"+*filter.Name+"%")
		argCount++
	}
	if filter.Address != nil && *filter.Address != "" {
		query += fmt.Sprintf(" AND address ILIKE $%d", argCount)
		args = append(args, "%"+*filter.Address+"%")
	}

	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count stores",
			zap.Error(err),
			zap.Stringp("name_filter", filter.Name),
			zap.Stringp("address_filter", filter.Address),
		)
		return 0, fmt.Errorf("count all stores: %w", err)
	}

	return total, nil
}

func (r *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	// average_rating sengaja tidak ikut di sini, hanya lewat UpdateAverageRating
	query := `
		UPDATE stores
		SET name = $2, email = $3, address = $4, owner_id = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		store.ID,
		store.Name,
		store.Email,
		store.Address,
		store.OwnerID,
	)

	if err != nil {
		r.log.Error("Failed to update store",
			zap.Error(err),
			zap.String("store_id", store.ID.String()),
		)
		return fmt.Errorf("update store %s: %w", store.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("store %s not found", store.ID.String())
	}

	return nil
}

func (r *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// ratings milik store ikut terhapus lewat ON DELETE CASCADE
	query := `DELETE FROM stores WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete store",
			zap.Error(err),
			zap.String("store_id", id.String()),
		)
		return fmt.Errorf("delete store %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("store %s not found", id.String())
	}

	r.log.Info("Store deleted", zap.String("store_id", id.String()))
	return nil
}

func (r *storeRepository) UpdateAverageRating(ctx context.Context, storeID uuid.UUID, avg float64) error {
	query := `UPDATE stores SET average_rating = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, storeID, avg)
	if err != nil {
		r.log.Error("Failed to update store average rating",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
			zap.Float64("average_rating", avg),
		)
		return fmt.Errorf("update average rating for store %s: %w", storeID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("store %s not found", storeID.String())
	}

	return nil
}
