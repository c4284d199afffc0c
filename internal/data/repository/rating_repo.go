package repository

import (
	"context"
	"fmt"

	"store-ratings/internal/data/entity"
	"store-ratings/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RatingRepository interface {
	// Upsert writes the rating and recomputes the store average in one transaction
	Upsert(ctx context.Context, rating *entity.Rating) error
	FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error)
	FindByStoreID(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Rating, error)
	CountByStoreID(ctx context.Context, storeID uuid.UUID) (int64, error)

	// Business queries
	GetStoreAverageRating(ctx context.Context, storeID uuid.UUID) (float64, error)
	GetStoreRatingStats(ctx context.Context, storeID uuid.UUID) (float64, int64, error) // avg, count
}

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) error {
	// Satu transaksi: upsert rating + recompute average, supaya tidak ada
	// window di mana average_rating tidak match dengan isi tabel ratings
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin rating transaction", zap.Error(err))
		return fmt.Errorf("begin rating transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	upsertQuery := `
		INSERT INTO ratings (id, user_id, store_id, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, store_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
	`

	_, err = tx.Exec(ctx, upsertQuery,
		rating.ID,
		rating.UserID,
		rating.StoreID,
		rating.Value,
		rating.CreatedAt,
		rating.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to upsert rating",
			zap.Error(err),
			zap.String("user_id", rating.UserID.String()),
			zap.String("store_id", rating.StoreID.String()),
		)
		return fmt.Errorf("upsert rating for store %s by user %s: %w",
			rating.StoreID.String(), rating.UserID.String(), err)
	}

	recomputeQuery := `
		UPDATE stores
		SET average_rating = (
			SELECT COALESCE(AVG(rating), 0) FROM ratings WHERE store_id = $1
		), updated_at = NOW()
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, recomputeQuery, rating.StoreID); err != nil {
		r.log.Error("Failed to recompute store average",
			zap.Error(err),
			zap.String("store_id", rating.StoreID.String()),
		)
		return fmt.Errorf("recompute average for store %s: %w", rating.StoreID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit rating transaction", zap.Error(err))
		return fmt.Errorf("commit rating transaction: %w", err)
	}

	return nil
}

func (r *ratingRepository) FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error) {
	query := `
		SELECT id, user_id, store_id, rating, created_at, updated_at
		FROM ratings
		WHERE user_id = $1 AND store_id = $2
		LIMIT 1
	`

	var rating entity.Rating
	err := r.db.QueryRow(ctx, query, userID, storeID).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.StoreID,
		&rating.Value,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating by user and store",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("store_id", storeID.String()),
		)
		return nil, fmt.Errorf("find rating by user %s and store %s: %w",
			userID.String(), storeID.String(), err)
	}

	return &rating, nil
}

func (r *ratingRepository) FindByStoreID(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error) {
	query := `
		SELECT id, user_id, store_id, rating, created_at, updated_at
		FROM ratings
		WHERE store_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		r.log.Error("Failed to find ratings by store ID",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
		)
		return nil, fmt.Errorf("find ratings by store ID %s: %w", storeID.String(), err)
	}
	defer rows.Close()

	return scanRatings(rows, r.log)
}

func (r *ratingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Rating, error) {
	query := `
		SELECT id, user_id, store_id, rating, created_at, updated_at
		FROM ratings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find ratings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find ratings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanRatings(rows, r.log)
}

func scanRatings(rows pgx.Rows, log *zap.Logger) ([]*entity.Rating, error) {
	var ratings []*entity.Rating
	for rows.Next() {
		var rating entity.Rating
		err := rows.Scan(
			&rating.ID,
			&rating.UserID,
			&rating.StoreID,
			&rating.Value,
			&rating.CreatedAt,
			&rating.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}

func (r *ratingRepository) CountByStoreID(ctx context.Context, storeID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM ratings WHERE store_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, storeID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count ratings by store ID",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
		)
		return 0, fmt.Errorf("count ratings by store ID %s: %w", storeID.String(), err)
	}

	return count, nil
}

func (r *ratingRepository) GetStoreAverageRating(ctx context.Context, storeID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0) FROM ratings WHERE store_id = $1`

	var avgRating float64
	err := r.db.QueryRow(ctx, query, storeID).Scan(&avgRating)
	if err != nil {
		r.log.Error("Failed to get store average rating",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
		)
		return 0, fmt.Errorf("get store average rating for %s: %w", storeID.String(), err)
	}

	return avgRating, nil
}

func (r *ratingRepository) GetStoreRatingStats(ctx context.Context, storeID uuid.UUID) (float64, int64, error) {
	query := `
		SELECT
			COALESCE(AVG(rating), 0) as avg_rating,
			COUNT(*) as rating_count
		FROM ratings
		WHERE store_id = $1
	`

	var avgRating float64
	var ratingCount int64
	err := r.db.QueryRow(ctx, query, storeID).Scan(&avgRating, &ratingCount)
	if err != nil {
		r.log.Error("Failed to get store rating stats",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
		)
		return 0, 0, fmt.Errorf("get store rating stats for %s: %w", storeID.String(), err)
	}

	return avgRating, ratingCount, nil
}
