package wire

import (
	"store-ratings/internal/adaptor"
	"store-ratings/internal/data/entity"
	"store-ratings/pkg/middleware"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRating(
	r chi.Router,
	ratingHandler *adaptor.RatingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	// Submit rating - authenticated, role apa saja (self-service)
	r.With(middleware.Authenticate(config.JWT, log)).
		Post("/api/ratings/{userId}", ratingHandler.SubmitRating)

	// ==================== ADMIN/OWNER ROUTES ====================
	// Read ratings per store/user - admin atau owner saja
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))
		r.Use(middleware.RequireRoles(log, entity.RoleAdmin, entity.RoleOwner))

		r.Get("/api/ratings/store/{storeId}", ratingHandler.GetRatingsForStore)
		r.Get("/api/ratings/user/{userId}", ratingHandler.GetRatingsByUser)
	})
}
