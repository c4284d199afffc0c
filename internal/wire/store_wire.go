package wire

import (
	"store-ratings/internal/adaptor"
	"store-ratings/internal/data/entity"
	"store-ratings/pkg/middleware"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireStore(
	r chi.Router,
	storeHandler *adaptor.StoreHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Browse/search stores (tanpa auth)
	r.Get("/api/stores", storeHandler.GetAllStores)
	r.Get("/api/stores/{id}", storeHandler.GetStore)
	r.Get("/api/stores/{id}/rating-stats", storeHandler.GetStoreRatingStats)

	// ==================== ADMIN ROUTES ====================
	// Create/update/delete store - admin only
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))
		r.Use(middleware.RequireRoles(log, entity.RoleAdmin))

		r.Post("/api/stores", storeHandler.CreateStore)
		r.Patch("/api/stores/{id}", storeHandler.UpdateStore)
		r.Delete("/api/stores/{id}", storeHandler.DeleteStore)
	})
}
