package wire

import (
	"store-ratings/internal/adaptor"
	"store-ratings/internal/data/entity"
	"store-ratings/pkg/middleware"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes with role-based access control
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Register (tanpa auth)
	r.Post("/api/users", userHandler.Register)

	// ==================== PROTECTED ROUTES ====================
	// Get/update own record - requires authentication, role apa saja
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))

		r.Get("/api/users/{id}", userHandler.GetUser)
		r.Patch("/api/users/{id}", userHandler.UpdateUser)
	})

	// ==================== ADMIN ROUTES ====================
	// List dan delete - requires both authentication AND admin role
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))
		r.Use(middleware.RequireRoles(log, entity.RoleAdmin))

		r.Get("/api/users", userHandler.GetAllUsers)
		r.Delete("/api/users/{id}", userHandler.DeleteUser)
	})
}
