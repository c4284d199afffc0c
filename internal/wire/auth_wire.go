package wire

import (
	"store-ratings/internal/adaptor"
	"store-ratings/pkg/middleware"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	// Change password - butuh session valid, role apa saja
	r.With(middleware.Authenticate(config.JWT, log)).
		Patch("/api/auth/change-password", authHandler.ChangePassword)
}
