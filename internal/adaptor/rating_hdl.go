package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"store-ratings/internal/dto/request"
	"store-ratings/internal/usecase"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// SubmitRating handles POST /api/ratings/{userId} (protected)
func (h *RatingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	var req request.SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	ack, err := h.service.SubmitRating(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "submit rating")
		return
	}

	utils.ResponseCreated(w, "success", ack)
}

// GetRatingsForStore handles GET /api/ratings/store/{storeId} (admin/owner)
func (h *RatingHandler) GetRatingsForStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeId")
	if storeID == "" {
		utils.ResponseBadRequest(w, "Store ID is required", nil)
		return
	}

	ratings, err := h.service.GetRatingsForStore(r.Context(), storeID)
	if err != nil {
		h.handleServiceError(w, err, "get store ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// GetRatingsByUser handles GET /api/ratings/user/{userId} (admin/owner)
func (h *RatingHandler) GetRatingsByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	ratings, err := h.service.GetRatingsByUser(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get user ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// handleServiceError handles errors untuk rating operations
func (h *RatingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
