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

type StoreHandler struct {
	service usecase.StoreService
	log     *zap.Logger
}

func NewStoreHandler(service usecase.StoreService, log *zap.Logger) *StoreHandler {
	return &StoreHandler{
		service: service,
		log:     log.With(zap.String("handler", "store")),
	}
}

// CreateStore handles POST /api/stores (admin only)
func (h *StoreHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	store, err := h.service.CreateStore(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create store")
		return
	}

	utils.ResponseCreated(w, "success", store)
}

// GetStore handles GET /api/stores/{id} (public)
func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")
	if storeID == "" {
		utils.ResponseBadRequest(w, "Store ID is required", nil)
		return
	}

	store, err := h.service.GetStore(r.Context(), storeID)
	if err != nil {
		h.handleServiceError(w, err, "get store")
		return
	}

	utils.ResponseSuccess(w, "success", store)
}

// GetAllStores handles GET /api/stores (public)
func (h *StoreHandler) GetAllStores(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := &request.ListStoresFilter{}
	if v := query.Get("name"); v != "" {
		filter.Name = &v
	}
	if v := query.Get("address"); v != "" {
		filter.Address = &v
	}

	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	stores, err := h.service.GetAllStores(r.Context(), filter, page)
	if err != nil {
		h.handleServiceError(w, err, "get all stores")
		return
	}

	utils.ResponseSuccess(w, "success", stores)
}

// GetStoreRatingStats handles GET /api/stores/{id}/rating-stats (public)
func (h *StoreHandler) GetStoreRatingStats(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")
	if storeID == "" {
		utils.ResponseBadRequest(w, "Store ID is required", nil)
		return
	}

	stats, err := h.service.GetStoreRatingStats(r.Context(), storeID)
	if err != nil {
		h.handleServiceError(w, err, "get store rating stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// UpdateStore handles PATCH /api/stores/{id} (admin only)
func (h *StoreHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")
	if storeID == "" {
		utils.ResponseBadRequest(w, "Store ID is required", nil)
		return
	}

	var req request.UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	store, err := h.service.UpdateStore(r.Context(), storeID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update store")
		return
	}

	utils.ResponseSuccess(w, "success", store)
}

// DeleteStore handles DELETE /api/stores/{id} (admin only)
func (h *StoreHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")
	if storeID == "" {
		utils.ResponseBadRequest(w, "Store ID is required", nil)
		return
	}

	if err := h.service.DeleteStore(r.Context(), storeID); err != nil {
		h.handleServiceError(w, err, "delete store")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError handles errors untuk store operations
func (h *StoreHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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

	case strings.Contains(errMsg, "already registered"):
		h.log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

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
