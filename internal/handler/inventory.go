package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/foodwise/foodwise/internal/handler/dto"
	"github.com/foodwise/foodwise/internal/service"
)

// InventoryHandler handles HTTP requests for inventory operations.
type InventoryHandler struct {
	svc    *service.InventoryService
	logger *slog.Logger
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(svc *service.InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToItemListResponse(items))
}

// Get handles GET /inventory/{id}.
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToItemResponse(item))
}

// Create handles POST /inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.ID == nil {
		writeError(w, http.StatusBadRequest, "ID_REQUIRED", "Item ID is required")
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "QUANTITY_REQUIRED", "Quantity is required")
		return
	}
	if req.ExpiryDate == nil {
		writeError(w, http.StatusBadRequest, "EXPIRY_DATE_REQUIRED", "Expiry date is required")
		return
	}

	item, err := h.svc.Create(r.Context(), service.CreateItemInput{
		ID:         *req.ID,
		Name:       req.Name,
		Quantity:   *req.Quantity,
		ExpiryDate: *req.ExpiryDate,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("item_created",
		"item_id", item.ID,
		"name", item.Name,
	)

	writeJSON(w, http.StatusCreated, dto.ToItemResponse(item))
}

// Update handles PUT /inventory/{id}.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "QUANTITY_REQUIRED", "Quantity is required")
		return
	}
	if req.ExpiryDate == nil {
		writeError(w, http.StatusBadRequest, "EXPIRY_DATE_REQUIRED", "Expiry date is required")
		return
	}

	item, err := h.svc.Update(r.Context(), id, service.UpdateItemInput{
		Name:       req.Name,
		Quantity:   *req.Quantity,
		ExpiryDate: *req.ExpiryDate,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("item_updated", "item_id", item.ID)

	writeJSON(w, http.StatusOK, dto.ToItemResponse(item))
}

// Delete handles DELETE /inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("item_deleted", "item_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// ListExpired handles GET /inventory/expired.
func (h *InventoryHandler) ListExpired(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListExpired(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToItemListResponse(items))
}

// ListExpiring handles GET /inventory/expiring?days=N.
func (h *InventoryHandler) ListExpiring(w http.ResponseWriter, r *http.Request) {
	days := service.DefaultExpiringWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_DAYS", "days must be an integer")
			return
		}
		days = parsed
	}

	items, err := h.svc.ListExpiring(r.Context(), days)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToItemListResponse(items))
}

// ListLowStock handles GET /inventory/low-stock?threshold=N.
func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	threshold := service.DefaultLowStockThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_THRESHOLD", "threshold must be an integer")
			return
		}
		threshold = parsed
	}

	items, err := h.svc.ListLowStock(r.Context(), threshold)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToItemListResponse(items))
}

// parseID extracts and validates the {id} route parameter.
func (h *InventoryHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Item ID must be an integer")
		return 0, false
	}
	return id, true
}

// handleServiceError maps inventory service errors to HTTP responses.
func (h *InventoryHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found")
	case errors.Is(err, service.ErrItemExists):
		writeError(w, http.StatusConflict, "ITEM_EXISTS", "Item ID already exists")
	case errors.Is(err, service.ErrInvalidItemID):
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Item ID must be a positive integer")
	case errors.Is(err, service.ErrNameRequired):
		writeError(w, http.StatusBadRequest, "NAME_REQUIRED", "Item name is required")
	case errors.Is(err, service.ErrExpiryDateRequired):
		writeError(w, http.StatusBadRequest, "EXPIRY_DATE_REQUIRED", "Expiry date is required")
	case errors.Is(err, service.ErrInvalidWindow):
		writeError(w, http.StatusBadRequest, "INVALID_DAYS", "days must be at least 1")
	case errors.Is(err, service.ErrInvalidThreshold):
		writeError(w, http.StatusBadRequest, "INVALID_THRESHOLD", "threshold must not be negative")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
