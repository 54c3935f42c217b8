package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/damon-houk/forex-bureau-dashboard/internal/application/service"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/middleware"
)

// InventoryHandler handles HTTP requests for the cash inventory
type InventoryHandler struct {
	service *service.InventoryService
	logger  logger.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service *service.InventoryService, log logger.Logger) *InventoryHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &InventoryHandler{
		service: service,
		logger:  log,
	}
}

// ListItems handles GET /api/inventory
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	items, err := h.service.ListItems(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, "list inventory", requestID)
		return
	}

	sendJSON(w, http.StatusOK, ItemsResponse{Success: true, Items: newInventoryItemResponses(items)})
}

// LowStock handles GET /api/inventory/low
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	items, err := h.service.LowStock(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, "list low stock", requestID)
		return
	}

	sendJSON(w, http.StatusOK, ItemsResponse{Success: true, Items: newInventoryItemResponses(items)})
}

// CreateItem handles POST /api/inventory
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req InventoryItemRequest
	if !decodeRequest(w, r, h.logger, &req, requestID) {
		return
	}

	item, err := h.service.CreateItem(r.Context(), req.toEntity())
	if err != nil {
		sendServiceError(w, h.logger, err, "create the inventory item", requestID)
		return
	}

	h.logger.Info("Inventory item created", map[string]interface{}{
		"request_id": requestID,
		"code":       item.Code,
	})

	sendJSON(w, http.StatusCreated, ItemResponse{Success: true, Item: newInventoryItemResponse(item)})
}

// UpdateItem handles PUT /api/inventory; the body's code selects the item
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req InventoryItemUpdateRequest
	if !decodeRequest(w, r, h.logger, &req, requestID) {
		return
	}

	item, err := h.service.UpdateItem(r.Context(), req.Code, req.toPatch())
	if err != nil {
		sendServiceError(w, h.logger, err, "update the inventory item", requestID)
		return
	}

	h.logger.Info("Inventory item updated", map[string]interface{}{
		"request_id": requestID,
		"code":       item.Code,
		"low_stock":  item.IsLow(),
	})

	sendJSON(w, http.StatusOK, ItemResponse{Success: true, Item: newInventoryItemResponse(item)})
}

// DeleteItem handles DELETE /api/inventory?code=
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	code := r.URL.Query().Get("code")
	if code == "" {
		sendErrorResponse(w, h.logger, "Missing code",
			"The 'code' query parameter is required", http.StatusBadRequest, requestID)
		return
	}

	item, err := h.service.DeleteItem(r.Context(), code)
	if err != nil {
		sendServiceError(w, h.logger, err, "delete the inventory item", requestID)
		return
	}

	h.logger.Info("Inventory item deleted", map[string]interface{}{
		"request_id": requestID,
		"code":       item.Code,
	})

	sendJSON(w, http.StatusOK, ItemResponse{Success: true, Item: newInventoryItemResponse(item)})
}

// RegisterRoutes registers the inventory routes; gate wraps the mutating ones
func (h *InventoryHandler) RegisterRoutes(router *mux.Router, gate Middleware) {
	router.HandleFunc("/api/inventory", h.ListItems).Methods("GET")
	router.HandleFunc("/api/inventory/low", h.LowStock).Methods("GET")
	router.Handle("/api/inventory", gate.wrap(h.CreateItem)).Methods("POST")
	router.Handle("/api/inventory", gate.wrap(h.UpdateItem)).Methods("PUT")
	router.Handle("/api/inventory", gate.wrap(h.DeleteItem)).Methods("DELETE")

	h.logger.Info("Inventory routes registered", map[string]interface{}{
		"routes": []string{
			"GET /api/inventory",
			"GET /api/inventory/low",
			"POST /api/inventory",
			"PUT /api/inventory",
			"DELETE /api/inventory",
		},
	})
}
