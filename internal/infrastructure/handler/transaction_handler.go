package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/damon-houk/forex-bureau-dashboard/internal/application/service"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/middleware"
)

// TransactionHandler handles HTTP requests for transactions
type TransactionHandler struct {
	service *service.TransactionService
	logger  logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service *service.TransactionService, log logger.Logger) *TransactionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionHandler{
		service: service,
		logger:  log,
	}
}

// ListTransactions handles GET /api/transactions
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	txs, err := h.service.ListTransactions(r.Context())
	if err != nil {
		sendServiceError(w, h.logger, err, "list transactions", requestID)
		return
	}

	sendJSON(w, http.StatusOK, ItemsResponse{Success: true, Items: txs})
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	h.logger.Info("Handling create transaction request", map[string]interface{}{
		"request_id": requestID,
		"method":     r.Method,
		"path":       r.URL.Path,
	})

	var req TransactionRequest
	if !decodeRequest(w, r, h.logger, &req, requestID) {
		return
	}

	h.logger.Debug("Request parsed", map[string]interface{}{
		"request_id": requestID,
		"from":       req.FromCurrency,
		"to":         req.ToCurrency,
		"amount":     req.Amount,
		"rate":       req.Rate,
	})

	tx, err := h.service.CreateTransaction(r.Context(), req.toEntity())
	if err != nil {
		sendServiceError(w, h.logger, err, "create the transaction", requestID)
		return
	}

	h.logger.Info("Transaction created successfully", map[string]interface{}{
		"request_id": requestID,
		"id":         tx.ID,
	})

	sendJSON(w, http.StatusCreated, ItemResponse{Success: true, Item: tx})
}

// UpdateTransaction handles PUT /api/transactions; the body's id selects the transaction
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req TransactionUpdateRequest
	if !decodeRequest(w, r, h.logger, &req, requestID) {
		return
	}
	if req.ID == "" {
		sendErrorResponse(w, h.logger, "Missing id",
			"The transaction 'id' is required", http.StatusBadRequest, requestID)
		return
	}

	tx, err := h.service.UpdateTransaction(r.Context(), req.ID, req.toPatch())
	if err != nil {
		sendServiceError(w, h.logger, err, "update the transaction", requestID)
		return
	}

	h.logger.Info("Transaction updated", map[string]interface{}{
		"request_id": requestID,
		"id":         tx.ID,
		"status":     tx.Status,
	})

	sendJSON(w, http.StatusOK, ItemResponse{Success: true, Item: tx})
}

// DeleteTransaction handles DELETE /api/transactions?id=
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		sendErrorResponse(w, h.logger, "Missing id",
			"The 'id' query parameter is required", http.StatusBadRequest, requestID)
		return
	}

	tx, err := h.service.DeleteTransaction(r.Context(), id)
	if err != nil {
		sendServiceError(w, h.logger, err, "delete the transaction", requestID)
		return
	}

	h.logger.Info("Transaction deleted", map[string]interface{}{
		"request_id": requestID,
		"id":         tx.ID,
	})

	sendJSON(w, http.StatusOK, ItemResponse{Success: true, Item: tx})
}

// RegisterRoutes registers the transaction routes; gate wraps the mutating ones
func (h *TransactionHandler) RegisterRoutes(router *mux.Router, gate Middleware) {
	router.HandleFunc("/api/transactions", h.ListTransactions).Methods("GET")
	router.Handle("/api/transactions", gate.wrap(h.CreateTransaction)).Methods("POST")
	router.Handle("/api/transactions", gate.wrap(h.UpdateTransaction)).Methods("PUT")
	router.Handle("/api/transactions", gate.wrap(h.DeleteTransaction)).Methods("DELETE")

	h.logger.Info("Transaction routes registered", map[string]interface{}{
		"routes": []string{
			"GET /api/transactions",
			"POST /api/transactions",
			"PUT /api/transactions",
			"DELETE /api/transactions",
		},
	})
}
