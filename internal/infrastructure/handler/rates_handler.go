package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/damon-houk/forex-bureau-dashboard/internal/application/service"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/rates"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/middleware"
)

// RatesHandler serves live rate tables, the currency catalog and the counter calculator
type RatesHandler struct {
	rates      service.RateFetcher
	conversion *service.ConversionService
	logger     logger.Logger
}

// NewRatesHandler creates a new rates handler
func NewRatesHandler(rates service.RateFetcher, conversion *service.ConversionService, log logger.Logger) *RatesHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RatesHandler{
		rates:      rates,
		conversion: conversion,
		logger:     log,
	}
}

// GetRates handles GET /api/rates?base=
func (h *RatesHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	base, ok := h.currencyParam(w, r, "base", entity.DefaultBase, requestID)
	if !ok {
		return
	}

	h.logger.Info("Handling rates request", map[string]interface{}{
		"request_id": requestID,
		"base":       base,
	})

	table := h.rates.FetchRates(r.Context(), base)
	if table == nil {
		h.logger.Error("Rate fetcher returned no table", map[string]interface{}{
			"request_id": requestID,
			"base":       base,
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"No rate table could be produced", http.StatusInternalServerError, requestID)
		return
	}

	sendJSON(w, http.StatusOK, newRatesResponse(table))
}

// Convert handles GET /api/convert?amount=&from=&to=
func (h *RatesHandler) Convert(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	amount, err := strconv.ParseFloat(query.Get("amount"), 64)
	if err != nil {
		h.logger.Warn("Invalid amount parameter", map[string]interface{}{
			"request_id": requestID,
			"amount":     query.Get("amount"),
		})
		sendErrorResponse(w, h.logger, "Invalid amount",
			"The 'amount' query parameter must be a number", http.StatusBadRequest, requestID)
		return
	}

	from, ok := h.currencyParam(w, r, "from", entity.DefaultBase, requestID)
	if !ok {
		return
	}
	to, ok := h.currencyParam(w, r, "to", "", requestID)
	if !ok {
		return
	}

	conversion, err := h.conversion.Convert(r.Context(), amount, from, to)
	if err != nil {
		sendServiceError(w, h.logger, err, "convert the amount", requestID)
		return
	}

	sendJSON(w, http.StatusOK, ConversionResponse{
		Success:     true,
		Conversion:  conversion,
		SourceLabel: conversion.Provenance.Label(),
	})
}

// ListCurrencies handles GET /api/currencies?region=
func (h *RatesHandler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")

	currencies := rates.Currencies()
	if region != "" {
		currencies = rates.CurrenciesByRegion(region)
	}

	sendJSON(w, http.StatusOK, CurrenciesResponse{
		Success:    true,
		Currencies: currencies,
		Regions:    rates.Regions(),
	})
}

// currencyParam reads a currency code query parameter, answering 400 when it is malformed
func (h *RatesHandler) currencyParam(w http.ResponseWriter, r *http.Request, name string, def entity.CurrencyCode, requestID string) (entity.CurrencyCode, bool) {
	code := entity.NormalizeCurrencyCode(r.URL.Query().Get(name))
	if code == "" {
		code = def
	}
	if !code.Valid() {
		h.logger.Warn("Invalid currency parameter", map[string]interface{}{
			"request_id": requestID,
			"param":      name,
			"value":      r.URL.Query().Get(name),
		})
		sendErrorResponse(w, h.logger, "Invalid currency",
			"The '"+name+"' query parameter must be a 3-letter currency code", http.StatusBadRequest, requestID)
		return "", false
	}
	return code, true
}

// RegisterRoutes registers the rates handler routes
func (h *RatesHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/rates", h.GetRates).Methods("GET")
	router.HandleFunc("/api/convert", h.Convert).Methods("GET")
	router.HandleFunc("/api/currencies", h.ListCurrencies).Methods("GET")

	h.logger.Info("Rates routes registered", map[string]interface{}{
		"routes": []string{
			"GET /api/rates",
			"GET /api/convert",
			"GET /api/currencies",
		},
	})
}
