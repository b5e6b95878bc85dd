package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/efreitasn/tradestore/internal/domain"
	"github.com/efreitasn/tradestore/internal/query"
	"github.com/efreitasn/tradestore/internal/service"
	"github.com/go-chi/chi/v5"
)

// TradeHandler handles HTTP requests for trade endpoints.
type TradeHandler struct {
	tradeSvc *service.TradeService
	logger   *slog.Logger
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeSvc *service.TradeService, logger *slog.Logger) *TradeHandler {
	return &TradeHandler{
		tradeSvc: tradeSvc,
		logger:   logger,
	}
}

// tradeDetailsResponse is the nested tradeDetails object.
type tradeDetailsResponse struct {
	BuySellIndicator string  `json:"buySellIndicator"`
	Price            float64 `json:"price"`
	Quantity         int64   `json:"quantity"`
}

// tradeResponse is the JSON representation of a trade.
// Optional fields are always present and null when unset.
type tradeResponse struct {
	TradeID        string               `json:"tradeId"`
	AssetClass     *string              `json:"assetClass"`
	Counterparty   *string              `json:"counterparty"`
	InstrumentID   string               `json:"instrumentId"`
	InstrumentName string               `json:"instrumentName"`
	TradeDateTime  string               `json:"tradeDateTime"`
	TradeDetails   tradeDetailsResponse `json:"tradeDetails"`
	Trader         string               `json:"trader"`
}

// messageResponse is the JSON response for DELETE /trades/{trade_id}.
type messageResponse struct {
	Message string `json:"message"`
}

// List handles GET /trades.
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := query.ParseFilter(r.URL.Query())
	if err != nil {
		h.mapTradeError(w, err)
		return
	}

	trades := h.tradeSvc.List(filter)
	h.logger.Debug("trades listed",
		slog.Any("filters", filter.Active()),
		slog.Int("count", len(trades)),
	)

	resp := make([]tradeResponse, len(trades))
	for i, t := range trades {
		resp[i] = buildTradeResponse(t)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Get handles GET /trades/{trade_id}.
func (h *TradeHandler) Get(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "trade_id")

	trade, err := h.tradeSvc.Get(tradeID)
	if err != nil {
		h.mapTradeError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildTradeResponse(trade))
}

// Create handles POST /trades.
func (h *TradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.TradeInput
	if err := ParseJSON(r, &in); err != nil {
		h.mapTradeError(w, err)
		return
	}

	trade, err := h.tradeSvc.Create(in)
	if err != nil {
		h.mapTradeError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildTradeResponse(trade))
}

// Update handles PUT /trades/{trade_id}.
func (h *TradeHandler) Update(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "trade_id")

	var in service.TradeInput
	if err := ParseJSON(r, &in); err != nil {
		h.mapTradeError(w, err)
		return
	}

	trade, err := h.tradeSvc.Update(tradeID, in)
	if err != nil {
		h.mapTradeError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildTradeResponse(trade))
}

// Delete handles DELETE /trades/{trade_id}.
func (h *TradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "trade_id")

	if err := h.tradeSvc.Delete(tradeID); err != nil {
		h.mapTradeError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Message: "Trade deleted successfully"})
}

func buildTradeResponse(t *domain.Trade) tradeResponse {
	return tradeResponse{
		TradeID:        t.TradeID,
		AssetClass:     t.AssetClass,
		Counterparty:   t.Counterparty,
		InstrumentID:   t.InstrumentID,
		InstrumentName: t.InstrumentName,
		TradeDateTime:  domain.FormatTradeTime(t.TradeDateTime),
		TradeDetails: tradeDetailsResponse{
			BuySellIndicator: string(t.TradeDetails.BuySellIndicator),
			Price:            t.TradeDetails.Price,
			Quantity:         t.TradeDetails.Quantity,
		},
		Trader: t.Trader,
	}
}

// mapTradeError maps domain errors to HTTP responses for trade endpoints.
// Unexpected errors are logged and reported generically.
func (h *TradeHandler) mapTradeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteValidationError(w, validationErr)
		return
	}

	switch {
	case errors.Is(err, domain.ErrTradeNotFound):
		WriteError(w, http.StatusNotFound, "trade_not_found", "Trade not found")
	case errors.Is(err, domain.ErrTradeAlreadyExists):
		WriteError(w, http.StatusConflict, "trade_already_exists", "Trade already exists")
	case errors.Is(err, errMalformedBody):
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.logger.Error("unexpected error", slog.String("error", err.Error()))
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
