package service

import (
	"log/slog"

	"github.com/efreitasn/tradestore/internal/domain"
	"github.com/efreitasn/tradestore/internal/query"
	"github.com/efreitasn/tradestore/internal/store"
	"github.com/google/uuid"
)

// TradeService handles the trade record lifecycle.
type TradeService struct {
	store  *store.TradeStore
	logger *slog.Logger
}

// NewTradeService creates a new TradeService.
func NewTradeService(store *store.TradeStore, logger *slog.Logger) *TradeService {
	return &TradeService{
		store:  store,
		logger: logger,
	}
}

// Create validates the input, assigns a new trade_id, and stores the trade.
// The input must not carry a trade_id.
func (s *TradeService) Create(in TradeInput) (*domain.Trade, error) {
	if in.TradeID != nil {
		return nil, domain.NewFieldError("tradeId", "is assigned by the server")
	}
	return s.insert(uuid.New().String(), in)
}

// Import stores a trade keeping the supplied trade_id, or assigning a new
// one when none is given. It is used to load seed records.
func (s *TradeService) Import(in TradeInput) (*domain.Trade, error) {
	id := uuid.New().String()
	if in.TradeID != nil && *in.TradeID != "" {
		id = *in.TradeID
	}
	return s.insert(id, in)
}

func (s *TradeService) insert(id string, in TradeInput) (*domain.Trade, error) {
	trade, err := ValidateTrade(in)
	if err != nil {
		return nil, err
	}
	trade.TradeID = id

	if err := s.store.Append(trade); err != nil {
		return nil, err
	}

	s.logger.Debug("trade created", slog.String("trade_id", id))
	return trade, nil
}

// Get retrieves a trade by ID.
func (s *TradeService) Get(id string) (*domain.Trade, error) {
	return s.store.Get(id)
}

// List returns the stored trades matching f, in store order.
func (s *TradeService) List(f query.Filter) []*domain.Trade {
	return query.Apply(s.store.All(), f)
}

// Update replaces the trade stored under id with the validated input.
// The trade_id is immutable: if the input carries one it must equal id.
func (s *TradeService) Update(id string, in TradeInput) (*domain.Trade, error) {
	if in.TradeID != nil && *in.TradeID != id {
		return nil, domain.NewFieldError("tradeId", "cannot be changed")
	}

	trade, err := ValidateTrade(in)
	if err != nil {
		return nil, err
	}
	trade.TradeID = id

	if err := s.store.Replace(id, trade); err != nil {
		return nil, err
	}

	s.logger.Debug("trade updated", slog.String("trade_id", id))
	return trade, nil
}

// Delete removes a trade by ID.
func (s *TradeService) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}

	s.logger.Debug("trade deleted", slog.String("trade_id", id))
	return nil
}
