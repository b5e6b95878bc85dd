package store

import (
	"sync"

	"github.com/efreitasn/tradestore/internal/domain"
	"github.com/google/btree"
)

// tradeEntry is a stored trade together with its insertion sequence.
// The sequence is internal to the store and fixes iteration order.
type tradeEntry struct {
	seq   uint64
	trade *domain.Trade
}

func seqLess(a, b tradeEntry) bool {
	return a.seq < b.seq
}

// TradeStore is a thread-safe in-memory store for trades. Trades are
// kept in a B-tree ordered by insertion sequence, with a secondary
// index by trade_id for O(log n) lookup and removal.
type TradeStore struct {
	mu      sync.RWMutex
	ordered *btree.BTreeG[tradeEntry]
	index   map[string]uint64 // trade_id → seq
	nextSeq uint64
}

// NewTradeStore creates an empty TradeStore.
func NewTradeStore() *TradeStore {
	const degree = 32
	return &TradeStore{
		ordered: btree.NewG[tradeEntry](degree, seqLess),
		index:   make(map[string]uint64),
		nextSeq: 1,
	}
}

// Append adds a trade at the end of the iteration order. It returns
// domain.ErrTradeAlreadyExists if a trade with the same ID is stored.
// The store keeps its own copy of t.
func (s *TradeStore) Append(t *domain.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[t.TradeID]; exists {
		return domain.ErrTradeAlreadyExists
	}

	seq := s.nextSeq
	s.nextSeq++
	s.ordered.ReplaceOrInsert(tradeEntry{seq: seq, trade: t.Clone()})
	s.index[t.TradeID] = seq
	return nil
}

// Get retrieves a copy of the trade with the given ID. It returns
// domain.ErrTradeNotFound if the trade does not exist.
func (s *TradeStore) Get(id string) (*domain.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq, ok := s.index[id]
	if !ok {
		return nil, domain.ErrTradeNotFound
	}
	e, _ := s.ordered.Get(tradeEntry{seq: seq})
	return e.trade.Clone(), nil
}

// Replace swaps the trade stored under id for t, keeping its position
// in iteration order. The stored copy's TradeID is forced to id.
// It returns domain.ErrTradeNotFound if the trade does not exist.
func (s *TradeStore) Replace(id string, t *domain.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.index[id]
	if !ok {
		return domain.ErrTradeNotFound
	}

	c := t.Clone()
	c.TradeID = id
	s.ordered.ReplaceOrInsert(tradeEntry{seq: seq, trade: c})
	return nil
}

// Delete removes the trade with the given ID. It returns
// domain.ErrTradeNotFound if the trade does not exist.
func (s *TradeStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.index[id]
	if !ok {
		return domain.ErrTradeNotFound
	}

	s.ordered.Delete(tradeEntry{seq: seq})
	delete(s.index, id)
	return nil
}

// All returns copies of every stored trade in store order.
// Returns an empty slice if the store is empty.
func (s *TradeStore) All() []*domain.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Trade, 0, s.ordered.Len())
	s.ordered.Ascend(func(e tradeEntry) bool {
		result = append(result, e.trade.Clone())
		return true
	})
	return result
}

// Len returns the number of stored trades.
func (s *TradeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ordered.Len()
}
