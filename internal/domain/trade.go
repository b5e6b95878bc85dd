package domain

import "time"

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Valid reports whether s is one of the known sides.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// TradeDetails holds the economic terms of a trade.
type TradeDetails struct {
	BuySellIndicator Side
	Price            float64
	Quantity         int64
}

// Trade is a single recorded financial transaction.
type Trade struct {
	TradeID        string
	AssetClass     *string // optional
	Counterparty   *string // optional
	InstrumentID   string
	InstrumentName string
	TradeDateTime  time.Time // UTC
	TradeDetails   TradeDetails
	Trader         string
}

// Clone returns a deep copy of t, so optional fields are not shared
// between the copy and the original.
func (t *Trade) Clone() *Trade {
	c := *t
	if t.AssetClass != nil {
		v := *t.AssetClass
		c.AssetClass = &v
	}
	if t.Counterparty != nil {
		v := *t.Counterparty
		c.Counterparty = &v
	}
	return &c
}

// AssetClassValue returns the asset class or "" when unset.
func (t *Trade) AssetClassValue() string {
	if t.AssetClass == nil {
		return ""
	}
	return *t.AssetClass
}

// CounterpartyValue returns the counterparty or "" when unset.
func (t *Trade) CounterpartyValue() string {
	if t.Counterparty == nil {
		return ""
	}
	return *t.Counterparty
}
