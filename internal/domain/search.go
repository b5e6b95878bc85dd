package domain

import (
	"strconv"
	"strings"
)

// searchSeparator is the ASCII unit separator, so ordinary search terms
// cannot match across two adjacent fields.
const searchSeparator = "\x1f"

// SearchText renders the searchable fields of t, lowercased, in a fixed
// order: tradeId, assetClass, counterparty, instrumentId, instrumentName,
// tradeDateTime, buySellIndicator, price, quantity, trader.
// Field names are not included.
func (t *Trade) SearchText() string {
	parts := []string{
		t.TradeID,
		t.AssetClassValue(),
		t.CounterpartyValue(),
		t.InstrumentID,
		t.InstrumentName,
		FormatTradeTime(t.TradeDateTime),
		string(t.TradeDetails.BuySellIndicator),
		strconv.FormatFloat(t.TradeDetails.Price, 'f', -1, 64),
		strconv.FormatInt(t.TradeDetails.Quantity, 10),
		t.Trader,
	}
	return strings.ToLower(strings.Join(parts, searchSeparator))
}
