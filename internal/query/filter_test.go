package query

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/efreitasn/tradestore/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// seedTrades mirrors the two records the service starts with.
func seedTrades() []*domain.Trade {
	return []*domain.Trade{
		{
			TradeID:        "aapl-1",
			AssetClass:     ptr("Equity"),
			Counterparty:   ptr("Goldman Sachs"),
			InstrumentID:   "AAPL",
			InstrumentName: "Apple Inc.",
			TradeDateTime:  time.Date(2022, 4, 14, 10, 0, 0, 0, time.UTC),
			TradeDetails:   domain.TradeDetails{BuySellIndicator: domain.SideBuy, Price: 155.0, Quantity: 100},
			Trader:         "John Doe",
		},
		{
			TradeID:        "googl-1",
			AssetClass:     ptr("Bond"),
			Counterparty:   ptr("JP Morgan"),
			InstrumentID:   "GOOGL",
			InstrumentName: "Alphabet Inc.",
			TradeDateTime:  time.Date(2022, 4, 14, 11, 0, 0, 0, time.UTC),
			TradeDetails:   domain.TradeDetails{BuySellIndicator: domain.SideSell, Price: 600.0, Quantity: 50},
			Trader:         "Jane Doe",
		},
	}
}

func tradeIDs(trades []*domain.Trade) []string {
	out := make([]string, len(trades))
	for i, t := range trades {
		out[i] = t.TradeID
	}
	return out
}

func TestApply_SeedScenarios(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filters", Filter{}, []string{"aapl-1", "googl-1"}},
		{"minPrice 200", Filter{MinPrice: ptr(200.0)}, []string{"googl-1"}},
		{"tradeType BUY", Filter{TradeType: ptr(domain.SideBuy)}, []string{"aapl-1"}},
		{"search jane", Filter{Search: ptr("jane")}, []string{"googl-1"}},
		{"search case insensitive", Filter{Search: ptr("APPLE")}, []string{"aapl-1"}},
		{"search empty is absent", Filter{Search: ptr("")}, []string{"aapl-1", "googl-1"}},
		{"search no match", Filter{Search: ptr("tesla")}, []string{}},
		{"assetClass Bond", Filter{AssetClass: ptr("Bond")}, []string{"googl-1"}},
		{"assetClass exact", Filter{AssetClass: ptr("bond")}, []string{}},
		{"start inclusive", Filter{Start: ptr(time.Date(2022, 4, 14, 11, 0, 0, 0, time.UTC))}, []string{"googl-1"}},
		{"end inclusive", Filter{End: ptr(time.Date(2022, 4, 14, 10, 0, 0, 0, time.UTC))}, []string{"aapl-1"}},
		{"maxPrice inclusive", Filter{MaxPrice: ptr(155.0)}, []string{"aapl-1"}},
		{"price band", Filter{MinPrice: ptr(100.0), MaxPrice: ptr(700.0)}, []string{"aapl-1", "googl-1"}},
		{"conflicting", Filter{TradeType: ptr(domain.SideBuy), AssetClass: ptr("Bond")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tradeIDs(Apply(seedTrades(), tt.filter))
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_ZeroIsActive(t *testing.T) {
	trades := seedTrades()
	negative := trades[0].Clone()
	negative.TradeID = "negative"
	negative.TradeDetails.Price = -5
	trades = append(trades, negative)

	got := tradeIDs(Apply(trades, Filter{MinPrice: ptr(0.0)}))
	if fmt.Sprint(got) != fmt.Sprint([]string{"aapl-1", "googl-1"}) {
		t.Fatalf("minPrice=0 should exclude negative prices, got %v", got)
	}

	got = tradeIDs(Apply(trades, Filter{MaxPrice: ptr(0.0)}))
	if fmt.Sprint(got) != fmt.Sprint([]string{"negative"}) {
		t.Fatalf("maxPrice=0 should keep only non-positive prices, got %v", got)
	}
}

func TestApply_NilAssetClassNeverMatches(t *testing.T) {
	trades := seedTrades()
	trades[0].AssetClass = nil

	got := tradeIDs(Apply(trades, Filter{AssetClass: ptr("")}))
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	trades := seedTrades()
	_ = Apply(trades, Filter{TradeType: ptr(domain.SideSell)})

	if fmt.Sprint(tradeIDs(trades)) != fmt.Sprint([]string{"aapl-1", "googl-1"}) {
		t.Fatalf("input slice was modified: %v", tradeIDs(trades))
	}
}

func TestApply_EmptyInput(t *testing.T) {
	got := Apply(nil, Filter{MinPrice: ptr(1.0)})
	if got == nil {
		t.Fatal("expected non-nil empty slice, got nil")
	}
}

func TestFilter_Active(t *testing.T) {
	f := Filter{
		Search:   ptr("x"),
		MinPrice: ptr(0.0),
		End:      ptr(time.Now()),
	}
	if got := fmt.Sprint(f.Active()); got != "[search end minPrice]" {
		t.Fatalf("Active() = %s", got)
	}
	if len(Filter{}.Active()) != 0 {
		t.Fatal("expected no active criteria for the zero Filter")
	}
}

func TestParseFilter(t *testing.T) {
	values := url.Values{
		"search":     {"jane"},
		"assetClass": {"Bond"},
		"start":      {"2022-04-14T00:00:00"},
		"end":        {"2022-04-15T00:00:00Z"},
		"minPrice":   {"0"},
		"maxPrice":   {"700.5"},
		"tradeType":  {"SELL"},
	}

	f, err := ParseFilter(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *f.Search != "jane" || *f.AssetClass != "Bond" {
		t.Errorf("unexpected text criteria: %q %q", *f.Search, *f.AssetClass)
	}
	if !f.Start.Equal(time.Date(2022, 4, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", *f.Start)
	}
	if !f.End.Equal(time.Date(2022, 4, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("End = %v", *f.End)
	}
	if f.MinPrice == nil || *f.MinPrice != 0 {
		t.Errorf("MinPrice should be active at zero, got %v", f.MinPrice)
	}
	if *f.MaxPrice != 700.5 {
		t.Errorf("MaxPrice = %v", *f.MaxPrice)
	}
	if *f.TradeType != domain.SideSell {
		t.Errorf("TradeType = %v", *f.TradeType)
	}

	got := tradeIDs(Apply(seedTrades(), f))
	if fmt.Sprint(got) != fmt.Sprint([]string{"googl-1"}) {
		t.Errorf("got %v, want [googl-1]", got)
	}
}

func TestParseFilter_EmptyValuesAreAbsent(t *testing.T) {
	f, err := ParseFilter(url.Values{
		"search":     {""},
		"assetClass": {""},
		"start":      {""},
		"minPrice":   {""},
		"tradeType":  {""},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Active()) != 0 {
		t.Fatalf("expected no active criteria, got %v", f.Active())
	}
}

func TestParseFilter_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		fields []string
	}{
		{"bad start", url.Values{"start": {"yesterday"}}, []string{"start"}},
		{"bad end", url.Values{"end": {"2022-99-99"}}, []string{"end"}},
		{"bad minPrice", url.Values{"minPrice": {"cheap"}}, []string{"minPrice"}},
		{"infinite maxPrice", url.Values{"maxPrice": {"Inf"}}, []string{"maxPrice"}},
		{"NaN minPrice", url.Values{"minPrice": {"NaN"}}, []string{"minPrice"}},
		{"several", url.Values{"minPrice": {"x"}, "end": {"soon"}}, []string{"end", "minPrice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilter(tt.values)
			verr, ok := err.(*domain.ValidationError)
			if !ok {
				t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
			}
			if fmt.Sprint(verr.Fields) != fmt.Sprint(tt.fields) {
				t.Fatalf("Fields = %v, want %v", verr.Fields, tt.fields)
			}
		})
	}
}

func TestParseFilter_TradeTypeIsExactMatch(t *testing.T) {
	for _, v := range []string{"buy", "HOLD", "Sell"} {
		t.Run(v, func(t *testing.T) {
			f, err := ParseFilter(url.Values{"tradeType": {v}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.TradeType == nil || string(*f.TradeType) != v {
				t.Fatalf("TradeType = %v, want %q", f.TradeType, v)
			}
			if got := Apply(seedTrades(), f); len(got) != 0 {
				t.Fatalf("expected no trades, got %v", tradeIDs(got))
			}
		})
	}
}

func TestParseFilter_UnescapedOffset(t *testing.T) {
	// "start=2022-04-14T12:30:00+02:00" sent without escaping "+".
	values, err := url.ParseQuery("start=2022-04-14T12:30:00+02:00&end=2022-04-14T11:00:00+00:00")
	if err != nil {
		t.Fatal(err)
	}
	if got := values.Get("start"); got != "2022-04-14T12:30:00 02:00" {
		t.Fatalf("query decoding changed: %q", got)
	}

	f, err := ParseFilter(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Start.Equal(time.Date(2022, 4, 14, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", *f.Start)
	}
	if !f.End.Equal(time.Date(2022, 4, 14, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("End = %v", *f.End)
	}
	if got := tradeIDs(Apply(seedTrades(), f)); fmt.Sprint(got) != "[googl-1]" {
		t.Errorf("got %v, want [googl-1]", got)
	}

	if _, err := ParseFilter(url.Values{"start": {"2022-04-14T12:30:00 2:00"}}); err == nil {
		t.Error("expected error for a malformed offset")
	}
}

func TestApply_SearchPriceText(t *testing.T) {
	// Prices are rendered in their shortest form: 155, not 155.0.
	tests := []struct {
		term string
		want []string
	}{
		{"155", []string{"aapl-1"}},
		{"155.0", []string{}},
		{"600", []string{"googl-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := tradeIDs(Apply(seedTrades(), Filter{Search: ptr(tt.term)}))
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
