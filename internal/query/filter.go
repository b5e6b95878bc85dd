// Package query filters trade collections.
package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/efreitasn/tradestore/internal/domain"
)

// Filter holds the optional criteria for listing trades. A nil field is
// absent; a non-nil field is active even when it points at a zero value.
type Filter struct {
	Search     *string
	AssetClass *string
	Start      *time.Time
	End        *time.Time
	MinPrice   *float64
	MaxPrice   *float64
	TradeType  *domain.Side
}

// predicate is a single active criterion.
type predicate struct {
	name  string
	match func(*domain.Trade) bool
}

// predicates returns the active criteria in evaluation order.
func (f Filter) predicates() []predicate {
	var ps []predicate

	if f.Search != nil && *f.Search != "" {
		term := strings.ToLower(*f.Search)
		ps = append(ps, predicate{"search", func(t *domain.Trade) bool {
			return strings.Contains(t.SearchText(), term)
		}})
	}
	if f.AssetClass != nil {
		v := *f.AssetClass
		ps = append(ps, predicate{"assetClass", func(t *domain.Trade) bool {
			return t.AssetClass != nil && *t.AssetClass == v
		}})
	}
	if f.Start != nil {
		v := *f.Start
		ps = append(ps, predicate{"start", func(t *domain.Trade) bool {
			return !t.TradeDateTime.Before(v)
		}})
	}
	if f.End != nil {
		v := *f.End
		ps = append(ps, predicate{"end", func(t *domain.Trade) bool {
			return !t.TradeDateTime.After(v)
		}})
	}
	if f.MinPrice != nil {
		v := *f.MinPrice
		ps = append(ps, predicate{"minPrice", func(t *domain.Trade) bool {
			return t.TradeDetails.Price >= v
		}})
	}
	if f.MaxPrice != nil {
		v := *f.MaxPrice
		ps = append(ps, predicate{"maxPrice", func(t *domain.Trade) bool {
			return t.TradeDetails.Price <= v
		}})
	}
	if f.TradeType != nil {
		v := *f.TradeType
		ps = append(ps, predicate{"tradeType", func(t *domain.Trade) bool {
			return t.TradeDetails.BuySellIndicator == v
		}})
	}

	return ps
}

// Active returns the names of the active criteria, in evaluation order.
func (f Filter) Active() []string {
	ps := f.predicates()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.name
	}
	return names
}

// Matches reports whether t satisfies every active criterion.
func (f Filter) Matches(t *domain.Trade) bool {
	for _, p := range f.predicates() {
		if !p.match(t) {
			return false
		}
	}
	return true
}

// Apply returns the trades satisfying every active criterion, preserving
// input order. Each criterion narrows the candidates left by the
// previous one. The result is never nil.
func Apply(trades []*domain.Trade, f Filter) []*domain.Trade {
	result := make([]*domain.Trade, len(trades))
	copy(result, trades)

	for _, p := range f.predicates() {
		kept := result[:0]
		for _, t := range result {
			if p.match(t) {
				kept = append(kept, t)
			}
		}
		result = kept
	}
	return result
}

// ParseFilter builds a Filter from URL query parameters. A parameter is
// active when it is supplied with a non-empty value, even if that value
// is zero ("minPrice=0" is active, "minPrice=" is not). tradeType is
// matched exactly, so an unknown side yields no trades rather than an
// error. Malformed timestamps and numbers produce a
// *domain.ValidationError naming every bad parameter.
func ParseFilter(values url.Values) (Filter, error) {
	var f Filter
	var errs []*domain.ValidationError

	if v, ok := param(values, "search"); ok {
		f.Search = &v
	}
	if v, ok := param(values, "assetClass"); ok {
		f.AssetClass = &v
	}
	if v, ok := param(values, "start"); ok {
		ts, err := parseQueryTime(v)
		if err != nil {
			errs = append(errs, domain.NewFieldError("start", "must be a valid date-time"))
		} else {
			f.Start = &ts
		}
	}
	if v, ok := param(values, "end"); ok {
		ts, err := parseQueryTime(v)
		if err != nil {
			errs = append(errs, domain.NewFieldError("end", "must be a valid date-time"))
		} else {
			f.End = &ts
		}
	}
	if v, ok := param(values, "minPrice"); ok {
		p, err := parseNumber(v)
		if err != nil {
			errs = append(errs, domain.NewFieldError("minPrice", "must be a number"))
		} else {
			f.MinPrice = &p
		}
	}
	if v, ok := param(values, "maxPrice"); ok {
		p, err := parseNumber(v)
		if err != nil {
			errs = append(errs, domain.NewFieldError("maxPrice", "must be a number"))
		} else {
			f.MaxPrice = &p
		}
	}
	if v, ok := param(values, "tradeType"); ok {
		side := domain.Side(v)
		f.TradeType = &side
	}

	if verr := domain.JoinFieldErrors(errs); verr != nil {
		return Filter{}, verr
	}
	return f, nil
}

// param returns the first value for key and whether it is non-empty.
func param(values url.Values, key string) (string, bool) {
	v := values.Get(key)
	return v, v != ""
}

// parseQueryTime parses a trade timestamp from a query string. An
// unescaped "+hh:mm" offset is decoded as " hh:mm", so that form is
// accepted too.
func parseQueryTime(s string) (time.Time, error) {
	ts, err := domain.ParseTradeTime(s)
	if err == nil {
		return ts, nil
	}
	if i := len(s) - len("hh:mm") - 1; i > 0 && s[i] == ' ' {
		if ts, retryErr := domain.ParseTradeTime(s[:i] + "+" + s[i+1:]); retryErr == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}

// parseNumber parses a finite decimal number.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
