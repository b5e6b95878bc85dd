package service

import (
	"reflect"
	"strings"

	"github.com/efreitasn/tradestore/internal/domain"
	"github.com/go-playground/validator/v10"
)

// TradeDetailsInput is the inbound form of domain.TradeDetails.
type TradeDetailsInput struct {
	BuySellIndicator *string  `json:"buySellIndicator" yaml:"buySellIndicator" validate:"required,oneof=BUY SELL"`
	Price            *float64 `json:"price" yaml:"price" validate:"required,gt=0"`
	Quantity         *int64   `json:"quantity" yaml:"quantity" validate:"required,gt=0"`
}

// TradeInput is an inbound trade payload. Pointer fields distinguish an
// absent field from a zero value.
type TradeInput struct {
	TradeID        *string            `json:"tradeId,omitempty" yaml:"tradeId,omitempty"`
	AssetClass     *string            `json:"assetClass" yaml:"assetClass"`
	Counterparty   *string            `json:"counterparty" yaml:"counterparty"`
	InstrumentID   *string            `json:"instrumentId" yaml:"instrumentId" validate:"required,min=1"`
	InstrumentName *string            `json:"instrumentName" yaml:"instrumentName" validate:"required,min=1"`
	TradeDateTime  *string            `json:"tradeDateTime" yaml:"tradeDateTime" validate:"required,tradetime"`
	TradeDetails   *TradeDetailsInput `json:"tradeDetails" yaml:"tradeDetails" validate:"required"`
	Trader         *string            `json:"trader" yaml:"trader" validate:"required,min=1"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := v.RegisterValidation("tradetime", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseTradeTime(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic("service: register tradetime validation: " + err.Error())
	}

	return v
}

// ValidateTrade checks in against the trade rules and returns the
// domain.Trade it describes. Failures are returned as a
// *domain.ValidationError naming every offending field. The returned
// trade has no TradeID.
func ValidateTrade(in TradeInput) (*domain.Trade, error) {
	if err := validate.Struct(in); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, err
		}
		fieldErrs := make([]*domain.ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrs = append(fieldErrs, domain.NewFieldError(fieldPath(fe), ruleMessage(fe)))
		}
		return nil, domain.JoinFieldErrors(fieldErrs)
	}

	// Already validated by the tradetime rule.
	ts, _ := domain.ParseTradeTime(*in.TradeDateTime)

	return &domain.Trade{
		AssetClass:     in.AssetClass,
		Counterparty:   in.Counterparty,
		InstrumentID:   *in.InstrumentID,
		InstrumentName: *in.InstrumentName,
		TradeDateTime:  ts,
		TradeDetails: domain.TradeDetails{
			BuySellIndicator: domain.Side(*in.TradeDetails.BuySellIndicator),
			Price:            *in.TradeDetails.Price,
			Quantity:         *in.TradeDetails.Quantity,
		},
		Trader: *in.Trader,
	}, nil
}

// fieldPath strips the root struct name from the error namespace,
// e.g. "TradeInput.tradeDetails.price" becomes "tradeDetails.price".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "tradetime":
		return "must be a valid date-time"
	default:
		return "is invalid"
	}
}
