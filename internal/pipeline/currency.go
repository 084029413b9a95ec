package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/costplan/internal/model"
)

// ErrUnknownCurrency is returned when a currency has no exchange rate.
var ErrUnknownCurrency = errors.New("unknown currency")

// Convert converts amount between currencies. Exchange rates are units of
// the currency per one unit of the primary currency, so conversions go
// through the primary. The result is rounded to cents.
func Convert(amount float64, from, to string, settings model.CurrencySettings) (float64, error) {
	conv, err := Converter(from, to, settings)
	if err != nil {
		return 0, err
	}
	return conv(amount), nil
}

// Converter resolves both exchange rates once and returns a function that
// converts amounts from one currency to the other, rounded to cents.
func Converter(from, to string, settings model.CurrencySettings) (func(float64) float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return func(amount float64) float64 { return amount }, nil
	}
	fromRate, err := rateFor(from, settings)
	if err != nil {
		return nil, err
	}
	toRate, err := rateFor(to, settings)
	if err != nil {
		return nil, err
	}
	return func(amount float64) float64 {
		return decimal.NewFromFloat(amount).
			Div(fromRate).
			Mul(toRate).
			Round(2).
			InexactFloat64()
	}, nil
}

func rateFor(code string, s model.CurrencySettings) (decimal.Decimal, error) {
	if code == strings.ToUpper(s.PrimaryCurrency) {
		return decimal.NewFromInt(1), nil
	}
	for k, r := range s.ExchangeRates {
		if strings.ToUpper(k) == code && r.Float() > 0 {
			return decimal.NewFromFloat(r.Float()), nil
		}
	}
	return decimal.Zero, fmt.Errorf("converting %s: %w", code, ErrUnknownCurrency)
}
