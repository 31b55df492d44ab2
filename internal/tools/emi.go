// Package tools bundles the stateless shop utilities: the EMI calculator,
// the fixed-table currency converter, the mock weather lookup, the QR
// placeholder generator, and the scripted chat assistant. Nothing here
// touches the ledger.
package tools

import (
	"errors"
	"math"

	"vyaparhub/backend/internal/domain"
)

var ErrInvalidInput = errors.New("invalid input")

// CalculateEMI computes a flat reducing-balance EMI. All three inputs must
// be positive; the rate is an annual percentage.
func CalculateEMI(req domain.EMIRequest) (*domain.EMIResult, error) {
	if req.LoanAmount <= 0 || req.InterestRate <= 0 || req.TenureMonths <= 0 {
		return nil, ErrInvalidInput
	}

	monthlyRate := req.InterestRate / (12 * 100)
	factor := math.Pow(1+monthlyRate, req.TenureMonths)
	emi := req.LoanAmount * monthlyRate * factor / (factor - 1)
	total := emi * req.TenureMonths

	return &domain.EMIResult{
		MonthlyEMI:    emi,
		TotalPayment:  total,
		TotalInterest: total - req.LoanAmount,
	}, nil
}
