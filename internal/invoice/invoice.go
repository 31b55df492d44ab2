// Package invoice turns raw form-field strings into a priced GST invoice.
package invoice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vyaparhub/backend/internal/domain"
)

var ErrNoValidLines = errors.New("invoice has no valid line items")

// Build prices the request and returns the invoice. Numeric fields are
// parsed with a zero default, so a blank or garbled qty, price, or GST
// reads as 0 rather than failing the request. A line is billed only when
// its name is non-empty and both qty and price are positive; GST may be
// zero. If no line qualifies, ErrNoValidLines is returned.
func Build(req domain.InvoiceRequest, now time.Time) (*domain.Invoice, error) {
	inv := &domain.Invoice{
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerMobile: strings.TrimSpace(req.CustomerMobile),
		Date:           now.Format(time.RFC3339),
		Items:          []domain.InvoiceLineItem{},
	}

	for _, line := range req.Items {
		name := strings.TrimSpace(line.Name)
		qty := parseNumber(line.Qty)
		price := parseNumber(line.Price)
		gst := parseNumber(line.GST)

		if name == "" || qty <= 0 || price <= 0 {
			continue
		}

		subtotal := qty * price
		tax := subtotal * gst / 100

		inv.Items = append(inv.Items, domain.InvoiceLineItem{
			Name:  name,
			Qty:   qty,
			Price: price,
			GST:   gst,
			Total: subtotal + tax,
		})
		inv.Subtotal += subtotal
		inv.TotalGST += tax
	}

	if len(inv.Items) == 0 {
		return nil, ErrNoValidLines
	}

	inv.GrandTotal = inv.Subtotal + inv.TotalGST
	return inv, nil
}

func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount renders a money value with two decimals for display. The
// stored transaction amount stays unrounded; only presentation rounds.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
