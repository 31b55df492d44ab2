package tools

import (
	"hash/fnv"
	"math/rand"
	"strings"

	"vyaparhub/backend/internal/domain"
)

const qrGridSize = 20

// GenerateQR builds the decorative QR placeholder: a 20x20 module grid
// seeded from the text so the same input always draws the same pattern.
// It is not a scannable code.
func GenerateQR(req domain.QRRequest) (*domain.QRPlaceholder, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	grid := make([][]bool, qrGridSize)
	for i := range grid {
		row := make([]bool, qrGridSize)
		for j := range row {
			row[j] = rng.Float64() > 0.5
		}
		grid[i] = row
	}

	return &domain.QRPlaceholder{Text: text, Size: qrGridSize, Grid: grid}, nil
}
