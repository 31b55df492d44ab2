package tools

import (
	"context"
	"time"

	"vyaparhub/backend/internal/domain"
)

// WeatherService answers every valid pincode with the same canned report
// after a configurable mock-lookup delay. There is no upstream provider.
type WeatherService struct {
	latency time.Duration
}

func NewWeatherService(latency time.Duration) *WeatherService {
	return &WeatherService{latency: latency}
}

// Lookup validates the pincode (exactly six digits) and returns the fixed
// report. The delay simulates a provider round trip and honors ctx.
func (w *WeatherService) Lookup(ctx context.Context, pincode string) (*domain.WeatherReport, error) {
	if !validPincode(pincode) {
		return nil, ErrInvalidInput
	}

	if w.latency > 0 {
		timer := time.NewTimer(w.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return &domain.WeatherReport{
		Location:    "Mumbai, Maharashtra",
		Temperature: 32,
		Description: "Sunny",
		Humidity:    65,
		WindSpeed:   12,
		Pressure:    1013,
	}, nil
}

func validPincode(pincode string) bool {
	if len(pincode) != 6 {
		return false
	}
	for _, r := range pincode {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
