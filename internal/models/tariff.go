package models

import "fmt"

const (
	DefaultRatePerKm       = 0.15
	DefaultBasePrice       = 10.0
	DefaultAverageSpeedKmh = 120.0
)

// Tariff holds the numbers used to turn a route length into a price and a duration.
type Tariff struct {
	RatePerKm       float64 `json:"rate_per_km"`
	BasePrice       float64 `json:"base_price"`
	AverageSpeedKmh float64 `json:"average_speed_kmh"`
}

// DefaultTariff returns the tariff used when the configuration omits one.
func DefaultTariff() Tariff {
	return Tariff{
		RatePerKm:       DefaultRatePerKm,
		BasePrice:       DefaultBasePrice,
		AverageSpeedKmh: DefaultAverageSpeedKmh,
	}
}

// WithDefaults fills zero fields from DefaultTariff.
func (t Tariff) WithDefaults() Tariff {
	d := DefaultTariff()
	if t.RatePerKm == 0 {
		t.RatePerKm = d.RatePerKm
	}
	if t.BasePrice == 0 {
		t.BasePrice = d.BasePrice
	}
	if t.AverageSpeedKmh == 0 {
		t.AverageSpeedKmh = d.AverageSpeedKmh
	}
	return t
}

func (t Tariff) Validate() error {
	if t.RatePerKm < 0 || t.BasePrice < 0 || t.AverageSpeedKmh < 0 {
		return fmt.Errorf("tariff values must not be negative: %+v", t)
	}
	return nil
}
