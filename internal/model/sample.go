package model

import "time"

// CurrencyUSD is the only currency tag the tracker writes.
const CurrencyUSD = "USD"

// PriceSample is one timestamped price observation.
type PriceSample struct {
	Timestamp time.Time `parquet:"timestamp,timestamp(microsecond)"`
	PriceUSD  float64   `parquet:"price_usd"`
	Currency  string    `parquet:"currency"`
}

// NewPriceSample stamps price with t (truncated to microseconds, the store's precision).
func NewPriceSample(price float64, t time.Time) PriceSample {
	return PriceSample{
		Timestamp: t.Truncate(time.Microsecond),
		PriceUSD:  price,
		Currency:  CurrencyUSD,
	}
}
