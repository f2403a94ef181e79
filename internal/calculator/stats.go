package calculator

import (
	"errors"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"BitcoinTracker/internal/model"
)

// Summary holds the report statistics for a sample set.
type Summary struct {
	Count int
	Mean  decimal.Decimal
}

// Summarize counts the samples and computes their arithmetic mean price.
func Summarize(samples []model.PriceSample) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, errors.New("no samples to summarize")
	}
	return Summary{Count: len(samples), Mean: Mean(extractPrices(samples))}, nil
}

// Mean returns the arithmetic mean of prices; zero for an empty slice.
func Mean(prices []float64) decimal.Decimal {
	if len(prices) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(decimal.NewFromFloat(p))
	}
	return sum.Div(decimal.NewFromInt(int64(len(prices))))
}

// FormatUSD renders d with thousands separators and two decimals, e.g. 67,123.45.
func FormatUSD(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}

func extractPrices(samples []model.PriceSample) []float64 {
	prices := make([]float64, len(samples))
	for i, s := range samples {
		prices[i] = s.PriceUSD
	}
	return prices
}
