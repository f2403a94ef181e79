package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BitcoinTracker/internal/model"
)

func samplesOf(prices ...float64) []model.PriceSample {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.PriceSample, len(prices))
	for i, p := range prices {
		out[i] = model.NewPriceSample(p, t0.Add(time.Duration(i)*time.Hour))
	}
	return out
}

func TestSummarize(t *testing.T) {
	sum, err := Summarize(samplesOf(10, 20, 30))
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Count)
	assert.True(t, decimal.NewFromInt(20).Equal(sum.Mean))
	assert.Equal(t, "20.00", FormatUSD(sum.Mean))
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil)
	assert.Error(t, err)
}

func TestMean_NoFloatDrift(t *testing.T) {
	m := Mean([]float64{0.1, 0.2})
	assert.Equal(t, "0.15", m.String())
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"20", "20.00"},
		{"1234.5", "1,234.50"},
		{"67123.456", "67,123.46"},
		{"1000000", "1,000,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUSD(decimal.RequireFromString(tt.in)), tt.in)
	}
}
