package store

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnapshotCSV(t *testing.T) {
	in := "Timestamp,Price_USD\n" +
		"2026-01-01 10:00:00,10\n" +
		"2026-01-01T11:00:00Z,20\n" +
		"2026-01-01 12:00:00.250000,30\n"

	samples, err := ParseSnapshotCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, []float64{10, 20, 30}, []float64{samples[0].PriceUSD, samples[1].PriceUSD, samples[2].PriceUSD})
	assert.Equal(t, "USD", samples[0].Currency)
	assert.Equal(t, 250000000, samples[2].Timestamp.Nanosecond())
}

func TestParseSnapshotCSV_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"missing column": "Timestamp,Price\n2026-01-01,1\n",
		"bad price":      "Timestamp,Price_USD\n2026-01-01,abc\n",
		"bad time":       "Timestamp,Price_USD\nyesterday,1\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSnapshotCSV(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestReadSnapshotCSV_MissingFile(t *testing.T) {
	_, err := ReadSnapshotCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
