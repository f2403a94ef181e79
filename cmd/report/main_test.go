package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PrintsCountAndMean(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "bitcoin_prices.csv")
	csv := "Timestamp,Price_USD\n" +
		"2026-01-01 10:00:00,10\n" +
		"2026-01-01 11:00:00,20\n" +
		"2026-01-01 12:00:00,30\n"
	require.NoError(t, os.WriteFile(snapshot, []byte(csv), 0644))
	image := filepath.Join(dir, "btc_trend.png")

	var out bytes.Buffer
	require.NoError(t, run(&out, snapshot, image))

	assert.Contains(t, out.String(), "Total Data Points: 3\n")
	assert.Contains(t, out.String(), "Average Price: $20.00\n")
	assert.FileExists(t, image)
}

func TestRun_MissingSnapshotPrintsNothing(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, filepath.Join(t.TempDir(), "missing.csv"), filepath.Join(t.TempDir(), "x.png"))
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRun_HeaderOnlySnapshotFails(t *testing.T) {
	snapshot := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(snapshot, []byte("Timestamp,Price_USD\n"), 0644))

	var out bytes.Buffer
	assert.Error(t, run(&out, snapshot, filepath.Join(t.TempDir(), "x.png")))
}
