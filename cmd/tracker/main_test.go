package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BitcoinTracker/internal/model"
)

type memRecorder struct {
	runs []model.RunRecord
	err  error
}

func (m *memRecorder) RecordRun(r *model.RunRecord) error {
	m.runs = append(m.runs, *r)
	return nil
}

func (m *memRecorder) RecentRuns(limit int) ([]model.RunRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *memRecorder) Close() error { return nil }

type stubRunner struct {
	err   error
	calls int
}

func (s *stubRunner) Run(context.Context) (*model.RunRecord, error) {
	s.calls++
	return &model.RunRecord{}, s.err
}

func TestPrintHistory(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := &memRecorder{runs: []model.RunRecord{
		{StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond), Status: model.RunSucceeded, PriceUSD: 67123.456, Attempts: 1},
		{StartedAt: start.Add(-time.Hour), FinishedAt: start.Add(-time.Hour), Status: model.RunFailed, Attempts: 4, Error: "extract_bitcoin_price: price api: status 429"},
		{StartedAt: start.Add(-2 * time.Hour), Status: model.RunSucceeded},
	}}

	var out bytes.Buffer
	require.NoError(t, printHistory(&out, rec, 2))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2026-03-01 10:00:00  SUCCEEDED  $67123.46  attempts=1  1.5s", lines[0])
	assert.Equal(t, "2026-03-01 09:00:00  FAILED  attempts=4  extract_bitcoin_price: price api: status 429", lines[1])
}

func TestPrintHistory_RecorderError(t *testing.T) {
	var out bytes.Buffer
	err := printHistory(&out, &memRecorder{err: errors.New("database is locked")}, 5)
	assert.ErrorContains(t, err, "database is locked")
	assert.Empty(t, out.String())
}

func TestRunOnce_ExitCode(t *testing.T) {
	ok := &stubRunner{}
	assert.Equal(t, 0, runOnce(context.Background(), ok))
	assert.Equal(t, 1, ok.calls)

	failing := &stubRunner{err: errors.New("render failed")}
	assert.Equal(t, 1, runOnce(context.Background(), failing))
	assert.Equal(t, 1, failing.calls)
}
