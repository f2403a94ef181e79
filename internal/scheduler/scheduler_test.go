package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BitcoinTracker/internal/model"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
	delay time.Duration
}

func (c *countingRunner) Run(context.Context) (*model.RunRecord, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	return &model.RunRecord{}, c.err
}

func TestRegister_RejectsBadSpec(t *testing.T) {
	s := NewScheduler(context.Background(), &countingRunner{}, time.Time{})
	assert.Error(t, s.Register("every hour please"))
	assert.NoError(t, s.Register("@hourly"))
}

func TestNext_Hourly(t *testing.T) {
	s := NewScheduler(context.Background(), &countingRunner{}, time.Time{})
	assert.True(t, s.Next().IsZero())
	require.NoError(t, s.Register("@hourly"))
	s.Start()
	defer s.Stop()

	next := s.Next()
	require.False(t, next.IsZero())
	assert.Zero(t, next.Minute())
	assert.Zero(t, next.Second())
	assert.LessOrEqual(t, time.Until(next), time.Hour)
}

func TestRunNow(t *testing.T) {
	r := &countingRunner{err: errors.New("fetch failed")}
	s := NewScheduler(context.Background(), r, time.Time{})
	assert.Error(t, s.RunNow())
	assert.EqualValues(t, 1, r.calls.Load())
}

func TestTick_SkipsBeforeStartDate(t *testing.T) {
	r := &countingRunner{}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewScheduler(context.Background(), r, start)

	s.Now = func() time.Time { return start.Add(-time.Minute) }
	s.tick()
	assert.EqualValues(t, 0, r.calls.Load())

	s.Now = func() time.Time { return start }
	s.tick()
	assert.EqualValues(t, 1, r.calls.Load())
}

func TestTick_SkipsAfterCancel(t *testing.T) {
	r := &countingRunner{}
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(ctx, r, time.Time{})
	cancel()
	s.tick()
	assert.EqualValues(t, 0, r.calls.Load())
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}
	r := &countingRunner{delay: 2500 * time.Millisecond}
	s := NewScheduler(context.Background(), r, time.Time{})
	require.NoError(t, s.Register("@every 1s"))
	s.Start()

	time.Sleep(2300 * time.Millisecond)
	s.Stop()

	// Triggers at ~1s and ~2s; the second lands while the first is still running.
	assert.EqualValues(t, 1, r.calls.Load())
}
