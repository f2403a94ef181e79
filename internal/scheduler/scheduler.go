package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"BitcoinTracker/internal/model"
)

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context) (*model.RunRecord, error)
}

// Scheduler triggers pipeline runs on a cron interval.
// Overlapping triggers are skipped and missed intervals are never replayed.
type Scheduler struct {
	Cron      *cron.Cron
	Runner    Runner
	StartDate time.Time
	Ctx       context.Context
	Now       func() time.Time
}

// NewScheduler creates a new Scheduler. Runs before startDate are skipped.
func NewScheduler(ctx context.Context, runner Runner, startDate time.Time) *Scheduler {
	logger := cron.PrintfLogger(log.Default())
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		Runner:    runner,
		StartDate: startDate,
		Ctx:       ctx,
		Now:       time.Now,
	}
}

// Register adds the pipeline under spec, e.g. "@hourly" or "0 0 * * * *".
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.tick); err != nil {
		return fmt.Errorf("register pipeline %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a run in progress to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// Next returns the next scheduled trigger time, zero if nothing is registered.
func (s *Scheduler) Next() time.Time {
	entries := s.Cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// RunNow executes the pipeline immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() error {
	_, err := s.Runner.Run(s.Ctx)
	return err
}

func (s *Scheduler) tick() {
	if now := s.Now(); now.Before(s.StartDate) {
		log.Printf("[INFO] skipping run: before start date %s", s.StartDate.Format("2006-01-02"))
		return
	}
	if s.Ctx.Err() != nil {
		return
	}
	// Failures are already logged and recorded by the pipeline.
	if _, err := s.Runner.Run(s.Ctx); err != nil {
		log.Printf("[ERROR] scheduled run failed: %v", err)
	}
}
