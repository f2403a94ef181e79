package pipeline

import (
	"context"
	"io"
	"time"

	"BitcoinTracker/internal/chart"
	"BitcoinTracker/internal/collector"
	"BitcoinTracker/internal/model"
	"BitcoinTracker/internal/recorder"
	"BitcoinTracker/internal/runlog"
)

// Pipeline runs fetch, append and render in order. Each step is retried on its
// own, so a failed render never re-appends a sample.
type Pipeline struct {
	DAG       string
	Owner     string
	Fetcher   collector.Fetcher
	Store     Appender
	ImagePath string
	Chart     chart.Options
	Retry     RetryPolicy
	Recorder  recorder.Recorder
	LogOutput io.Writer // nil means stderr
	Now       func() time.Time
}

// Run executes one scheduled run. The returned record is always non-nil and
// has already been handed to the Recorder.
func (p *Pipeline) Run(ctx context.Context) (*model.RunRecord, error) {
	rl := runlog.New(p.LogOutput)
	run := &model.RunRecord{
		ID:        rl.RunID,
		DAG:       p.DAG,
		Owner:     p.Owner,
		StartedAt: p.now(),
		ImagePath: p.ImagePath,
	}
	rl.Infof("run started: dag=%s owner=%s", p.DAG, p.Owner)

	err := p.steps(ctx, rl, run)
	run.FinishedAt = p.now()
	if err != nil {
		run.Status = model.RunFailed
		run.Error = err.Error()
		rl.Errorf("run failed after %d attempt(s): %v", run.Attempts, err)
	} else {
		run.Status = model.RunSucceeded
		rl.Infof("run succeeded in %v", run.Duration())
	}

	if p.Recorder != nil {
		if recErr := p.Recorder.RecordRun(run); recErr != nil {
			rl.Errorf("record run: %v", recErr)
		}
	}
	return run, err
}

func (p *Pipeline) steps(ctx context.Context, rl *runlog.Logger, run *model.RunRecord) error {
	var price float64
	n, err := p.Retry.Do(ctx, rl, func(int) error {
		var err error
		price, err = Fetch(ctx, rl, p.Fetcher)
		return err
	})
	run.Attempts += n
	if err != nil {
		return err
	}
	run.PriceUSD = price

	var storePath string
	n, err = p.Retry.Do(ctx, rl, func(int) error {
		var err error
		storePath, err = Append(rl, p.Store, price)
		return err
	})
	run.Attempts += n
	if err != nil {
		return err
	}
	run.StorePath = storePath

	n, err = p.Retry.Do(ctx, rl, func(int) error {
		return Render(rl, storePath, p.ImagePath, p.Chart)
	})
	run.Attempts += n
	return err
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
