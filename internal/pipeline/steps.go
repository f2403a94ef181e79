package pipeline

import (
	"context"
	"fmt"

	"BitcoinTracker/internal/chart"
	"BitcoinTracker/internal/collector"
	"BitcoinTracker/internal/runlog"
	"BitcoinTracker/internal/store"
)

// Step names, in execution order.
const (
	StepFetch  = "extract_bitcoin_price"
	StepAppend = "load_to_parquet"
	StepRender = "generate_visualizations"
)

// StepError names the step that failed a run.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s: %v", e.Step, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }

// Appender persists one new price and returns the store location.
type Appender interface {
	AppendAndPersist(price float64) (string, error)
}

// Fetch retrieves the current price.
func Fetch(ctx context.Context, rl *runlog.Logger, f collector.Fetcher) (float64, error) {
	rl.Infof("fetching price from %s", f.Name())
	price, err := f.FetchPrice(ctx)
	if err != nil {
		return 0, &StepError{Step: StepFetch, Err: err}
	}
	rl.Infof("extracted price: $%v", price)
	return price, nil
}

// Append adds price to the store and returns the store path.
func Append(rl *runlog.Logger, a Appender, price float64) (string, error) {
	path, err := a.AppendAndPersist(price)
	if err != nil {
		return "", &StepError{Step: StepAppend, Err: err}
	}
	rl.Infof("store updated at %s", path)
	return path, nil
}

// Render loads the full store at storePath and redraws the chart at imagePath.
func Render(rl *runlog.Logger, storePath, imagePath string, opts chart.Options) error {
	samples, err := store.NewParquetStore(storePath).Load()
	if err != nil {
		return &StepError{Step: StepRender, Err: err}
	}
	if err := chart.Render(samples, imagePath, opts); err != nil {
		return &StepError{Step: StepRender, Err: err}
	}
	rl.Infof("visualization updated at %s (%d points)", imagePath, len(samples))
	return nil
}
