package recorder

import "BitcoinTracker/internal/model"

// Recorder persists pipeline run history for later inspection.
type Recorder interface {
	RecordRun(run *model.RunRecord) error
	RecentRuns(limit int) ([]model.RunRecord, error)
	Close() error
}
