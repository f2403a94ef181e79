// Package runlog provides a logger scoped to a single pipeline run.
package runlog

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
)

// Logger prefixes every line with the run id and a level tag.
type Logger struct {
	RunID string
	l     *log.Logger
}

// New creates a Logger for a fresh run writing to w (stderr when nil).
func New(w io.Writer) *Logger {
	return WithID(uuid.NewString(), w)
}

// WithID creates a Logger for an existing run id.
func WithID(runID string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		RunID: runID,
		l:     log.New(w, "", log.LstdFlags),
	}
}

func (r *Logger) Infof(format string, v ...any)  { r.output("INFO", format, v...) }
func (r *Logger) Warnf(format string, v ...any)  { r.output("WARN", format, v...) }
func (r *Logger) Errorf(format string, v ...any) { r.output("ERROR", format, v...) }

func (r *Logger) output(level, format string, v ...any) {
	r.l.Printf("[%s] run=%s %s", level, shortID(r.RunID), fmt.Sprintf(format, v...))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
