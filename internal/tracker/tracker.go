// Package tracker runs batches of sensor readings through dispatch, the
// workout formulas and the reporter.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sstent/trainingtracker/internal/models"
	"github.com/sstent/trainingtracker/internal/observability"
	"github.com/sstent/trainingtracker/internal/report"
	"github.com/sstent/trainingtracker/internal/workout"
)

// Summary describes one completed batch.
type Summary struct {
	RunID     string
	Processed int
	Failed    int
	Duration  time.Duration
}

type Service struct {
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger overrides the default stderr logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{logger: log.New(os.Stderr, "", log.LstdFlags)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report dispatches a single reading and renders its summary line.
func Report(reading models.Reading) (string, report.InfoMessage, error) {
	w, err := workout.ReadPackage(reading.Code, reading.Args)
	if err != nil {
		return "", report.InfoMessage{}, err
	}
	info, err := report.FromWorkout(w)
	if err != nil {
		return "", report.InfoMessage{}, err
	}
	return info.Message(), info, nil
}

// Process writes one line per reading to out, in input order. Failed
// readings are logged and skipped; only ctx cancellation or a write error
// stops the batch.
func (s *Service) Process(ctx context.Context, readings []models.Reading, out io.Writer) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	startTime := time.Now()
	s.logger.Printf("[%s] Processing %d readings", summary.RunID, len(readings))

	for i, reading := range readings {
		select {
		case <-ctx.Done():
			summary.Duration = time.Since(startTime)
			return summary, ctx.Err()
		default:
		}

		line, info, err := Report(reading)
		if err != nil {
			summary.Failed++
			observability.RecordFailed(failureReason(err))
			s.logger.Printf("[%s] [%d/%d] Skipping reading %q from %s: %v",
				summary.RunID, i+1, len(readings), reading.Code, sourceName(reading), err)
			continue
		}

		if _, err := fmt.Fprintln(out, line); err != nil {
			summary.Duration = time.Since(startTime)
			return summary, fmt.Errorf("failed to write report: %w", err)
		}
		summary.Processed++
		observability.RecordProcessed(reading.Code, info.Calories)
	}

	summary.Duration = time.Since(startTime)
	s.logger.Printf("[%s] Batch completed in %s: %d reported, %d failed",
		summary.RunID, summary.Duration, summary.Processed, summary.Failed)
	return summary, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, workout.ErrUnsupportedWorkoutType):
		return observability.ReasonUnsupportedType
	case errors.Is(err, workout.ErrZeroDuration):
		return observability.ReasonZeroDuration
	case errors.Is(err, workout.ErrZeroHeight):
		return observability.ReasonZeroHeight
	case errors.Is(err, workout.ErrArgumentCount):
		return observability.ReasonInvalidArgs
	default:
		return observability.ReasonOther
	}
}

func sourceName(reading models.Reading) string {
	if reading.Source == "" {
		return "unknown source"
	}
	return reading.Source
}
