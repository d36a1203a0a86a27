// Package report renders computed workout metrics as text.
package report

import (
	"errors"
	"fmt"

	"github.com/sstent/trainingtracker/internal/workout"
)

const messageTemplate = "Training type: %s; Duration: %.3f h.; Distance: %.3f km; " +
	"Mean speed: %.3f km/h; Calories burned: %.3f."

var errNilWorkout = errors.New("nil workout")

// InfoMessage is a snapshot of one workout's metrics.
type InfoMessage struct {
	TrainingType string
	Duration     float64 // hours
	Distance     float64 // km
	Speed        float64 // km/h
	Calories     float64 // kcal
}

// Message renders the fixed one-line summary.
func (m InfoMessage) Message() string {
	return fmt.Sprintf(messageTemplate, m.TrainingType, m.Duration, m.Distance, m.Speed, m.Calories)
}

// FromWorkout computes every metric of w.
func FromWorkout(w workout.Workout) (InfoMessage, error) {
	switch v := w.(type) {
	case workout.Running, workout.SportsWalking, workout.Swimming:
	case *workout.Running:
		if v == nil {
			return InfoMessage{}, errNilWorkout
		}
		w = *v
	case *workout.SportsWalking:
		if v == nil {
			return InfoMessage{}, errNilWorkout
		}
		w = *v
	case *workout.Swimming:
		if v == nil {
			return InfoMessage{}, errNilWorkout
		}
		w = *v
	default:
		return InfoMessage{}, fmt.Errorf("unknown workout %T", w)
	}

	speed, err := w.MeanSpeed()
	if err != nil {
		return InfoMessage{}, fmt.Errorf("mean speed: %w", err)
	}
	calories, err := w.SpentCalories()
	if err != nil {
		return InfoMessage{}, fmt.Errorf("spent calories: %w", err)
	}

	return InfoMessage{
		TrainingType: string(w.Kind()),
		Duration:     w.Data().Duration,
		Distance:     w.Distance(),
		Speed:        speed,
		Calories:     calories,
	}, nil
}
