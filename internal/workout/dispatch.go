package workout

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind identifies a training type.
type Kind string

const (
	KindRunning       Kind = "Running"
	KindSportsWalking Kind = "SportsWalking"
	KindSwimming      Kind = "Swimming"
)

// Activity codes sent by the sensors.
const (
	CodeRunning  = "RUN"
	CodeWalking  = "WLK"
	CodeSwimming = "SWM"
)

var (
	ErrUnsupportedWorkoutType = errors.New("unsupported workout type")
	ErrArgumentCount          = errors.New("wrong number of workout arguments")
)

// UnsupportedWorkoutTypeError carries the activity code nobody recognised.
type UnsupportedWorkoutTypeError struct {
	Code string
}

func (e *UnsupportedWorkoutTypeError) Error() string {
	return fmt.Sprintf("%s: %q (supported: %s)", ErrUnsupportedWorkoutType, e.Code, strings.Join(Codes(), ", "))
}

func (e *UnsupportedWorkoutTypeError) Is(target error) bool {
	return target == ErrUnsupportedWorkoutType
}

type constructor struct {
	arity int
	build func(args []float64) Workout
}

var constructors = map[string]constructor{
	CodeSwimming: {arity: 5, build: func(a []float64) Workout {
		return Swimming{Input: newInput(a), LengthPool: a[3], CountPool: a[4]}
	}},
	CodeRunning: {arity: 3, build: func(a []float64) Workout {
		return Running{Input: newInput(a)}
	}},
	CodeWalking: {arity: 4, build: func(a []float64) Workout {
		return SportsWalking{Input: newInput(a), Height: a[3]}
	}},
}

func newInput(a []float64) Input {
	return Input{Action: int(math.Round(a[0])), Duration: a[1], Weight: a[2]}
}

// Codes lists the supported activity codes.
func Codes() []string {
	return []string{CodeRunning, CodeWalking, CodeSwimming}
}

// ReadPackage builds the workout for code from positional sensor args.
func ReadPackage(code string, args []float64) (Workout, error) {
	c, ok := constructors[code]
	if !ok {
		return nil, &UnsupportedWorkoutTypeError{Code: code}
	}
	if len(args) != c.arity {
		return nil, fmt.Errorf("%s expects %d arguments, got %d: %w", code, c.arity, len(args), ErrArgumentCount)
	}
	return c.build(args), nil
}
