// Package workout holds the supported training types and their formulas.
package workout

import "errors"

const (
	LenStep         = 0.65 // step length in meters for running and walking
	SwimmingLenStep = 1.38 // stroke length in meters
	MInKm           = 1000
	MinInHr         = 60

	runningSpeedMultiplier = 18
	runningSpeedShift      = 1.79

	walkingWeightMultiplier = 0.035
	walkingSpeedMultiplier  = 0.029
	kmhInMsec               = 0.278
	cmInM                   = 100

	swimmingSpeedShift       = 1.1
	swimmingWeightMultiplier = 2
)

// ErrZeroDuration is returned when speed or calories are requested for a
// workout that lasted no time at all.
var ErrZeroDuration = errors.New("workout duration must be positive")

// ErrZeroHeight is returned for walking calories without a positive height.
var ErrZeroHeight = errors.New("athlete height must be positive")

// Input is the raw sensor data shared by every training type.
type Input struct {
	Action   int     // steps or strokes
	Duration float64 // hours
	Weight   float64 // kg
}

// Workout is implemented only by Running, SportsWalking and Swimming.
type Workout interface {
	Kind() Kind
	Data() Input
	Distance() float64
	MeanSpeed() (float64, error)
	SpentCalories() (float64, error)

	isWorkout()
}

type Running struct {
	Input
}

type SportsWalking struct {
	Input
	Height float64 // cm
}

type Swimming struct {
	Input
	LengthPool float64 // meters
	CountPool  float64
}

func (Running) isWorkout()       {}
func (SportsWalking) isWorkout() {}
func (Swimming) isWorkout()      {}

func (Running) Kind() Kind       { return KindRunning }
func (SportsWalking) Kind() Kind { return KindSportsWalking }
func (Swimming) Kind() Kind      { return KindSwimming }

func (in Input) Data() Input { return in }

// Distance returns kilometers covered at the default step length.
func (in Input) Distance() float64 {
	return float64(in.Action) * LenStep / MInKm
}

func (in Input) meanSpeed(distance float64) (float64, error) {
	if in.Duration <= 0 {
		return 0, ErrZeroDuration
	}
	return distance / in.Duration, nil
}

func (r Running) MeanSpeed() (float64, error) {
	return r.meanSpeed(r.Distance())
}

func (r Running) SpentCalories() (float64, error) {
	speed, err := r.MeanSpeed()
	if err != nil {
		return 0, err
	}
	return (runningSpeedMultiplier*speed + runningSpeedShift) *
		r.Weight / MInKm * r.Duration * MinInHr, nil
}

func (w SportsWalking) MeanSpeed() (float64, error) {
	return w.meanSpeed(w.Distance())
}

func (w SportsWalking) SpentCalories() (float64, error) {
	speed, err := w.MeanSpeed()
	if err != nil {
		return 0, err
	}
	if w.Height <= 0 {
		return 0, ErrZeroHeight
	}
	speedMs := speed * kmhInMsec
	return (walkingWeightMultiplier*w.Weight +
		speedMs*speedMs/(w.Height/cmInM)*walkingSpeedMultiplier*w.Weight) *
		w.Duration * MinInHr, nil
}

// Distance overrides the step length with the stroke length.
func (s Swimming) Distance() float64 {
	return float64(s.Action) * SwimmingLenStep / MInKm
}

// MeanSpeed is derived from the pool geometry, not from strokes.
func (s Swimming) MeanSpeed() (float64, error) {
	return s.meanSpeed(s.LengthPool * s.CountPool / MInKm)
}

func (s Swimming) SpentCalories() (float64, error) {
	speed, err := s.MeanSpeed()
	if err != nil {
		return 0, err
	}
	return (speed + swimmingSpeedShift) * swimmingWeightMultiplier * s.Weight * s.Duration, nil
}
