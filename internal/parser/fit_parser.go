package parser

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tormoder/fit"

	"github.com/sstent/trainingtracker/internal/models"
	"github.com/sstent/trainingtracker/internal/workout"
)

const (
	secondsInHour = 3600
	invalidUint32 = 0xFFFFFFFF
	invalidUint16 = 0xFFFF
)

// FITParser maps the sessions of a FIT activity file to sensor packages.
type FITParser struct {
	profile Profile
}

func NewFITParser(profile Profile) *FITParser {
	return &FITParser{profile: profile}
}

func (p *FITParser) ParseData(data []byte) ([]models.Reading, error) {
	fitFile, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIT file: %w", err)
	}

	activity, err := fitFile.Activity()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity from FIT: %w", err)
	}

	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("no sessions found in FIT file")
	}

	readings := make([]models.Reading, 0, len(activity.Sessions))
	for _, session := range activity.Sessions {
		readings = append(readings, p.sessionReading(session))
	}
	return readings, nil
}

// sessionReading builds the positional args the dispatcher expects. Sports
// without a workout type keep a synthetic code so dispatch reports them.
func (p *FITParser) sessionReading(session *fit.SessionMsg) models.Reading {
	hours := session.GetTotalTimerTimeScaled() / secondsInHour
	if math.IsNaN(hours) {
		hours = 0
	}

	var cycles float64
	if session.TotalCycles != invalidUint32 {
		cycles = float64(session.TotalCycles)
	}

	reading := models.Reading{StartTime: session.StartTime}
	switch session.Sport {
	case fit.SportRunning:
		// running cycles are strides, two steps each
		reading.Code = workout.CodeRunning
		reading.Args = []float64{cycles * 2, hours, p.profile.WeightKG}
	case fit.SportWalking:
		reading.Code = workout.CodeWalking
		reading.Args = []float64{cycles * 2, hours, p.profile.WeightKG, p.profile.HeightCM}
	case fit.SportSwimming:
		poolLength := session.GetPoolLengthScaled()
		if math.IsNaN(poolLength) {
			poolLength = 0
		}
		var lengths float64
		if session.NumActiveLengths != invalidUint16 {
			lengths = float64(session.NumActiveLengths)
		}
		reading.Code = workout.CodeSwimming
		reading.Args = []float64{cycles, hours, p.profile.WeightKG, poolLength, lengths}
	default:
		reading.Code = fmt.Sprintf("SPORT%d", uint8(session.Sport))
		reading.Args = []float64{cycles, hours, p.profile.WeightKG}
	}
	return reading
}
