package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"

	"github.com/sstent/trainingtracker/internal/workout"
)

var athlete = Profile{WeightKG: 75, HeightCM: 180}

func TestSessionReadingRunning(t *testing.T) {
	start := time.Date(2024, time.May, 4, 7, 30, 0, 0, time.UTC)
	session := fit.NewSessionMsg()
	session.Sport = fit.SportRunning
	session.StartTime = start
	session.TotalTimerTime = 3600 * 1000
	session.TotalCycles = 7500

	reading := NewFITParser(athlete).sessionReading(session)

	assert.Equal(t, workout.CodeRunning, reading.Code)
	assert.Equal(t, []float64{15000, 1, 75}, reading.Args)
	assert.Equal(t, start, reading.StartTime)

	w, err := workout.ReadPackage(reading.Code, reading.Args)
	require.NoError(t, err)
	assert.InDelta(t, 9.75, w.Distance(), 1e-9)
}

func TestSessionReadingWalking(t *testing.T) {
	session := fit.NewSessionMsg()
	session.Sport = fit.SportWalking
	session.TotalTimerTime = 1800 * 1000
	session.TotalCycles = 4500

	reading := NewFITParser(athlete).sessionReading(session)

	assert.Equal(t, workout.CodeWalking, reading.Code)
	assert.Equal(t, []float64{9000, 0.5, 75, 180}, reading.Args)
}

func TestSessionReadingSwimming(t *testing.T) {
	session := fit.NewSessionMsg()
	session.Sport = fit.SportSwimming
	session.TotalTimerTime = 3600 * 1000
	session.TotalCycles = 720
	session.PoolLength = 2500
	session.NumActiveLengths = 40

	reading := NewFITParser(athlete).sessionReading(session)

	assert.Equal(t, workout.CodeSwimming, reading.Code)
	assert.Equal(t, []float64{720, 1, 75, 25, 40}, reading.Args)
}

func TestSessionReadingInvalidFields(t *testing.T) {
	session := fit.NewSessionMsg()
	session.Sport = fit.SportRunning

	reading := NewFITParser(athlete).sessionReading(session)

	// zero duration is left for the workout formulas to reject
	assert.Equal(t, []float64{0, 0, 75}, reading.Args)
}

func TestSessionReadingUnsupportedSport(t *testing.T) {
	session := fit.NewSessionMsg()
	session.Sport = fit.SportCycling
	session.TotalTimerTime = 3600 * 1000

	reading := NewFITParser(athlete).sessionReading(session)

	_, err := workout.ReadPackage(reading.Code, reading.Args)
	require.ErrorIs(t, err, workout.ErrUnsupportedWorkoutType)
}

func TestFITParserRejectsGarbage(t *testing.T) {
	_, err := NewFITParser(athlete).ParseData(append(fitHeader(), 1, 2, 3))
	require.Error(t, err)
}
