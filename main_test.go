package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstent/trainingtracker/internal/config"
)

func writePackages(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packages.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"code": "RUN", "args": [15000, 1, 75]},
		{"code": "XYZ", "args": [1, 1, 1]}
	]`), 0o644))
	return path
}

func TestLoadReadingsDemo(t *testing.T) {
	app := &App{cfg: config.Config{ReadingsSource: config.SourceDemo}}

	readings, err := app.loadReadings()
	require.NoError(t, err)
	require.Len(t, readings, 3)
	assert.Equal(t, "SWM", readings[0].Code)
}

func TestLoadReadingsFile(t *testing.T) {
	app := &App{cfg: config.Config{ReadingsSource: config.SourceFile, ReadingsFile: writePackages(t)}}

	readings, err := app.loadReadings()
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, []float64{15000, 1, 75}, readings[0].Args)
}

func TestLoadReadingsFileRequiresPath(t *testing.T) {
	app := &App{cfg: config.Config{ReadingsSource: config.SourceFile}}

	_, err := app.loadReadings()
	require.Error(t, err)
}

func TestLoadReadingsDB(t *testing.T) {
	cfg := config.Config{
		ReadingsSource: config.SourceDB,
		ReadingsFile:   writePackages(t),
		DBPath:         filepath.Join(t.TempDir(), "nested", "readings.db"),
	}
	app := &App{cfg: cfg}
	require.NoError(t, app.init())
	t.Cleanup(app.stop)

	readings, err := app.loadReadings()
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, "RUN", readings[0].Code)
	assert.Equal(t, "db#1", readings[0].Source)
	assert.Equal(t, 1, readings[0].InboxID)
}

func TestRunBatchConsumesInboxAcrossRestarts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "readings.db")

	var first bytes.Buffer
	app := &App{
		cfg: config.Config{ReadingsSource: config.SourceDB, ReadingsFile: writePackages(t), DBPath: dbPath},
		out: &first,
	}
	require.NoError(t, app.init())
	require.NoError(t, app.runBatch(context.Background()))
	app.stop()

	// RUN is reported, XYZ is rejected; both are consumed
	assert.Equal(t, 1, strings.Count(first.String(), "\n"))
	assert.Contains(t, first.String(), "Training type: Running;")

	var second bytes.Buffer
	restarted := &App{
		cfg: config.Config{ReadingsSource: config.SourceDB, DBPath: dbPath},
		out: &second,
	}
	require.NoError(t, restarted.init())
	t.Cleanup(restarted.stop)

	require.NoError(t, restarted.runBatch(context.Background()))
	assert.Empty(t, second.String())

	readings, err := restarted.loadReadings()
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestInitClosesDBWhenIngestFails(t *testing.T) {
	app := &App{cfg: config.Config{
		ReadingsSource: config.SourceDB,
		ReadingsFile:   filepath.Join(t.TempDir(), "missing.json"),
		DBPath:         filepath.Join(t.TempDir(), "readings.db"),
	}}

	require.Error(t, app.init())
	assert.Nil(t, app.db)
	app.stop()
}

func TestSkipOverlappingDropsConcurrentRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	var runs int32

	job := cron.NewChain(skipOverlapping()).Then(cron.FuncJob(func() {
		atomic.AddInt32(&runs, 1)
		close(started)
		<-release
	}))

	go func() {
		job.Run()
		close(done)
	}()
	<-started

	// returns immediately while the first run is blocked
	job.Run()
	close(release)
	<-done

	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestLoadReadingsUnknownSource(t *testing.T) {
	app := &App{cfg: config.Config{ReadingsSource: "kafka"}}

	_, err := app.loadReadings()
	require.Error(t, err)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	app := &App{cfg: config.Config{Schedule: "every now and then"}}
	require.NoError(t, app.init())

	require.Error(t, app.start())
	app.stop()
}
