// main.go - Entry point and dependency injection
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/sstent/trainingtracker/internal/config"
	"github.com/sstent/trainingtracker/internal/database"
	"github.com/sstent/trainingtracker/internal/models"
	"github.com/sstent/trainingtracker/internal/parser"
	"github.com/sstent/trainingtracker/internal/tracker"
	"github.com/sstent/trainingtracker/internal/workout"
)

type App struct {
	cfg      config.Config
	db       database.Database
	cron     *cron.Cron
	server   *http.Server
	tracker  *tracker.Service
	shutdown chan os.Signal
	out      io.Writer
}

func main() {
	app := &App{
		cfg:      config.Load(),
		shutdown: make(chan os.Signal, 1),
	}

	if err := app.init(); err != nil {
		log.Fatal("Failed to initialize app: ", err)
	}

	// Without a schedule the packages are reported once.
	if app.cfg.Schedule == "" {
		err := app.runBatch(context.Background())
		app.stop()
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := app.start(); err != nil {
		app.stop()
		log.Fatal("Failed to start app: ", err)
	}

	signal.Notify(app.shutdown, os.Interrupt, syscall.SIGTERM)
	<-app.shutdown

	app.stop()
}

func (app *App) init() error {
	app.tracker = tracker.NewService()
	if app.out == nil {
		app.out = os.Stdout
	}
	log.Printf("Supported activity codes: %s", strings.Join(workout.Codes(), ", "))

	if app.cfg.ReadingsSource == config.SourceDB {
		db, err := initDatabase(app.cfg)
		if err != nil {
			return err
		}
		app.db = db

		// Seed the inbox from READINGS_FILE when both are configured
		if app.cfg.ReadingsFile != "" {
			if err := app.ingestFile(app.cfg.ReadingsFile); err != nil {
				app.db.Close()
				app.db = nil
				return err
			}
		}
	}

	if app.cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		app.server = &http.Server{
			Addr:              app.cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Printf("Metrics listening on %s", app.cfg.MetricsAddr)
			if err := app.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics server error: %v", err)
			}
		}()
	}

	return nil
}

func (app *App) start() error {
	app.cron = cron.New(cron.WithChain(skipOverlapping()))
	_, err := app.cron.AddFunc(app.cfg.Schedule, func() {
		log.Println("Starting scheduled batch...")
		if err := app.runBatch(context.Background()); err != nil {
			log.Printf("Batch failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", app.cfg.Schedule, err)
	}
	app.cron.Start()
	log.Printf("Scheduled batches with %q", app.cfg.Schedule)
	return nil
}

// skipOverlapping drops a tick while the previous batch is still running.
func skipOverlapping() cron.JobWrapper {
	return cron.SkipIfStillRunning(cron.DefaultLogger)
}

func (app *App) stop() {
	if app.cron != nil {
		<-app.cron.Stop().Done()
	}

	if app.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.server.Shutdown(ctx); err != nil {
			log.Printf("Metrics server shutdown error: %v", err)
		}
	}

	if app.db != nil {
		app.db.Close()
	}
}

func (app *App) runBatch(ctx context.Context) error {
	readings, err := app.loadReadings()
	if err != nil {
		return fmt.Errorf("failed to load readings: %w", err)
	}
	if len(readings) == 0 {
		log.Println("No new readings")
		return nil
	}

	summary, err := app.tracker.Process(ctx, readings, app.out)

	// Readings are handled in order; failed ones are terminal too.
	if app.db != nil {
		var ids []int
		for _, r := range readings[:summary.Processed+summary.Failed] {
			if r.InboxID != 0 {
				ids = append(ids, r.InboxID)
			}
		}
		if markErr := app.db.MarkConsumed(ids); markErr != nil {
			return errors.Join(err, fmt.Errorf("failed to mark readings consumed: %w", markErr))
		}

		if stats, statsErr := app.db.GetStats(); statsErr == nil {
			log.Printf("Inbox: %d readings stored, %d pending, by code %v", stats.Total, stats.Pending, stats.ByCode)
		} else {
			log.Printf("Failed to read inbox stats: %v", statsErr)
		}
	}
	return err
}

func (app *App) loadReadings() ([]models.Reading, error) {
	switch app.cfg.ReadingsSource {
	case config.SourceDemo:
		return models.DemoReadings(), nil
	case config.SourceFile:
		if app.cfg.ReadingsFile == "" {
			return nil, errors.New("READINGS_FILE is required for the file source")
		}
		return parser.ParseFile(app.cfg.ReadingsFile, app.profile())
	case config.SourceDB:
		stored, err := app.db.GetPendingReadings(0)
		if err != nil {
			return nil, err
		}

		readings := make([]models.Reading, 0, len(stored))
		for _, r := range stored {
			readings = append(readings, models.Reading{
				Code:      r.Code,
				Args:      r.Args,
				Source:    fmt.Sprintf("db#%d", r.ID),
				StartTime: r.StartTime,
				InboxID:   r.ID,
			})
		}
		return readings, nil
	default:
		return nil, fmt.Errorf("unknown readings source %q", app.cfg.ReadingsSource)
	}
}

func (app *App) ingestFile(filename string) error {
	readings, err := parser.ParseFile(filename, app.profile())
	if err != nil {
		return err
	}
	for _, r := range readings {
		if err := app.db.CreateReading(&database.StoredReading{
			Code:      r.Code,
			Args:      r.Args,
			Source:    r.Source,
			StartTime: r.StartTime,
		}); err != nil {
			return fmt.Errorf("failed to store reading: %w", err)
		}
	}
	log.Printf("Stored %d readings from %s", len(readings), filename)
	return nil
}

func (app *App) profile() parser.Profile {
	return parser.Profile{WeightKG: app.cfg.WeightKG, HeightCM: app.cfg.HeightCM}
}

// Database initialization
func initDatabase(cfg config.Config) (*database.SQLiteDB, error) {
	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return database.NewSQLiteDB(cfg.DBPath)
}
