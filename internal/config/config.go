// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Source names accepted by READINGS_SOURCE.
const (
	SourceDemo = "demo"
	SourceFile = "file"
	SourceDB   = "db"
)

type Config struct {
	DataDir        string
	DBPath         string
	ReadingsSource string
	ReadingsFile   string
	Schedule       string // cron spec; empty means run once and exit
	MetricsAddr    string
	WeightKG       float64 // athlete profile used for FIT files
	HeightCM       float64
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Config{
		DataDir:        getEnv("DATA_DIR", "./data"),
		ReadingsFile:   os.Getenv("READINGS_FILE"),
		Schedule:       os.Getenv("SCHEDULE"),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
		WeightKG:       getFloatEnv("PROFILE_WEIGHT_KG", 75),
		HeightCM:       getFloatEnv("PROFILE_HEIGHT_CM", 175),
		ReadingsSource: getEnv("READINGS_SOURCE", ""),
	}

	// Fallback to DATA_DIR/readings.db if DB_PATH not set
	cfg.DBPath = getEnv("DB_PATH", filepath.Join(cfg.DataDir, "readings.db"))

	if cfg.ReadingsSource == "" {
		cfg.ReadingsSource = SourceDemo
		if cfg.ReadingsFile != "" {
			cfg.ReadingsSource = SourceFile
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
