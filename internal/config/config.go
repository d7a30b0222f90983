package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the runtime configuration, read from EVERYRIDE_* variables.
type Config struct {
	DataDir     string `env:"DATA_DIR"`
	CatalogPath string `env:"CATALOG"`
	Timezone    string `env:"TZ" envDefault:"Local"`
	CutoffHour  int    `env:"CUTOFF_HOUR" envDefault:"3"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	Theme       string `env:"THEME" envDefault:"default"`
	ReportDir   string `env:"REPORT_DIR"`
}

// Load reads an optional .env file and then parses the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ParseEnv()
}

// ParseEnv parses EVERYRIDE_* variables without touching .env files.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "EVERYRIDE_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CutoffHour < 0 || cfg.CutoffHour > 23 {
		return Config{}, fmt.Errorf("parse env: cutoff hour %d out of range", cfg.CutoffHour)
	}
	return cfg, nil
}

// Location resolves Timezone; "Local" and "" mean the system zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DBPath is the sqlite file inside DataDir.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, DBFileName)
}

// LogPath is LogFile, or the default log file inside DataDir.
func (c Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, LogFileName)
}
