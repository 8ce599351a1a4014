package config

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"churnsynth/database"
	"churnsynth/models"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"
)

// Sink names accepted by -sinks
const (
	SinkCSV      = "csv"
	SinkPostgres = "postgres"
	SinkSQLite   = "sqlite"
)

// ErrInvalidConfig is returned for configuration that cannot be run
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration
type Config struct {
	// Generation parameters
	Customers int     `env:"CHURNSYNTH_CUSTOMERS"  envDefault:"10000"`
	ChurnRate float64 `env:"CHURNSYNTH_CHURN_RATE" envDefault:"0.15"`
	StartDate Date    `env:"CHURNSYNTH_START_DATE" envDefault:"2022-01-01"`
	EndDate   Date    `env:"CHURNSYNTH_END_DATE"   envDefault:"2024-01-01"`
	Seed      int64   `env:"CHURNSYNTH_SEED"       envDefault:"42"`

	// Output configuration
	OutputDir  string   `env:"CHURNSYNTH_OUTPUT_DIR"  envDefault:"data"`
	Sinks      []string `env:"CHURNSYNTH_SINKS"       envDefault:"csv" envSeparator:","`
	SQLitePath string   `env:"CHURNSYNTH_SQLITE_PATH"` // Defaults to <OutputDir>/churnsynth.db
	ChartPath  string   `env:"CHURNSYNTH_CHART_PATH"`  // Empty disables the chart
	Report     bool     `env:"CHURNSYNTH_REPORT"      envDefault:"true"`
	Preview    int      `env:"CHURNSYNTH_PREVIEW"     envDefault:"0"` // Rows per table to print, 0 disables

	// Database configuration
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseName string `env:"DATABASE_NAME"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "text" or "json"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance, read from the environment only.
// Commands that accept flags use Load instead.
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var cfg Config
		if err := env.Parse(&cfg); err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
		instance = &cfg
	})
	return instance
}

// Load reads the environment, then lets flags in args override it
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs.IntVar(&cfg.Customers, "customers", cfg.Customers, "number of customers to generate")
	fs.Float64Var(&cfg.ChurnRate, "churn-rate", cfg.ChurnRate, "fraction of customers that churn, within [0, 1]")
	fs.Var(&cfg.StartDate, "start-date", "observation window start (YYYY-MM-DD)")
	fs.Var(&cfg.EndDate, "end-date", "observation window end (YYYY-MM-DD)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed; identical seeds produce identical datasets")
	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for CSV output")
	fs.Func("sinks", "comma-separated sinks: csv, postgres, sqlite (default \"csv\")", func(value string) error {
		cfg.Sinks = splitList(value)
		return nil
	})
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database file (default <output-dir>/churnsynth.db)")
	fs.StringVar(&cfg.ChartPath, "chart", cfg.ChartPath, "write a PNG summary chart to this path")
	fs.BoolVar(&cfg.Report, "report", cfg.Report, "print summary statistics")
	fs.IntVar(&cfg.Preview, "preview", cfg.Preview, "print the first N rows of every table (0 disables)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Sinks = normalizeList(cfg.Sinks)
	return &cfg, nil
}

// Validate rejects configuration that cannot produce a dataset
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}

	if c.Preview < 0 {
		return fmt.Errorf("%w: preview rows cannot be negative, got %d", ErrInvalidConfig, c.Preview)
	}

	if len(c.Sinks) == 0 {
		return fmt.Errorf("%w: at least one sink is required", ErrInvalidConfig)
	}
	for _, sink := range c.Sinks {
		switch sink {
		case SinkCSV, SinkPostgres, SinkSQLite:
		default:
			return fmt.Errorf("%w: unknown sink %q", ErrInvalidConfig, sink)
		}
	}

	if c.HasSink(SinkPostgres) && c.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL is required for the postgres sink", ErrInvalidConfig)
	}
	// If DatabaseName is provided, ensure it's not blank
	if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
		return fmt.Errorf("%w: DATABASE_NAME cannot be blank when provided", ErrInvalidConfig)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}

	return nil
}

// Params returns the generation parameters
func (c *Config) Params() models.GenerationParams {
	return models.GenerationParams{
		Customers: c.Customers,
		ChurnRate: c.ChurnRate,
		StartDate: c.StartDate.Time(),
		EndDate:   c.EndDate.Time(),
		Seed:      c.Seed,
	}
}

// HasSink reports whether the named sink is enabled
func (c *Config) HasSink(name string) bool {
	for _, sink := range c.Sinks {
		if sink == name {
			return true
		}
	}
	return false
}

// SQLiteFile returns the SQLite database path
func (c *Config) SQLiteFile() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.OutputDir, "churnsynth.db")
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// Date is a calendar date in UTC, parsed from YYYY-MM-DD
type Date struct {
	t time.Time
}

// NewDate creates a date at UTC midnight
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Time returns the date as UTC midnight
func (d Date) Time() time.Time {
	return d.t
}

// UnmarshalText parses the environment representation
func (d *Date) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

// Set parses the flag representation
func (d *Date) Set(value string) error {
	t, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	d.t = t
	return nil
}

func (d *Date) String() string {
	if d == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(models.DateLayout)
}

func splitList(value string) []string {
	return normalizeList(strings.Split(value, ","))
}

// normalizeList trims, lowercases and drops empty entries
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a small, valid config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Customers: 100,
		ChurnRate: 0.2,
		StartDate: NewDate(2022, time.January, 1),
		EndDate:   NewDate(2024, time.January, 1),
		Seed:      42,
		OutputDir: "data",
		Sinks:     []string{SinkCSV},
		Report:    true,
		LogLevel:  "info",
		LogFormat: "text",
	}
}
