package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/namsral/flag"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

type Config struct {
	Addr     string
	DBDriver string
	DBPath   string
	LogLevel string
	LogJSON  bool

	LeechThreshold         int
	DeepDiveLeechThreshold int
	NearFutureDays         int
	LeechMinSpacing        int
	PromoteNearFuture      bool

	StorePageSize       int
	WorkerCount         int
	QueueSize           int
	RatingRetentionDays int
	RateLimitPerMinute  int
	RandomSeed          uint64
}

// Load reads a .env file (if present), then parses args. Every flag can also
// be given as an environment variable: -db-path becomes DB_PATH.
func Load(args []string) (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	var c Config
	fs := flag.NewFlagSet("lexiflash", flag.ContinueOnError)

	fs.StringVar(&c.Addr, "addr", ":8080", "HTTP listen address")
	fs.StringVar(&c.DBDriver, "db-driver", DriverSQLite, "database driver: sqlite3 or pgx")
	fs.StringVar(&c.DBPath, "db-path", "file:lexiflash.db", "database DSN or file path")
	fs.StringVar(&c.LogLevel, "log-level", "INFO", "log level")
	fs.BoolVar(&c.LogJSON, "log-json", false, "write JSON log lines instead of console output")

	fs.IntVar(&c.LeechThreshold, "leech-threshold", 4, "again count at which a word is a leech")
	fs.IntVar(&c.DeepDiveLeechThreshold, "deep-dive-leech-threshold", 4, "leech threshold used by the deep-dive filter")
	fs.IntVar(&c.NearFutureDays, "near-future-days", 3, "days ahead that count as near future")
	fs.IntVar(&c.LeechMinSpacing, "leech-min-spacing", 3, "regular words between two leeches")
	fs.BoolVar(&c.PromoteNearFuture, "promote-near-future", true, "review near-future words when nothing is due")

	fs.IntVar(&c.StorePageSize, "store-page-size", 1000, "rows per page on paginated reads")
	fs.IntVar(&c.WorkerCount, "worker-count", 2, "background worker goroutines")
	fs.IntVar(&c.QueueSize, "queue-size", 64, "background job queue capacity")
	fs.IntVar(&c.RatingRetentionDays, "rating-retention-days", 365, "days of rating history to keep")
	fs.IntVar(&c.RateLimitPerMinute, "rate-limit-per-minute", 120, "rating writes allowed per user per minute")
	fs.Uint64Var(&c.RandomSeed, "random-seed", 0, "shuffle seed; 0 seeds from the clock")

	if err := fs.Parse(args); err != nil {
		return c, err
	}
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "WARNING" {
		c.LogLevel = "WARN"
	}
	return c, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBDriver != DriverSQLite && c.DBDriver != DriverPostgres {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %s or %s, got %q", DriverSQLite, DriverPostgres, c.DBDriver))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}

	positive := []struct {
		name  string
		value int
	}{
		{"LEECH_THRESHOLD", c.LeechThreshold},
		{"DEEP_DIVE_LEECH_THRESHOLD", c.DeepDiveLeechThreshold},
		{"NEAR_FUTURE_DAYS", c.NearFutureDays},
		{"LEECH_MIN_SPACING", c.LeechMinSpacing},
		{"STORE_PAGE_SIZE", c.StorePageSize},
		{"WORKER_COUNT", c.WorkerCount},
		{"QUEUE_SIZE", c.QueueSize},
		{"RATING_RETENTION_DAYS", c.RatingRetentionDays},
		{"RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute},
	}
	for _, p := range positive {
		if p.value < 1 {
			errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", p.name, p.value))
		}
	}

	return errors.Join(errs...)
}
