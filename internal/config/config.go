package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Source struct {
		URL      string `yaml:"url"`
		Asset    string `yaml:"asset"`
		Currency string `yaml:"currency"`
	} `yaml:"source"`
	Storage struct {
		StorePath  string `yaml:"store_path"`
		ImagePath  string `yaml:"image_path"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"storage"`
	Schedule struct {
		DAGID      string        `yaml:"dag_id"`
		Owner      string        `yaml:"owner"`
		Interval   string        `yaml:"interval"`
		StartDate  string        `yaml:"start_date"`
		Retries    int           `yaml:"retries"`
		RetryDelay time.Duration `yaml:"retry_delay"`
		Catchup    bool          `yaml:"catchup"`
	} `yaml:"schedule"`
	Report struct {
		SnapshotPath string `yaml:"snapshot_path"`
		ImagePath    string `yaml:"image_path"`
	} `yaml:"report"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
// A missing file is not an error; defaults fill whatever is left unset.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Seeded before parsing so explicit zero or negative values in the file survive.
	cfg.Schedule.Retries = 3
	cfg.Schedule.RetryDelay = 5 * time.Minute

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional; values already in the environment win.
	_ = godotenv.Load()

	if v := os.Getenv("COINGECKO_URL"); v != "" {
		cfg.Source.URL = v
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		cfg.Storage.StorePath = v
	}
	if v := os.Getenv("IMAGE_PATH"); v != "" {
		cfg.Storage.ImagePath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("SCHEDULE"); v != "" {
		cfg.Schedule.Interval = v
	}
	if v := os.Getenv("RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse RETRIES: %w", err)
		}
		cfg.Schedule.Retries = n
	}
	if v := os.Getenv("RETRY_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse RETRY_DELAY: %w", err)
		}
		cfg.Schedule.RetryDelay = d
	}
	if v := os.Getenv("SNAPSHOT_PATH"); v != "" {
		cfg.Report.SnapshotPath = v
	}
	if v := os.Getenv("REPORT_IMAGE_PATH"); v != "" {
		cfg.Report.ImagePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Source.URL == "" {
		cfg.Source.URL = "https://api.coingecko.com/api/v3/simple/price"
	}
	if cfg.Source.Asset == "" {
		cfg.Source.Asset = "bitcoin"
	}
	if cfg.Source.Currency == "" {
		cfg.Source.Currency = "usd"
	}
	if cfg.Storage.StorePath == "" {
		cfg.Storage.StorePath = "data/bitcoin_data.parquet"
	}
	if cfg.Storage.ImagePath == "" {
		cfg.Storage.ImagePath = "data/btc_trend.png"
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/runs.db"
	}
	if cfg.Schedule.DAGID == "" {
		cfg.Schedule.DAGID = "bitcoin_price_tracker"
	}
	if cfg.Schedule.Owner == "" {
		cfg.Schedule.Owner = "sahru"
	}
	if cfg.Schedule.Interval == "" {
		cfg.Schedule.Interval = "@hourly"
	}
	if cfg.Schedule.StartDate == "" {
		cfg.Schedule.StartDate = "2026-01-01"
	}
	if cfg.Report.SnapshotPath == "" {
		cfg.Report.SnapshotPath = "data/bitcoin_prices.csv"
	}
	if cfg.Report.ImagePath == "" {
		cfg.Report.ImagePath = "data/btc_trend.png"
	}

	return cfg, nil
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("source.url is required")
	}
	if c.Storage.StorePath == "" {
		return fmt.Errorf("storage.store_path is required")
	}
	if c.Storage.ImagePath == "" {
		return fmt.Errorf("storage.image_path is required")
	}
	if c.Schedule.Retries < 0 {
		return fmt.Errorf("schedule.retries must not be negative")
	}
	if c.Schedule.RetryDelay < 0 {
		return fmt.Errorf("schedule.retry_delay must not be negative")
	}
	if c.Schedule.Catchup {
		return fmt.Errorf("schedule.catchup is not supported")
	}
	if _, err := c.StartTime(); err != nil {
		return err
	}
	return nil
}

// StartTime parses schedule.start_date (YYYY-MM-DD, local time).
func (c *Config) StartTime() (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", c.Schedule.StartDate, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule.start_date: %w", err)
	}
	return t, nil
}
