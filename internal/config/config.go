package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvFile is loaded into the process environment before anything else.
const EnvFile = ".env"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VERTEXDASH_"

// DashboardConfig holds configuration for the vertexdash server and CLI.
type DashboardConfig struct {
	Addr      string `yaml:"addr"`       // Listen address (default ":3000")
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
	DBPath    string `yaml:"db_path"`    // SQLite database path (":memory:" for testing)

	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	Login   LoginConfig   `yaml:"login"`
	Archive ArchiveConfig `yaml:"archive"`
}

// BackendConfig points at the sales backend REST API.
type BackendConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// SessionConfig controls the session cookie and its cleanup.
type SessionConfig struct {
	TTL          time.Duration `yaml:"ttl"`
	SecureCookie bool          `yaml:"secure_cookie"`
	SweepCron    string        `yaml:"sweep_cron"`
}

// LoginConfig throttles POST /login per client IP.
// A non-positive RPS disables throttling.
type LoginConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// ArchiveConfig selects where exported reports are copied.
// Driver is "" (disabled), "local" or "s3".
type ArchiveConfig struct {
	Driver   string `yaml:"driver"`
	Dir      string `yaml:"dir"`
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Prefix   string `yaml:"prefix"`
	Endpoint string `yaml:"endpoint"`
}

// DefaultDashboardConfig returns sensible defaults.
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		Addr:      ":3000",
		LogLevel:  "info",
		LogFormat: "text",
		Backend: BackendConfig{
			URL:     "http://localhost:8080/api",
			Timeout: 10 * time.Second,
		},
		Session: SessionConfig{
			TTL:       24 * time.Hour,
			SweepCron: "*/15 * * * *",
		},
		Login: LoginConfig{
			RPS:   1,
			Burst: 5,
		},
		Archive: ArchiveConfig{
			Dir:    "exports",
			Prefix: "reports/",
		},
	}
}

// Load builds the configuration from defaults, the .env file, an optional
// YAML file and VERTEXDASH_* environment variables, in that order.
// A missing YAML file is only an error when path was given explicitly.
func Load(path string) (DashboardConfig, error) {
	_ = godotenv.Load(EnvFile)

	cfg := DefaultDashboardConfig()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvPrefix + "CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = "vertexdash.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *DashboardConfig) applyEnv(getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	str("ADDR", &c.Addr)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("DB_PATH", &c.DBPath)
	str("BACKEND_URL", &c.Backend.URL)
	str("SESSION_SWEEP_CRON", &c.Session.SweepCron)
	str("ARCHIVE_DRIVER", &c.Archive.Driver)
	str("ARCHIVE_DIR", &c.Archive.Dir)
	str("ARCHIVE_BUCKET", &c.Archive.Bucket)
	str("ARCHIVE_REGION", &c.Archive.Region)
	str("ARCHIVE_PREFIX", &c.Archive.Prefix)
	str("ARCHIVE_ENDPOINT", &c.Archive.Endpoint)

	if v := getenv(EnvPrefix + "BACKEND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sBACKEND_TIMEOUT: %w", EnvPrefix, err)
		}
		c.Backend.Timeout = d
	}
	if v := getenv(EnvPrefix + "SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSESSION_TTL: %w", EnvPrefix, err)
		}
		c.Session.TTL = d
	}
	if v := getenv(EnvPrefix + "SECURE_COOKIE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSECURE_COOKIE: %w", EnvPrefix, err)
		}
		c.Session.SecureCookie = b
	}
	if v := getenv(EnvPrefix + "LOGIN_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sLOGIN_RPS: %w", EnvPrefix, err)
		}
		c.Login.RPS = f
	}
	if v := getenv(EnvPrefix + "LOGIN_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sLOGIN_BURST: %w", EnvPrefix, err)
		}
		c.Login.Burst = n
	}
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c DashboardConfig) Validate() error {
	if c.Backend.URL == "" {
		return errors.New("backend url is required")
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend timeout must be positive")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	switch c.Archive.Driver {
	case "", "local":
	case "s3":
		if c.Archive.Bucket == "" {
			return errors.New("archive bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown archive driver %q", c.Archive.Driver)
	}
	return nil
}
