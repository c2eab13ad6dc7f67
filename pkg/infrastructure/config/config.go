// Package config handles loading and managing planboard configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendLocal    = "local"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendGCS      = "gcs"
)

// Config is the top-level configuration for planboard.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Planning PlanningConfig `yaml:"planning"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxUploadMB    int      `yaml:"max_upload_mb"`
}

// StorageConfig selects where uploaded snapshots are kept.
type StorageConfig struct {
	Backend  string    `yaml:"backend"`
	LocalDir string    `yaml:"local_dir"`
	DSN      string    `yaml:"dsn"` // sqlite file path or postgres URL
	S3       S3Config  `yaml:"s3"`
	GCS      GCSConfig `yaml:"gcs"`
}

// S3Config holds configuration for the S3 storage backend.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Prefix    string `yaml:"prefix"`
}

type GCSConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// PlanningConfig controls the planning board.
type PlanningConfig struct {
	DefaultHorizonWeeks int `yaml:"default_horizon_weeks"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			MaxUploadMB:    32,
		},
		Storage: StorageConfig{
			Backend:  BackendLocal,
			LocalDir: "data",
		},
		Planning: PlanningConfig{
			DefaultHorizonWeeks: 8,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a config file from the given path and applies environment
// overrides. If the file does not exist, the defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from PLANBOARD_* variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("PLANBOARD_ADDR", &c.Server.Addr)
	if v, ok := lookup("PLANBOARD_ALLOWED_ORIGINS"); ok && v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("PLANBOARD_MAX_UPLOAD_MB"); ok {
		if n, err := cast.ToIntE(v); err == nil {
			c.Server.MaxUploadMB = n
		}
	}

	str("PLANBOARD_STORAGE_BACKEND", &c.Storage.Backend)
	str("PLANBOARD_STORAGE_DIR", &c.Storage.LocalDir)
	str("PLANBOARD_DATABASE_URL", &c.Storage.DSN)
	str("PLANBOARD_S3_BUCKET", &c.Storage.S3.Bucket)
	str("PLANBOARD_S3_REGION", &c.Storage.S3.Region)
	str("PLANBOARD_S3_ENDPOINT", &c.Storage.S3.Endpoint)
	str("PLANBOARD_S3_ACCESS_KEY", &c.Storage.S3.AccessKey)
	str("PLANBOARD_S3_SECRET_KEY", &c.Storage.S3.SecretKey)
	str("PLANBOARD_GCS_BUCKET", &c.Storage.GCS.Bucket)

	if v, ok := lookup("PLANBOARD_HORIZON_WEEKS"); ok {
		if n, err := cast.ToIntE(v); err == nil {
			c.Planning.DefaultHorizonWeeks = n
		}
	}

	str("PLANBOARD_LOG_LEVEL", &c.Log.Level)
	str("PLANBOARD_LOG_FORMAT", &c.Log.Format)
}

// Validate checks the settings that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendLocal:
		if c.Storage.LocalDir == "" {
			return fmt.Errorf("storage.local_dir is required for the local backend")
		}
	case BackendSQLite, BackendPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the %s backend", c.Storage.Backend)
		}
	case BackendS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required for the s3 backend")
		}
	case BackendGCS:
		if c.Storage.GCS.Bucket == "" {
			return fmt.Errorf("storage.gcs.bucket is required for the gcs backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Planning.DefaultHorizonWeeks < 1 || c.Planning.DefaultHorizonWeeks > 12 {
		return fmt.Errorf("planning.default_horizon_weeks must be between 1 and 12, got %d", c.Planning.DefaultHorizonWeeks)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
