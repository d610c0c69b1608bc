// Package config loads gate settings from an optional .env file and ML4IR_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Environment variable names.
const (
	EnvSignatureDir = "ML4IR_SIGNATURE_DIR"
	EnvRedisURL     = "ML4IR_REDIS_URL"
	EnvRedisPrefix  = "ML4IR_REDIS_PREFIX"
	EnvMode         = "ML4IR_MODE"
	EnvLogLevel     = "ML4IR_LOG_LEVEL"
	EnvLogFormat    = "ML4IR_LOG_FORMAT"
	EnvWatch        = "ML4IR_WATCH"
)

// Config holds the settings of a gate process.
type Config struct {
	// SignatureDir is the directory of signature files. Required unless RedisURL is set.
	SignatureDir string `validate:"required_without=RedisURL"`
	// RedisURL selects the Redis signature store instead of the directory.
	RedisURL    string `validate:"omitempty,url"`
	RedisPrefix string `validate:"required"`
	Mode        string `validate:"oneof=strict permissive"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=text json"`
	Watch       bool
}

var validate = validator.New()

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		SignatureDir: "signatures",
		RedisPrefix:  "ml4ir:signature:",
		Mode:         "permissive",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads envPath (a missing file is not an error) and then the
// environment. Variables already set in the environment win over the file.
func Load(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	cfg := Default()
	if v, ok := os.LookupEnv(EnvRedisURL); ok {
		cfg.RedisURL = strings.TrimSpace(v)
		// A configured store replaces the default directory.
		cfg.SignatureDir = ""
	}
	if v, ok := os.LookupEnv(EnvSignatureDir); ok {
		cfg.SignatureDir = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvRedisPrefix); v != "" {
		cfg.RedisPrefix = v
	}
	if v := os.Getenv(EnvMode); v != "" {
		cfg.Mode = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvWatch); v != "" {
		watch, err := cast.ToBoolE(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvWatch, err)
		}
		cfg.Watch = watch
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings. Call it again after applying overrides.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %q)", fe.Field(), fe.Tag(), fmt.Sprint(fe.Value())))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// UseRedis reports whether signatures come from Redis.
func (c *Config) UseRedis() bool { return c.RedisURL != "" }
