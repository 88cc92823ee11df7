/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/suparena/bulkstore/backoff"
	"github.com/suparena/bulkstore/bulk"
	"github.com/suparena/bulkstore/errors"
)

// Environment variables read by Load.
const (
	EnvRegion         = "AWS_REGION"
	EnvAccessKey      = "AWS_ACCESS_KEY"
	EnvSecretKey      = "AWS_SECRET_KEY"
	EnvTable          = "AWS_DDB_TABLE"
	EnvEndpoint       = "AWS_DDB_ENDPOINT"
	EnvBackoffInitial = "BULKSTORE_BACKOFF_INITIAL"
	EnvBackoffMax     = "BULKSTORE_BACKOFF_MAX"
	EnvBackoffFactor  = "BULKSTORE_BACKOFF_FACTOR"
	EnvOnChunkFailure = "BULKSTORE_ON_CHUNK_FAILURE"
	EnvLogLevel       = "BULKSTORE_LOG_LEVEL"
)

// DefaultEnvFile is read by Load when no env files are given. A missing
// default file is not an error.
const DefaultEnvFile = ".env"

// Config is the runtime configuration of a bulk store.
type Config struct {
	AWS     AWSConfig      `yaml:"aws"`
	Table   string         `yaml:"table"`
	Backoff backoff.Config `yaml:"backoff"`
	Writes  WritesConfig   `yaml:"writes"`
	Log     LogConfig      `yaml:"log"`
}

// AWSConfig holds the DynamoDB connection settings.
type AWSConfig struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Endpoint  string `yaml:"endpoint"`
}

// WritesConfig holds the bulk write settings.
type WritesConfig struct {
	OnChunkFailure string `yaml:"onChunkFailure"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Backoff: backoff.DefaultConfig(),
		Writes:  WritesConfig{OnChunkFailure: bulk.LogAndDrop.String()},
		Log:     LogConfig{Level: "info"},
	}
}

// Load builds a Config from defaults, then the YAML file at path (skipped
// when path is empty), then envFiles, then the process environment. Later
// sources win. The result is validated.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	dotenv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return map[string]string{}, nil
		}
		files = []string{DefaultEnvFile}
	}
	values, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to read env files: %w", err)
	}
	return values, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		EnvRegion:         &c.AWS.Region,
		EnvAccessKey:      &c.AWS.AccessKey,
		EnvSecretKey:      &c.AWS.SecretKey,
		EnvTable:          &c.Table,
		EnvEndpoint:       &c.AWS.Endpoint,
		EnvOnChunkFailure: &c.Writes.OnChunkFailure,
		EnvLogLevel:       &c.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	var errs error
	durations := map[string]*time.Duration{
		EnvBackoffInitial: &c.Backoff.Initial,
		EnvBackoffMax:     &c.Backoff.Max,
	}
	for key, dst := range durations {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = multierr.Append(errs, errors.NewValidationError(key, fmt.Sprintf("invalid duration %q", v)))
			continue
		}
		*dst = d
	}

	if v, ok := lookup(EnvBackoffFactor); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = multierr.Append(errs, errors.NewValidationError(EnvBackoffFactor, fmt.Sprintf("invalid number %q", v)))
		} else {
			c.Backoff.Factor = f
		}
	}
	return errs
}

// Validate reports every invalid setting. Each reported error is a
// *errors.ValidationError; use multierr.Errors to split them.
func (c *Config) Validate() error {
	var errs error
	if err := c.Backoff.Validate(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := bulk.ParseChunkFailurePolicy(c.Writes.OnChunkFailure); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = multierr.Append(errs, errors.NewValidationError("log.level", fmt.Sprintf("unknown level %q", c.Log.Level)))
	}
	if (c.AWS.AccessKey == "") != (c.AWS.SecretKey == "") {
		errs = multierr.Append(errs, errors.NewValidationError("aws.secretKey", "access key and secret key must be set together"))
	}
	return errs
}

// ChunkFailurePolicy returns the parsed write failure policy.
func (c *Config) ChunkFailurePolicy() bulk.ChunkFailurePolicy {
	p, _ := bulk.ParseChunkFailurePolicy(c.Writes.OnChunkFailure)
	return p
}

// NewLogger builds a production JSON logger at level.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.NewValidationError("log.level", fmt.Sprintf("unknown level %q", level))
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
