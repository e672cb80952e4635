// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

// Package config layers geosync settings. Precedence, highest first: command
// line flags, environment variables, .env file, config file, defaults.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/divyadesam/geosync/geocode"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys of the settings. Flags use the same names.
const (
	KeyFile          = "file"
	KeyLogFile       = "log-file"
	KeyDelay         = "delay"
	KeyThreshold     = "threshold"
	KeyDryRun        = "dry-run"
	KeyOnlyMissing   = "only-missing"
	KeyTraceHTTP     = "trace-http"
	KeyGoogleAPIKey  = "google-api-key"
	KeyHEREAPIKey    = "here-api-key"
	KeyGoogleBaseURL = "google-base-url"
	KeyHEREBaseURL   = "here-base-url"
)

// EnvPrefix prefixes the environment variables of every setting except the
// API keys, e.g. GEOSYNC_LOG_FILE.
const EnvPrefix = "GEOSYNC"

// ConfigName is the config file looked up in the working directory when
// none is given.
const ConfigName = ".geosync"

// Config is the resolved configuration of one run.
type Config struct {
	File          string
	LogFile       string
	Delay         time.Duration
	Threshold     float64
	DryRun        bool
	OnlyMissing   bool
	TraceHTTP     bool
	GoogleAPIKey  string
	HEREAPIKey    string
	GoogleBaseURL string
	HEREBaseURL   string
	ConfigFile    string // config file used, if any
}

// Defaults.
const (
	DefaultFile      = "temple-data.js"
	DefaultLogFile   = "coordinate-updates-log.json"
	DefaultDelay     = 300 * time.Millisecond
	DefaultThreshold = 0.01
)

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyFile, DefaultFile)
	v.SetDefault(KeyLogFile, DefaultLogFile)
	v.SetDefault(KeyDelay, DefaultDelay)
	v.SetDefault(KeyThreshold, DefaultThreshold)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyOnlyMissing, false)
	v.SetDefault(KeyTraceHTTP, false)
	v.SetDefault(KeyGoogleBaseURL, geocode.DefaultGoogleBaseURL)
	v.SetDefault(KeyHEREBaseURL, geocode.DefaultHEREBaseURL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// The provider keys keep their well known names.
	_ = v.BindEnv(KeyGoogleAPIKey, "GOOGLE_API_KEY")
	_ = v.BindEnv(KeyHEREAPIKey, "HERE_API_KEY")

	return v
}

// LoadDotEnv loads variables from the given .env files (".env" when none)
// without overriding the environment. A missing file is logged and ignored.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			log.Printf("No %s file found, using environment variables as set", p)
		}
	}
}

// BindFlags binds every flag of fs that names a setting.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs []error

	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			errs = append(errs, fmt.Errorf("binding flag %s: %w", f.Name, err))
		}
	})

	return errors.Join(errs...)
}

// Load reads the config file, if any, and resolves the configuration. An
// explicit configFile must exist; otherwise .geosync.yaml in the working
// directory is optional.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		File:          v.GetString(KeyFile),
		LogFile:       v.GetString(KeyLogFile),
		Delay:         v.GetDuration(KeyDelay),
		Threshold:     v.GetFloat64(KeyThreshold),
		DryRun:        v.GetBool(KeyDryRun),
		OnlyMissing:   v.GetBool(KeyOnlyMissing),
		TraceHTTP:     v.GetBool(KeyTraceHTTP),
		GoogleAPIKey:  v.GetString(KeyGoogleAPIKey),
		HEREAPIKey:    v.GetString(KeyHEREAPIKey),
		GoogleBaseURL: v.GetString(KeyGoogleBaseURL),
		HEREBaseURL:   v.GetString(KeyHEREBaseURL),
		ConfigFile:    v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values a run cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if c.File == "" {
		errs = append(errs, errors.New("data file must not be empty"))
	}

	if c.LogFile == "" {
		errs = append(errs, errors.New("log file must not be empty"))
	}

	if c.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative, got %s", c.Delay))
	}

	if c.Threshold <= 0 {
		errs = append(errs, fmt.Errorf("threshold must be positive, got %v", c.Threshold))
	}

	return errors.Join(errs...)
}

// MissingKeys names the provider keys that are not configured.
func (c *Config) MissingKeys() []string {
	var missing []string

	if c.GoogleAPIKey == "" {
		missing = append(missing, "GOOGLE_API_KEY")
	}

	if c.HEREAPIKey == "" {
		missing = append(missing, "HERE_API_KEY")
	}

	return missing
}
