// Package config loads runtime settings from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/statplot-go/pkg/statplot/localize"
	"github.com/ukaji3/statplot-go/pkg/statplot/store"
)

// Environment variables.
const (
	EnvBasePath     = "STATISTICS_BASE_PATH"
	EnvTranslations = "UI_TRANSLATIONS_PATH"
	EnvLogLevel     = "STATPLOT_LOG_LEVEL"
)

// DefaultEnvFile is read when Load is called without files. It may be absent.
const DefaultEnvFile = ".env"

// ErrNoBasePath indicates that STATISTICS_BASE_PATH is not set.
var ErrNoBasePath = errors.New(EnvBasePath + " environment variable not set")

// Config holds runtime settings.
type Config struct {
	// BasePath is the root of the statistics store.
	BasePath string
	// TranslationsPath is an optional YAML file overriding UI strings.
	TranslationsPath string
	// LogLevel is the minimum level logged.
	LogLevel zapcore.Level
}

// Load reads the given .env files, or DefaultEnvFile when none are given,
// then the environment. Variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", DefaultEnvFile, err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	cfg := &Config{
		BasePath:         strings.TrimSpace(os.Getenv(EnvBasePath)),
		TranslationsPath: strings.TrimSpace(os.Getenv(EnvTranslations)),
		LogLevel:         zapcore.InfoLevel,
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = parsed
	}

	return cfg, nil
}

// Store opens the statistics store.
func (c *Config) Store() (*store.Store, error) {
	if c.BasePath == "" {
		return nil, ErrNoBasePath
	}
	return store.New(c.BasePath)
}

// Translations returns the configured UI strings, or the built-in ones.
func (c *Config) Translations() (*localize.Translations, error) {
	if c.TranslationsPath == "" {
		return localize.DefaultTranslations(), nil
	}
	return localize.LoadTranslations(c.TranslationsPath)
}

// Logger builds a JSON production logger at the configured level, or a
// console development logger at debug level when verbose is set.
func (c *Config) Logger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	return zc.Build()
}
