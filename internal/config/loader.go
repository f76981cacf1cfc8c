package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/atinylittleshell/editline/internal/core"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Loader handles loading and validating configuration files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
	}
}

// LoadResult contains the result of loading a configuration file.
type LoadResult struct {
	Config *Config
	Errors []error
}

// LoadFromFile loads configuration from a YAML file.
// Returns the configuration and any non-fatal errors encountered.
// If the file doesn't exist, returns default configuration with no error.
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &LoadResult{Config: DefaultConfig(), Errors: []error{}}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.LoadFromString(string(content))
}

// LoadFromString loads configuration from YAML source. Parse errors and
// invalid values are recorded in the result; the affected settings keep
// their defaults.
func (l *Loader) LoadFromString(source string) (*LoadResult, error) {
	result := &LoadResult{
		Config: DefaultConfig(),
		Errors: []error{},
	}

	parsed := DefaultConfig()
	if err := yaml.Unmarshal([]byte(source), parsed); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("parse error: %w", err))
		return result, nil
	}

	l.applyConfig(parsed, result)
	return result, nil
}

// LoadDefaultConfigPath loads configuration from the default path
// (~/.editline/config.yaml).
func (l *Loader) LoadDefaultConfigPath() (*LoadResult, error) {
	return l.LoadFromFile(core.ConfigFile())
}

// applyConfig copies valid settings from parsed into result.Config.
func (l *Loader) applyConfig(parsed *Config, result *LoadResult) {
	cfg := result.Config

	cfg.Prompt = parsed.Prompt
	cfg.EditRC = parsed.EditRC
	cfg.History.Unique = parsed.History.Unique
	cfg.History.Persist = parsed.History.Persist
	cfg.History.File = parsed.History.File

	if validLogLevels[parsed.LogLevel] {
		cfg.LogLevel = parsed.LogLevel
	} else {
		result.Errors = append(result.Errors, fmt.Errorf("invalid logLevel %q", parsed.LogLevel))
	}

	if parsed.History.Size >= 0 {
		cfg.History.Size = parsed.History.Size
	} else {
		result.Errors = append(result.Errors, fmt.Errorf("history.size must not be negative, got %d", parsed.History.Size))
	}

	for command, words := range parsed.Completion.Words {
		if command == "" {
			result.Errors = append(result.Errors, errors.New("completion.words has an entry without a command name"))
			continue
		}
		cfg.Completion.Words[command] = words
	}

	for _, err := range result.Errors {
		l.logger.Warn("invalid configuration value", zap.Error(err))
	}
}
