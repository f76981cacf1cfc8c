// Package config loads editline's YAML configuration file.
package config

// Config holds all editline configuration.
type Config struct {
	// Prompt shown before each line.
	Prompt string `yaml:"prompt"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"logLevel"`

	History HistoryConfig `yaml:"history"`

	// EditRC is the directive file sourced at startup. Empty means the
	// default location.
	EditRC string `yaml:"editrc"`

	Completion CompletionConfig `yaml:"completion"`
}

// HistoryConfig configures the history store.
type HistoryConfig struct {
	// Size limits the number of entries kept; 0 means unlimited.
	Size int `yaml:"size"`
	// Unique drops a line equal to the most recent entry.
	Unique bool `yaml:"unique"`
	// Persist keeps history in a SQLite database across sessions.
	Persist bool `yaml:"persist"`
	// File is the database path. Empty means the default location.
	File string `yaml:"file"`
}

// CompletionConfig holds completion word lists keyed by command name, the
// equivalent of "complete -W" directives.
type CompletionConfig struct {
	Words map[string][]string `yaml:"words"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Prompt:   "editline> ",
		LogLevel: "info",
		History: HistoryConfig{
			Size:    1000,
			Unique:  true,
			Persist: true,
		},
		Completion: CompletionConfig{
			Words: make(map[string][]string),
		},
	}
}
