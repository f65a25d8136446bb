package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLevel = "info"

	// DefaultTreeIndent is the number of spaces per level in tree output
	DefaultTreeIndent = 2

	// DefaultHeadLines is the line count head prints without -n
	DefaultHeadLines = 5

	// DefaultPromptColor enables the styled prompt
	DefaultPromptColor = true
)

// Config contains runtime configuration values for the shell session.
type Config struct {
	LogLevel    string // Log verbosity: trace, debug, info, warn, error (Default info)
	TreeIndent  int    // Spaces per indentation level in tree output (Default 2)
	HeadLines   int    // Default number of lines for head without -n (Default 5)
	PromptColor bool   // Whether the prompt is color-styled (Default true)
	VFSPath     string // Path to the XML source the tree is built from (Default none, empty tree)
	ScriptPath  string // Script to run instead of the interactive loop (Default none)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions.
type ConfigOverride struct {
	LogLevel    *string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	TreeIndent  *int    `yaml:"tree_indent,omitempty" json:"tree_indent,omitempty"`
	HeadLines   *int    `yaml:"head_lines,omitempty" json:"head_lines,omitempty"`
	PromptColor *bool   `yaml:"prompt_color,omitempty" json:"prompt_color,omitempty"`
	VFSPath     *string `yaml:"vfs_path,omitempty" json:"vfs_path,omitempty"`
	ScriptPath  *string `yaml:"script_path,omitempty" json:"script_path,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:    DefaultLogLevel,
		TreeIndent:  DefaultTreeIndent,
		HeadLines:   DefaultHeadLines,
		PromptColor: DefaultPromptColor,
	}
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLevel != nil {
		c.LogLevel = *override.LogLevel
	}
	if override.TreeIndent != nil {
		c.TreeIndent = *override.TreeIndent
	}
	if override.HeadLines != nil {
		c.HeadLines = *override.HeadLines
	}
	if override.PromptColor != nil {
		c.PromptColor = *override.PromptColor
	}
	if override.VFSPath != nil {
		c.VFSPath = *override.VFSPath
	}
	if override.ScriptPath != nil {
		c.ScriptPath = *override.ScriptPath
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
