package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/matsen/bibscope/internal/affiliation"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// GlobalConfig is the per-user configuration stored in
// $XDG_CONFIG_HOME/bibscope/config.yml.
type GlobalConfig struct {
	LogLevel         string    `yaml:"log_level,omitempty"`
	RemoveDuplicates *bool     `yaml:"remove_duplicates,omitempty"`
	Placeholders     []string  `yaml:"placeholders,omitempty"` // Abbreviation escape candidates, in preference order
	LLM              LLMConfig `yaml:"llm,omitempty"`
	TopicsURL        string    `yaml:"topics_url,omitempty"` // Topic service endpoint
}

// LLMConfig configures the completion endpoint used for summaries.
type LLMConfig struct {
	BaseURL   string  `yaml:"base_url,omitempty"`
	Model     string  `yaml:"model,omitempty"`
	APIKey    string  `yaml:"api_key,omitempty"`
	RateLimit float64 `yaml:"rate_limit,omitempty"` // Requests per second
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "bibscope"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(xdg.ConfigHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file. A missing file
// yields an empty config.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	data, err := os.ReadFile(GlobalConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}
	if cfg.LogLevel != "" {
		if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("parsing global config: %w", err)
		}
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config and rereads the
// XDG base directories. Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
	xdg.Reload()
}

// EscapePolicy returns the configured abbreviation escape policy, or the
// default when none is set.
func (g *GlobalConfig) EscapePolicy() affiliation.EscapePolicy {
	if len(g.Placeholders) == 0 {
		return affiliation.DefaultEscapePolicy
	}
	return affiliation.EscapePolicy{Candidates: append([]string(nil), g.Placeholders...)}
}

// Level returns the configured log level, defaulting to info.
func (g *GlobalConfig) Level() log.Level {
	if lvl, err := log.ParseLevel(g.LogLevel); err == nil && g.LogLevel != "" {
		return lvl
	}
	return log.InfoLevel
}

// RemovesDuplicates resolves the duplicate-removal setting: the workspace
// value wins over the global one, and both default to true.
func RemovesDuplicates(ws *Config, g *GlobalConfig) bool {
	if ws != nil && ws.RemoveDuplicates != nil {
		return *ws.RemoveDuplicates
	}
	if g != nil && g.RemoveDuplicates != nil {
		return *g.RemoveDuplicates
	}
	return true
}

// HelpfulConfigMessage explains how to create or point at a workspace.
func HelpfulConfigMessage() string {
	return fmt.Sprintf(`No bibscope workspace found.

Run 'bibscope init' in the directory holding your exports, or set %s
to an existing workspace root.

Global settings live in %s.`, RootEnv, GlobalConfigPath())
}
