package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matsen/bibscope/internal/affiliation"
	log "github.com/sirupsen/logrus"
)

// withConfigHome points the XDG config home at a fresh directory.
func withConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)
	return dir
}

func writeGlobalConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, GlobalConfigDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, GlobalConfigDir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	dir := withConfigHome(t)
	want := filepath.Join(dir, "bibscope", "config.yml")
	if got := GlobalConfigPath(); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	withConfigHome(t)
	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.Level() != log.InfoLevel {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
	if diff := cmp.Diff(affiliation.DefaultEscapePolicy, cfg.EscapePolicy()); diff != "" {
		t.Errorf("policy mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	dir := withConfigHome(t)
	writeGlobalConfig(t, dir, `log_level: debug
remove_duplicates: false
placeholders: ["#", "@@"]
llm:
  base_url: http://localhost:8080/v1
  model: local-model
  api_key: secret
  rate_limit: 0.5
topics_url: http://localhost:9000/topics
`)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.Level() != log.DebugLevel {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
	want := LLMConfig{BaseURL: "http://localhost:8080/v1", Model: "local-model", APIKey: "secret", RateLimit: 0.5}
	if diff := cmp.Diff(want, cfg.LLM); diff != "" {
		t.Errorf("llm mismatch (-want +got):\n%s", diff)
	}
	if cfg.TopicsURL != "http://localhost:9000/topics" {
		t.Errorf("TopicsURL = %q", cfg.TopicsURL)
	}
	if diff := cmp.Diff([]string{"#", "@@"}, cfg.EscapePolicy().Candidates); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
	if RemovesDuplicates(nil, cfg) {
		t.Error("RemovesDuplicates() = true, want global false")
	}
}

func TestLoadGlobalConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":  "log_level: [",
		"bad level": "log_level: loud\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := withConfigHome(t)
			writeGlobalConfig(t, dir, content)
			if _, err := LoadGlobalConfig(); err == nil {
				t.Error("LoadGlobalConfig() succeeded")
			}
		})
	}
}

func TestRemovesDuplicates(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name string
		ws   *Config
		g    *GlobalConfig
		want bool
	}{
		{"defaults", nil, nil, true},
		{"global", &Config{}, &GlobalConfig{RemoveDuplicates: &no}, false},
		{"workspace wins", &Config{RemoveDuplicates: &yes}, &GlobalConfig{RemoveDuplicates: &no}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemovesDuplicates(tt.ws, tt.g); got != tt.want {
				t.Errorf("RemovesDuplicates() = %v, want %v", got, tt.want)
			}
		})
	}
}
