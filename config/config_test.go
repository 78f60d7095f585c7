package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load(writeConfig(t, "environment:\n  name: test\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	wantWorkspace := filepath.Join(home, "workspace", "obsidian_vault")
	if cfg.Workspace != wantWorkspace {
		t.Errorf("Workspace = %q, want %q", cfg.Workspace, wantWorkspace)
	}
	if cfg.Output != filepath.Join(wantWorkspace, "docs", "01_resource", "tasks.md") {
		t.Errorf("Output = %q", cfg.Output)
	}
	if !cfg.Dedup.Enabled || !cfg.Dedup.CaseInsensitive {
		t.Errorf("dedup defaults not applied: %+v", cfg.Dedup)
	}
	if cfg.LLM.MaxDocumentChars != 8000 {
		t.Errorf("MaxDocumentChars = %d", cfg.LLM.MaxDocumentChars)
	}
	if cfg.LLM.MinConfidence != "low" {
		t.Errorf("MinConfidence = %q", cfg.LLM.MinConfidence)
	}
	if cfg.Feedback.MinExamples != 3 || cfg.Feedback.SamplePerKind != 3 {
		t.Errorf("feedback defaults not applied: %+v", cfg.Feedback)
	}
	if cfg.Feedback.BusyTimeout != 5*time.Second {
		t.Errorf("BusyTimeout = %v", cfg.Feedback.BusyTimeout)
	}
	if cfg.Feedback.DBPath != filepath.Join(home, ".config", "task-picker-agent", "feedback.db") {
		t.Errorf("DBPath = %q", cfg.Feedback.DBPath)
	}

	if len(cfg.LLM.Providers) != 1 {
		t.Fatalf("expected default provider, got %+v", cfg.LLM.Providers)
	}
	p := cfg.LLM.Providers[0]
	if p.Name != "anthropic" || p.Model != DefaultModel || p.APIKey != "sk-test" {
		t.Errorf("unexpected default provider: %+v", p)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("QWEN_KEY", "qwen-secret")

	ws := t.TempDir()
	body := `
workspace: ` + ws + `
output: out/tasks.md
exclude:
  - archive/
dedup:
  case_insensitive: false
llm:
  enabled: true
  min_confidence: MEDIUM
  providers:
    - name: qwen
      enabled: true
      priority: 1
      api_key: ${QWEN_KEY}
      model: qwen-plus
    - name: gemini
      enabled: false
      model: gemini-2.5-flash
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Output != filepath.Join(ws, "out", "tasks.md") {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.Dedup.CaseInsensitive {
		t.Error("expected case_insensitive override")
	}
	if !cfg.LLM.Enabled || cfg.LLM.MinConfidence != "medium" {
		t.Errorf("unexpected llm config: %+v", cfg.LLM)
	}
	if len(cfg.LLM.Providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(cfg.LLM.Providers))
	}
	if cfg.LLM.Providers[0].APIKey != "qwen-secret" {
		t.Errorf("env expansion failed: %q", cfg.LLM.Providers[0].APIKey)
	}
	if !cfg.IsExcluded(filepath.Join(ws, "archive", "old.md")) {
		t.Error("expected archive/ to be excluded")
	}
}

func TestLoad_InvalidMinConfidence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Load(writeConfig(t, "llm:\n  min_confidence: extreme\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_DuplicatePriority(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	body := `
llm:
  providers:
    - name: qwen
      enabled: true
      priority: 1
      model: qwen-plus
    - name: deepseek
      enabled: true
      priority: 1
      model: deepseek-chat
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("expected duplicate priority error")
	}
}

func TestIsExcluded(t *testing.T) {
	ws := t.TempDir()
	cfg := &Config{
		Workspace: ws,
		Exclude: []string{
			filepath.Join(ws, ".git"),
			filepath.Join(ws, "docs", "tasks.md"),
		},
	}

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(ws, ".git", "HEAD"), true},
		{filepath.Join(ws, "docs", "tasks.md"), true},
		{filepath.Join(ws, "docs", "tasks.md.bak"), true},
		{filepath.Join(ws, "docs", "notes.md"), false},
		{filepath.Join(ws, "readme.md"), false},
	}
	for _, tt := range tests {
		if got := cfg.IsExcluded(tt.path); got != tt.want {
			t.Errorf("IsExcluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/notes"); got != filepath.Join(home, "notes") {
		t.Errorf("ExpandHome(~/notes) = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(/abs/path) = %q", got)
	}
	if got := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("ExpandHome(~user/x) = %q", got)
	}
}

func TestLoad_Webhook(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HOOK_SECRET", "shh")

	ws := t.TempDir()
	cfg, err := Load(writeConfig(t, "workspace: "+ws+"\nwebhook:\n  secret: ${HOOK_SECRET}\n  branch: main\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Webhook.Secret != "shh" || cfg.Webhook.Branch != "main" {
		t.Errorf("unexpected webhook config: %+v", cfg.Webhook)
	}
	if cfg.Webhook.RepoPath != ws {
		t.Errorf("RepoPath = %q, want %q", cfg.Webhook.RepoPath, ws)
	}
	if cfg.Webhook.RateLimitPerMin != 30 {
		t.Errorf("RateLimitPerMin = %d", cfg.Webhook.RateLimitPerMin)
	}
}
