package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "TASKPICKER"

	DefaultModel = "claude-sonnet-4-20250514"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Extraction
	Workspace   string // absolute, ~ expanded
	Output      string // absolute path of the task document
	SessionsDir string // absolute
	Patterns    PatternsConfig
	Exclude     []string // absolute paths
	Dedup       DedupConfig

	// Feedback ledger
	Feedback FeedbackConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Watch mode
	Watch WatchConfig

	// Push webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type PatternsConfig struct {
	Unchecked string
	Checked   string
	Todo      string
}

type DedupConfig struct {
	Enabled         bool
	CaseInsensitive bool
}

type FeedbackConfig struct {
	DBPath        string
	MinExamples   int
	SamplePerKind int
	BusyTimeout   time.Duration
}

type WatchConfig struct {
	Debounce time.Duration
}

// WebhookConfig enables the push endpoints when Secret is set.
type WebhookConfig struct {
	Secret          string
	RateLimitPerMin int
	RepoPath        string // absolute
	Branch          string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Enabled          bool
	MinConfidence    string
	AnalyzeOnSave    bool
	MaxDocumentChars int
	MaxTokens        int
	Temperature      float64
	RateLimitPerMin  int

	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// An explicit path wins; otherwise config.yaml is searched in ./config, .,
// and $HOME/.config/task-picker-agent. A missing file means defaults.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "task-picker-agent"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Extraction
	cfg.Workspace = ExpandHome(v.GetString("workspace"))
	cfg.Output = resolve(cfg.Workspace, v.GetString("output"))
	cfg.SessionsDir = resolve(cfg.Workspace, v.GetString("sessions_dir"))
	cfg.Patterns.Unchecked = v.GetString("patterns.unchecked")
	cfg.Patterns.Checked = v.GetString("patterns.checked")
	cfg.Patterns.Todo = v.GetString("patterns.todo")
	for _, exc := range v.GetStringSlice("exclude") {
		exc = strings.TrimSpace(exc)
		if exc == "" {
			continue
		}
		cfg.Exclude = append(cfg.Exclude, resolve(cfg.Workspace, exc))
	}
	cfg.Dedup.Enabled = v.GetBool("dedup.enabled")
	cfg.Dedup.CaseInsensitive = v.GetBool("dedup.case_insensitive")

	// Feedback
	cfg.Feedback.DBPath = ExpandHome(v.GetString("feedback.db_path"))
	cfg.Feedback.MinExamples = v.GetInt("feedback.min_examples")
	cfg.Feedback.SamplePerKind = v.GetInt("feedback.sample_per_kind")
	cfg.Feedback.BusyTimeout = v.GetDuration("feedback.busy_timeout")

	// Watch
	cfg.Watch.Debounce = v.GetDuration("watch.debounce")

	// Webhook
	cfg.Webhook.Secret = expandEnvVar(v.GetString("webhook.secret"))
	cfg.Webhook.RateLimitPerMin = v.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.RepoPath = resolve(cfg.Workspace, v.GetString("webhook.repo_path"))
	cfg.Webhook.Branch = v.GetString("webhook.branch")

	// LLM Provider Abstraction
	cfg.LLM.Enabled = v.GetBool("llm.enabled")
	cfg.LLM.MinConfidence = strings.ToLower(v.GetString("llm.min_confidence"))
	cfg.LLM.AnalyzeOnSave = v.GetBool("llm.analyze_on_save")
	cfg.LLM.MaxDocumentChars = v.GetInt("llm.max_document_chars")
	cfg.LLM.MaxTokens = v.GetInt("llm.max_tokens")
	cfg.LLM.Temperature = v.GetFloat64("llm.temperature")
	cfg.LLM.RateLimitPerMin = v.GetInt("llm.rate_limit_per_min")
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")

	// Load provider configurations
	if v.IsSet("llm.providers") {
		if providersList, ok := v.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}

	// Single-provider shorthand: llm.model + llm.api_key
	if len(cfg.LLM.Providers) == 0 {
		apiKey := expandEnvVar(v.GetString("llm.api_key"))
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		cfg.LLM.Providers = []ProviderConfig{{
			Name:     "anthropic",
			Enabled:  true,
			Priority: 1,
			APIKey:   apiKey,
			Model:    v.GetString("llm.model"),
		}}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "release")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("workspace", "~/workspace/obsidian_vault")
	v.SetDefault("output", "docs/01_resource/tasks.md")
	v.SetDefault("sessions_dir", "docs/01_resource/sessions")
	v.SetDefault("patterns.unchecked", `^([ \t]*)-[ \t]*\[[ \t]*\][ \t]*(.+)$`)
	v.SetDefault("patterns.checked", `(?i)^([ \t]*)-[ \t]*\[x\][ \t]*(.+)$`)
	v.SetDefault("patterns.todo", `(?i)(?:TODO|FIXME|XXX):[ \t]*(.+)$`)
	v.SetDefault("exclude", []string{
		"docs/01_resource/sessions/",
		"docs/01_resource/tasks.md",
		".git/",
		"node_modules/",
		".obsidian/",
	})
	v.SetDefault("dedup.enabled", true)
	v.SetDefault("dedup.case_insensitive", true)

	v.SetDefault("feedback.db_path", "~/.config/task-picker-agent/feedback.db")
	v.SetDefault("feedback.min_examples", 3)
	v.SetDefault("feedback.sample_per_kind", 3)
	v.SetDefault("feedback.busy_timeout", "5s")

	v.SetDefault("watch.debounce", "500ms")

	v.SetDefault("webhook.rate_limit_per_min", 30)
	v.SetDefault("webhook.repo_path", ".")

	// LLM defaults
	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.min_confidence", "low")
	v.SetDefault("llm.analyze_on_save", false)
	v.SetDefault("llm.max_document_chars", 8000)
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.rate_limit_per_min", 50)
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 2)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "120s")
}

// Validate checks the fields that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.LLM.MinConfidence {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("llm.min_confidence must be low, medium or high, got %q", c.LLM.MinConfidence)
	}
	if c.LLM.MaxDocumentChars <= 0 {
		return fmt.Errorf("llm.max_document_chars must be positive")
	}
	if c.Feedback.DBPath == "" {
		return fmt.Errorf("feedback.db_path is required")
	}
	if c.Workspace == "" {
		return fmt.Errorf("workspace is required")
	}
	return validateLLMConfig(&c.LLM)
}

// IsExcluded reports whether path equals, lies under, or extends an excluded path.
func (c *Config) IsExcluded(path string) bool {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return false
	}
	abs = filepath.Clean(abs)
	for _, exc := range c.Exclude {
		// Raw prefix match: "tasks.md" also excludes "tasks.md.bak".
		if strings.HasPrefix(abs, filepath.Clean(exc)) {
			return true
		}
	}
	return false
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func resolve(base, p string) string {
	p = ExpandHome(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		return os.Getenv(value[2 : len(value)-1])
	}
	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if !provider.Enabled {
			continue
		}
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
	}

	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
