package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/threadsage/threadsage/internal/logging"
	"github.com/threadsage/threadsage/internal/models"
)

// DefaultModelsFile is where repositories keep the alias table unless
// THREADSAGE_MODELS_FILE points elsewhere.
const DefaultModelsFile = ".github/threadsage/models.json"

// Config holds all runtime settings for one run. Load builds it once and it
// is passed around by pointer; nothing mutates it afterwards.
type Config struct {
	GitHub struct {
		Token string
	}
	Event      models.TriggerEvent
	Trigger    string
	Models     models.AliasTable
	ModelsFile string
	LLM        struct {
		Provider        string
		APIKey          string
		BaseURL         string
		AnthropicAPIKey string
		GeminiAPIKey    string
	}
	Prompt struct {
		OverridePath string
		Inline       string
	}
}

type envValues struct {
	GitHubToken      string `env:"GITHUB_TOKEN"`
	GitHubRepository string `env:"GITHUB_REPOSITORY"`

	// Numeric values arrive as strings so that the empty strings GitHub
	// Actions expressions produce for unset inputs parse cleanly.
	IssueNumber         string `env:"THREADSAGE_ISSUE_NUMBER"`
	CommentBody         string `env:"THREADSAGE_COMMENT_BODY"`
	CommentAuthor       string `env:"THREADSAGE_COMMENT_AUTHOR"`
	ProcessingCommentID string `env:"THREADSAGE_PROCESSING_COMMENT_ID"`

	Trigger    string `env:"THREADSAGE_TRIGGER" envDefault:"/ai"`
	ModelsFile string `env:"THREADSAGE_MODELS_FILE" envDefault:".github/threadsage/models.json"`

	Provider        string `env:"THREADSAGE_PROVIDER" envDefault:"openrouter"`
	APIKey          string `env:"OPENROUTER_API_KEY"`
	BaseURL         string `env:"THREADSAGE_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`

	PromptFile   string `env:"THREADSAGE_SYSTEM_PROMPT_FILE"`
	PromptInline string `env:"THREADSAGE_SYSTEM_PROMPT"`
}

// Load builds the configuration from the environment, after a best-effort
// .env load for local runs. It fails before any comment is posted when a
// required value is missing.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logging.Debug("Loaded environment from .env file")
	}

	var v envValues
	if err := env.Parse(&v); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg := &Config{
		Trigger:    v.Trigger,
		ModelsFile: v.ModelsFile,
	}
	cfg.GitHub.Token = v.GitHubToken
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v.Provider))
	cfg.LLM.APIKey = v.APIKey
	cfg.LLM.BaseURL = v.BaseURL
	cfg.LLM.AnthropicAPIKey = v.AnthropicAPIKey
	cfg.LLM.GeminiAPIKey = v.GeminiAPIKey
	cfg.Prompt.OverridePath = v.PromptFile
	cfg.Prompt.Inline = v.PromptInline

	cfg.Event = models.TriggerEvent{
		CommentBody:   v.CommentBody,
		CommentAuthor: v.CommentAuthor,
	}
	if s := strings.TrimSpace(v.IssueNumber); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("THREADSAGE_ISSUE_NUMBER must be an integer, got %q", v.IssueNumber)
		}
		cfg.Event.IssueNumber = n
	}
	if s := strings.TrimSpace(v.ProcessingCommentID); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("THREADSAGE_PROCESSING_COMMENT_ID must be an integer, got %q", v.ProcessingCommentID)
		}
		cfg.Event.ProcessingCommentID = id
	}
	if v.GitHubRepository != "" {
		owner, name, err := splitRepository(v.GitHubRepository)
		if err != nil {
			return nil, err
		}
		cfg.Event.Owner = owner
		cfg.Event.Repo = name
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	table, err := LoadAliasTable(cfg.ModelsFile)
	if err != nil {
		return nil, err
	}
	cfg.Models = table

	logging.Info("Configuration loaded",
		"repo", cfg.Event.Owner+"/"+cfg.Event.Repo,
		"issue", cfg.Event.IssueNumber,
		"trigger", cfg.Trigger,
		"provider", cfg.LLM.Provider,
		"models_file", cfg.ModelsFile,
		"aliases", len(cfg.Models))

	return cfg, nil
}

func splitRepository(full string) (string, string, error) {
	owner, name, ok := strings.Cut(full, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("GITHUB_REPOSITORY must be owner/name, got %q", full)
	}
	return owner, name, nil
}

// validateConfig checks that all required fields are present
func validateConfig(cfg *Config) error {
	if cfg.GitHub.Token == "" {
		return fmt.Errorf("missing required configuration: GITHUB_TOKEN")
	}
	if cfg.Event.Owner == "" || cfg.Event.Repo == "" {
		return fmt.Errorf("missing required configuration: GITHUB_REPOSITORY")
	}
	if cfg.Event.IssueNumber <= 0 {
		return fmt.Errorf("missing required configuration: THREADSAGE_ISSUE_NUMBER")
	}
	if cfg.Event.CommentBody == "" {
		return fmt.Errorf("missing required configuration: THREADSAGE_COMMENT_BODY")
	}
	if cfg.Event.CommentAuthor == "" {
		return fmt.Errorf("missing required configuration: THREADSAGE_COMMENT_AUTHOR")
	}
	if cfg.Trigger == "" {
		return fmt.Errorf("THREADSAGE_TRIGGER must not be empty")
	}
	return nil
}

// LoadAliasTable reads a model alias table from a JSON or YAML file. Keys
// are normalized to lower case. A table without a "default" entry loads
// fine; resolution reports the gap when a command needs it.
func LoadAliasTable(path string) (models.AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model alias table %s: %w", path, err)
	}

	var raw map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode model alias table %s: %w", path, err)
	}

	table := make(models.AliasTable, len(raw))
	for alias, id := range raw {
		table[strings.ToLower(strings.TrimSpace(alias))] = strings.TrimSpace(id)
	}
	return table, nil
}

// WriteAliasTable persists a table as indented JSON, creating parent
// directories as needed.
func WriteAliasTable(path string, table models.AliasTable) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model alias table: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write model alias table %s: %w", path, err)
	}
	return nil
}
