package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"karmaforge/internal/util"
)

// Languages the oracle can be asked to write in. "auto" lets it match
// the post and its top comments.
const (
	LangAuto     = "auto"
	LangEnglish  = "english"
	LangHinglish = "hinglish"
)

// Config is the application's configuration model.
type Config struct {
	Credentials CredentialsConfig `yaml:"credentials"`
	Targets     TargetsConfig     `yaml:"targets"`
	Filters     FiltersConfig     `yaml:"filters"`
	Engagement  EngagementConfig  `yaml:"engagement"`
	Oracle      OracleConfig      `yaml:"oracle"`
	Storage     StorageConfig     `yaml:"storage"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type CredentialsConfig struct {
	// Reddit script-app credentials. Empty fields fall back to env:
	// REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET, REDDIT_USERNAME, REDDIT_PASSWORD.
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
}

type TargetsConfig struct {
	// Subreddits to pull candidates from, in priority order.
	Subreddits []string `yaml:"subreddits"`
	// Hot-listing page size requested per subreddit.
	FetchLimit int `yaml:"fetchLimit"`
}

type FiltersConfig struct {
	// Minimum post score for a candidate (inclusive).
	MinUpvotes int `yaml:"minUpvotes"`
	// Minimum comment count for a candidate (inclusive).
	MinComments int `yaml:"minComments"`
}

type EngagementConfig struct {
	// Replies allowed per UTC calendar day.
	DailyLimit int `yaml:"dailyLimit"`
	// Cooldown bounds between replies, seconds.
	MinDelaySeconds int `yaml:"minDelaySeconds"`
	MaxDelaySeconds int `yaml:"maxDelaySeconds"`
	// Rank candidates by upvote potential instead of discovery order.
	UpvoteMode bool `yaml:"upvoteMode"`
	// Quiet hours (UTC) during which run --wait-window holds off.
	QuietHours []int `yaml:"quietHours"`
}

type OracleConfig struct {
	Provider string `yaml:"provider"` // "groq" or "gemini"
	Model    string `yaml:"model"`
	Language string `yaml:"language"` // auto, english, hinglish
	// If empty, read from env GROQ_API_KEY / GEMINI_API_KEY.
	APIKey string `yaml:"apiKey"`
}

type StorageConfig struct {
	// SQLite reply-log path; empty disables the audit log.
	DBPath string `yaml:"dbPath"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // e.g. ":9090"; empty disables the server
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Targets: TargetsConfig{
			Subreddits: []string{"AskReddit", "mildlyinteresting", "todayilearned"},
			FetchLimit: 25,
		},
		Filters:    FiltersConfig{MinUpvotes: 100, MinComments: 10},
		Engagement: EngagementConfig{DailyLimit: 50, MinDelaySeconds: 60, MaxDelaySeconds: 240, UpvoteMode: false},
		Oracle:     OracleConfig{Provider: "groq", Model: "llama-3.3-70b-versatile", Language: LangAuto},
		Storage:    StorageConfig{DBPath: "./karmaforge.db"},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
// A .env file next to the working directory is honored, matching how the
// credentials are usually distributed.
func (c *Config) ResolveEnv() {
	_ = godotenv.Load()
	if c.Credentials.ClientID == "" {
		c.Credentials.ClientID = os.Getenv("REDDIT_CLIENT_ID")
	}
	if c.Credentials.ClientSecret == "" {
		c.Credentials.ClientSecret = os.Getenv("REDDIT_CLIENT_SECRET")
	}
	if c.Credentials.Username == "" {
		c.Credentials.Username = os.Getenv("REDDIT_USERNAME")
	}
	if c.Credentials.Password == "" {
		c.Credentials.Password = os.Getenv("REDDIT_PASSWORD")
	}
	if c.Oracle.APIKey == "" {
		switch c.Oracle.Provider {
		case "groq":
			c.Oracle.APIKey = os.Getenv("GROQ_API_KEY")
		case "gemini":
			c.Oracle.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
}

// Normalize cleans the target list: trimmed, empties dropped, de-duplicated
// with first-seen order preserved.
func (c *Config) Normalize() {
	c.Targets.Subreddits = util.DedupeTrimmed(c.Targets.Subreddits)
	if c.Targets.FetchLimit <= 0 {
		c.Targets.FetchLimit = 25
	}
	if c.Oracle.Language == "" {
		c.Oracle.Language = LangAuto
	}
}

// Validate enforces the ranges a run requires. Credential errors here are
// fatal: a run must never start with incomplete credentials.
func (c *Config) Validate() error {
	cr := c.Credentials
	if cr.ClientID == "" || cr.ClientSecret == "" || cr.Username == "" || cr.Password == "" {
		return errors.New("incomplete reddit credentials (need client id, client secret, username, password)")
	}
	if len(c.Targets.Subreddits) == 0 {
		return errors.New("no target subreddits configured")
	}
	e := c.Engagement
	if e.DailyLimit < 1 || e.DailyLimit > 200 {
		return fmt.Errorf("dailyLimit %d out of range 1-200", e.DailyLimit)
	}
	if e.MinDelaySeconds < 10 || e.MinDelaySeconds > 600 {
		return fmt.Errorf("minDelaySeconds %d out of range 10-600", e.MinDelaySeconds)
	}
	if e.MaxDelaySeconds < e.MinDelaySeconds || e.MaxDelaySeconds > 600 {
		return fmt.Errorf("maxDelaySeconds %d must be within %d-600", e.MaxDelaySeconds, e.MinDelaySeconds)
	}
	if c.Filters.MinUpvotes < 0 || c.Filters.MinComments < 0 {
		return errors.New("filter thresholds must be non-negative")
	}
	switch c.Oracle.Language {
	case LangAuto, LangEnglish, LangHinglish:
	default:
		return fmt.Errorf("unknown language %q", c.Oracle.Language)
	}
	switch c.Oracle.Provider {
	case "groq", "gemini":
	default:
		return fmt.Errorf("unknown oracle provider %q", c.Oracle.Provider)
	}
	for _, h := range c.Engagement.QuietHours {
		if h < 0 || h > 23 {
			return fmt.Errorf("quiet hour %d out of range 0-23", h)
		}
	}
	return nil
}

// Load reads YAML config from path, then applies env fallbacks and
// target normalization.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	cfg.Normalize()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
