package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for self links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Mail MailConfig `yaml:"mail" json:"mail" jsonschema:"description=Mailbox connection configuration"`

	Filter FilterConfig `yaml:"filter" json:"filter" jsonschema:"description=Sender filter configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for email summarization"`

	Feed FeedConfig `yaml:"feed" json:"feed" jsonschema:"description=Generated feed configuration"`

	Schedule struct {
		PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval" jsonschema:"default=1h,description=Interval between mailbox polls"`
		InitialDelay time.Duration `yaml:"initial_delay" json:"initial_delay" jsonschema:"default=3s,description=Grace delay before the first poll"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Polling schedule configuration"`

	State struct {
		File string `yaml:"file" json:"file" jsonschema:"default=data/state.json,description=Path to the persisted state document"`
	} `yaml:"state" json:"state" jsonschema:"description=State persistence configuration"`
}

// MailConfig holds mailbox connection settings
type MailConfig struct {
	Protocol string `yaml:"protocol" json:"protocol" jsonschema:"default=imap,enum=imap,enum=pop3,description=Mail retrieval protocol"`
	Host     string `yaml:"host" json:"host" jsonschema:"required,description=Mail server host"`
	Port     int    `yaml:"port" json:"port" jsonschema:"default=993,description=Mail server port"`
	User     string `yaml:"user" json:"user" jsonschema:"description=Mailbox username"`
	Password string `yaml:"password" json:"password" jsonschema:"description=Mailbox password (can use environment variable)"`
	Mailbox  string `yaml:"mailbox" json:"mailbox" jsonschema:"default=INBOX,description=Mailbox (folder) to scan"`
	TLS      bool   `yaml:"tls" json:"tls" jsonschema:"default=true,description=Connect over TLS"`
}

// FilterConfig holds sender matching settings
type FilterConfig struct {
	Sender    string `yaml:"sender" json:"sender" jsonschema:"required,description=Sender address to match"`
	Match     string `yaml:"match" json:"match" jsonschema:"default=exact,enum=exact,enum=substring,description=Sender match mode"`
	ScanLimit int    `yaml:"scan_limit" json:"scan_limit" jsonschema:"default=50,description=Number of newest messages to scan per poll"`
}

// LLMConfig holds LLM configuration for email summarization
type LLMConfig struct {
	Endpoint       string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey         string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable); empty disables the backend"`
	Model          string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Temperature    float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens      int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=1000,description=Maximum tokens in response"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt   string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
	FallbackLength int           `yaml:"fallback_length" json:"fallback_length" jsonschema:"default=500,description=Prefix length used when no API key is configured"`
}

// FeedConfig holds generated feed settings
type FeedConfig struct {
	Title       string `yaml:"title" json:"title" jsonschema:"default=Email RSS Feed,description=Feed title"`
	Link        string `yaml:"link" json:"link" jsonschema:"default=http://localhost/rss,description=Feed-wide link used for the channel and every item"`
	Description string `yaml:"description" json:"description" jsonschema:"default=Auto feed from email parser,description=Feed description"`
	Language    string `yaml:"language" json:"language" jsonschema:"default=he,description=Feed language tag"`
	MaxItems    int    `yaml:"max_items" json:"max_items" jsonschema:"default=50,description=Maximum number of retained feed items"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}

	// set defaults for mail
	if cfg.Mail.Protocol == "" {
		cfg.Mail.Protocol = "imap"
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 993
	}
	if cfg.Mail.Protocol != "imap" && cfg.Mail.Protocol != "pop3" {
		return nil, fmt.Errorf("invalid mail protocol %q", cfg.Mail.Protocol)
	}
	if cfg.Mail.Mailbox == "" {
		cfg.Mail.Mailbox = "INBOX"
	}

	// set defaults for filter
	if cfg.Filter.Match == "" {
		cfg.Filter.Match = "exact"
	}
	if cfg.Filter.ScanLimit == 0 {
		cfg.Filter.ScanLimit = 50
	}
	if cfg.Filter.Match != "exact" && cfg.Filter.Match != "substring" {
		return nil, fmt.Errorf("invalid filter match mode %q", cfg.Filter.Match)
	}

	// set defaults for LLM
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 1000
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.FallbackLength == 0 {
		cfg.LLM.FallbackLength = 500
	}

	// set defaults for feed
	if cfg.Feed.Title == "" {
		cfg.Feed.Title = "Email RSS Feed"
	}
	if cfg.Feed.Link == "" {
		cfg.Feed.Link = "http://localhost/rss"
	}
	if cfg.Feed.Description == "" {
		cfg.Feed.Description = "Auto feed from email parser"
	}
	if cfg.Feed.Language == "" {
		cfg.Feed.Language = "he"
	}
	if cfg.Feed.MaxItems == 0 {
		cfg.Feed.MaxItems = 50
	}

	// set defaults for schedule
	if cfg.Schedule.PollInterval == 0 {
		cfg.Schedule.PollInterval = time.Hour
	}
	if cfg.Schedule.InitialDelay == 0 {
		cfg.Schedule.InitialDelay = 3 * time.Second
	}

	// set defaults for state
	if cfg.State.File == "" {
		cfg.State.File = "data/state.json"
	}

	return &cfg, nil
}
