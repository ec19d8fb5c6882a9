package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		configYAML := `
server:
  listen: ":9090"
  timeout: 60s
  base_url: https://feeds.example.com
mail:
  protocol: imap
  host: imap.example.com
  port: 993
  user: inbox@example.com
  password: secret
  mailbox: Newsletters
  tls: true
filter:
  sender: rabbi@example.com
  match: substring
  scan_limit: 25
llm:
  endpoint: http://localhost:11434/v1
  api_key: test-key
  model: llama3
  temperature: 0.5
  max_tokens: 2000
  timeout: 45s
  fallback_length: 300
feed:
  title: Daily Digest
  link: https://feeds.example.com/rss
  description: digest of the daily email
  language: en
  max_items: 20
schedule:
  poll_interval: 30m
  initial_delay: 5s
state:
  file: /var/lib/mailscope/state.json
`
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 60*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://feeds.example.com", cfg.Server.BaseURL)

		assert.Equal(t, "imap", cfg.Mail.Protocol)
		assert.Equal(t, "imap.example.com", cfg.Mail.Host)
		assert.Equal(t, 993, cfg.Mail.Port)
		assert.Equal(t, "inbox@example.com", cfg.Mail.User)
		assert.Equal(t, "secret", cfg.Mail.Password)
		assert.Equal(t, "Newsletters", cfg.Mail.Mailbox)
		assert.True(t, cfg.Mail.TLS)

		assert.Equal(t, "rabbi@example.com", cfg.Filter.Sender)
		assert.Equal(t, "substring", cfg.Filter.Match)
		assert.Equal(t, 25, cfg.Filter.ScanLimit)

		assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.Endpoint)
		assert.Equal(t, "test-key", cfg.LLM.APIKey)
		assert.Equal(t, "llama3", cfg.LLM.Model)
		assert.InDelta(t, 0.5, cfg.LLM.Temperature, 0.001)
		assert.Equal(t, 2000, cfg.LLM.MaxTokens)
		assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
		assert.Equal(t, 300, cfg.LLM.FallbackLength)

		assert.Equal(t, "Daily Digest", cfg.Feed.Title)
		assert.Equal(t, "https://feeds.example.com/rss", cfg.Feed.Link)
		assert.Equal(t, "en", cfg.Feed.Language)
		assert.Equal(t, 20, cfg.Feed.MaxItems)

		assert.Equal(t, 30*time.Minute, cfg.Schedule.PollInterval)
		assert.Equal(t, 5*time.Second, cfg.Schedule.InitialDelay)
		assert.Equal(t, "/var/lib/mailscope/state.json", cfg.State.File)
	})

	t.Run("defaults applied", func(t *testing.T) {
		configYAML := `
mail:
  host: imap.example.com
filter:
  sender: sender@example.com
`
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "imap", cfg.Mail.Protocol)
		assert.Equal(t, 993, cfg.Mail.Port)
		assert.Equal(t, "INBOX", cfg.Mail.Mailbox)
		assert.Equal(t, "exact", cfg.Filter.Match)
		assert.Equal(t, 50, cfg.Filter.ScanLimit)
		assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
		assert.InDelta(t, 0.3, cfg.LLM.Temperature, 0.001)
		assert.Equal(t, 1000, cfg.LLM.MaxTokens)
		assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
		assert.Equal(t, 500, cfg.LLM.FallbackLength)
		assert.Equal(t, "Email RSS Feed", cfg.Feed.Title)
		assert.Equal(t, "http://localhost/rss", cfg.Feed.Link)
		assert.Equal(t, "he", cfg.Feed.Language)
		assert.Equal(t, 50, cfg.Feed.MaxItems)
		assert.Equal(t, time.Hour, cfg.Schedule.PollInterval)
		assert.Equal(t, 3*time.Second, cfg.Schedule.InitialDelay)
		assert.Equal(t, "data/state.json", cfg.State.File)
	})

	t.Run("environment variable expansion", func(t *testing.T) {
		t.Setenv("TEST_MAIL_PASS", "expanded-secret")
		t.Setenv("TEST_LLM_KEY", "expanded-key")

		configYAML := `
mail:
  host: imap.example.com
  password: ${TEST_MAIL_PASS}
llm:
  api_key: ${TEST_LLM_KEY}
`
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "expanded-secret", cfg.Mail.Password)
		assert.Equal(t, "expanded-key", cfg.LLM.APIKey)
	})

	t.Run("invalid match mode", func(t *testing.T) {
		configYAML := `
filter:
  sender: sender@example.com
  match: fuzzy
`
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid filter match mode")
	})

	t.Run("invalid protocol", func(t *testing.T) {
		configYAML := `
mail:
  protocol: nntp
  host: example.com
`
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid mail protocol")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("mail: ["), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}
