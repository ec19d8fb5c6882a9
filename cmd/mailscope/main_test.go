package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/umputun/mailscope/pkg/config"
)

func TestRun_UnsupportedProtocol(t *testing.T) {
	configYAML := `
mail:
  protocol: nntp
  host: example.com
filter:
  sender: a@b.c
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid mail protocol")
}

func TestRun_StartStop(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `
server:
  listen: 127.0.0.1:0
mail:
  protocol: imap
  host: imap.example.com
filter:
  sender: a@b.c
state:
  file: ` + filepath.Join(tmpDir, "state.json") + `
schedule:
  poll_interval: 1h
  initial_delay: 1h
`
	path := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err = run(ctx, cfg, false)
	require.NoError(t, err, "run should exit cleanly on context cancellation")
}

func TestSetupLog(t *testing.T) {
	// exercised for coverage, must not panic with and without secrets
	setupLog(false, true)
	setupLog(true, false, "secret-password", "", "api-key")
}
