package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDigestCommand_DevSeed(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	path := writeConfig(t, `{"poll_interval": 5, "dev": true}`)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"digest", "--config", path, "--competitor", "Avetta"})

	require.NoError(t, cmd.Execute())
	require.True(t, strings.HasPrefix(out.String(), "# Competitor digest ("))
	require.Contains(t, out.String(), "**Avetta**: Avetta adds AI assistant")
	require.NotContains(t, out.String(), "ISNetworld")
}

func TestDigestCommand_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `{"poll_interval": 0}`)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"digest", "--config", path})
	require.Error(t, cmd.Execute())
}

func TestIngestCommand_NoSources(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	path := writeConfig(t, `{"poll_interval": 5, "snapshot_path": "`+filepath.Join(dir, "insights.json")+`"}`)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"ingest", "--config", path})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "Added 0 insights, snapshot holds 0\n", out.String())
}

func TestNotifyCommand_NoWebhook(t *testing.T) {
	t.Setenv("SLACK_WEBHOOK_URL", "")
	path := writeConfig(t, `{"poll_interval": 5}`)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"notify", "--config", path})
	require.NoError(t, cmd.Execute())
}
