package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"battlecards/internal/logger"

	"github.com/stretchr/testify/require"
)

func TestInitWithOutput_JSON(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("DEBUG", "")

	var buf bytes.Buffer
	logger.InitWithOutput(&buf)
	logger.Component("filter").Info("hello")
	logger.Log.Debug("hidden")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "hello", entry["message"])
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "filter", entry["component"])
	require.Contains(t, entry, "timestamp")
}

func TestInitWithOutput_Debug(t *testing.T) {
	t.Setenv("DEBUG", "true")

	var buf bytes.Buffer
	logger.InitWithOutput(&buf)
	logger.Log.Debug("visible")
	require.Contains(t, buf.String(), "visible")
}
