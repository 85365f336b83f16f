package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger_LevelFiltering tests that entries below the level are dropped
func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetOutput(&buf)
	logger.SetLevel(WARN)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

// TestLogger_TextFormat tests stage and field rendering
func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetOutput(&buf)

	logger.Info("stage complete", Stage("normalize"), Int("rows", 120))

	out := buf.String()
	assert.Contains(t, out, "[INFO] stage complete")
	assert.Contains(t, out, "stage=normalize")
	assert.Contains(t, out, "rows=120")
}

// TestLogger_JSONFormat tests structured output
func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetOutput(&buf)
	logger.SetFormat("json")

	logger.Error("stage failed", errors.New("boom"), Stage("prune"))

	var entry LogEntry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "prune", entry.Stage)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, "riskprep", entry.Service)
}
