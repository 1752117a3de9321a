package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "info", Format: "json"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("HTML files generated", "pages", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "HTML files generated", record["msg"])
	assert.EqualValues(t, 3, record["pages"])
	assert.NotEmpty(t, record["run_id"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "DEBUG"})
	require.NoError(t, err)

	logger.Debug("Stage complete", "stage", "build")
	assert.Contains(t, buf.String(), "stage=build")
	assert.Contains(t, buf.String(), "run_id=")
}

func TestNewRejectsUnknownOptions(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	require.Error(t, err)

	_, err = New(&bytes.Buffer{}, Options{Format: "xml"})
	require.Error(t, err)
}
