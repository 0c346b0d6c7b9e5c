package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "info", "json")

	l.With("operation", "combine").Info("recovered", "identifier", 7945)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "recovered", record["msg"])
	assert.Equal(t, "combine", record["operation"])
	assert.Equal(t, float64(7945), record["identifier"])
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "warn", "text")

	l.Info("hidden")
	l.Debug("hidden")
	l.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Warn("shown")
	l.Error(errors.New("failed"))
	l.MaybeError(nil)
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "msg=failed")
}

func TestNewLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "DEBUG", "text")

	l.Debugf("groups=%d", 3)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "groups=3")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "INFO", parseLevel("").String())
	assert.Equal(t, "INFO", parseLevel("bogus").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "ERROR", parseLevel("error").String())
}
