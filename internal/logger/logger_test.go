package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, LevelNone, ParseLevel("off"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, false)

	log.Debug("hidden %d", 1)
	log.Info("hidden too")
	log.Warn("kept %s", "warning")
	log.Error("kept error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN] kept warning")
	assert.Contains(t, out, "ERROR] kept error")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelError, false)

	log.Info("before")
	log.SetLevel(LevelInfo)
	log.Info("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
}
