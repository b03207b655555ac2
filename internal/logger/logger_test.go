package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiadoption/internal/config"
)

func TestNew_LevelFallback(t *testing.T) {
	log := New(config.LogConfig{Level: "loud"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log = New(config.LogConfig{Level: "debug"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput(config.LogConfig{Level: "info", Format: "json"}, &buf)

	log.WithField("user_id", "u1").Info("dashboard rendered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dashboard rendered", entry["msg"])
	assert.Equal(t, "u1", entry["user_id"])
}
