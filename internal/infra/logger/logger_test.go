package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOutput(context.Background(), &buf, "info", true)

	log.Info("message received", logrus.Fields{"from": "whatsapp:+5511912345678"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "message received", line["msg"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "whatsapp:+5511912345678", line["from"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOutput(context.Background(), &buf, "warn", true)

	log.Debug("hidden")
	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOutput(context.Background(), &buf, "loud", true)

	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}
