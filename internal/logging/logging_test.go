package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.WithField("ticker", "bitcoin").Warn("Keeping last known prices")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Keeping last known prices", entry["message"])
	assert.Equal(t, "bitcoin", entry["ticker"])
	assert.Equal(t, "warning", entry["level"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	logger.Debug("Price cache refreshed")
	assert.Contains(t, buf.String(), "Price cache refreshed")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, nil)
	assert.Error(t, err)
}

func TestGooseLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "info", Format: "text"}, &buf)
	require.NoError(t, err)

	GooseLogger{Logger: logger}.Printf("OK   %s", "00001_create_kv_store.sql")

	assert.Contains(t, buf.String(), "00001_create_kv_store.sql")
	assert.Contains(t, buf.String(), "component=migrations")
}
