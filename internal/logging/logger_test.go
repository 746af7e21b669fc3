package logging_test

import (
	"bytes"
	"testing"

	"productstore/internal/logging"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_ProductionLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "production", "warn")

	log.Info().Msg("hidden")
	log.Warn().Msg("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "WARN")
}

func TestNewWithWriter_DevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "development", "error")

	log.Debug().Msg("debugging")

	assert.Contains(t, buf.String(), "debugging")
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	log := logging.Named(logging.NewWithWriter(&buf, "production", "info"), "products")

	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), "name=products")
}
