package main

import (
	"testing"

	"github.com/sifterlab/sifter/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_HonorsConfigLevel(t *testing.T) {
	cfg := config.Defaults()
	cfg.Log.Level = "error"

	log, err := newLogger(cfg)
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel), "info must be suppressed at error level")
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewLogger_DebugLevelFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Log.Level = "debug"

	log, err := newLogger(cfg)
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_RejectsBadLevel(t *testing.T) {
	cfg := config.Defaults()
	cfg.Log.Level = "chatty"

	_, err := newLogger(cfg)
	assert.Error(t, err)
}
