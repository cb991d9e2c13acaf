package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		l := New(in, "json")
		assert.True(t, l.Core().Enabled(want), in)
		if want > zapcore.DebugLevel {
			assert.False(t, l.Core().Enabled(want-1), in)
		}
	}
}

func TestFieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapAdapter(zap.New(core)).WithFields(Fields{"session": "abc"})

	l.WithError(errors.New("boom")).Warn("dispatch failed", Fields{"action": "set-price"})
	l.Debug("noop", nil)

	entries := logs.All()
	assert.Len(t, entries, 2)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "abc", ctx["session"])
	assert.Equal(t, "set-price", ctx["action"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestNoOpLogger(t *testing.T) {
	l := NewNoOpLogger()
	assert.NotPanics(t, func() {
		l.Error("ignored", Fields{"k": 1})
	})
	assert.False(t, l.Zap().Core().Enabled(zapcore.ErrorLevel))
}
