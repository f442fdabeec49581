package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"DEBUG":   log.DebugLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"info":    log.InfoLevel,
		"":        log.InfoLevel,
		"verbose": log.InfoLevel,
	}

	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), "level %q", input)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init("warn")
	SetOutput(&buf)
	t.Cleanup(func() { Init("info") })

	Info("room %s created", "ABCD")
	assert.Empty(t, buf.String())

	Warn("room %s is full", "ABCD")
	assert.Contains(t, buf.String(), "room ABCD is full")
}
