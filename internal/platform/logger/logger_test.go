package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DebugLevel,
		"DEBUG":   DebugLevel,
		"info":    InfoLevel,
		" notice": NoticeLevel,
		"error":   ErrorLevel,
		"":        InfoLevel,
		"verbose": InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestStdLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, NoticeLevel)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Notice("notice %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[NOTICE] notice 3")
	assert.Contains(t, out, "[ERROR]  error 4")
}

func TestStdLogger_FormatsPercentInArgs(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, DebugLevel)

	l.Info("subject=%s", "100%")

	assert.Equal(t, "[INFO]   subject=100%\n", buf.String())
}
