package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWritersRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriters(false, &buf)
	l.Debug("hidden")
	l.Info("visible")
	_ = l.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewWithWritersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriters(true, &buf)
	l.Debug("debug msg")
	_ = l.Sync()

	assert.Contains(t, buf.String(), "debug msg")
}
