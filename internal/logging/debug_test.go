package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(prev)
		SetVerbose(false)
	})
	return buf
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv("METRONOME_DEBUG", "")
	SetVerbose(false)
	assert.False(t, DebugEnabled(), "should be disabled when METRONOME_DEBUG is empty")

	t.Setenv("METRONOME_DEBUG", "1")
	assert.True(t, DebugEnabled(), "should be enabled when METRONOME_DEBUG is set")

	t.Setenv("METRONOME_DEBUG", "")
	SetVerbose(true)
	defer SetVerbose(false)
	assert.True(t, DebugEnabled(), "should be enabled by SetVerbose")
}

func TestDebugf(t *testing.T) {
	buf := captureDebug(t)
	t.Setenv("METRONOME_DEBUG", "")

	Debugf("hidden: %s\n", "test")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debugf("shown: %s\n", "test")
	assert.Equal(t, "shown: test\n", buf.String())
}

func TestDebugln(t *testing.T) {
	buf := captureDebug(t)
	t.Setenv("METRONOME_DEBUG", "")

	Debugln("hidden")
	assert.Empty(t, buf.String())

	t.Setenv("METRONOME_DEBUG", "true")
	Debugln("shown", 42)
	assert.Equal(t, "shown 42\n", buf.String())
}
