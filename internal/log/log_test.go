package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSections(t *testing.T) {
	SetLevel(slog.LevelDebug)
	SetSections("check.unify")
	t.Cleanup(func() {
		SetLevel(slog.LevelWarn)
		SetSections("check", "cli")
	})

	buf := &bytes.Buffer{}
	logger := New(buf)

	logger.Debug("dropped", "section", "cli")
	assert.Empty(t, buf.String())

	logger.Debug("kept", "section", "check.unify.records")
	assert.Contains(t, buf.String(), "msg=kept")

	buf.Reset()
	logger.With("section", "check.unify").Debug("kept from With")
	assert.Contains(t, buf.String(), "kept from With")

	buf.Reset()
	logger.Warn("warnings are always kept", "section", "cli")
	assert.Contains(t, buf.String(), "warnings are always kept")
	assert.NotContains(t, buf.String(), "time=")
}

func TestLevel(t *testing.T) {
	SetLevel(slog.LevelError)
	t.Cleanup(func() { SetLevel(slog.LevelWarn) })

	buf := &bytes.Buffer{}
	New(buf).Warn("below the level")
	assert.Empty(t, buf.String())
}
