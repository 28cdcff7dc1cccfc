package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRejectsUnknownCommand(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := run(log, "bogus", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a recognized command")
}

func TestRunChecksArgumentCounts(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Error(t, run(log, "list", nil))
	assert.Error(t, run(log, "list", []string{"a", "b"}))
	assert.Error(t, run(log, "create", []string{"only-archive"}))
	assert.Error(t, run(log, "extract", nil))
	assert.Error(t, run(log, "extract", []string{"a", "b", "c"}))
}
