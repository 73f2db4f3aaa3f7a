package formdata

import (
	"io"
	"log/slog"
)

// TestBoundary is the boundary used by NewForTesting.
const TestBoundary = "formdata-test-boundary"

// NewForTesting creates a Builder with a fixed boundary and a silent logger,
// so encoded bodies are reproducible in tests.
func NewForTesting(optFns ...func(*Options)) *Builder {
	defaults := append([]func(*Options){WithBoundary(TestBoundary)}, optFns...)
	return NewWithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)), defaults...)
}
