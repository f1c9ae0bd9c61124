package testutil

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLogger captures provider log output in memory so tests can check that
// expected messages appear and secret values do not.
//
// Example usage:
//
//	logger := testutil.NewTestLogger(t, true)
//	p := secretsmanager.New(secretsmanager.WithLogger(logger))
//	...
//	logger.AssertNotContains(t, "hunter2")
type TestLogger struct {
	buffer bytes.Buffer
	debug  bool
	mu     sync.Mutex
}

// NewTestLogger creates a TestLogger. Debug lines are kept only when debug
// is true.
func NewTestLogger(t *testing.T, debug bool) *TestLogger {
	t.Helper()
	return &TestLogger{debug: debug}
}

// Info logs an informational message.
func (l *TestLogger) Info(format string, args ...interface{}) {
	l.write("✓", format, args)
}

// Debug logs a debug message if debug mode is enabled.
func (l *TestLogger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.write("[DEBUG]", format, args)
}

func (l *TestLogger) write(marker, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(&l.buffer, "%s %s\n", marker, fmt.Sprintf(format, args...))
}

// Output returns everything logged so far.
func (l *TestLogger) Output() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buffer.String()
}

// AssertContains asserts that the log output contains substr.
func (l *TestLogger) AssertContains(t *testing.T, substr string) {
	t.Helper()
	assert.Contains(t, l.Output(), substr, "log output should contain %q", substr)
}

// AssertNotContains asserts that the log output does not contain substr.
// Use it to prove a secret value never reached the log.
func (l *TestLogger) AssertNotContains(t *testing.T, substr string) {
	t.Helper()
	assert.NotContains(t, l.Output(), substr, "log output should not contain %q", substr)
}

// Lines returns the non-empty log lines.
func (l *TestLogger) Lines() []string {
	var lines []string
	for _, line := range strings.Split(l.Output(), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
