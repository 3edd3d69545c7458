package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/rv/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated
// testing, with NO_COLOR set for deterministic output without ANSI codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("some message")
	assert.Contains(t, buf.String(), "some message")
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("some warning")
	assert.Contains(t, buf.String(), "some warning")
}

func TestLogger_Error_Simple(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(errors.New("boom"))
	assert.Contains(t, buf.String(), "Error: boom")
}

func TestLogger_Error_ZerrChain(t *testing.T) {
	lg, buf := newTestLogger(t)
	err := zerr.Wrap(
		zerr.Wrap(errors.New("database connection failed"), "failed to load user data"),
		"failed to process request",
	)
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, "Error: failed to process request")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "failed to load user data")
	assert.Contains(t, out, "database connection failed")
}

func TestLogger_Error_StdlibChain(t *testing.T) {
	innerErr := errors.New("connection refused")
	middleErr := fmt.Errorf("failed to connect to database: %w", innerErr)
	outerErr := fmt.Errorf("failed to initialize service: %w", middleErr)

	lg, buf := newTestLogger(t)
	lg.Error(outerErr)

	// errors.New/fmt.Errorf don't implement messager, so the chain stops
	// at the first non-zerr error and its full Error() string is used.
	assert.Contains(t, buf.String(), "failed to initialize service: failed to connect to database: connection refused")
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String(), "nil error should produce no output")
}

func TestLogger_SetJSON(t *testing.T) {
	tests := []struct {
		name     string
		jsonMode bool
	}{
		{name: "JSON mode enabled", jsonMode: true},
		{name: "JSON mode disabled", jsonMode: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.SetJSON(tt.jsonMode)
			lg.Error(errors.New("test error message"))

			out := buf.String()
			if tt.jsonMode {
				assert.Contains(t, out, `"error"`)
				assert.Contains(t, out, `"level":"ERROR"`)
				assert.NotContains(t, out, "✗")
			} else {
				assert.Contains(t, out, "✗")
				assert.NotContains(t, out, `"error"`)
			}
		})
	}
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("error in pretty mode"))
	prettyOutput := buf.String()
	buf.Reset()

	lg.SetJSON(true)
	lg.Error(errors.New("error in json mode"))
	jsonOutput := buf.String()
	buf.Reset()

	lg.SetJSON(false)
	lg.Error(errors.New("error back in pretty mode"))
	backToPrettyOutput := buf.String()

	assert.Contains(t, prettyOutput, "✗")
	assert.NotContains(t, prettyOutput, `"error"`)

	assert.Contains(t, jsonOutput, `"error"`)
	assert.NotContains(t, jsonOutput, "✗")

	assert.Contains(t, backToPrettyOutput, "✗")
	assert.NotContains(t, backToPrettyOutput, `"error"`)
}

func TestLogger_SetOutput(t *testing.T) {
	tests := []struct {
		name   string
		writer *bytes.Buffer
	}{
		{name: "valid buffer", writer: &bytes.Buffer{}},
		{name: "nil writer defaults to stderr", writer: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				lg := logger.New().(*logger.Logger)
				lg.SetOutput(tt.writer)
			})
		})
	}
}

func TestLogger_New(t *testing.T) {
	lg := logger.New()
	require.NotNil(t, lg)
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	done := make(chan bool, 6)
	go func() { lg.Info("concurrent info"); done <- true }()
	go func() { lg.Warn("concurrent warn"); done <- true }()
	go func() { lg.Error(errors.New("concurrent error")); done <- true }()
	go func() { lg.SetJSON(true); done <- true }()
	go func() { lg.SetJSON(false); done <- true }()
	go func() { lg.SetOutput(&bytes.Buffer{}); done <- true }()

	for i := 0; i < 6; i++ {
		<-done
	}
}
