package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run_Success(t *testing.T) {
	runner := NewRunner("true", 0)

	err := runner.Run(context.Background())
	assert.NoError(t, err)
}

func TestRunner_Run_NonZeroExit(t *testing.T) {
	// sh -c needs the script as a single argument; set the command directly
	runner := NewRunner("", 0)
	runner.command = []string{"sh", "-c", "echo scraping >&2; exit 3"}

	err := runner.Run(context.Background())
	require.Error(t, err)

	var procErr *ProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, 3, procErr.ExitCode)
	assert.Contains(t, procErr.Stderr, "scraping")
}

func TestRunner_Run_StderrAloneIsNotFailure(t *testing.T) {
	runner := NewRunner("", 0)
	runner.command = []string{"sh", "-c", "echo 'login warning' >&2; exit 0"}

	err := runner.Run(context.Background())
	assert.NoError(t, err)
}

func TestRunner_Run_LaunchFailure(t *testing.T) {
	runner := NewRunner("definitely-not-a-real-binary-4a2b", 0)

	err := runner.Run(context.Background())
	require.Error(t, err)

	var procErr *ProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, -1, procErr.ExitCode)
	assert.Error(t, procErr.Unwrap())
}

func TestRunner_Run_NoCommandConfigured(t *testing.T) {
	runner := NewRunner("", 0)

	err := runner.Run(context.Background())
	require.Error(t, err)

	var procErr *ProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, -1, procErr.ExitCode)
}

func TestRunner_Run_SingleInFlight(t *testing.T) {
	runner := NewRunner("", 0)
	runner.command = []string{"sleep", "2"}

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(context.Background())
	}()

	// Give the first invocation time to acquire the lock
	time.Sleep(200 * time.Millisecond)

	err := runner.Run(context.Background())
	assert.ErrorIs(t, err, ErrScraperBusy)

	require.NoError(t, <-done)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	runner := NewRunner("sleep 30", 50*time.Millisecond)

	start := time.Now()
	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
