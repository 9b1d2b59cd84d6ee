package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrScraperBusy is returned when a collector run is requested while a
// previous invocation is still in flight. Only one collector process may
// run per service process
var ErrScraperBusy = errors.New("scraper is already running")

// ProcessError reports a collector process that launched but exited non-zero,
// or failed to launch at all (ExitCode -1)
type ProcessError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scraper failed to launch: %v", e.Err)
	}
	return fmt.Sprintf("scraper exited with code %d", e.ExitCode)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Runner invokes the external collector command. The collector reads and
// writes the shared store directly; its only contract with us is the exit
// status plus free-text stdout/stderr
type Runner struct {
	command []string
	timeout time.Duration

	mu sync.Mutex
}

// NewRunner creates a runner for the given command line.
// A timeout of zero disables the bound
func NewRunner(command string, timeout time.Duration) *Runner {
	return &Runner{
		command: strings.Fields(command),
		timeout: timeout,
	}
}

// Run launches the collector once and waits for it to terminate. Stdout and
// stderr are captured in full and logged; a non-empty stderr alone is not a
// failure, many collectors emit warnings there. No retries are attempted
func (r *Runner) Run(ctx context.Context) error {
	if !r.mu.TryLock() {
		return ErrScraperBusy
	}
	defer r.mu.Unlock()

	if len(r.command) == 0 {
		return &ProcessError{ExitCode: -1, Err: errors.New("no scraper command configured")}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	log.Infof("Launching scraper: %s", strings.Join(r.command, " "))
	start := time.Now()

	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if out := strings.TrimSpace(stdout.String()); out != "" {
		log.Infof("Scraper stdout:\n%s", out)
	}
	if errOut := strings.TrimSpace(stderr.String()); errOut != "" {
		log.Warnf("Scraper stderr:\n%s", errOut)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Errorf("Scraper exited with code %d after %v", exitErr.ExitCode(), time.Since(start))
			return &ProcessError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		log.Errorf("Scraper failed to launch: %v", err)
		return &ProcessError{ExitCode: -1, Stderr: stderr.String(), Err: err}
	}

	log.Infof("Scraper completed successfully in %v", time.Since(start))
	return nil
}
