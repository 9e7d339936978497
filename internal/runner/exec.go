// Package runner starts the external ProvarDX Java tool and extracts the
// failures it reports on its error stream.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"provardx-cli/internal/interfaces"
	"provardx-cli/pkg/logging"
)

// ExecRunner implements the ProcessRunner interface with os/exec
type ExecRunner struct{}

// NewExecRunner creates a new process runner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args and waits for it to exit
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (interfaces.ProcessOutput, error) {
	logging.Debug("Runner", "running %s %s", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := interfaces.ProcessOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		output.ExitCode = exitErr.ExitCode()
		logging.Debug("Runner", "%s exited with code %d", name, output.ExitCode)
		return output, nil
	}
	if err != nil {
		return output, fmt.Errorf("failed to run %s: %w", name, err)
	}
	return output, nil
}

// Scrape returns, for every line of stream containing marker, the text that
// follows the marker with surrounding whitespace removed.
func Scrape(stream, marker string) []string {
	var messages []string
	for _, line := range strings.Split(stream, "\n") {
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		messages = append(messages, strings.TrimSpace(line[idx+len(marker):]))
	}
	return messages
}
