package interfaces

import "context"

// ProcessOutput is what an external process left behind once it exited
type ProcessOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ProcessRunner starts an external program and waits for it to exit
type ProcessRunner interface {
	// Run executes name with args. A non-zero exit is reported through
	// ProcessOutput.ExitCode, not as an error; err is set only when the
	// process could not be started or waited for.
	Run(ctx context.Context, name string, args ...string) (ProcessOutput, error)
}
