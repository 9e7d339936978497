package orchestrator

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"

	"provardx-cli/internal/report"
	"provardx-cli/pkg/models"
)

// Error types for failures that are not reported as error records
var (
	ErrConfigurationInvalid = errors.New("configuration error")
	ErrPropertiesFile       = errors.New("properties file error")
	ErrExternalTool         = errors.New("external tool error")
	ErrCommandFailed        = errors.New("command failed")
)

// exitCodeFailure is the process exit code used for reported failures.
const exitCodeFailure = 1

// ProvarError represents an unexpected failure with actionable guidance
type ProvarError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *ProvarError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ProvarError) Unwrap() error {
	return e.Cause
}

// Is matches the error's Type sentinel
func (e *ProvarError) Is(target error) bool {
	return target == e.Type
}

// NewConfigurationError wraps a failure to read or write the CLI's own config.json
func NewConfigurationError(message string, cause error) *ProvarError {
	guidance := "Check that config.json contains valid JSON. " +
		"Set PROVARDX_CONFIG_DIR to use a different configuration directory."

	if errors.Is(cause, fs.ErrPermission) {
		guidance = "Check file permissions for your configuration directory. " +
			"Ensure you have read/write access to ~/.provardx/"
	}

	return &ProvarError{
		Type:     ErrConfigurationInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

// NewPropertiesFileError wraps an unrecognized failure while reading or
// writing a properties file
func NewPropertiesFileError(path string, cause error) *ProvarError {
	return &ProvarError{
		Type:     ErrPropertiesFile,
		Message:  fmt.Sprintf("failed to access '%s': %v", path, cause),
		Guidance: "Ensure the file is a regular file on a local filesystem and try again.",
		Cause:    cause,
	}
}

// NewExternalToolError wraps a failure to prepare an external tool run
func NewExternalToolError(command string, cause error) *ProvarError {
	return &ProvarError{
		Type:     ErrExternalTool,
		Message:  fmt.Sprintf("failed to prepare the %s command: %v", command, cause),
		Guidance: "Check that the temporary directory is writable.",
		Cause:    cause,
	}
}

// CommandError is raised in human-readable mode when a command reported
// one or more error records
type CommandError struct {
	Records  []models.ErrorRecord
	ExitCode int
}

// NewCommandError creates the terminal error for records
func NewCommandError(records []models.ErrorRecord) *CommandError {
	return &CommandError{
		Records:  records,
		ExitCode: exitCodeFailure,
	}
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("Error (%d): %s", e.ExitCode, strings.Join(report.DisplayLines(e.Records), " "))
}

func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// Suggestion returns a follow-up hint for the first record, if one applies
func (e *CommandError) Suggestion() string {
	if len(e.Records) == 0 {
		return ""
	}

	switch report.ErrorCode(e.Records[0].Code) {
	case report.CodeMissingFile:
		return "Run 'provardx config load -p <file>' to select a properties file."
	case report.CodeMalformedFile:
		return "Fix the JSON syntax of the properties file, or regenerate it with 'provardx config generate'."
	case report.CodeMissingProperty, report.CodeMissingProperties, report.CodeInvalidValue, report.CodeInvalidValues:
		return "Use 'provardx config set <property>=<value>' to correct the properties file."
	case report.CodeGenerateOperationDenied:
		return "Pass --no-prompt to overwrite the existing file without confirmation."
	default:
		return ""
	}
}

// classifyFSError maps filesystem failures the user can act on to an error
// code. The boolean is false for any other error, which must be propagated.
func classifyFSError(err error) (report.ErrorCode, string, bool) {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return report.CodeInvalidPath, report.MsgInvalidPath, true
	case errors.Is(err, fs.ErrPermission):
		return report.CodeInsufficientPermissions, report.MsgInsufficientPerms, true
	default:
		return "", "", false
	}
}
