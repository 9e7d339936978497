package orchestrator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"provardx-cli/internal/report"
	"provardx-cli/pkg/models"
)

func TestProvarError(t *testing.T) {
	cause := errors.New("unexpected character")
	err := NewConfigurationError("failed to read config.json", cause)

	assert.ErrorIs(t, err, ErrConfigurationInvalid)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "configuration error: failed to read config.json")
	assert.Contains(t, err.Error(), "PROVARDX_CONFIG_DIR")
}

func TestNewConfigurationError_PermissionGuidance(t *testing.T) {
	err := NewConfigurationError("failed to save", fmt.Errorf("open: %w", fs.ErrPermission))
	assert.Contains(t, err.Guidance, "permissions")
}

func TestProvarError_MatchesTypeAndCause(t *testing.T) {
	cause := fmt.Errorf("read: %w", fs.ErrPermission)
	err := fmt.Errorf("load: %w", NewPropertiesFileError("/work/props.json", cause))

	assert.ErrorIs(t, err, ErrPropertiesFile)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NotErrorIs(t, err, ErrExternalTool)
}

func TestProvarError_WithoutGuidance(t *testing.T) {
	err := &ProvarError{Type: ErrExternalTool, Message: "boom"}
	assert.Equal(t, "external tool error: boom", err.Error())
}

func TestCommandError(t *testing.T) {
	err := NewCommandError([]models.ErrorRecord{
		{Code: "MISSING_PROPERTY", Message: "The property 'provarHome' is missing."},
		{Code: "INVALID_VALUE", Message: "The property 'metadata.metadataLevel' value is not valid."},
	})

	assert.Equal(t,
		"Error (1): [MISSING_PROPERTY] The property 'provarHome' is missing. "+
			"[INVALID_VALUE] The property 'metadata.metadataLevel' value is not valid.",
		err.Error())
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.NotErrorIs(t, err, ErrConfigurationInvalid)
	assert.Contains(t, err.Suggestion(), "config set")

	var target *CommandError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, 1, target.ExitCode)
}

func TestCommandError_Suggestion(t *testing.T) {
	tests := []struct {
		code report.ErrorCode
		want string
	}{
		{code: report.CodeMissingFile, want: "config load"},
		{code: report.CodeMalformedFile, want: "config generate"},
		{code: report.CodeGenerateOperationDenied, want: "--no-prompt"},
		{code: report.CodeDownloadError, want: ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := NewCommandError([]models.ErrorRecord{{Code: string(tt.code), Message: "x"}})
			if tt.want == "" {
				assert.Empty(t, err.Suggestion())
				return
			}
			assert.Contains(t, err.Suggestion(), tt.want)
		})
	}

	assert.Empty(t, NewCommandError(nil).Suggestion())
}

func TestClassifyFSError(t *testing.T) {
	_, notExist := os.Stat(filepath.Join(t.TempDir(), "absent.json"))

	tests := []struct {
		name   string
		err    error
		want   report.ErrorCode
		wantOK bool
	}{
		{name: "not exist", err: notExist, want: report.CodeInvalidPath, wantOK: true},
		{name: "permission", err: &fs.PathError{Op: "open", Path: "/root/x", Err: fs.ErrPermission}, want: report.CodeInsufficientPermissions, wantOK: true},
		{name: "unrecognized", err: errors.New("disk on fire"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg, ok := classifyFSError(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, code)
			if ok {
				assert.NotEmpty(t, msg)
			}
		})
	}
}
