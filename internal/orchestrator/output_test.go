package orchestrator

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provardx-cli/internal/report"
	"provardx-cli/pkg/models"
)

func TestFormat(t *testing.T) {
	agg := report.NewAggregator()
	assert.Equal(t, models.CommandResult{Success: true, Value: "x"}, Format(agg, "x"))

	found := FormatFound(agg, nil)
	assert.True(t, found.Success)
	assert.True(t, found.HasValue)

	agg.Add(report.CodeMissingFile, report.MsgMissingFile)
	assert.False(t, FormatFound(agg, nil).HasValue)
	result := Format(agg, "ignored")
	assert.False(t, result.Success)
	assert.Nil(t, result.Value)
	assert.Len(t, result.Errors, 1)
}

func TestFormatter_JSON(t *testing.T) {
	tests := []struct {
		name   string
		result models.CommandResult
		want   string
	}{
		{
			name:   "success without value",
			result: models.CommandResult{Success: true},
			want:   `{"success":true}`,
		},
		{
			name:   "success with value",
			result: models.CommandResult{Success: true, Value: map[string]interface{}{"metadataLevel": "Reuse"}},
			want:   `{"success":true,"value":{"metadataLevel":"Reuse"}}`,
		},
		{
			name:   "present null value",
			result: models.CommandResult{Success: true, HasValue: true},
			want:   `{"success":true,"value":null}`,
		},
		{
			name:   "url value is not escaped",
			result: models.CommandResult{Success: true, Value: "https://example.com/?a=b&c=d", HasValue: true},
			want:   `{"success":true,"value":"https://example.com/?a=b&c=d"}`,
		},
		{
			name: "failure is data",
			result: models.CommandResult{Errors: []models.ErrorRecord{
				{Code: "MISSING_FILE", Message: report.MsgMissingFile},
			}},
			want: `{"success":false,"errors":[{"code":"MISSING_FILE","message":"The properties file has not been loaded or cannot be accessed."}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := NewFormatter(&out, true).Render(tt.result, MsgValidated)
			require.NoError(t, err)

			assert.JSONEq(t, tt.want, out.String())
			assert.NotContains(t, out.String(), `\u0026`)
			assert.NotContains(t, out.String(), MsgValidated)
		})
	}
}

func TestFormatter_Human(t *testing.T) {
	t.Run("success message then value", func(t *testing.T) {
		var out bytes.Buffer
		err := NewFormatter(&out, false).Render(models.CommandResult{Success: true, Value: "/opt/provar"}, "")
		require.NoError(t, err)
		assert.Equal(t, "/opt/provar\n", out.String())
	})

	t.Run("structured value is printed as json", func(t *testing.T) {
		var out bytes.Buffer
		value := map[string]interface{}{"webBrowser": "Chrome", "count": json.Number("2")}
		err := NewFormatter(&out, false).Render(models.CommandResult{Success: true, Value: value}, "")
		require.NoError(t, err)
		assert.JSONEq(t, `{"webBrowser":"Chrome","count":2}`, out.String())
	})

	t.Run("present null is printed", func(t *testing.T) {
		var out bytes.Buffer
		err := NewFormatter(&out, false).Render(models.CommandResult{Success: true, HasValue: true}, "")
		require.NoError(t, err)
		assert.Equal(t, "null", strings.TrimSpace(out.String()))
	})

	t.Run("success message", func(t *testing.T) {
		var out bytes.Buffer
		err := NewFormatter(&out, false).Render(models.CommandResult{Success: true}, MsgLoaded)
		require.NoError(t, err)
		assert.Contains(t, out.String(), MsgLoaded)
	})

	t.Run("failure becomes a command error", func(t *testing.T) {
		var out bytes.Buffer
		records := []models.ErrorRecord{{Code: "MALFORMED_FILE", Message: report.MsgMalformedFile}}
		err := NewFormatter(&out, false).Render(models.CommandResult{Errors: records}, MsgValidated)

		var cmdErr *CommandError
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, records, cmdErr.Records)
		assert.Empty(t, out.String())
	})
}
