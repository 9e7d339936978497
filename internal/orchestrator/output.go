package orchestrator

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"provardx-cli/internal/properties"
	"provardx-cli/internal/report"
	"provardx-cli/pkg/logging"
	"provardx-cli/pkg/models"
)

// Format builds the result envelope for a finished command
func Format(agg *report.Aggregator, value interface{}) models.CommandResult {
	if !agg.Success() {
		return models.CommandResult{Success: false, Errors: agg.Errors()}
	}
	return models.CommandResult{Success: true, Value: value}
}

// FormatFound builds the envelope for a command that looked up a value
// which exists, so a null value is still reported.
func FormatFound(agg *report.Aggregator, value interface{}) models.CommandResult {
	result := Format(agg, value)
	result.HasValue = result.Success
	return result
}

// Formatter writes command results for humans or as JSON
type Formatter struct {
	out          io.Writer
	jsonMode     bool
	successStyle lipgloss.Style
}

// NewFormatter creates a formatter writing to out
func NewFormatter(out io.Writer, jsonMode bool) *Formatter {
	renderer := lipgloss.NewRenderer(out)
	return &Formatter{
		out:          out,
		jsonMode:     jsonMode,
		successStyle: renderer.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	}
}

// Render emits result. In human-readable mode a failed result is returned
// as a *CommandError instead of being printed; in JSON mode every result is
// written as data.
func (f *Formatter) Render(result models.CommandResult, successMessage string) error {
	if f.jsonMode {
		if result.Success && successMessage != "" {
			logging.Info("Output", "%s", successMessage)
		}
		data, err := properties.EncodeValue(result)
		if err != nil {
			return err
		}
		_, err = f.out.Write(data)
		return err
	}

	if !result.Success {
		return NewCommandError(result.Errors)
	}

	if successMessage != "" {
		if _, err := fmt.Fprintln(f.out, f.successStyle.Render(successMessage)); err != nil {
			return err
		}
	}
	if result.HasValue || result.Value != nil {
		return f.writeValue(result.Value)
	}
	return nil
}

// writeValue prints strings verbatim and everything else as JSON
func (f *Formatter) writeValue(value interface{}) error {
	if s, ok := value.(string); ok {
		_, err := fmt.Fprintln(f.out, s)
		return err
	}

	data, err := properties.EncodeValue(value)
	if err != nil {
		return err
	}
	_, err = f.out.Write(data)
	return err
}
