package report

import (
	"fmt"
	"strings"

	"provardx-cli/pkg/models"
)

// Aggregator accumulates error records over one command invocation.
// Records are kept in insertion order and never deduplicated.
type Aggregator struct {
	records []models.ErrorRecord
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add appends a record.
func (a *Aggregator) Add(code ErrorCode, message string) {
	a.records = append(a.records, models.ErrorRecord{Code: string(code), Message: message})
}

// Errors returns the accumulated records. Callers must not modify the slice.
func (a *Aggregator) Errors() []models.ErrorRecord {
	return a.records
}

// Success reports whether no record has been added.
func (a *Aggregator) Success() bool {
	return len(a.records) == 0
}

// DisplayLines formats each record as "[CODE] message".
func (a *Aggregator) DisplayLines() []string {
	return DisplayLines(a.records)
}

// DisplayLines formats records as "[CODE] message".
func DisplayLines(records []models.ErrorRecord) []string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("[%s] %s", r.Code, r.Message))
	}
	return lines
}

// AddMissing records the given property names as missing: one
// MISSING_PROPERTY record for a single name, one MISSING_PROPERTIES record
// listing every name otherwise. An empty list adds nothing.
func (a *Aggregator) AddMissing(names []string) {
	switch len(names) {
	case 0:
	case 1:
		a.Add(CodeMissingProperty, fmt.Sprintf("The property %s is missing.", quote(names[0])))
	default:
		a.Add(CodeMissingProperties, fmt.Sprintf("The properties %s are missing.", quoteList(names)))
	}
}

// AddInvalid records the given property names as holding invalid values,
// following the same singular/plural split as AddMissing.
func (a *Aggregator) AddInvalid(names []string) {
	switch len(names) {
	case 0:
	case 1:
		a.Add(CodeInvalidValue, fmt.Sprintf("The property %s value is not valid.", quote(names[0])))
	default:
		a.Add(CodeInvalidValues, fmt.Sprintf("The properties %s values are not valid.", quoteList(names)))
	}
}

func quote(name string) string {
	return "'" + name + "'"
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(n)
	}
	return strings.Join(quoted, ", ")
}
