package models

import (
	"bytes"
	"encoding/json"
)

// ErrorRecord is a single domain failure reported by a command
type ErrorRecord struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CommandResult is the envelope every command returns or prints
type CommandResult struct {
	Success bool          `json:"success"`
	Value   interface{}   `json:"value,omitempty"`
	Errors  []ErrorRecord `json:"errors,omitempty"`

	// HasValue marks Value as present even when it is nil, so a property
	// holding null is reported as "value": null.
	HasValue bool `json:"-"`
}

// MarshalJSON writes value whenever it is present, including null, and
// leaves HTML characters unescaped.
func (r CommandResult) MarshalJSON() ([]byte, error) {
	envelope := struct {
		Success bool          `json:"success"`
		Value   *interface{}  `json:"value,omitempty"`
		Errors  []ErrorRecord `json:"errors,omitempty"`
	}{
		Success: r.Success,
		Errors:  r.Errors,
	}
	if r.HasValue || r.Value != nil {
		value := r.Value
		envelope.Value = &value
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(envelope); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
