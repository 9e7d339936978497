package properties

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/pretty"
)

var (
	// ErrNotObject is returned when the file holds valid JSON that is not an object.
	ErrNotObject = errors.New("properties file must contain a JSON object")

	// ErrTrailingData is returned when more than one JSON value is present.
	ErrTrailingData = errors.New("unexpected data after the JSON object")
)

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Decode parses data into a Document, keeping numbers as json.Number so
// rewriting the file does not change their representation.
func Decode(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotObject
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, ErrTrailingData
	}
	return doc, nil
}

// IsMalformed reports whether err came from parsing invalid properties JSON.
// Any other error is not a content problem and should be propagated.
func IsMalformed(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return true
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true
	case errors.Is(err, ErrNotObject), errors.Is(err, ErrTrailingData):
		return true
	}
	return false
}

// Encode renders doc as indented JSON without HTML escaping, so URLs and
// connection strings are written back exactly as they were read.
func Encode(doc Document) ([]byte, error) {
	return EncodeValue(doc)
}

// EncodeValue renders any JSON value the way Encode renders documents.
func EncodeValue(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("failed to encode properties: %w", err)
	}
	return pretty.PrettyOptions(buf.Bytes(), prettyOptions), nil
}

// ReadFile reads and decodes the properties file at path. Filesystem errors
// are returned unwrapped so callers can classify them with errors.Is.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// WriteFile encodes doc and replaces the file at path.
func WriteFile(path string, doc Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseValue interprets a command-line value as JSON when it parses as a
// single JSON value, and as a plain string otherwise.
func ParseValue(raw string) interface{} {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return raw
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return raw
	}
	return value
}
