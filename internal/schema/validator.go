// Package schema checks a properties file against the embedded JSON Schema
// and sorts the raw violations into missing and invalid properties.
package schema

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"provardx-cli/internal/properties"
	"provardx-cli/internal/report"
	"provardx-cli/pkg/logging"
)

//go:embed properties.schema.json
var propertiesSchema []byte

// rootContext is the locator prefix the schema library puts on every path.
const rootContext = "(root)"

// Violation kinds reported by the schema library.
const (
	KindRequired    = "required"
	KindEnum        = "enum"
	KindInvalidType = "invalid_type"
)

// Violation is one raw schema failure.
type Violation struct {
	// Kind is the library's violation type, e.g. "required" or "enum".
	Kind string
	// Locator is the dotted path of the offending value, or of the parent
	// object for "required" violations.
	Locator string
	// Argument is the missing child name for "required" violations.
	Argument string
}

// Validator holds the compiled properties-file schema.
type Validator struct {
	schema *gojsonschema.Schema
	order  declarationOrder
}

// NewValidator compiles the embedded properties-file schema
func NewValidator() (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(propertiesSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile properties schema: %w", err)
	}
	order, err := newDeclarationOrder(propertiesSchema)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: compiled, order: order}, nil
}

// Check runs doc through the schema and returns every violation ordered by
// where its property is declared in the schema, parents before children.
func (v *Validator) Check(doc properties.Document) ([]Violation, error) {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to run schema validation: %w", err)
	}

	violations := make([]Violation, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		violation := Violation{
			Kind:    resultErr.Type(),
			Locator: resultErr.Field(),
		}
		if resultErr.Type() == KindRequired {
			violation.Locator = resultErr.Context().String()
			if prop, ok := resultErr.Details()["property"].(string); ok {
				violation.Argument = prop
			}
		}
		violations = append(violations, violation)
	}

	sort.SliceStable(violations, func(i, j int) bool {
		return v.order.less(violations[i].Subject(), violations[j].Subject())
	})
	return violations, nil
}

// Subject returns the dotted name of the property a violation is about.
func (v Violation) Subject() string {
	if v.Kind == KindRequired {
		return joinLocator(v.Locator, v.Argument)
	}
	return stripRoot(v.Locator)
}

// Classify splits violations into missing and invalid property names.
// A name appears at most once per list, at its first position.
func Classify(violations []Violation) (missing []string, invalid []string) {
	seenMissing := map[string]bool{}
	seenInvalid := map[string]bool{}

	for _, violation := range violations {
		switch violation.Kind {
		case KindRequired:
			name := violation.Subject()
			if !seenMissing[name] {
				seenMissing[name] = true
				missing = append(missing, name)
			}
		default:
			name := violation.Subject()
			if name == "" {
				logging.Debug("Schema", "ignoring %s violation on the document root", violation.Kind)
				continue
			}
			if violation.Kind != KindEnum && violation.Kind != KindInvalidType {
				logging.Debug("Schema", "reporting %s violation on %s as an invalid value", violation.Kind, name)
			}
			if !seenInvalid[name] {
				seenInvalid[name] = true
				invalid = append(invalid, name)
			}
		}
	}
	return missing, invalid
}

// Validate checks doc and records the classified failures on agg.
func (v *Validator) Validate(doc properties.Document, agg *report.Aggregator) error {
	violations, err := v.Check(doc)
	if err != nil {
		return err
	}

	missing, invalid := Classify(violations)
	agg.AddMissing(missing)
	agg.AddInvalid(invalid)
	return nil
}

// stripRoot removes the library's root prefix from a locator.
func stripRoot(locator string) string {
	if locator == rootContext {
		return ""
	}
	return strings.TrimPrefix(locator, rootContext+properties.PathSeparator)
}

// joinLocator rebuilds the dotted name of a missing child from the parent
// locator and the child name.
func joinLocator(parent, child string) string {
	parent = stripRoot(parent)
	if parent == "" {
		return child
	}
	return parent + properties.PathSeparator + child
}
