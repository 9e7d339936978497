package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"provardx-cli/internal/properties"
)

// anyItem stands for an array index in declaration paths.
const anyItem = "*"

// declarationOrder maps every dotted property path declared in a schema to
// its position among its siblings. Array item properties are keyed with
// anyItem in place of the index.
type declarationOrder map[string]int

// newDeclarationOrder reads the property order of raw. The order is taken
// from the schema text since decoded maps do not keep it.
func newDeclarationOrder(raw []byte) (declarationOrder, error) {
	order := declarationOrder{}
	if err := order.walk(raw, ""); err != nil {
		return nil, fmt.Errorf("failed to read property order: %w", err)
	}
	return order, nil
}

func (o declarationOrder) walk(raw json.RawMessage, prefix string) error {
	var node struct {
		Properties json.RawMessage `json:"properties"`
		Items      json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &node); err != nil {
		return err
	}

	if len(node.Items) > 0 && node.Items[0] == '{' {
		if err := o.walk(node.Items, joinPath(prefix, anyItem)); err != nil {
			return err
		}
	}
	if len(node.Properties) == 0 {
		return nil
	}

	keys, err := objectKeys(node.Properties)
	if err != nil {
		return err
	}
	var children map[string]json.RawMessage
	if err := json.Unmarshal(node.Properties, &children); err != nil {
		return err
	}

	for i, key := range keys {
		path := joinPath(prefix, key)
		o[path] = i
		if err := o.walk(children[key], path); err != nil {
			return err
		}
	}
	return nil
}

// objectKeys returns the keys of a JSON object in document order
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil {
		return nil, err
	} else if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// rank returns one sort position per segment of a dotted property name.
// Array indexes rank by value and undeclared names rank after declared ones.
func (o declarationOrder) rank(name string) []int {
	if name == "" {
		return nil
	}

	segments := strings.Split(name, properties.PathSeparator)
	ranks := make([]int, len(segments))
	declared := ""
	for i, segment := range segments {
		if index, err := strconv.Atoi(segment); err == nil {
			declared = joinPath(declared, anyItem)
			ranks[i] = index
			continue
		}
		declared = joinPath(declared, segment)
		if position, ok := o[declared]; ok {
			ranks[i] = position
		} else {
			ranks[i] = math.MaxInt32
		}
	}
	return ranks
}

// less orders two property names by declaration, parents before children
func (o declarationOrder) less(a, b string) bool {
	ra, rb := o.rank(a), o.rank(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		if ra[i] != rb[i] {
			return ra[i] < rb[i]
		}
	}
	return len(ra) < len(rb)
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + properties.PathSeparator + segment
}
