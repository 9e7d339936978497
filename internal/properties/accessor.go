// Package properties reads, navigates and rewrites the JSON properties file
// that describes a test-automation run.
package properties

import "strings"

// Document is a decoded properties file. Nested objects are
// map[string]interface{}, arrays are []interface{}, numbers are json.Number.
type Document = map[string]interface{}

// PathSeparator splits a dotted property path into segments.
const PathSeparator = "."

// IsNested reports whether path addresses a property below the top level.
// Top-level keys containing a literal dot therefore cannot be addressed.
func IsNested(path string) bool {
	return strings.Contains(path, PathSeparator)
}

// Get walks node one segment at a time and returns the value at path.
// The boolean is false as soon as a segment is absent or its parent is not an
// object, so a present null, false, 0 or "" is still reported as found.
// Array elements are not addressable; a numeric segment is an object key.
func Get(node interface{}, path string) (interface{}, bool) {
	current := node
	for _, segment := range strings.Split(path, PathSeparator) {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Has reports whether every segment of path is present as a key.
func Has(node interface{}, path string) bool {
	_, ok := Get(node, path)
	return ok
}

// Set assigns value at path, creating empty objects for intermediate
// segments that are absent or do not hold an object. Set never fails.
func Set(doc Document, path string, value interface{}) {
	segments := strings.Split(path, PathSeparator)
	current := doc
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

// Lookup resolves path against doc, using a plain top-level key lookup for
// flat paths and the segment walk for dotted ones.
func Lookup(doc Document, path string) (interface{}, bool) {
	if !IsNested(path) {
		value, ok := doc[path]
		return value, ok
	}
	return Get(doc, path)
}

// Assign writes value at path, flat or nested.
func Assign(doc Document, path string, value interface{}) {
	if !IsNested(path) {
		doc[path] = value
		return
	}
	Set(doc, path, value)
}
