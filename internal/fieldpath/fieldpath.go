// Package fieldpath reads and updates nested document fields addressed by
// dotted paths ("address.city", "identityDocument.number"). Updates are
// copy-on-write: every map along the path is shallow-copied, so sibling
// fields and the original document are never disturbed.
package fieldpath

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotObject = errors.New("fieldpath: segment is not an object")

// Get resolves path against doc. The second return reports whether every
// segment resolved; a missing key anywhere yields (nil, false).
func Get(doc map[string]any, path string) (any, bool) {
	if doc == nil || path == "" {
		return nil, false
	}
	segments := strings.Split(path, ".")
	current := any(doc)
	for _, segment := range segments {
		obj, ok := current.(map[string]any)
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

// Set returns a new document with value placed at path. Intermediate
// objects are created as needed; there is no depth cap. Traversing through
// an existing non-object value is an error rather than a silent no-op.
func Set(doc map[string]any, path string, value any) (map[string]any, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrNotObject)
	}
	segments := strings.Split(path, ".")
	return setSegments(doc, segments, value, path)
}

func setSegments(doc map[string]any, segments []string, value any, full string) (map[string]any, error) {
	out := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}

	head := segments[0]
	if len(segments) == 1 {
		out[head] = value
		return out, nil
	}

	var child map[string]any
	switch existing := out[head].(type) {
	case nil:
		child = map[string]any{}
	case map[string]any:
		child = existing
	default:
		return nil, fmt.Errorf("%w: %q in path %q", ErrNotObject, head, full)
	}

	updated, err := setSegments(child, segments[1:], value, full)
	if err != nil {
		return nil, err
	}
	out[head] = updated
	return out, nil
}

// IsEmpty reports whether a resolved value counts as unfilled for
// completion purposes: nil, blank strings, and empty slices/maps are
// empty; numbers and booleans always count as filled.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
