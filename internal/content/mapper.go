package content

import "strings"

// The storage layer speaks snake_case column names; the UI consumes a
// camelCase content tree. These transforms walk arbitrary JSON-shaped values
// (maps, slices, scalars) and rename every map key. No schema validation is
// performed: unknown keys are renamed and passed through, which the editor
// relies on.

// ToContentTree converts snake_case keys to camelCase, recursively.
func ToContentTree(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[camelKey(k)] = ToContentTree(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = ToContentTree(child)
		}
		return out
	default:
		return v
	}
}

// ToStorage converts camelCase keys to snake_case, recursively.
func ToStorage(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[snakeKey(k)] = ToStorage(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = ToStorage(child)
		}
		return out
	default:
		return v
	}
}

// camelKey rewrites each underscore followed by a lowercase ASCII letter to
// the uppercased letter. Other characters, including digits and a trailing
// underscore, pass through unchanged.
func camelKey(k string) string {
	if !strings.Contains(k, "_") {
		return k
	}
	var b strings.Builder
	b.Grow(len(k))
	for i := 0; i < len(k); i++ {
		if k[i] == '_' && i+1 < len(k) && k[i+1] >= 'a' && k[i+1] <= 'z' {
			b.WriteByte(k[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(k[i])
	}
	return b.String()
}

// snakeKey rewrites each uppercase ASCII letter to an underscore followed by
// its lowercase form.
func snakeKey(k string) string {
	var b strings.Builder
	b.Grow(len(k) + 2)
	for i := 0; i < len(k); i++ {
		if k[i] >= 'A' && k[i] <= 'Z' {
			b.WriteByte('_')
			b.WriteByte(k[i] - 'A' + 'a')
			continue
		}
		b.WriteByte(k[i])
	}
	return b.String()
}
