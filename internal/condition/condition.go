// Package condition holds the visibility-condition configuration attached to
// a block plugin (e.g. "request_path" with a list of pages, or "user_role").
// Evaluating conditions against a request is not done here.
package condition

import (
	"maps"
	"slices"
)

// Set is a collection of condition configurations keyed by condition id.
type Set struct {
	conditions map[string]map[string]any
}

// NewSet builds a Set from a "visibility" settings value. Entries that are
// not maps are kept as an empty configuration for that condition id.
func NewSet(cfg map[string]any) *Set {
	s := &Set{conditions: make(map[string]map[string]any, len(cfg))}
	for id, raw := range cfg {
		c, _ := raw.(map[string]any)
		s.conditions[id] = CloneConfig(c)
	}
	return s
}

// IDs returns the condition ids in sorted order.
func (s *Set) IDs() []string {
	return slices.Sorted(maps.Keys(s.conditions))
}

// Get returns a copy of one condition's configuration.
func (s *Set) Get(id string) (map[string]any, bool) {
	c, ok := s.conditions[id]
	if !ok {
		return nil, false
	}
	return CloneConfig(c), true
}

// Len returns the number of conditions.
func (s *Set) Len() int { return len(s.conditions) }

// Configuration returns a snapshot of every condition's configuration.
// Mutating the result does not affect the Set.
func (s *Set) Configuration() map[string]any {
	out := make(map[string]any, len(s.conditions))
	for id, c := range s.conditions {
		out[id] = CloneConfig(c)
	}
	return out
}

// CloneConfig deep-copies a configuration map. Nested maps and []any slices
// are copied; other values are shared. A nil map yields an empty one.
func CloneConfig(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneConfig(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
