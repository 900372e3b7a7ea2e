// Package cachetag implements cache tags: string labels attached to cached
// output so that it can be invalidated when the data it was built from
// changes.
//
// A tag is conventionally "<kind>:<id>" (e.g. "block:bartik_search" or
// "theme:bartik"), or "<entity_type>_list" for tags that cover every entity
// of one type. Invalidating a tag makes every cached item carrying it stale.
package cachetag

import (
	"context"
	"slices"
)

// Bus accepts tag invalidation requests. Callers do not wait for, or react
// to, the outcome of an invalidation.
type Bus interface {
	Invalidate(ctx context.Context, tags ...string)
}

// Merge returns the sorted union of the given tag sets with duplicates and
// empty tags removed.
func Merge(sets ...[]string) []string {
	size := 0
	for _, s := range sets {
		size += len(s)
	}
	merged := make([]string, 0, size)
	for _, s := range sets {
		for _, tag := range s {
			if tag != "" {
				merged = append(merged, tag)
			}
		}
	}
	slices.Sort(merged)
	return slices.Compact(merged)
}

// Tag builds a "<kind>:<id>" tag.
func Tag(kind, id string) string {
	return kind + ":" + id
}

// NopBus drops every invalidation.
type NopBus struct{}

// Invalidate implements Bus.
func (NopBus) Invalidate(context.Context, ...string) {}
