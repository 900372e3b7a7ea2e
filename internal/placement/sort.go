package placement

import (
	"cmp"
	"slices"
	"strings"
)

// Compare orders placements for listing: enabled before disabled, then
// placed before unplaced, then by weight while placed, then by label.
// Unplaced placements ignore their weight.
func Compare(a, b *Record) int {
	if a.Status() != b.Status() {
		if a.Status() {
			return -1
		}
		return 1
	}
	if a.Placed() != b.Placed() {
		if a.Placed() {
			return -1
		}
		return 1
	}
	if a.Placed() {
		if c := cmp.Compare(a.Weight(), b.Weight()); c != 0 {
			return c
		}
	}
	return strings.Compare(a.Label(), b.Label())
}

// Sort orders records in place with Compare. Records that compare equal keep
// their relative order.
func Sort(records []*Record) {
	slices.SortStableFunc(records, Compare)
}

// GroupByRegion splits records by region, each group sorted with Compare.
func GroupByRegion(records []*Record) map[string][]*Record {
	groups := make(map[string][]*Record)
	for _, r := range records {
		groups[r.Region()] = append(groups[r.Region()], r)
	}
	for _, g := range groups {
		Sort(g)
	}
	return groups
}
