package cachetag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   [][]string
		want []string
	}{
		{name: "nothing", in: nil, want: []string{}},
		{name: "single set is sorted", in: [][]string{{"theme:bartik", "block:1"}}, want: []string{"block:1", "theme:bartik"}},
		{name: "union drops duplicates", in: [][]string{{"block:1"}, {"theme:bartik", "block:1"}}, want: []string{"block:1", "theme:bartik"}},
		{name: "empty tags dropped", in: [][]string{{"", "block:1"}}, want: []string{"block:1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Merge(tc.in...))
		})
	}
}

func TestTag(t *testing.T) {
	assert.Equal(t, "theme:bartik", Tag("theme", "bartik"))
}

func TestMemoryBus_ChecksumChangesOnInvalidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	bus := NewMemoryBus()

	tags := []string{"block:1", "theme:bartik"}
	before := bus.Checksum(tags)

	bus.Invalidate(ctx, "theme:bartik")
	assert.NotEqual(t, before, bus.Checksum(tags))
	assert.Equal(t, before, bus.Checksum([]string{"block:1"}), "unrelated tags keep their checksum")

	require.Equal(t, [][]string{{"theme:bartik"}}, bus.Invalidations())
}

func TestMemoryBus_EmptyInvalidationIsIgnored(t *testing.T) {
	t.Parallel()
	bus := NewMemoryBus()

	bus.Invalidate(context.Background())
	bus.Invalidate(context.Background(), "")
	assert.Empty(t, bus.Invalidations())
}

func TestMemoryBus_Reset(t *testing.T) {
	t.Parallel()
	bus := NewMemoryBus()
	bus.Invalidate(context.Background(), "block:1")
	checksum := bus.Checksum([]string{"block:1"})

	bus.Reset()
	assert.Empty(t, bus.Invalidations())
	assert.Equal(t, checksum, bus.Checksum([]string{"block:1"}))
}

func TestRenderCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	bus := NewMemoryBus()
	cache := NewRenderCache(bus)

	_, ok := cache.Get("page")
	require.False(t, ok)

	cache.Set("page", "<html>", []string{"block:1", "theme:bartik"})
	v, ok := cache.Get("page")
	require.True(t, ok)
	assert.Equal(t, "<html>", v)

	bus.Invalidate(ctx, "theme:seven")
	_, ok = cache.Get("page")
	assert.True(t, ok, "other themes do not affect the entry")

	bus.Invalidate(ctx, "theme:bartik")
	_, ok = cache.Get("page")
	assert.False(t, ok, "invalidating a member tag makes the entry stale")
}
