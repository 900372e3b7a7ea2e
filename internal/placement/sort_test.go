package placement

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(t *testing.T, id string, status bool, region string, weight int, label string) *Record {
	t.Helper()
	r, _ := newRecord(t, Params{
		ID: id, Status: status, Region: region, Weight: weight,
		Settings: map[string]any{"label": label},
	}, nil)
	return r
}

func ids(records []*Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID()
	}
	return out
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestCompare_DisabledSortsLast(t *testing.T) {
	t.Parallel()

	enabled := rec(t, "e", true, RegionNone, 100, "Zed")
	disabled := rec(t, "d", false, "header", -100, "Aardvark")

	assert.Equal(t, -1, sign(Compare(enabled, disabled)))
	assert.Equal(t, 1, sign(Compare(disabled, enabled)))
}

func TestCompare_WeightWithinRegion(t *testing.T) {
	t.Parallel()

	light := rec(t, "light", true, "header", 5, "Zed")
	heavy := rec(t, "heavy", true, "header", 10, "Apple")

	assert.Negative(t, Compare(light, heavy))
	assert.Positive(t, Compare(heavy, light))
}

func TestCompare_UnplacedIgnoresWeight(t *testing.T) {
	t.Parallel()

	apple := rec(t, "apple", true, RegionNone, 50, "Apple")
	banana := rec(t, "banana", true, RegionNone, -50, "Banana")

	assert.Negative(t, Compare(apple, banana))
	assert.Positive(t, Compare(banana, apple))
}

func TestCompare_EqualWeightFallsBackToLabel(t *testing.T) {
	t.Parallel()

	a := rec(t, "a", true, "header", 0, "Apple")
	b := rec(t, "b", true, "header", 0, "Banana")
	assert.Negative(t, Compare(a, b))
	assert.Zero(t, Compare(a, rec(t, "a2", true, "header", 0, "Apple")))
}

func TestCompare_IsAntisymmetricAndTransitive(t *testing.T) {
	t.Parallel()

	var records []*Record
	i := 0
	for _, status := range []bool{true, false} {
		for _, region := range []string{"header", RegionNone} {
			for _, weight := range []int{-1, 0, 1} {
				for _, label := range []string{"A", "B"} {
					records = append(records, rec(t, fmt.Sprintf("r%d", i), status, region, weight, label))
					i++
				}
			}
		}
	}

	for _, a := range records {
		for _, b := range records {
			require.Equal(t, sign(Compare(a, b)), -sign(Compare(b, a)), "antisymmetry %s/%s", a.ID(), b.ID())
			for _, c := range records {
				if Compare(a, b) <= 0 && Compare(b, c) <= 0 {
					require.LessOrEqual(t, Compare(a, c), 0, "transitivity %s/%s/%s", a.ID(), b.ID(), c.ID())
				}
			}
		}
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	records := []*Record{
		rec(t, "disabled", false, "header", -10, "Aaa"),
		rec(t, "unplaced_b", true, RegionNone, 0, "Banana"),
		rec(t, "heavy", true, "header", 10, "Apple"),
		rec(t, "unplaced_a", true, RegionNone, 99, "Apple"),
		rec(t, "light", true, "header", 5, "Zed"),
	}

	Sort(records)
	assert.Equal(t, []string{"light", "heavy", "unplaced_a", "unplaced_b", "disabled"}, ids(records))
}

func TestGroupByRegion(t *testing.T) {
	t.Parallel()

	groups := GroupByRegion([]*Record{
		rec(t, "h2", true, "header", 2, "B"),
		rec(t, "f1", true, "footer", 0, "F"),
		rec(t, "h1", true, "header", 1, "A"),
		rec(t, "none", true, RegionNone, 0, "N"),
	})

	require.Len(t, groups, 3)
	assert.Equal(t, []string{"h1", "h2"}, ids(groups["header"]))
	assert.Equal(t, []string{"f1"}, ids(groups["footer"]))
	assert.Equal(t, []string{"none"}, ids(groups[RegionNone]))
}
