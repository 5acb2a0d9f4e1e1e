package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffMapKeys(t *testing.T) {
	tests := []struct {
		name          string
		old           map[string]int
		new           map[string]int
		wantIncreased []string
		wantMissing   []string
		wantShared    []string
	}{
		{
			name: "both empty",
		},
		{
			name:          "only additions",
			old:           map[string]int{"a": 1},
			new:           map[string]int{"a": 2, "c": 3, "b": 4},
			wantIncreased: []string{"b", "c"},
			wantShared:    []string{"a"},
		},
		{
			name:          "mixed",
			old:           map[string]int{"a": 1, "b": 2, "d": 4},
			new:           map[string]int{"b": 2, "c": 3, "d": 5},
			wantIncreased: []string{"c"},
			wantMissing:   []string{"a"},
			wantShared:    []string{"b", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DiffMapKeys(tt.old, tt.new)
			assert.Equal(t, tt.wantIncreased, d.IncreasedKeys())
			assert.Equal(t, tt.wantMissing, d.MissingKeys())
			assert.Equal(t, tt.wantShared, d.SharedKeys)
			assert.Equal(t, len(tt.wantIncreased) == 0 && len(tt.wantMissing) == 0, d.IsUnchanged())
		})
	}
}

func TestDiffMapKeys_PartitionDuality(t *testing.T) {
	pairs := [][2]map[string]bool{
		{{"a": true, "b": true}, {"b": true, "c": true}},
		{{}, {"x": true}},
		{{"x": true, "y": true}, {}},
		{{"same": true}, {"same": true}},
	}
	for _, p := range pairs {
		forward := DiffMapKeys(p[0], p[1])
		backward := DiffMapKeys(p[1], p[0])
		assert.Equal(t, forward.IncreasedKeys(), backward.MissingKeys())
		assert.Equal(t, forward.MissingKeys(), backward.IncreasedKeys())
		assert.Equal(t, forward.SharedKeys, backward.SharedKeys)
	}
}

func TestListDiff(t *testing.T) {
	increased, missing, shared := ListDiff([]string{"a", "b", "c"}, []string{"c", "d", "a"})
	assert.Equal(t, []string{"d"}, increased)
	assert.Equal(t, []string{"b"}, missing)
	assert.Equal(t, []string{"a", "c"}, shared)
}

func TestListDiff_DuplicatesCollapse(t *testing.T) {
	increased, missing, shared := ListDiff([]int{1, 1, 2, 2}, []int{2, 3, 3})
	assert.Equal(t, []int{3}, increased)
	assert.Equal(t, []int{1}, missing)
	assert.Equal(t, []int{2}, shared)
}

func TestListDiffBy(t *testing.T) {
	type item struct{ id, label string }
	old := []item{{"1", "one"}, {"2", "two"}}
	new := []item{{"2", "deux"}, {"3", "trois"}}

	increased, missing, shared := ListDiffBy(old, new, func(i item) string { return i.id })
	assert.Equal(t, []item{{"3", "trois"}}, increased)
	assert.Equal(t, []item{{"1", "one"}}, missing)
	// shared elements come from the old list
	assert.Equal(t, []item{{"2", "two"}}, shared)
}
