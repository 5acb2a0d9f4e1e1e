package differ

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedDiff_MemoizesReferencedPairs(t *testing.T) {
	c := newRefCache()
	ctx := NewDiffContext().AsRequest()
	calls := 0
	compute := func() (*ValueChange, error) {
		calls++
		return &ValueChange{Field: "f", Level: Compatible}, nil
	}

	first, err := cachedDiff(c, "#/components/schemas/A", "#/components/schemas/A", ctx, compute)
	require.NoError(t, err)
	second, err := cachedDiff(c, "#/components/schemas/A", "#/components/schemas/A", ctx, compute)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.hits)
}

func TestCachedDiff_ContextIsPartOfKey(t *testing.T) {
	c := newRefCache()
	calls := 0
	compute := func() (*ValueChange, error) {
		calls++
		return &ValueChange{}, nil
	}

	_, err := cachedDiff(c, "#/a", "#/b", NewDiffContext().AsRequest(), compute)
	require.NoError(t, err)
	_, err = cachedDiff(c, "#/a", "#/b", NewDiffContext().AsResponse(), compute)
	require.NoError(t, err)
	_, err = cachedDiff(c, "#/a", "#/b", NewDiffContext().AsResponse().WithRequired(true), compute)
	require.NoError(t, err)

	assert.Equal(t, 3, calls)
}

func TestCachedDiff_InlineAlwaysRecomputes(t *testing.T) {
	c := newRefCache()
	calls := 0
	compute := func() (*ValueChange, error) {
		calls++
		return &ValueChange{}, nil
	}

	for range 3 {
		_, err := cachedDiff(c, "", "#/components/schemas/A", NewDiffContext(), compute)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
	assert.Empty(t, c.results)
}

func TestCachedDiff_CycleYieldsNil(t *testing.T) {
	c := newRefCache()
	ctx := NewDiffContext()

	var inner *ValueChange
	outer, err := cachedDiff(c, "#/a", "#/a", ctx, func() (*ValueChange, error) {
		var err error
		inner, err = cachedDiff(c, "#/a", "#/a", ctx, func() (*ValueChange, error) {
			t.Fatal("cycle must not recompute")
			return nil, nil
		})
		return &ValueChange{Level: Compatible}, err
	})
	require.NoError(t, err)
	assert.NotNil(t, outer)
	assert.Nil(t, inner)
	assert.Equal(t, 1, c.cycles)
	assert.Empty(t, c.inFlight)
}

func TestCachedDiff_ErrorsAreNotCached(t *testing.T) {
	c := newRefCache()
	boom := errors.New("boom")
	calls := 0

	_, err := cachedDiff(c, "#/a", "#/b", NewDiffContext(), func() (*ValueChange, error) {
		calls++
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := cachedDiff(c, "#/a", "#/b", NewDiffContext(), func() (*ValueChange, error) {
		calls++
		return &ValueChange{}, nil
	})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, 2, calls)
}
