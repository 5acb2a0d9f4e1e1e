package differ

// cacheKey identifies one memoized comparison of two named components.
type cacheKey struct {
	left  string
	right string
	ctx   contextKey
}

// refCache memoizes comparisons of referenced components and breaks cycles.
// It belongs to exactly one session.
type refCache struct {
	results  map[cacheKey]any
	inFlight map[string]bool

	hits   int
	cycles int
}

func newRefCache() *refCache {
	return &refCache{
		results:  make(map[cacheKey]any),
		inFlight: make(map[string]bool),
	}
}

// cachedDiff runs compute for a pair of values, memoizing when both sides are
// references.
//
// If the same reference pair is already being compared further up the
// stack, the zero value of T (a nil node) is returned: the pair contributes
// nothing more. Callers must omit a nil result rather than treat it as
// NoChanges. Inline values on either side are always recomputed.
func cachedDiff[T ChangeNode](c *refCache, leftRef, rightRef string, ctx DiffContext, compute func() (T, error)) (T, error) {
	if leftRef == "" || rightRef == "" {
		return compute()
	}

	key := cacheKey{left: leftRef, right: rightRef, ctx: ctx.key()}
	if cached, ok := c.results[key]; ok {
		c.hits++
		return cached.(T), nil
	}

	var zero T
	refKey := leftRef + ":" + rightRef
	if c.inFlight[refKey] {
		c.cycles++
		return zero, nil
	}

	c.inFlight[refKey] = true
	result, err := compute()
	delete(c.inFlight, refKey)
	if err != nil {
		return zero, err
	}
	c.results[key] = result
	return result, nil
}
