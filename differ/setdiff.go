package differ

import (
	"maps"
	"slices"
)

// MapKeyDiff partitions the keys of two maps. Values are not compared.
type MapKeyDiff[V any] struct {
	// Increased holds entries whose key exists only in the new map
	Increased map[string]V
	// Missing holds entries whose key exists only in the old map
	Missing map[string]V
	// SharedKeys lists keys present in both maps, sorted
	SharedKeys []string
}

// DiffMapKeys computes the key partition of old and new.
func DiffMapKeys[V any](old, new map[string]V) *MapKeyDiff[V] {
	d := &MapKeyDiff[V]{
		Increased: make(map[string]V),
		Missing:   make(map[string]V),
	}
	for k, v := range new {
		if _, ok := old[k]; !ok {
			d.Increased[k] = v
		}
	}
	for k, v := range old {
		if _, ok := new[k]; ok {
			d.SharedKeys = append(d.SharedKeys, k)
		} else {
			d.Missing[k] = v
		}
	}
	slices.Sort(d.SharedKeys)
	return d
}

// IncreasedKeys returns the added keys, sorted.
func (d *MapKeyDiff[V]) IncreasedKeys() []string {
	return slices.Sorted(maps.Keys(d.Increased))
}

// MissingKeys returns the removed keys, sorted.
func (d *MapKeyDiff[V]) MissingKeys() []string {
	return slices.Sorted(maps.Keys(d.Missing))
}

// IsUnchanged reports whether both maps have the same key set.
func (d *MapKeyDiff[V]) IsUnchanged() bool {
	return len(d.Increased) == 0 && len(d.Missing) == 0
}

// ListDiff partitions two scalar lists with set semantics. Duplicates
// collapse: each distinct value appears at most once in the result, at the
// position of its first occurrence.
func ListDiff[T comparable](old, new []T) (increased, missing, shared []T) {
	return ListDiffBy(old, new, func(v T) T { return v })
}

// ListDiffBy is ListDiff for element types that are not comparable; key maps
// each element to its identity.
func ListDiffBy[T any, K comparable](old, new []T, key func(T) K) (increased, missing, shared []T) {
	newKeys := make(map[K]bool, len(new))
	for _, v := range new {
		newKeys[key(v)] = true
	}

	seen := make(map[K]bool, len(old))
	for _, v := range old {
		k := key(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		if newKeys[k] {
			shared = append(shared, v)
		} else {
			missing = append(missing, v)
		}
	}

	for _, v := range new {
		k := key(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		increased = append(increased, v)
	}
	return increased, missing, shared
}
