package differ

import (
	"cmp"
	"fmt"
	"reflect"
)

// diffMetadata compares free text. Any difference is Metadata.
func diffMetadata(field, old, new string) *ValueChange {
	if old == new {
		return nil
	}
	return &ValueChange{Field: field, Old: old, New: new, Level: Metadata}
}

// diffDefault compares default values. A changed default is Metadata.
func diffDefault(old, new any) *ValueChange {
	if reflect.DeepEqual(old, new) {
		return nil
	}
	return &ValueChange{Field: "default", Old: old, New: new, Level: Metadata}
}

// diffUpperBound compares maximum-style bounds (maxLength, maximum, maxItems,
// maxProperties). A request may only loosen or drop the bound; a response
// may only tighten it.
func diffUpperBound[T cmp.Ordered](field string, old, new *T, ctx DiffContext) *ValueChange {
	if equalPtr(old, new) {
		return nil
	}
	change := &ValueChange{Field: field, Old: derefOrNil(old), New: derefOrNil(new), Level: Incompatible}
	switch {
	case ctx.IsRequest() && (new == nil || (old != nil && *new >= *old)):
		change.Level = Compatible
	case ctx.IsResponse() && (new == nil || old == nil || *new <= *old):
		change.Level = Compatible
	}
	return change
}

// diffLowerBound mirrors diffUpperBound for minimum-style bounds.
func diffLowerBound[T cmp.Ordered](field string, old, new *T, ctx DiffContext) *ValueChange {
	if equalPtr(old, new) {
		return nil
	}
	change := &ValueChange{Field: field, Old: derefOrNil(old), New: derefOrNil(new), Level: Incompatible}
	switch {
	case ctx.IsRequest() && (new == nil || (old != nil && *new <= *old)):
		change.Level = Compatible
	case ctx.IsResponse() && (new == nil || old == nil || *new >= *old):
		change.Level = Compatible
	}
	return change
}

// diffReadOnly classifies a readOnly flip. Responses accept any flip; a
// request breaks only when a required value becomes readOnly. Outside an
// exchange direction the result is Unknown.
func diffReadOnly(old, new bool, ctx DiffContext) *ValueChange {
	if old == new {
		return nil
	}
	change := &ValueChange{Field: "readOnly", Old: old, New: new}
	switch {
	case ctx.IsResponse():
		change.Level = Compatible
	case ctx.IsRequest():
		change.Level = Compatible
		if new && ctx.IsRequired() {
			change.Level = Incompatible
		}
	default:
		change.Level = Unknown
	}
	return change
}

// diffWriteOnly classifies a writeOnly flip. It never breaks on its own.
func diffWriteOnly(old, new bool) *ValueChange {
	if old == new {
		return nil
	}
	return &ValueChange{Field: "writeOnly", Old: old, New: new, Level: Compatible}
}

// diffNullable classifies a change in whether null is accepted. Requests may
// start accepting null; responses may stop returning it.
func diffNullable(old, new bool, ctx DiffContext) *ValueChange {
	if old == new {
		return nil
	}
	change := &ValueChange{Field: "nullable", Old: old, New: new, Level: Incompatible}
	if (ctx.IsRequest() && new) || (ctx.IsResponse() && !new) {
		change.Level = Compatible
	}
	return change
}

// diffUniqueItems classifies a uniqueItems flip. Adding the constraint is
// safe only for responses, dropping it only for requests.
func diffUniqueItems(old, new bool, ctx DiffContext) *ValueChange {
	if old == new {
		return nil
	}
	change := &ValueChange{Field: "uniqueItems", Old: old, New: new, Level: Incompatible}
	if (ctx.IsRequest() && !new) || (ctx.IsResponse() && new) {
		change.Level = Compatible
	}
	return change
}

// diffPattern classifies a pattern change. The effect of a regular
// expression change cannot be decided, so requests treat it as breaking.
func diffPattern(old, new string, ctx DiffContext) *ValueChange {
	if old == new {
		return nil
	}
	change := &ValueChange{Field: "pattern", Old: old, New: new, Level: Incompatible}
	if ctx.IsResponse() {
		change.Level = Compatible
	}
	return change
}

// diffEnum compares enum value sets: requests may only add values, responses
// may add or remove values but not both at once.
func diffEnum(old, new []any, ctx DiffContext) *ListChange[any] {
	increased, missing, shared := ListDiffBy(old, new, enumKey)
	change := &ListChange[any]{Field: "enum", Increased: increased, Missing: missing, Shared: shared}
	if change.IsEmpty() {
		return nil
	}
	change.Level = Incompatible
	if (ctx.IsRequest() && len(missing) == 0) || (ctx.IsResponse() && (len(increased) == 0 || len(missing) == 0)) {
		change.Level = Compatible
	}
	return change
}

// enumKey distinguishes values of different types with the same text, such
// as 1 and "1".
func enumKey(v any) string {
	return fmt.Sprintf("%T:%v", v, v)
}

// diffRequired compares required property sets: requests may not require
// more, responses may not guarantee less.
func diffRequired(old, new []string, ctx DiffContext) *ListChange[string] {
	increased, missing, shared := ListDiff(old, new)
	change := &ListChange[string]{Field: "required", Increased: increased, Missing: missing, Shared: shared}
	if change.IsEmpty() {
		return nil
	}
	change.Level = Incompatible
	if (ctx.IsRequest() && len(increased) == 0) || (ctx.IsResponse() && len(missing) == 0) {
		change.Level = Compatible
	}
	return change
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefOrNil[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
