package differ

import (
	"maps"
	"slices"
	"strings"
)

// Direction tells which side of an exchange a structure belongs to.
type Direction int

const (
	// DirectionNone is used above the operation level.
	DirectionNone Direction = iota
	// DirectionRequest covers parameters and request bodies.
	DirectionRequest
	// DirectionResponse covers responses and their headers.
	DirectionResponse
)

// String returns "request", "response" or "none".
func (d Direction) String() string {
	switch d {
	case DirectionRequest:
		return "request"
	case DirectionResponse:
		return "response"
	default:
		return "none"
	}
}

// DiffContext carries the position of a comparison within the document.
// It is a value type: the With/As methods return modified copies and never
// touch the receiver, so sibling branches cannot observe each other's state.
type DiffContext struct {
	url       string
	method    string
	direction Direction
	required  bool
	renames   map[string]string // old path parameter name -> new name; never mutated
}

// NewDiffContext returns the empty root context.
func NewDiffContext() DiffContext {
	return DiffContext{}
}

// URL returns the path template being compared (the target side's template).
func (c DiffContext) URL() string { return c.url }

// Method returns the lowercase HTTP method being compared.
func (c DiffContext) Method() string { return c.method }

// Direction returns the exchange side.
func (c DiffContext) Direction() Direction { return c.direction }

// IsRequest reports whether the context is on the request side.
func (c DiffContext) IsRequest() bool { return c.direction == DirectionRequest }

// IsResponse reports whether the context is on the response side.
func (c DiffContext) IsResponse() bool { return c.direction == DirectionResponse }

// IsRequired reports whether the value being compared is required by its parent.
func (c DiffContext) IsRequired() bool { return c.required }

// RenamedParameter maps an old path parameter name to its name in the target
// document. Names that were not renamed are returned unchanged.
func (c DiffContext) RenamedParameter(name string) string {
	if renamed, ok := c.renames[name]; ok {
		return renamed
	}
	return name
}

// WithURL returns a copy bound to a path template.
func (c DiffContext) WithURL(url string) DiffContext {
	c.url = url
	return c
}

// WithMethod returns a copy bound to an HTTP method.
func (c DiffContext) WithMethod(method string) DiffContext {
	c.method = method
	return c
}

// WithRenames returns a copy carrying a path parameter rename map.
// The map is copied.
func (c DiffContext) WithRenames(renames map[string]string) DiffContext {
	if len(renames) == 0 {
		c.renames = nil
		return c
	}
	c.renames = maps.Clone(renames)
	return c
}

// AsRequest returns a copy on the request side.
func (c DiffContext) AsRequest() DiffContext {
	c.direction = DirectionRequest
	return c
}

// AsResponse returns a copy on the response side.
func (c DiffContext) AsResponse() DiffContext {
	c.direction = DirectionResponse
	return c
}

// WithRequired returns a copy with the required flag set.
func (c DiffContext) WithRequired(required bool) DiffContext {
	c.required = required
	return c
}

// contextKey is the comparable form of a DiffContext.
type contextKey struct {
	url       string
	method    string
	direction Direction
	required  bool
	renames   string
}

func (c DiffContext) key() contextKey {
	k := contextKey{
		url:       c.url,
		method:    c.method,
		direction: c.direction,
		required:  c.required,
	}
	if len(c.renames) > 0 {
		var b strings.Builder
		for _, name := range slices.Sorted(maps.Keys(c.renames)) {
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(c.renames[name])
			b.WriteByte(';')
		}
		k.renames = b.String()
	}
	return k
}
