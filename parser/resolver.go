package parser

import (
	"fmt"

	"github.com/erraggy/oascompat/internal/pathutil"
	"github.com/erraggy/oascompat/oaserrors"
)

// MaxRefDepth is the maximum number of $ref hops followed for one lookup.
// Chains longer than this are reported as circular.
const MaxRefDepth = 100

// Resolver looks up local component references in one document.
// Only "#/components/..." references are supported; external file and
// HTTP references are reported as unresolvable.
type Resolver struct {
	components *Components
}

// NewResolver creates a Resolver over doc's component table.
// A nil document or one without components resolves nothing.
func NewResolver(doc *Document) *Resolver {
	r := &Resolver{}
	if doc != nil {
		r.components = doc.Components
	}
	return r
}

// resolveComponent follows a $ref chain through one component table until it
// reaches an inline value.
func resolveComponent[T any](ref, component string, table map[string]*T, refOf func(*T) string) (*T, error) {
	seen := make(map[string]bool)
	current := ref
	for depth := 0; ; depth++ {
		if seen[current] || depth >= MaxRefDepth {
			return nil, &oaserrors.ReferenceError{
				Ref:        ref,
				RefType:    pathutil.RefType(ref),
				Component:  component,
				IsCircular: true,
				Message:    "reference chain never reaches a value",
			}
		}
		seen[current] = true

		name, ok := pathutil.ComponentName(current, component)
		if !ok {
			return nil, &oaserrors.ReferenceError{
				Ref:       current,
				RefType:   pathutil.RefType(current),
				Component: component,
				Message:   fmt.Sprintf("not a local reference into components/%s", component),
			}
		}
		value, ok := table[name]
		if !ok || value == nil {
			return nil, &oaserrors.ReferenceError{
				Ref:       current,
				RefType:   pathutil.RefType(current),
				Component: component,
				Message:   fmt.Sprintf("component %q not found", name),
			}
		}
		next := refOf(value)
		if next == "" {
			return value, nil
		}
		current = next
	}
}

// Schema returns the schema s points to. Inline schemas are returned as is.
func (r *Resolver) Schema(s *Schema) (*Schema, error) {
	if s == nil || s.Ref == "" {
		return s, nil
	}
	return r.SchemaByRef(s.Ref)
}

// SchemaByRef resolves a "#/components/schemas/..." reference.
func (r *Resolver) SchemaByRef(ref string) (*Schema, error) {
	var table map[string]*Schema
	if r.components != nil {
		table = r.components.Schemas
	}
	return resolveComponent(ref, pathutil.ComponentSchemas, table, func(s *Schema) string { return s.Ref })
}

// Parameter returns the parameter p points to.
func (r *Resolver) Parameter(p *Parameter) (*Parameter, error) {
	if p == nil || p.Ref == "" {
		return p, nil
	}
	var table map[string]*Parameter
	if r.components != nil {
		table = r.components.Parameters
	}
	return resolveComponent(p.Ref, pathutil.ComponentParameters, table, func(p *Parameter) string { return p.Ref })
}

// Response returns the response resp points to.
func (r *Resolver) Response(resp *Response) (*Response, error) {
	if resp == nil || resp.Ref == "" {
		return resp, nil
	}
	var table map[string]*Response
	if r.components != nil {
		table = r.components.Responses
	}
	return resolveComponent(resp.Ref, pathutil.ComponentResponses, table, func(r *Response) string { return r.Ref })
}

// RequestBody returns the request body rb points to.
func (r *Resolver) RequestBody(rb *RequestBody) (*RequestBody, error) {
	if rb == nil || rb.Ref == "" {
		return rb, nil
	}
	var table map[string]*RequestBody
	if r.components != nil {
		table = r.components.RequestBodies
	}
	return resolveComponent(rb.Ref, pathutil.ComponentRequestBodies, table, func(b *RequestBody) string { return b.Ref })
}

// Header returns the header h points to.
func (r *Resolver) Header(h *Header) (*Header, error) {
	if h == nil || h.Ref == "" {
		return h, nil
	}
	var table map[string]*Header
	if r.components != nil {
		table = r.components.Headers
	}
	return resolveComponent(h.Ref, pathutil.ComponentHeaders, table, func(h *Header) string { return h.Ref })
}

// SecurityScheme looks up a security scheme by the name used in a security
// requirement, following any $ref it carries.
func (r *Resolver) SecurityScheme(name string) (*SecurityScheme, error) {
	var table map[string]*SecurityScheme
	if r.components != nil {
		table = r.components.SecuritySchemes
	}
	return resolveComponent(
		pathutil.ComponentRef(pathutil.ComponentSecuritySchemes, name),
		pathutil.ComponentSecuritySchemes,
		table,
		func(s *SecurityScheme) string { return s.Ref },
	)
}
