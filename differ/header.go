package differ

import "github.com/erraggy/oascompat/parser"

// HeadersChange compares the headers of a response.
type HeadersChange struct {
	children

	Increased []string
	Missing   []string
}

// Severity implements ChangeNode.
func (c *HeadersChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode. Removing a header breaks clients that
// read it.
func (c *HeadersChange) CoreSeverity() Severity {
	switch {
	case len(c.Increased) == 0 && len(c.Missing) == 0:
		return NoChanges
	case len(c.Missing) == 0:
		return Compatible
	default:
		return Incompatible
	}
}

// CoreDeltas implements ChangeNode.
func (c *HeadersChange) CoreDeltas() []Delta {
	var deltas []Delta
	if len(c.Increased) > 0 {
		deltas = append(deltas, Delta{Field: "headers.added", New: c.Increased})
	}
	if len(c.Missing) > 0 {
		deltas = append(deltas, Delta{Field: "headers.removed", Old: c.Missing})
	}
	return deltas
}

// HeaderChange compares one header present on both sides.
type HeaderChange struct {
	children

	Old *parser.Header
	New *parser.Header
}

// Severity implements ChangeNode.
func (c *HeaderChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode. A deprecation flip alone is
// compatible; required, style or explode changes are not.
func (c *HeaderChange) CoreSeverity() Severity {
	requiredChanged := c.Old.Required != c.New.Required
	deprecatedChanged := c.Old.Deprecated != c.New.Deprecated
	styleChanged := c.Old.Style != c.New.Style
	explodeChanged := !equalPtr(c.Old.Explode, c.New.Explode)

	switch {
	case !requiredChanged && !deprecatedChanged && !styleChanged && !explodeChanged:
		return NoChanges
	case !requiredChanged && !styleChanged && !explodeChanged:
		return Compatible
	default:
		return Incompatible
	}
}

// CoreDeltas implements ChangeNode.
func (c *HeaderChange) CoreDeltas() []Delta {
	var deltas []Delta
	if c.Old.Required != c.New.Required {
		deltas = append(deltas, Delta{Field: "required", Old: c.Old.Required, New: c.New.Required})
	}
	if c.Old.Deprecated != c.New.Deprecated {
		deltas = append(deltas, Delta{Field: "deprecated", Old: c.Old.Deprecated, New: c.New.Deprecated})
	}
	if c.Old.Style != c.New.Style {
		deltas = append(deltas, Delta{Field: "style", Old: c.Old.Style, New: c.New.Style})
	}
	if !equalPtr(c.Old.Explode, c.New.Explode) {
		deltas = append(deltas, Delta{Field: "explode", Old: derefOrNil(c.Old.Explode), New: derefOrNil(c.New.Explode)})
	}
	return deltas
}

// diffHeaders compares response headers. Returns nil when both sides have none.
func (s *session) diffHeaders(old, new map[string]*parser.Header, ctx DiffContext) (*HeadersChange, error) {
	if len(old) == 0 && len(new) == 0 {
		return nil, nil
	}
	names := DiffMapKeys(old, new)
	change := &HeadersChange{
		Increased: names.IncreasedKeys(),
		Missing:   names.MissingKeys(),
	}
	for _, name := range names.SharedKeys {
		child, err := s.diffHeader(old[name], new[name], ctx)
		if err != nil {
			return nil, err
		}
		change.add(name, child)
	}
	return change, nil
}

func (s *session) diffHeader(left, right *parser.Header, ctx DiffContext) (*HeaderChange, error) {
	var leftRef, rightRef string
	if left != nil {
		leftRef = left.Ref
	}
	if right != nil {
		rightRef = right.Ref
	}
	return cachedDiff(s.cache, leftRef, rightRef, ctx, func() (*HeaderChange, error) {
		oldHeader, err := s.source.resolver.Header(left)
		if err != nil {
			return nil, err
		}
		newHeader, err := s.target.resolver.Header(right)
		if err != nil {
			return nil, err
		}
		if oldHeader == nil {
			oldHeader = &parser.Header{}
		}
		if newHeader == nil {
			newHeader = &parser.Header{}
		}

		change := &HeaderChange{Old: oldHeader, New: newHeader}
		change.add("description", diffMetadata("description", oldHeader.Description, newHeader.Description))

		schema, err := s.diffSchema(oldHeader.Schema, newHeader.Schema, ctx.WithRequired(newHeader.Required))
		if err != nil {
			return nil, err
		}
		change.add("schema", schema)

		content, err := s.diffContent(oldHeader.Content, newHeader.Content, ctx)
		if err != nil {
			return nil, err
		}
		change.add("content", content)

		change.add("extensions", s.diffExtensions(oldHeader.Extra, newHeader.Extra, ctx))
		return change, nil
	})
}
