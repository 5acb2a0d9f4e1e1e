package differ

import "github.com/erraggy/oascompat/parser"

// ContentChange compares media type maps of request bodies, responses,
// parameters and headers.
type ContentChange struct {
	children

	Increased []string
	Missing   []string
}

// Severity implements ChangeNode.
func (c *ContentChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode. Adding a media type is compatible in
// both directions; removing one breaks clients that send or accept it.
func (c *ContentChange) CoreSeverity() Severity {
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
func (c *ContentChange) CoreDeltas() []Delta {
	var deltas []Delta
	if len(c.Increased) > 0 {
		deltas = append(deltas, Delta{Field: "content.added", New: c.Increased})
	}
	if len(c.Missing) > 0 {
		deltas = append(deltas, Delta{Field: "content.removed", Old: c.Missing})
	}
	return deltas
}

// MediaTypeChange compares the schema of one shared media type.
type MediaTypeChange struct {
	children
}

// Severity implements ChangeNode.
func (c *MediaTypeChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode.
func (c *MediaTypeChange) CoreSeverity() Severity { return NoChanges }

// CoreDeltas implements ChangeNode.
func (c *MediaTypeChange) CoreDeltas() []Delta { return nil }

// diffContent compares two content maps. It returns nil when both are empty.
func (s *session) diffContent(old, new map[string]*parser.MediaType, ctx DiffContext) (*ContentChange, error) {
	if len(old) == 0 && len(new) == 0 {
		return nil, nil
	}
	types := DiffMapKeys(old, new)
	change := &ContentChange{
		Increased: types.IncreasedKeys(),
		Missing:   types.MissingKeys(),
	}
	for _, name := range types.SharedKeys {
		child, err := s.diffMediaType(old[name], new[name], ctx)
		if err != nil {
			return nil, err
		}
		change.add(name, child)
	}
	return change, nil
}

func (s *session) diffMediaType(old, new *parser.MediaType, ctx DiffContext) (*MediaTypeChange, error) {
	change := &MediaTypeChange{}
	var oldSchema, newSchema *parser.Schema
	var oldExtra, newExtra map[string]any
	if old != nil {
		oldSchema, oldExtra = old.Schema, old.Extra
	}
	if new != nil {
		newSchema, newExtra = new.Schema, new.Extra
	}

	schema, err := s.diffSchema(oldSchema, newSchema, ctx.WithRequired(true))
	if err != nil {
		return nil, err
	}
	change.add("schema", schema)
	change.add("extensions", s.diffExtensions(oldExtra, newExtra, ctx))
	return change, nil
}
