package differ

import "github.com/erraggy/oascompat/parser"

// RequestBodyChange compares the request bodies of an operation. A body
// present on one side only is compared against an empty optional body.
type RequestBodyChange struct {
	children

	Old *parser.RequestBody
	New *parser.RequestBody
}

// Severity implements ChangeNode.
func (c *RequestBodyChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode. Any flip of the required flag breaks
// one side of the exchange.
func (c *RequestBodyChange) CoreSeverity() Severity {
	if c.Old.Required != c.New.Required {
		return Incompatible
	}
	return NoChanges
}

// CoreDeltas implements ChangeNode.
func (c *RequestBodyChange) CoreDeltas() []Delta {
	if c.Old.Required == c.New.Required {
		return nil
	}
	return []Delta{{Field: "required", Old: c.Old.Required, New: c.New.Required}}
}

// diffRequestBody compares request bodies in request context. Returns nil
// when neither side has a body.
func (s *session) diffRequestBody(left, right *parser.RequestBody, ctx DiffContext) (*RequestBodyChange, error) {
	if left == nil && right == nil {
		return nil, nil
	}
	ctx = ctx.AsRequest()

	var leftRef, rightRef string
	if left != nil {
		leftRef = left.Ref
	}
	if right != nil {
		rightRef = right.Ref
	}
	return cachedDiff(s.cache, leftRef, rightRef, ctx, func() (*RequestBodyChange, error) {
		oldBody, err := s.source.resolver.RequestBody(left)
		if err != nil {
			return nil, err
		}
		newBody, err := s.target.resolver.RequestBody(right)
		if err != nil {
			return nil, err
		}
		if oldBody == nil {
			oldBody = &parser.RequestBody{}
		}
		if newBody == nil {
			newBody = &parser.RequestBody{}
		}

		change := &RequestBodyChange{Old: oldBody, New: newBody}
		change.add("description", diffMetadata("description", oldBody.Description, newBody.Description))

		content, err := s.diffContent(oldBody.Content, newBody.Content, ctx.WithRequired(newBody.Required))
		if err != nil {
			return nil, err
		}
		change.add("content", content)

		change.add("extensions", s.diffExtensions(oldBody.Extra, newBody.Extra, ctx))
		return change, nil
	})
}
