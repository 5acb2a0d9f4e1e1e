package differ

import (
	"slices"

	"github.com/erraggy/oascompat/internal/httputil"
	"github.com/erraggy/oascompat/parser"
)

// ResponsesChange compares the responses of an operation keyed by status code.
type ResponsesChange struct {
	children

	Increased []string
	Missing   []string
}

// Severity implements ChangeNode.
func (c *ResponsesChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode. Removing a documented response breaks
// clients that handle it.
func (c *ResponsesChange) CoreSeverity() Severity {
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
func (c *ResponsesChange) CoreDeltas() []Delta {
	var deltas []Delta
	if len(c.Increased) > 0 {
		deltas = append(deltas, Delta{Field: "responses.added", New: c.Increased})
	}
	if len(c.Missing) > 0 {
		deltas = append(deltas, Delta{Field: "responses.removed", Old: c.Missing})
	}
	return deltas
}

// ResponseChange compares one response present on both sides.
type ResponseChange struct {
	children

	Code string
}

// Severity implements ChangeNode.
func (c *ResponseChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode.
func (c *ResponseChange) CoreSeverity() Severity { return NoChanges }

// CoreDeltas implements ChangeNode.
func (c *ResponseChange) CoreDeltas() []Delta { return nil }

// diffResponses compares the response maps in response context.
func (s *session) diffResponses(old, new map[string]*parser.Response, ctx DiffContext) (*ResponsesChange, error) {
	if len(old) == 0 && len(new) == 0 {
		return nil, nil
	}
	ctx = ctx.AsResponse()

	codes := DiffMapKeys(old, new)
	change := &ResponsesChange{
		Increased: sortedCodes(codes.IncreasedKeys()),
		Missing:   sortedCodes(codes.MissingKeys()),
	}
	for _, code := range sortedCodes(codes.SharedKeys) {
		child, err := s.diffResponse(code, old[code], new[code], ctx)
		if err != nil {
			return nil, err
		}
		change.add(code, child)
	}
	return change, nil
}

func sortedCodes(codes []string) []string {
	slices.SortFunc(codes, httputil.CompareStatusCodes)
	return codes
}

func (s *session) diffResponse(code string, left, right *parser.Response, ctx DiffContext) (*ResponseChange, error) {
	var leftRef, rightRef string
	if left != nil {
		leftRef = left.Ref
	}
	if right != nil {
		rightRef = right.Ref
	}
	return cachedDiff(s.cache, leftRef, rightRef, ctx, func() (*ResponseChange, error) {
		oldResp, err := s.source.resolver.Response(left)
		if err != nil {
			return nil, err
		}
		newResp, err := s.target.resolver.Response(right)
		if err != nil {
			return nil, err
		}
		if oldResp == nil {
			oldResp = &parser.Response{}
		}
		if newResp == nil {
			newResp = &parser.Response{}
		}

		change := &ResponseChange{Code: code}
		change.add("description", diffMetadata("description", oldResp.Description, newResp.Description))

		headers, err := s.diffHeaders(oldResp.Headers, newResp.Headers, ctx)
		if err != nil {
			return nil, err
		}
		change.add("headers", headers)

		content, err := s.diffContent(oldResp.Content, newResp.Content, ctx)
		if err != nil {
			return nil, err
		}
		change.add("content", content)

		change.add("extensions", s.diffExtensions(oldResp.Extra, newResp.Extra, ctx))
		return change, nil
	})
}
