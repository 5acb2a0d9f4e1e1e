package differ

import (
	"github.com/erraggy/oascompat/parser"
)

// Endpoint identifies one operation of a document.
type Endpoint struct {
	Path        string `json:"path" yaml:"path"`
	Method      string `json:"method" yaml:"method"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

func newEndpoint(path, method string, op *parser.Operation) Endpoint {
	e := Endpoint{Path: path, Method: method}
	if op != nil {
		e.OperationID = op.OperationID
		e.Summary = op.Summary
	}
	return e
}

// OperationChange compares one operation present on both sides. Path is the
// target template.
type OperationChange struct {
	children

	Path   string
	Method string
	Old    *parser.Operation
	New    *parser.Operation
}

// Severity implements ChangeNode.
func (c *OperationChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode. Deprecating an operation is
// compatible; un-deprecating it is not a change worth reporting.
func (c *OperationChange) CoreSeverity() Severity {
	if c.NewlyDeprecated() {
		return Compatible
	}
	return NoChanges
}

// CoreDeltas implements ChangeNode.
func (c *OperationChange) CoreDeltas() []Delta {
	if !c.NewlyDeprecated() {
		return nil
	}
	return []Delta{{Field: "deprecated", Old: false, New: true}}
}

// NewlyDeprecated reports whether the operation became deprecated.
func (c *OperationChange) NewlyDeprecated() bool {
	return !c.Old.Deprecated && c.New.Deprecated
}

// Endpoint returns the target endpoint of the operation.
func (c *OperationChange) Endpoint() Endpoint {
	return newEndpoint(c.Path, c.Method, c.New)
}

// operationSecurity returns the requirements that apply to op, falling back
// to the document-level requirements when the operation declares none.
func operationSecurity(doc *parser.Document, op *parser.Operation) []parser.SecurityRequirement {
	if op.Security != nil {
		return op.Security
	}
	return doc.Security
}

// diffOperation compares two operations of matched path items. ctx carries
// the target template, the method and the path parameter renames.
func (s *session) diffOperation(oldItem, newItem *parser.PathItem, oldOp, newOp *parser.Operation, ctx DiffContext) (*OperationChange, error) {
	change := &OperationChange{Path: ctx.URL(), Method: ctx.Method(), Old: oldOp, New: newOp}

	change.add("summary", diffMetadata("summary", oldOp.Summary, newOp.Summary))
	change.add("description", diffMetadata("description", oldOp.Description, newOp.Description))
	change.add("operationId", diffMetadata("operationId", oldOp.OperationID, newOp.OperationID))

	oldParams, err := effectiveParameters(s.source, oldItem.Parameters, oldOp.Parameters)
	if err != nil {
		return nil, err
	}
	newParams, err := effectiveParameters(s.target, newItem.Parameters, newOp.Parameters)
	if err != nil {
		return nil, err
	}
	if len(oldParams) > 0 || len(newParams) > 0 {
		params, err := s.diffParameters(oldParams, newParams, ctx)
		if err != nil {
			return nil, err
		}
		change.add("parameters", params)
	}

	body, err := s.diffRequestBody(oldOp.RequestBody, newOp.RequestBody, ctx)
	if err != nil {
		return nil, err
	}
	change.add("requestBody", body)

	responses, err := s.diffResponses(oldOp.Responses, newOp.Responses, ctx)
	if err != nil {
		return nil, err
	}
	change.add("responses", responses)

	security, err := s.diffSecurityRequirements(
		operationSecurity(s.source.doc, oldOp),
		operationSecurity(s.target.doc, newOp),
		ctx,
	)
	if err != nil {
		return nil, err
	}
	change.add("security", security)

	change.add("extensions", s.diffExtensions(oldOp.Extra, newOp.Extra, ctx))
	return change, nil
}
