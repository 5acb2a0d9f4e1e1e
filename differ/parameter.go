package differ

import (
	"strings"

	"github.com/erraggy/oascompat/parser"
)

// ParametersChange compares the effective parameter lists of an operation.
// Parameters are matched by location and name; path parameters are matched
// under their renamed names.
type ParametersChange struct {
	children

	Increased []*parser.Parameter
	Missing   []*parser.Parameter
}

// Severity implements ChangeNode.
func (c *ParametersChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode. Adding optional parameters is
// compatible; adding a required one or removing any is not.
func (c *ParametersChange) CoreSeverity() Severity {
	if len(c.Increased) == 0 && len(c.Missing) == 0 {
		return NoChanges
	}
	if len(c.Missing) > 0 {
		return Incompatible
	}
	for _, p := range c.Increased {
		if p.Required {
			return Incompatible
		}
	}
	return Compatible
}

// CoreDeltas implements ChangeNode.
func (c *ParametersChange) CoreDeltas() []Delta {
	var deltas []Delta
	if len(c.Increased) > 0 {
		deltas = append(deltas, Delta{Field: "parameters.added", New: parameterKeys(c.Increased)})
	}
	if len(c.Missing) > 0 {
		deltas = append(deltas, Delta{Field: "parameters.removed", Old: parameterKeys(c.Missing)})
	}
	return deltas
}

// parameterKey identifies a parameter by location and name. Header names are
// case-insensitive.
func parameterKey(in, name string) string {
	if in == parser.ParamInHeader {
		name = strings.ToLower(name)
	}
	return in + ":" + name
}

func parameterKeys(params []*parser.Parameter) []string {
	keys := make([]string, 0, len(params))
	for _, p := range params {
		keys = append(keys, p.In+":"+p.Name)
	}
	return keys
}

// ParameterChange compares one matched parameter.
type ParameterChange struct {
	children

	Name string
	In   string
	Old  *parser.Parameter
	New  *parser.Parameter
}

// Severity implements ChangeNode.
func (c *ParameterChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode.
func (c *ParameterChange) CoreSeverity() Severity {
	requiredChanged := c.Old.Required != c.New.Required
	deprecatedChanged := c.Old.Deprecated != c.New.Deprecated
	allowEmptyChanged := c.Old.AllowEmptyValue != c.New.AllowEmptyValue
	styleChanged := c.Old.Style != c.New.Style
	explodeChanged := !equalPtr(c.Old.Explode, c.New.Explode)

	if !requiredChanged && !deprecatedChanged && !allowEmptyChanged && !styleChanged && !explodeChanged {
		return NoChanges
	}
	if (!requiredChanged || c.Old.Required) &&
		(!allowEmptyChanged || c.New.AllowEmptyValue) &&
		!styleChanged && !explodeChanged {
		return Compatible
	}
	return Incompatible
}

// CoreDeltas implements ChangeNode.
func (c *ParameterChange) CoreDeltas() []Delta {
	var deltas []Delta
	if c.Old.Required != c.New.Required {
		deltas = append(deltas, Delta{Field: "required", Old: c.Old.Required, New: c.New.Required})
	}
	if c.Old.Deprecated != c.New.Deprecated {
		deltas = append(deltas, Delta{Field: "deprecated", Old: c.Old.Deprecated, New: c.New.Deprecated})
	}
	if c.Old.AllowEmptyValue != c.New.AllowEmptyValue {
		deltas = append(deltas, Delta{Field: "allowEmptyValue", Old: c.Old.AllowEmptyValue, New: c.New.AllowEmptyValue})
	}
	if c.Old.Style != c.New.Style {
		deltas = append(deltas, Delta{Field: "style", Old: c.Old.Style, New: c.New.Style})
	}
	if !equalPtr(c.Old.Explode, c.New.Explode) {
		deltas = append(deltas, Delta{Field: "explode", Old: derefOrNil(c.Old.Explode), New: derefOrNil(c.New.Explode)})
	}
	return deltas
}

// resolvedParameter is a parameter with the reference it was reached through.
type resolvedParameter struct {
	ref   string
	param *parser.Parameter
}

// effectiveParameters resolves path item and operation parameters and
// merges them; an operation parameter replaces a path item parameter with
// the same location and name. Document order is kept.
func effectiveParameters(side *documentSide, pathParams, opParams []*parser.Parameter) ([]resolvedParameter, error) {
	var merged []resolvedParameter
	index := make(map[string]int)
	for _, list := range [][]*parser.Parameter{pathParams, opParams} {
		for _, p := range list {
			if p == nil {
				continue
			}
			resolved, err := side.resolver.Parameter(p)
			if err != nil {
				return nil, err
			}
			rp := resolvedParameter{ref: p.Ref, param: resolved}
			key := parameterKey(resolved.In, resolved.Name)
			if i, ok := index[key]; ok {
				merged[i] = rp
				continue
			}
			index[key] = len(merged)
			merged = append(merged, rp)
		}
	}
	return merged, nil
}

// diffParameters compares two effective parameter lists in request context.
func (s *session) diffParameters(oldParams, newParams []resolvedParameter, ctx DiffContext) (*ParametersChange, error) {
	ctx = ctx.AsRequest()
	change := &ParametersChange{}

	newByKey := make(map[string]resolvedParameter, len(newParams))
	for _, p := range newParams {
		newByKey[parameterKey(p.param.In, p.param.Name)] = p
	}

	matched := make(map[string]bool)
	for _, oldParam := range oldParams {
		name := oldParam.param.Name
		if oldParam.param.In == parser.ParamInPath {
			name = ctx.RenamedParameter(name)
		}
		key := parameterKey(oldParam.param.In, name)
		newParam, ok := newByKey[key]
		if !ok {
			change.Missing = append(change.Missing, oldParam.param)
			continue
		}
		matched[key] = true

		child, err := s.diffParameter(oldParam, newParam, ctx)
		if err != nil {
			return nil, err
		}
		change.add(key, child)
	}

	for _, p := range newParams {
		if !matched[parameterKey(p.param.In, p.param.Name)] {
			change.Increased = append(change.Increased, p.param)
		}
	}
	return change, nil
}

func (s *session) diffParameter(left, right resolvedParameter, ctx DiffContext) (*ParameterChange, error) {
	return cachedDiff(s.cache, left.ref, right.ref, ctx, func() (*ParameterChange, error) {
		oldParam, newParam := left.param, right.param
		change := &ParameterChange{Name: newParam.Name, In: newParam.In, Old: oldParam, New: newParam}

		change.add("description", diffMetadata("description", oldParam.Description, newParam.Description))

		schema, err := s.diffSchema(oldParam.Schema, newParam.Schema, ctx.WithRequired(newParam.Required))
		if err != nil {
			return nil, err
		}
		change.add("schema", schema)

		content, err := s.diffContent(oldParam.Content, newParam.Content, ctx)
		if err != nil {
			return nil, err
		}
		change.add("content", content)

		change.add("extensions", s.diffExtensions(oldParam.Extra, newParam.Extra, ctx))
		return change, nil
	})
}
