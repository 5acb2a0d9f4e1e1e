package differ

import (
	"slices"
	"strings"

	"github.com/erraggy/oascompat/internal/pathutil"
	"github.com/erraggy/oascompat/parser"
)

// SecurityRequirementsChange compares the alternative security requirements
// of an operation. Requirements are matched by the scheme types and
// locations they require, not by scheme names, so renaming a scheme in
// components is not a change.
type SecurityRequirementsChange struct {
	children

	Increased []parser.SecurityRequirement
	Missing   []parser.SecurityRequirement

	// anonymous is set when the new side accepts unauthenticated calls.
	anonymous bool
}

// Severity implements ChangeNode.
func (c *SecurityRequirementsChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode. Removing an alternative breaks clients
// that use it unless the new side allows anonymous access.
func (c *SecurityRequirementsChange) CoreSeverity() Severity {
	switch {
	case len(c.Increased) == 0 && len(c.Missing) == 0:
		return NoChanges
	case len(c.Missing) == 0 || c.anonymous:
		return Compatible
	default:
		return Incompatible
	}
}

// CoreDeltas implements ChangeNode.
func (c *SecurityRequirementsChange) CoreDeltas() []Delta {
	var deltas []Delta
	if len(c.Increased) > 0 {
		deltas = append(deltas, Delta{Field: "security.added", New: requirementNames(c.Increased)})
	}
	if len(c.Missing) > 0 {
		deltas = append(deltas, Delta{Field: "security.removed", Old: requirementNames(c.Missing)})
	}
	return deltas
}

func requirementNames(reqs []parser.SecurityRequirement) []string {
	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		if len(req) == 0 {
			names = append(names, "{}")
			continue
		}
		names = append(names, strings.Join(parser.SortedKeys(req), "+"))
	}
	return names
}

// SecurityRequirementChange compares two requirements with the same
// signature.
type SecurityRequirementChange struct {
	children

	Signature string
}

// Severity implements ChangeNode.
func (c *SecurityRequirementChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode.
func (c *SecurityRequirementChange) CoreSeverity() Severity { return NoChanges }

// CoreDeltas implements ChangeNode.
func (c *SecurityRequirementChange) CoreDeltas() []Delta { return nil }

// SecuritySchemeChange compares two security schemes used in matched
// requirements.
type SecuritySchemeChange struct {
	children

	Old    *parser.SecurityScheme
	New    *parser.SecurityScheme
	deltas []Delta
}

// Severity implements ChangeNode.
func (c *SecuritySchemeChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode. Any change to how credentials are
// presented or obtained breaks existing clients.
func (c *SecuritySchemeChange) CoreSeverity() Severity {
	if len(c.deltas) > 0 {
		return Incompatible
	}
	return NoChanges
}

// CoreDeltas implements ChangeNode.
func (c *SecuritySchemeChange) CoreDeltas() []Delta { return c.deltas }

// boundScheme is one scheme of a requirement with its resolved definition.
type boundScheme struct {
	name   string
	scopes []string
	scheme *parser.SecurityScheme
}

func (b boundScheme) signature() string {
	return b.scheme.Type + ":" + b.scheme.In
}

// boundRequirement is a requirement whose schemes have been resolved.
type boundRequirement struct {
	requirement parser.SecurityRequirement
	schemes     []boundScheme
	signature   string
}

// bindRequirements resolves every scheme name used by reqs. An empty list is
// treated as the single anonymous requirement.
func bindRequirements(side *documentSide, reqs []parser.SecurityRequirement) ([]boundRequirement, error) {
	if len(reqs) == 0 {
		reqs = []parser.SecurityRequirement{{}}
	}
	bound := make([]boundRequirement, 0, len(reqs))
	for _, req := range reqs {
		br := boundRequirement{requirement: req}
		sigs := make([]string, 0, len(req))
		for _, name := range parser.SortedKeys(req) {
			scheme, err := side.resolver.SecurityScheme(name)
			if err != nil {
				return nil, err
			}
			bs := boundScheme{name: name, scopes: req[name], scheme: scheme}
			br.schemes = append(br.schemes, bs)
			sigs = append(sigs, bs.signature())
		}
		slices.Sort(sigs)
		br.signature = strings.Join(sigs, ",")
		bound = append(bound, br)
	}
	return bound, nil
}

// diffSecurityRequirements compares the requirement lists that apply to an
// operation. Returns nil when both sides have none.
func (s *session) diffSecurityRequirements(old, new []parser.SecurityRequirement, ctx DiffContext) (*SecurityRequirementsChange, error) {
	if len(old) == 0 && len(new) == 0 {
		return nil, nil
	}
	oldBound, err := bindRequirements(s.source, old)
	if err != nil {
		return nil, err
	}
	newBound, err := bindRequirements(s.target, new)
	if err != nil {
		return nil, err
	}

	signature := func(b boundRequirement) string { return b.signature }
	increased, missing, shared := ListDiffBy(oldBound, newBound, signature)

	change := &SecurityRequirementsChange{}
	for _, b := range increased {
		change.Increased = append(change.Increased, b.requirement)
	}
	for _, b := range missing {
		change.Missing = append(change.Missing, b.requirement)
	}
	newBySig := make(map[string]boundRequirement, len(newBound))
	for _, b := range newBound {
		if b.signature == "" {
			change.anonymous = true
		}
		if _, ok := newBySig[b.signature]; !ok {
			newBySig[b.signature] = b
		}
	}

	for _, oldReq := range shared {
		child, err := s.diffSecurityRequirement(oldReq, newBySig[oldReq.signature], ctx)
		if err != nil {
			return nil, err
		}
		name := oldReq.signature
		if name == "" {
			name = "anonymous"
		}
		change.add(name, child)
	}
	return change, nil
}

// diffSecurityRequirement pairs schemes by type and location. Schemes sharing
// a signature are paired in name order.
func (s *session) diffSecurityRequirement(old, new boundRequirement, ctx DiffContext) (*SecurityRequirementChange, error) {
	change := &SecurityRequirementChange{Signature: new.signature}

	pending := make(map[string][]boundScheme)
	for _, bs := range new.schemes {
		pending[bs.signature()] = append(pending[bs.signature()], bs)
	}
	for _, oldScheme := range old.schemes {
		sig := oldScheme.signature()
		queue := pending[sig]
		if len(queue) == 0 {
			continue
		}
		newScheme := queue[0]
		pending[sig] = queue[1:]

		schemeChange, err := s.diffSecurityScheme(oldScheme, newScheme, ctx)
		if err != nil {
			return nil, err
		}
		change.add(newScheme.name, schemeChange)
		change.add(newScheme.name+".scopes", diffScopes(oldScheme.scopes, newScheme.scopes))
	}
	return change, nil
}

// diffScopes classifies required scope changes: requiring more scopes breaks
// clients whose tokens lack them, requiring fewer does not.
func diffScopes(old, new []string) ChangeNode {
	increased, missing, shared := ListDiff(old, new)
	if len(increased) == 0 && len(missing) == 0 {
		return nil
	}
	level := Compatible
	if len(increased) > 0 {
		level = Incompatible
	}
	return &ListChange[string]{Field: "scopes", Increased: increased, Missing: missing, Shared: shared, Level: level}
}

func (s *session) diffSecurityScheme(old, new boundScheme, ctx DiffContext) (*SecuritySchemeChange, error) {
	leftRef := pathutil.ComponentRef(pathutil.ComponentSecuritySchemes, old.name)
	rightRef := pathutil.ComponentRef(pathutil.ComponentSecuritySchemes, new.name)
	return cachedDiff(s.cache, leftRef, rightRef, ctx, func() (*SecuritySchemeChange, error) {
		oldScheme, newScheme := old.scheme, new.scheme
		change := &SecuritySchemeChange{Old: oldScheme, New: newScheme}

		field := func(name, o, n string) {
			if o != n {
				change.deltas = append(change.deltas, Delta{Field: name, Old: o, New: n})
			}
		}
		field("type", oldScheme.Type, newScheme.Type)
		field("in", oldScheme.In, newScheme.In)
		field("name", oldScheme.Name, newScheme.Name)
		field("scheme", strings.ToLower(oldScheme.Scheme), strings.ToLower(newScheme.Scheme))
		field("bearerFormat", oldScheme.BearerFormat, newScheme.BearerFormat)
		field("openIdConnectUrl", oldScheme.OpenIDConnectURL, newScheme.OpenIDConnectURL)

		for _, flowName := range parser.OAuthFlowNames {
			oldFlow, newFlow := oldScheme.Flows.Flow(flowName), newScheme.Flows.Flow(flowName)
			switch {
			case oldFlow == nil && newFlow == nil:
			case oldFlow == nil:
				change.deltas = append(change.deltas, Delta{Field: "flows." + flowName + ".added", New: flowName})
			case newFlow == nil:
				change.deltas = append(change.deltas, Delta{Field: "flows." + flowName + ".removed", Old: flowName})
			default:
				prefix := "flows." + flowName + "."
				field(prefix+"authorizationUrl", oldFlow.AuthorizationURL, newFlow.AuthorizationURL)
				field(prefix+"tokenUrl", oldFlow.TokenURL, newFlow.TokenURL)
				field(prefix+"refreshUrl", oldFlow.RefreshURL, newFlow.RefreshURL)
			}
		}

		change.add("description", diffMetadata("description", oldScheme.Description, newScheme.Description))
		change.add("extensions", s.diffExtensions(oldScheme.Extra, newScheme.Extra, ctx))
		return change, nil
	})
}
