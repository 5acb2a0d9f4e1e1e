package differ

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oascompat/internal/httputil"
	"github.com/erraggy/oascompat/internal/pathutil"
	"github.com/erraggy/oascompat/oaserrors"
	"github.com/erraggy/oascompat/parser"
)

// PathsChange compares the path sets of the two documents. Templates are
// matched by signature, so renaming a path parameter is not an add/remove.
type PathsChange struct {
	children

	Increased []string
	Missing   []string

	// NewEndpoints and MissingEndpoints list every operation reachable only
	// in the target or only in the source, including those of added and
	// removed paths.
	NewEndpoints     []Endpoint
	MissingEndpoints []Endpoint
}

// Severity implements ChangeNode.
func (c *PathsChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode.
func (c *PathsChange) CoreSeverity() Severity {
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
func (c *PathsChange) CoreDeltas() []Delta {
	var deltas []Delta
	if len(c.Increased) > 0 {
		deltas = append(deltas, Delta{Field: "paths.added", New: c.Increased})
	}
	if len(c.Missing) > 0 {
		deltas = append(deltas, Delta{Field: "paths.removed", Old: c.Missing})
	}
	return deltas
}

// PathChange compares the operations of two matched path items.
type PathChange struct {
	children

	OldPath string
	Path    string

	Increased []string
	Missing   []string
}

// Severity implements ChangeNode.
func (c *PathChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode.
func (c *PathChange) CoreSeverity() Severity {
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
func (c *PathChange) CoreDeltas() []Delta {
	var deltas []Delta
	if c.OldPath != c.Path {
		deltas = append(deltas, Delta{Field: "template", Old: c.OldPath, New: c.Path})
	}
	if len(c.Increased) > 0 {
		deltas = append(deltas, Delta{Field: "operations.added", New: c.Increased})
	}
	if len(c.Missing) > 0 {
		deltas = append(deltas, Delta{Field: "operations.removed", Old: c.Missing})
	}
	return deltas
}

// indexPaths maps every template signature of paths to its template. Two
// templates with one signature are a fatal input error.
func indexPaths(paths parser.Paths, document string) (map[string]string, error) {
	index := make(map[string]string, len(paths))
	for _, template := range parser.SortedKeys(paths) {
		sig := pathutil.Signature(template)
		if first, ok := index[sig]; ok {
			return nil, &oaserrors.PathCollisionError{
				Document:  document,
				Signature: sig,
				First:     first,
				Second:    template,
			}
		}
		index[sig] = template
	}
	return index, nil
}

// diffPaths matches the path templates of both documents and compares every
// shared operation.
func (s *session) diffPaths(ctx DiffContext) (*PathsChange, error) {
	oldPaths, newPaths := s.source.doc.Paths, s.target.doc.Paths

	oldIndex, err := indexPaths(oldPaths, "source")
	if err != nil {
		return nil, err
	}
	newIndex, err := indexPaths(newPaths, "target")
	if err != nil {
		return nil, err
	}

	sigs := DiffMapKeys(oldIndex, newIndex)
	s.log.Debug("matched paths",
		"shared", len(sigs.SharedKeys),
		"added", len(sigs.Increased),
		"removed", len(sigs.Missing),
	)

	change := &PathsChange{}
	for _, sig := range sigs.IncreasedKeys() {
		template := newIndex[sig]
		item := newPaths[template]
		if item == nil {
			item = &parser.PathItem{}
		}
		pathCtx := ctx.WithURL(template)
		if !s.parentApplicable(ExtensionAdded, item, item.Extra, pathCtx) {
			continue
		}
		change.Increased = append(change.Increased, template)
		change.NewEndpoints = append(change.NewEndpoints, s.pathEndpoints(template, item, ExtensionAdded, pathCtx)...)
	}
	for _, sig := range sigs.MissingKeys() {
		template := oldIndex[sig]
		item := oldPaths[template]
		if item == nil {
			item = &parser.PathItem{}
		}
		pathCtx := ctx.WithURL(template)
		if !s.parentApplicable(ExtensionRemoved, item, item.Extra, pathCtx) {
			continue
		}
		change.Missing = append(change.Missing, template)
		change.MissingEndpoints = append(change.MissingEndpoints, s.pathEndpoints(template, item, ExtensionRemoved, pathCtx)...)
	}
	slices.Sort(change.Increased)
	slices.Sort(change.Missing)

	shared := slices.Clone(sigs.SharedKeys)
	slices.SortFunc(shared, func(a, b string) int {
		return strings.Compare(newIndex[a], newIndex[b])
	})
	for _, sig := range shared {
		oldTemplate, newTemplate := oldIndex[sig], newIndex[sig]
		child, err := s.diffPath(oldTemplate, newTemplate, oldPaths[oldTemplate], newPaths[newTemplate], change, ctx)
		if err != nil {
			return nil, err
		}
		change.add(newTemplate, child)
	}
	sortEndpoints(change.NewEndpoints)
	sortEndpoints(change.MissingEndpoints)
	return change, nil
}

// pathEndpoints lists the operations of a path that exists on one side only.
func (s *session) pathEndpoints(template string, item *parser.PathItem, changeType ExtensionChangeType, ctx DiffContext) []Endpoint {
	var endpoints []Endpoint
	for _, method := range httputil.Methods {
		op := item.Operation(method)
		if op == nil {
			continue
		}
		if !s.parentApplicable(changeType, op, op.Extra, ctx.WithMethod(method)) {
			continue
		}
		endpoints = append(endpoints, newEndpoint(template, method, op))
	}
	return endpoints
}

func (s *session) diffPath(oldTemplate, newTemplate string, oldItem, newItem *parser.PathItem, paths *PathsChange, ctx DiffContext) (*PathChange, error) {
	if oldItem == nil {
		oldItem = &parser.PathItem{}
	}
	if newItem == nil {
		newItem = &parser.PathItem{}
	}
	pathCtx := ctx.WithURL(newTemplate).WithRenames(pathutil.RenameMap(oldTemplate, newTemplate))
	change := &PathChange{OldPath: oldTemplate, Path: newTemplate}

	for _, method := range httputil.Methods {
		oldOp, newOp := oldItem.Operation(method), newItem.Operation(method)
		opCtx := pathCtx.WithMethod(method)
		switch {
		case oldOp == nil && newOp == nil:
		case oldOp == nil:
			if s.parentApplicable(ExtensionAdded, newOp, newOp.Extra, opCtx) {
				change.Increased = append(change.Increased, method)
				paths.NewEndpoints = append(paths.NewEndpoints, newEndpoint(newTemplate, method, newOp))
			}
		case newOp == nil:
			if s.parentApplicable(ExtensionRemoved, oldOp, oldOp.Extra, opCtx) {
				change.Missing = append(change.Missing, method)
				paths.MissingEndpoints = append(paths.MissingEndpoints, newEndpoint(oldTemplate, method, oldOp))
			}
		default:
			op, err := s.diffOperation(oldItem, newItem, oldOp, newOp, opCtx)
			if err != nil {
				return nil, fmt.Errorf("differ: %s %s: %w", method, newTemplate, err)
			}
			change.add(method, op)
		}
	}
	change.add("extensions", s.diffExtensions(oldItem.Extra, newItem.Extra, pathCtx))
	return change, nil
}

// sortEndpoints orders endpoints by template, then by method document order.
func sortEndpoints(endpoints []Endpoint) {
	slices.SortStableFunc(endpoints, func(a, b Endpoint) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return httputil.MethodIndex(a.Method) - httputil.MethodIndex(b.Method)
	})
}
