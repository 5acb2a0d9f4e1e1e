package differ

import (
	"fmt"
	"reflect"

	"github.com/erraggy/oascompat/internal/severity"
)

// ChangeNode is one node of the change tree.
//
// CoreSeverity classifies the node's own scalar differences, reported by
// CoreDeltas. Severity is the aggregate of the core severity and the
// severities of all children; every node type in this package computes it
// with the same max-wins rule.
type ChangeNode interface {
	Severity() Severity
	CoreSeverity() Severity
	CoreDeltas() []Delta
	Children() []NamedChild
}

// Delta is one scalar difference owned by a node.
type Delta struct {
	Field string `json:"field" yaml:"field"`
	Old   any    `json:"old,omitempty" yaml:"old,omitempty"`
	New   any    `json:"new,omitempty" yaml:"new,omitempty"`
}

// String renders the delta as "field: old -> new", or with a "+" or "-"
// marker when only one side is set.
func (d Delta) String() string {
	switch {
	case d.Old == nil && d.New == nil:
		return d.Field
	case d.Old == nil:
		return fmt.Sprintf("%s: + %v", d.Field, d.New)
	case d.New == nil:
		return fmt.Sprintf("%s: - %v", d.Field, d.Old)
	default:
		return fmt.Sprintf("%s: %v -> %v", d.Field, d.Old, d.New)
	}
}

// NamedChild pairs a child node with the path segment it is reported under.
type NamedChild struct {
	Name string
	Node ChangeNode
}

// children is the named-children container embedded by composite nodes.
type children struct {
	items []NamedChild
}

// add appends node under name. Nil nodes, including typed nil pointers, are
// skipped: a nil result means the subtree contributes nothing.
func (c *children) add(name string, node ChangeNode) {
	if isNilNode(node) {
		return
	}
	c.items = append(c.items, NamedChild{Name: name, Node: node})
}

// Children implements ChangeNode.
func (c *children) Children() []NamedChild {
	return c.items
}

func isNilNode(node ChangeNode) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// aggregate returns max(core severity, every child's severity).
func aggregate(n ChangeNode) Severity {
	level := n.CoreSeverity()
	for _, c := range n.Children() {
		level = severity.Max(level, c.Node.Severity())
	}
	return level
}

// ValueChange is a leaf node for a single scalar facet.
type ValueChange struct {
	Field string
	Old   any
	New   any
	Level Severity
}

// Severity implements ChangeNode.
func (v *ValueChange) Severity() Severity { return v.Level }

// CoreSeverity implements ChangeNode.
func (v *ValueChange) CoreSeverity() Severity { return v.Level }

// CoreDeltas implements ChangeNode.
func (v *ValueChange) CoreDeltas() []Delta {
	return []Delta{{Field: v.Field, Old: v.Old, New: v.New}}
}

// Children implements ChangeNode.
func (v *ValueChange) Children() []NamedChild { return nil }

// ListChange is a leaf node over an unordered collection of scalar values.
type ListChange[T any] struct {
	Field     string
	Increased []T
	Missing   []T
	Shared    []T
	Level     Severity
}

// Severity implements ChangeNode.
func (l *ListChange[T]) Severity() Severity { return l.Level }

// CoreSeverity implements ChangeNode.
func (l *ListChange[T]) CoreSeverity() Severity { return l.Level }

// CoreDeltas implements ChangeNode.
func (l *ListChange[T]) CoreDeltas() []Delta {
	var deltas []Delta
	if len(l.Increased) > 0 {
		deltas = append(deltas, Delta{Field: l.Field + ".added", New: l.Increased})
	}
	if len(l.Missing) > 0 {
		deltas = append(deltas, Delta{Field: l.Field + ".removed", Old: l.Missing})
	}
	return deltas
}

// Children implements ChangeNode.
func (l *ListChange[T]) Children() []NamedChild { return nil }

// IsEmpty reports whether nothing was added or removed.
func (l *ListChange[T]) IsEmpty() bool {
	return len(l.Increased) == 0 && len(l.Missing) == 0
}

// groupChange is a composite with no scalar facets of its own, used for the
// "properties" and "extensions" groupings.
type groupChange struct {
	children
}

// Severity implements ChangeNode.
func (g *groupChange) Severity() Severity { return aggregate(g) }

// CoreSeverity implements ChangeNode.
func (g *groupChange) CoreSeverity() Severity { return NoChanges }

// CoreDeltas implements ChangeNode.
func (g *groupChange) CoreDeltas() []Delta { return nil }

// orNil returns nil when the group has no children.
func (g *groupChange) orNil() ChangeNode {
	if g == nil || len(g.items) == 0 {
		return nil
	}
	return g
}
