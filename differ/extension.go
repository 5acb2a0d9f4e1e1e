package differ

import (
	"reflect"
	"strings"

	"github.com/erraggy/oascompat/parser"
)

// ExtensionChangeType describes how a vendor extension differs between the
// two documents.
type ExtensionChangeType int

const (
	// ExtensionAdded means the extension is only present in the target.
	ExtensionAdded ExtensionChangeType = iota
	// ExtensionRemoved means the extension is only present in the source.
	ExtensionRemoved
	// ExtensionChanged means both documents carry the extension with different values.
	ExtensionChanged
)

// String returns the lowercase name of the change type.
func (t ExtensionChangeType) String() string {
	switch t {
	case ExtensionAdded:
		return "added"
	case ExtensionRemoved:
		return "removed"
	case ExtensionChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// ExtensionChange describes one differing vendor extension. Old is nil for
// an added extension and New is nil for a removed one.
type ExtensionChange struct {
	Type ExtensionChangeType
	Name string
	Old  any
	New  any
}

// ExtensionDiff is a comparator for one vendor extension.
//
// Diff returns the change record for a differing extension value, or nil
// when the difference is irrelevant. IsParentApplicable lets the extension
// veto reporting of an added or removed operation or path that carries it;
// returning false hides the element from the endpoint lists.
type ExtensionDiff interface {
	Name() string
	Diff(change ExtensionChange, ctx DiffContext) ChangeNode
	IsParentApplicable(changeType ExtensionChangeType, parent any, value any, ctx DiffContext) bool
}

// normalizeExtensionName adds the "x-" prefix when it is missing.
func normalizeExtensionName(name string) string {
	if strings.HasPrefix(name, "x-") {
		return name
	}
	return "x-" + name
}

// diffExtensions compares the vendor extensions of two elements. Registered
// comparators classify their own extensions; other differences are Metadata
// unless extension defaults are disabled. Returns nil when nothing differs.
func (s *session) diffExtensions(oldExtra, newExtra map[string]any, ctx DiffContext) ChangeNode {
	old := parser.Extensions(oldExtra)
	new := parser.Extensions(newExtra)
	if len(old) == 0 && len(new) == 0 {
		return nil
	}

	group := &groupChange{}
	keys := DiffMapKeys(old, new)
	for _, name := range keys.IncreasedKeys() {
		group.add(name, s.extensionNode(ExtensionChange{Type: ExtensionAdded, Name: name, New: new[name]}, ctx))
	}
	for _, name := range keys.MissingKeys() {
		group.add(name, s.extensionNode(ExtensionChange{Type: ExtensionRemoved, Name: name, Old: old[name]}, ctx))
	}
	for _, name := range keys.SharedKeys {
		if reflect.DeepEqual(old[name], new[name]) {
			continue
		}
		group.add(name, s.extensionNode(ExtensionChange{Type: ExtensionChanged, Name: name, Old: old[name], New: new[name]}, ctx))
	}
	return group.orNil()
}

func (s *session) extensionNode(change ExtensionChange, ctx DiffContext) ChangeNode {
	if s.ignored[change.Name] {
		return nil
	}
	if ext, ok := s.extensions[change.Name]; ok {
		return ext.Diff(change, ctx)
	}
	if !s.extensionDefaults {
		return nil
	}
	return &ValueChange{Field: change.Name, Old: change.Old, New: change.New, Level: Metadata}
}

// parentApplicable asks every registered comparator whose extension the
// parent carries whether the added or removed parent should be reported.
func (s *session) parentApplicable(changeType ExtensionChangeType, parent any, extra map[string]any, ctx DiffContext) bool {
	if len(s.extensions) == 0 {
		return true
	}
	for _, name := range parser.SortedKeys(parser.Extensions(extra)) {
		ext, ok := s.extensions[name]
		if !ok || s.ignored[name] {
			continue
		}
		if !ext.IsParentApplicable(changeType, parent, extra[name], ctx) {
			s.log.Debug("extension vetoed parent", "extension", name, "change", changeType.String(), "path", ctx.URL(), "method", ctx.Method())
			return false
		}
	}
	return true
}
