package differ

import (
	"cmp"
	"slices"

	"github.com/erraggy/oascompat/internal/pathutil"
)

// FlatEntry is one changed node of a change tree, annotated with its location.
type FlatEntry struct {
	// Path is the dotted location of the node, starting at the root identifier
	Path string `json:"path" yaml:"path"`
	// Identifier is the node's own path segment
	Identifier string `json:"identifier" yaml:"identifier"`
	// Depth is the number of segments in Path
	Depth int `json:"depth" yaml:"depth"`
	// Severity is the aggregated severity of the node's subtree
	Severity Severity `json:"severity" yaml:"severity"`
	// CoreSeverity classifies only the node's own deltas
	CoreSeverity Severity `json:"coreSeverity" yaml:"coreSeverity"`
	// Deltas are the node's own scalar differences
	Deltas []Delta `json:"deltas,omitempty" yaml:"deltas,omitempty"`
}

// Flatten walks the tree depth-first and lists every node whose aggregated
// severity is above NoChanges. Each node's children are listed before the
// node itself; the result is then stably sorted by decreasing depth, so
// specific details come before the summaries that contain them.
func Flatten(root ChangeNode, identifier string) []FlatEntry {
	if isNilNode(root) {
		return nil
	}
	path := pathutil.Get()
	defer pathutil.Put(path)

	var entries []FlatEntry
	flattenNode(root, identifier, path, &entries)
	slices.SortStableFunc(entries, func(a, b FlatEntry) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return entries
}

func flattenNode(node ChangeNode, name string, path *pathutil.PathBuilder, out *[]FlatEntry) {
	path.Push(name)
	defer path.Pop()

	for _, child := range node.Children() {
		flattenNode(child.Node, child.Name, path, out)
	}

	level := node.Severity()
	if level == NoChanges {
		return
	}
	*out = append(*out, FlatEntry{
		Path:         path.String(),
		Identifier:   name,
		Depth:        path.Depth(),
		Severity:     level,
		CoreSeverity: node.CoreSeverity(),
		Deltas:       node.CoreDeltas(),
	})
}
