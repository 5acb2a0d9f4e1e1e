package differ

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oascompat/oaserrors"
	"github.com/erraggy/oascompat/parser"
)

// DiffResult is the root of a change tree.
type DiffResult struct {
	children

	// SourcePath and TargetPath identify the compared documents
	SourcePath string
	TargetPath string
	// SourceVersion and TargetVersion are the documents' openapi versions
	SourceVersion string
	TargetVersion string

	// NewEndpoints are operations only present in the target
	NewEndpoints []Endpoint
	// MissingEndpoints are operations only present in the source
	MissingEndpoints []Endpoint
	// DeprecatedEndpoints are shared operations that became deprecated
	DeprecatedEndpoints []Endpoint
	// ChangedOperations are the shared operations with any change, in path
	// then method order
	ChangedOperations []*OperationChange

	// Info compares the documents' info objects; nil when unchanged
	Info *InfoChange
	// Paths compares the documents' path sets
	Paths *PathsChange
}

// Severity implements ChangeNode. It is the worst severity anywhere in the tree.
func (r *DiffResult) Severity() Severity { return aggregate(r) }

// CoreSeverity implements ChangeNode.
func (r *DiffResult) CoreSeverity() Severity { return NoChanges }

// CoreDeltas implements ChangeNode.
func (r *DiffResult) CoreDeltas() []Delta { return nil }

// IsCompatible reports whether no change in the tree is Incompatible or
// Unknown.
func (r *DiffResult) IsCompatible() bool {
	return r.Severity() <= Compatible
}

// IsUnchanged reports whether the documents are equivalent.
func (r *DiffResult) IsUnchanged() bool {
	return r.Severity() == NoChanges
}

// Flatten lists the changed nodes of the tree rooted at "api", most specific
// first.
func (r *DiffResult) Flatten() []FlatEntry {
	return Flatten(r, "api")
}

// InfoChange compares the info objects of the two documents.
type InfoChange struct {
	children
}

// Severity implements ChangeNode.
func (c *InfoChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode.
func (c *InfoChange) CoreSeverity() Severity { return NoChanges }

// CoreDeltas implements ChangeNode.
func (c *InfoChange) CoreDeltas() []Delta { return nil }

// Differ compares OpenAPI documents.
type Differ struct {
	// Logger receives debug details about a comparison and the final verdict.
	// Defaults to parser.NopLogger.
	Logger parser.Logger
	// Extensions are the vendor extension comparators to register.
	Extensions []ExtensionDiff
	// ExtensionDefaults classifies changes to unregistered extensions as
	// Metadata. When false they are ignored.
	ExtensionDefaults bool
	// IgnoreExtensions lists extension names excluded from comparison.
	IgnoreExtensions []string
}

// New creates a new Differ with default settings
func New() *Differ {
	return &Differ{ExtensionDefaults: true}
}

// Diff parses the two documents at sourcePath and targetPath concurrently and
// compares them.
func (d *Differ) Diff(sourcePath, targetPath string) (*DiffResult, error) {
	source, target, err := d.load(sourcePath, targetPath)
	if err != nil {
		return nil, err
	}
	return d.DiffParsed(*source, *target)
}

func (d *Differ) load(sourcePath, targetPath string) (*parser.ParseResult, *parser.ParseResult, error) {
	var source, target *parser.ParseResult
	var g errgroup.Group
	g.Go(func() error {
		var err error
		source, err = parser.ParseWithOptions(parser.WithFilePath(sourcePath), parser.WithLogger(d.logger()))
		if err != nil {
			return fmt.Errorf("differ: failed to parse source: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		target, err = parser.ParseWithOptions(parser.WithFilePath(targetPath), parser.WithLogger(d.logger()))
		if err != nil {
			return fmt.Errorf("differ: failed to parse target: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return source, target, nil
}

// DiffParsed compares two parsed documents. Every call uses its own session,
// so a Differ may be shared by concurrent callers.
func (d *Differ) DiffParsed(source, target parser.ParseResult) (*DiffResult, error) {
	s, err := d.newSession(source, target)
	if err != nil {
		return nil, err
	}
	result, err := s.run()
	if err != nil {
		return nil, err
	}
	result.SourcePath = source.SourcePath
	result.TargetPath = target.SourcePath
	result.SourceVersion = source.Version
	result.TargetVersion = target.Version
	return result, nil
}

func (d *Differ) logger() parser.Logger {
	if d.Logger == nil {
		return parser.NopLogger{}
	}
	return d.Logger
}

// documentSide is one document of a session with its resolution state.
type documentSide struct {
	doc      *parser.Document
	resolver *parser.Resolver
	allOf    *allOfFlattener
}

func newDocumentSide(doc *parser.Document) *documentSide {
	r := parser.NewResolver(doc)
	return &documentSide{doc: doc, resolver: r, allOf: newAllOfFlattener(r)}
}

// session is the state of one comparison. It is not safe for concurrent use.
type session struct {
	source *documentSide
	target *documentSide
	cache  *refCache

	extensions        map[string]ExtensionDiff
	extensionDefaults bool
	ignored           map[string]bool

	log parser.Logger
}

func (d *Differ) newSession(source, target parser.ParseResult) (*session, error) {
	if source.Document == nil {
		return nil, &oaserrors.ConfigError{Option: "source", Message: "source document is missing"}
	}
	if target.Document == nil {
		return nil, &oaserrors.ConfigError{Option: "target", Message: "target document is missing"}
	}

	s := &session{
		source:            newDocumentSide(source.Document),
		target:            newDocumentSide(target.Document),
		cache:             newRefCache(),
		extensions:        make(map[string]ExtensionDiff, len(d.Extensions)),
		extensionDefaults: d.ExtensionDefaults,
		ignored:           make(map[string]bool, len(d.IgnoreExtensions)),
		log:               d.logger(),
	}
	for _, ext := range d.Extensions {
		if ext == nil {
			return nil, &oaserrors.ConfigError{Option: "extension", Message: "nil extension comparator"}
		}
		name := normalizeExtensionName(ext.Name())
		if _, dup := s.extensions[name]; dup {
			return nil, &oaserrors.ConfigError{Option: "extension", Value: name, Message: "extension registered twice"}
		}
		s.extensions[name] = ext
	}
	for _, name := range d.IgnoreExtensions {
		s.ignored[normalizeExtensionName(name)] = true
	}
	return s, nil
}

// run compares the two documents of the session.
func (s *session) run() (*DiffResult, error) {
	s.log.Debug("comparing documents",
		"sourcePaths", len(s.source.doc.Paths),
		"targetPaths", len(s.target.doc.Paths),
		"extensions", len(s.extensions),
	)
	ctx := NewDiffContext()
	result := &DiffResult{}

	result.Info = diffInfo(s.source.doc.Info, s.target.doc.Info)
	result.add("info", result.Info)

	paths, err := s.diffPaths(ctx)
	if err != nil {
		return nil, err
	}
	result.Paths = paths
	result.add("paths", paths)
	result.add("extensions", s.diffExtensions(s.source.doc.Extra, s.target.doc.Extra, ctx))

	result.NewEndpoints = paths.NewEndpoints
	result.MissingEndpoints = paths.MissingEndpoints
	for _, p := range paths.Children() {
		for _, op := range p.Node.Children() {
			oc, ok := op.Node.(*OperationChange)
			if !ok {
				continue
			}
			if oc.NewlyDeprecated() {
				result.DeprecatedEndpoints = append(result.DeprecatedEndpoints, oc.Endpoint())
			}
			if oc.Severity() > NoChanges {
				result.ChangedOperations = append(result.ChangedOperations, oc)
			}
		}
	}

	s.log.Debug("reference cache",
		"hits", s.cache.hits,
		"cycles", s.cache.cycles,
		"allOfHits", s.source.allOf.hits+s.target.allOf.hits,
	)
	s.log.Info("comparison complete",
		"severity", result.Severity().String(),
		"new", len(result.NewEndpoints),
		"missing", len(result.MissingEndpoints),
		"changed", len(result.ChangedOperations),
	)
	return result, nil
}

func diffInfo(old, new *parser.Info) *InfoChange {
	if old == nil {
		old = &parser.Info{}
	}
	if new == nil {
		new = &parser.Info{}
	}
	change := &InfoChange{}
	change.add("title", diffMetadata("title", old.Title, new.Title))
	change.add("description", diffMetadata("description", old.Description, new.Description))
	change.add("version", diffMetadata("version", old.Version, new.Version))
	if len(change.items) == 0 {
		return nil
	}
	return change
}
