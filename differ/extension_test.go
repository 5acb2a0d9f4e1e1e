package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascompat/oaserrors"
	"github.com/erraggy/oascompat/parser"
)

// stabilityExtension treats any change of x-stability as breaking and hides
// added or removed operations marked experimental.
type stabilityExtension struct{}

func (stabilityExtension) Name() string { return "stability" }

func (stabilityExtension) Diff(change ExtensionChange, _ DiffContext) ChangeNode {
	return &ValueChange{Field: change.Name, Old: change.Old, New: change.New, Level: Incompatible}
}

func (stabilityExtension) IsParentApplicable(_ ExtensionChangeType, parent any, value any, _ DiffContext) bool {
	if _, ok := parent.(*parser.Operation); !ok {
		return true
	}
	return value != "experimental"
}

func extensionDoc(opExtra string) string {
	return `
openapi: 3.0.3
info: {title: t, version: "1"}
x-owner: team-a
paths:
  /items:
    get:
` + opExtra + `
      responses:
        "200": {description: ok}
`
}

func TestExtensions_DefaultsToMetadata(t *testing.T) {
	result := mustDiff(t, extensionDoc("      x-internal: false"), extensionDoc("      x-internal: true"))

	ext := childNode(t, result, "paths", "/items", "get", "extensions", "x-internal")
	assert.Equal(t, Metadata, ext.Severity())
	assert.Equal(t, Metadata, result.Severity())
}

func TestExtensions_DefaultsDisabled(t *testing.T) {
	result := mustDiff(t,
		extensionDoc("      x-internal: false"),
		extensionDoc("      x-internal: true"),
		WithExtensionDefaults(false),
	)
	assert.Equal(t, NoChanges, result.Severity())
}

func TestExtensions_Ignored(t *testing.T) {
	result := mustDiff(t,
		extensionDoc("      x-internal: false"),
		extensionDoc("      x-internal: true"),
		WithIgnoreExtensions("internal"),
	)
	assert.Equal(t, NoChanges, result.Severity())
}

func TestExtensions_RegisteredComparator(t *testing.T) {
	result := mustDiff(t,
		extensionDoc("      x-stability: stable"),
		extensionDoc("      x-stability: beta"),
		WithExtension(stabilityExtension{}),
	)
	ext := childNode(t, result, "paths", "/items", "get", "extensions", "x-stability")
	assert.Equal(t, Incompatible, ext.Severity())

	added := mustDiff(t, extensionDoc(""), extensionDoc("      x-stability: beta"), WithExtension(stabilityExtension{}))
	assert.Equal(t, Incompatible, added.Severity())
}

func TestExtensions_ParentVeto(t *testing.T) {
	source := `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /items:
    get:
      responses:
        "200": {description: ok}
`
	target := `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /items:
    get:
      responses:
        "200": {description: ok}
    post:
      x-stability: experimental
      responses:
        "201": {description: ok}
  /labs:
    get:
      x-stability: experimental
      responses:
        "200": {description: ok}
`
	result := mustDiff(t, source, target, WithExtension(stabilityExtension{}))

	assert.Empty(t, result.NewEndpoints)
	path, ok := childNode(t, result, "paths", "/items").(*PathChange)
	require.True(t, ok)
	assert.Empty(t, path.Increased)

	// the path itself is still reported as added
	assert.Equal(t, []string{"/labs"}, result.Paths.Increased)

	unfiltered := mustDiff(t, source, target)
	assert.Len(t, unfiltered.NewEndpoints, 2)
}

func TestExtensions_DuplicateRegistration(t *testing.T) {
	_, err := diffDocs(t, extensionDoc(""), extensionDoc(""),
		WithExtension(stabilityExtension{}),
		WithExtension(stabilityExtension{}),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	d := New()
	d.Extensions = []ExtensionDiff{stabilityExtension{}, stabilityExtension{}}
	_, err = d.DiffParsed(parseDoc(t, extensionDoc("")), parseDoc(t, extensionDoc("")))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestExtensions_DocumentLevel(t *testing.T) {
	target := `
openapi: 3.0.3
info: {title: t, version: "1"}
x-owner: team-b
paths:
  /items:
    get:
      responses:
        "200": {description: ok}
`
	result := mustDiff(t, extensionDoc(""), target)
	ext := childNode(t, result, "extensions", "x-owner")
	assert.Equal(t, Metadata, ext.Severity())
}

func TestNormalizeExtensionName(t *testing.T) {
	assert.Equal(t, "x-foo", normalizeExtensionName("foo"))
	assert.Equal(t, "x-foo", normalizeExtensionName("x-foo"))
}
