package differ

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/oascompat/internal/pathutil"
	"github.com/erraggy/oascompat/oaserrors"
	"github.com/erraggy/oascompat/parser"
)

// SchemaKind is the comparison shape chosen for a pair of schemas once
// allOf members have been merged.
type SchemaKind int

const (
	// SchemaPlain compares properties and facets only.
	SchemaPlain SchemaKind = iota
	// SchemaArray additionally compares the item schema.
	SchemaArray
	// SchemaComposed additionally compares oneOf/anyOf branches.
	SchemaComposed
)

// String returns the kind name.
func (k SchemaKind) String() string {
	switch k {
	case SchemaArray:
		return "array"
	case SchemaComposed:
		return "composed"
	default:
		return "plain"
	}
}

func schemaKind(s *parser.Schema) SchemaKind {
	switch {
	case compositionKeyword(s) != "":
		return SchemaComposed
	case s.TypeName() == "array":
		return SchemaArray
	default:
		return SchemaPlain
	}
}

func compositionKeyword(s *parser.Schema) string {
	switch {
	case len(s.OneOf) > 0:
		return "oneOf"
	case len(s.AnyOf) > 0:
		return "anyOf"
	default:
		return ""
	}
}

// SchemaChange is the comparison of two effective schemas.
type SchemaChange struct {
	children

	Kind SchemaKind
	// Old and New are the compared schemas after reference resolution and
	// allOf merging. Either is nil when the schema is absent on that side.
	Old *parser.Schema
	New *parser.Schema

	// TypeChanged is set when a side is absent or the type, format or
	// composition shape differs. No field-by-field comparison is done then.
	TypeChanged bool

	IncreasedProperties []string
	MissingProperties   []string

	DeprecatedChanged            bool
	DiscriminatorPropertyChanged bool

	direction Direction
}

// Severity implements ChangeNode.
func (c *SchemaChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode.
func (c *SchemaChange) CoreSeverity() Severity {
	if !c.TypeChanged &&
		len(c.IncreasedProperties) == 0 &&
		len(c.MissingProperties) == 0 &&
		!c.DeprecatedChanged &&
		!c.DiscriminatorPropertyChanged {
		return NoChanges
	}
	if c.TypeChanged || c.DiscriminatorPropertyChanged {
		return Incompatible
	}
	compatibleForRequest := c.Old != nil || c.New == nil
	compatibleForResponse := len(c.MissingProperties) == 0 && (c.Old == nil || c.New != nil)
	if (c.direction == DirectionRequest && compatibleForRequest) ||
		(c.direction == DirectionResponse && compatibleForResponse) {
		return Compatible
	}
	return Incompatible
}

// CoreDeltas implements ChangeNode.
func (c *SchemaChange) CoreDeltas() []Delta {
	var deltas []Delta
	if c.TypeChanged {
		deltas = append(deltas,
			Delta{Field: "type", Old: describeSchemaType(c.Old), New: describeSchemaType(c.New)})
		return deltas
	}
	if len(c.IncreasedProperties) > 0 {
		deltas = append(deltas, Delta{Field: "properties.added", New: c.IncreasedProperties})
	}
	if len(c.MissingProperties) > 0 {
		deltas = append(deltas, Delta{Field: "properties.removed", Old: c.MissingProperties})
	}
	if c.DeprecatedChanged {
		deltas = append(deltas, Delta{Field: "deprecated", Old: c.Old.Deprecated, New: c.New.Deprecated})
	}
	if c.DiscriminatorPropertyChanged {
		deltas = append(deltas, Delta{
			Field: "discriminator.propertyName",
			Old:   discriminatorProperty(c.Old),
			New:   discriminatorProperty(c.New),
		})
	}
	return deltas
}

// describeSchemaType renders type, format and composition for a type change.
func describeSchemaType(s *parser.Schema) any {
	if s == nil {
		return nil
	}
	desc := s.TypeName()
	if s.Format != "" {
		desc += "(" + s.Format + ")"
	}
	if kw := compositionKeyword(s); kw != "" {
		desc = strings.TrimSpace(desc + " " + kw)
	}
	if desc == "" {
		return "any"
	}
	return desc
}

func discriminatorProperty(s *parser.Schema) string {
	if s == nil || s.Discriminator == nil {
		return ""
	}
	return s.Discriminator.PropertyName
}

func refOf(s *parser.Schema) string {
	if s == nil {
		return ""
	}
	return s.Ref
}

// diffSchema compares two schemas as they appear in the documents. Both
// sides absent yields nil. Referenced pairs go through the session cache, so
// a nil result with a nil error also means the pair is already being
// compared further up the stack.
func (s *session) diffSchema(left, right *parser.Schema, ctx DiffContext) (*SchemaChange, error) {
	if left == nil && right == nil {
		return nil, nil
	}
	return cachedDiff(s.cache, refOf(left), refOf(right), ctx, func() (*SchemaChange, error) {
		return s.compareSchemas(left, right, ctx)
	})
}

func (s *session) compareSchemas(left, right *parser.Schema, ctx DiffContext) (*SchemaChange, error) {
	oldSchema, err := s.effectiveSchema(s.source, left)
	if err != nil {
		return nil, err
	}
	newSchema, err := s.effectiveSchema(s.target, right)
	if err != nil {
		return nil, err
	}

	change := &SchemaChange{Old: oldSchema, New: newSchema, direction: ctx.Direction()}
	if oldSchema == nil || newSchema == nil ||
		oldSchema.TypeName() != newSchema.TypeName() ||
		oldSchema.Format != newSchema.Format ||
		compositionKeyword(oldSchema) != compositionKeyword(newSchema) {
		change.TypeChanged = true
		if oldSchema != nil {
			change.Kind = schemaKind(oldSchema)
		}
		return change, nil
	}

	change.Kind = schemaKind(newSchema)
	if err := s.compareSchemaFacets(change, oldSchema, newSchema, ctx); err != nil {
		return nil, err
	}

	switch change.Kind {
	case SchemaArray:
		items, err := s.diffSchema(oldSchema.Items, newSchema.Items, ctx.WithRequired(true))
		if err != nil {
			return nil, err
		}
		change.add("items", items)
	case SchemaComposed:
		composed, err := s.diffComposition(oldSchema, newSchema, ctx)
		if err != nil {
			return nil, err
		}
		change.add(composed.Keyword, composed)
	}
	return change, nil
}

// effectiveSchema resolves a schema reference and merges allOf members.
func (s *session) effectiveSchema(side *documentSide, schema *parser.Schema) (*parser.Schema, error) {
	if schema == nil {
		return nil, nil
	}
	resolved, err := side.resolver.Schema(schema)
	if err != nil {
		return nil, err
	}
	return side.allOf.flatten(resolved)
}

// compareSchemaFacets is the comparison shared by plain, array and composed
// schemas: metadata, constraints, enum, required and properties.
func (s *session) compareSchemaFacets(change *SchemaChange, oldSchema, newSchema *parser.Schema, ctx DiffContext) error {
	change.add("title", diffMetadata("title", oldSchema.Title, newSchema.Title))
	change.add("description", diffMetadata("description", oldSchema.Description, newSchema.Description))
	change.add("default", diffDefault(oldSchema.Default, newSchema.Default))

	change.DeprecatedChanged = oldSchema.Deprecated != newSchema.Deprecated
	change.DiscriminatorPropertyChanged = discriminatorProperty(oldSchema) != discriminatorProperty(newSchema)

	change.add("readOnly", diffReadOnly(oldSchema.ReadOnly, newSchema.ReadOnly, ctx))
	change.add("writeOnly", diffWriteOnly(oldSchema.WriteOnly, newSchema.WriteOnly))
	change.add("nullable", diffNullable(oldSchema.IsNullable(), newSchema.IsNullable(), ctx))

	change.add("maxLength", diffUpperBound("maxLength", oldSchema.MaxLength, newSchema.MaxLength, ctx))
	change.add("minLength", diffLowerBound("minLength", oldSchema.MinLength, newSchema.MinLength, ctx))
	change.add("maximum", diffUpperBound("maximum", oldSchema.Maximum, newSchema.Maximum, ctx))
	change.add("minimum", diffLowerBound("minimum", oldSchema.Minimum, newSchema.Minimum, ctx))
	change.add("maxItems", diffUpperBound("maxItems", oldSchema.MaxItems, newSchema.MaxItems, ctx))
	change.add("minItems", diffLowerBound("minItems", oldSchema.MinItems, newSchema.MinItems, ctx))
	change.add("maxProperties", diffUpperBound("maxProperties", oldSchema.MaxProperties, newSchema.MaxProperties, ctx))
	change.add("minProperties", diffLowerBound("minProperties", oldSchema.MinProperties, newSchema.MinProperties, ctx))
	change.add("uniqueItems", diffUniqueItems(oldSchema.UniqueItems, newSchema.UniqueItems, ctx))
	change.add("pattern", diffPattern(oldSchema.Pattern, newSchema.Pattern, ctx))

	change.add("enum", diffEnum(oldSchema.Enum, newSchema.Enum, ctx))
	change.add("required", diffRequired(oldSchema.Required, newSchema.Required, ctx))

	if err := s.compareProperties(change, oldSchema, newSchema, ctx); err != nil {
		return err
	}

	additional, err := s.diffAdditionalProperties(oldSchema.AdditionalProperties, newSchema.AdditionalProperties, ctx)
	if err != nil {
		return err
	}
	change.add("additionalProperties", additional)

	change.add("extensions", s.diffExtensions(oldSchema.Extra, newSchema.Extra, ctx))
	return nil
}

// compareProperties partitions the property sets and recurses into shared
// properties. Properties a direction never carries (readOnly in requests,
// writeOnly in responses) are not counted as added or removed.
func (s *session) compareProperties(change *SchemaChange, oldSchema, newSchema *parser.Schema, ctx DiffContext) error {
	props := DiffMapKeys(oldSchema.Properties, newSchema.Properties)

	for _, name := range props.IncreasedKeys() {
		ignored, err := s.ignoredProperty(s.target, props.Increased[name], ctx)
		if err != nil {
			return err
		}
		if !ignored {
			change.IncreasedProperties = append(change.IncreasedProperties, name)
		}
	}
	for _, name := range props.MissingKeys() {
		ignored, err := s.ignoredProperty(s.source, props.Missing[name], ctx)
		if err != nil {
			return err
		}
		if !ignored {
			change.MissingProperties = append(change.MissingProperties, name)
		}
	}

	group := &groupChange{}
	for _, name := range props.SharedKeys {
		child, err := s.diffSchema(
			oldSchema.Properties[name],
			newSchema.Properties[name],
			ctx.WithRequired(newSchema.IsRequired(name)),
		)
		if err != nil {
			return err
		}
		group.add(name, child)
	}
	change.add("properties", group.orNil())
	return nil
}

func (s *session) ignoredProperty(side *documentSide, prop *parser.Schema, ctx DiffContext) (bool, error) {
	resolved, err := s.effectiveSchema(side, prop)
	if err != nil {
		return false, err
	}
	if resolved == nil {
		return false, nil
	}
	return (ctx.IsRequest() && resolved.ReadOnly) || (ctx.IsResponse() && resolved.WriteOnly), nil
}

// additionalPropertiesLevel orders additionalProperties from open to closed:
// unconstrained, constrained by a schema, forbidden.
func additionalPropertiesLevel(ap *parser.SchemaOrBool) int {
	switch {
	case ap.AllowsAny():
		return 0
	case ap.Schema != nil:
		return 1
	default:
		return 2
	}
}

func describeAdditionalProperties(ap *parser.SchemaOrBool) any {
	switch additionalPropertiesLevel(ap) {
	case 0:
		return true
	case 1:
		return "schema"
	default:
		return false
	}
}

// diffAdditionalProperties recurses when both sides constrain additional
// properties with a schema, and otherwise classifies how open the object is.
func (s *session) diffAdditionalProperties(old, new *parser.SchemaOrBool, ctx DiffContext) (ChangeNode, error) {
	oldLevel, newLevel := additionalPropertiesLevel(old), additionalPropertiesLevel(new)
	if oldLevel == 1 && newLevel == 1 {
		child, err := s.diffSchema(old.Schema, new.Schema, ctx.WithRequired(false))
		if err != nil || child == nil {
			return nil, err
		}
		return child, nil
	}
	if oldLevel == newLevel {
		return nil, nil
	}
	change := &ValueChange{
		Field: "additionalProperties",
		Old:   describeAdditionalProperties(old),
		New:   describeAdditionalProperties(new),
		Level: Incompatible,
	}
	if (ctx.IsRequest() && newLevel < oldLevel) || (ctx.IsResponse() && newLevel > oldLevel) {
		change.Level = Compatible
	}
	return change, nil
}

// ComposedChange compares the branches of a oneOf or anyOf schema, matched
// by discriminator value, component name or (inline anyOf) position.
type ComposedChange struct {
	children

	Keyword string
	// Increased and Missing hold the keys of added and removed branches
	Increased []string
	Missing   []string

	direction Direction
}

// Severity implements ChangeNode.
func (c *ComposedChange) Severity() Severity { return aggregate(c) }

// CoreSeverity implements ChangeNode. A request may offer more branches, a
// response may return fewer.
func (c *ComposedChange) CoreSeverity() Severity {
	if len(c.Increased) == 0 && len(c.Missing) == 0 {
		return NoChanges
	}
	if (c.direction == DirectionRequest && len(c.Missing) == 0) ||
		(c.direction == DirectionResponse && len(c.Increased) == 0) {
		return Compatible
	}
	return Incompatible
}

// CoreDeltas implements ChangeNode.
func (c *ComposedChange) CoreDeltas() []Delta {
	var deltas []Delta
	if len(c.Increased) > 0 {
		deltas = append(deltas, Delta{Field: c.Keyword + ".added", New: c.Increased})
	}
	if len(c.Missing) > 0 {
		deltas = append(deltas, Delta{Field: c.Keyword + ".removed", Old: c.Missing})
	}
	return deltas
}

func (s *session) diffComposition(oldSchema, newSchema *parser.Schema, ctx DiffContext) (*ComposedChange, error) {
	keyword := compositionKeyword(newSchema)
	oldBranches, err := compositionBranches(oldSchema, keyword, ctx)
	if err != nil {
		return nil, err
	}
	newBranches, err := compositionBranches(newSchema, keyword, ctx)
	if err != nil {
		return nil, err
	}

	branches := DiffMapKeys(oldBranches, newBranches)
	change := &ComposedChange{
		Keyword:   keyword,
		Increased: branches.IncreasedKeys(),
		Missing:   branches.MissingKeys(),
		direction: ctx.Direction(),
	}
	for _, key := range branches.SharedKeys {
		child, err := s.diffSchema(oldBranches[key], newBranches[key], ctx.WithRequired(true))
		if err != nil {
			return nil, err
		}
		change.add(key, child)
	}
	return change, nil
}

// compositionBranches keys the members of a oneOf or anyOf schema. The
// discriminator mapping is used as is; referenced members it does not cover
// are keyed by their component name. Inline anyOf members are keyed by
// position. Inline oneOf members cannot be matched across documents and are
// rejected.
func compositionBranches(schema *parser.Schema, keyword string, ctx DiffContext) (map[string]*parser.Schema, error) {
	members := schema.OneOf
	if keyword == "anyOf" {
		members = schema.AnyOf
	}

	branches := make(map[string]*parser.Schema)
	covered := make(map[string]bool)
	if schema.Discriminator != nil {
		for value, target := range schema.Discriminator.Mapping {
			ref := mappingRef(target)
			branches[value] = &parser.Schema{Ref: ref}
			covered[ref] = true
		}
	}

	for i, m := range members {
		if m == nil || m.Ref == "" {
			if keyword == "anyOf" && m != nil {
				branches["["+strconv.Itoa(i)+"]"] = m
				continue
			}
			return nil, &oaserrors.CompositionError{
				Path:    compositionPath(ctx),
				Keyword: keyword,
				Message: fmt.Sprintf("member %d is an inline schema; only $ref members can be matched", i),
			}
		}
		if covered[m.Ref] {
			continue
		}
		name := pathutil.RefName(m.Ref)
		if _, taken := branches[name]; !taken {
			branches[name] = &parser.Schema{Ref: m.Ref}
		}
	}
	return branches, nil
}

// mappingRef turns a discriminator mapping value into a reference. Values
// may be references or bare schema names.
func mappingRef(value string) string {
	if strings.ContainsAny(value, "#/") {
		return value
	}
	return pathutil.ComponentRef(pathutil.ComponentSchemas, value)
}

func compositionPath(ctx DiffContext) string {
	parts := slices.DeleteFunc([]string{strings.ToUpper(ctx.Method()), ctx.URL()}, func(p string) bool { return p == "" })
	return strings.Join(parts, " ")
}
