package differ

import (
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/oascompat/parser"
)

// allOfFlattener folds allOf members into one effective schema for a single
// document. Merged members are cached per member-reference signature.
type allOfFlattener struct {
	resolver *parser.Resolver
	cache    map[string]*parser.Schema
	hits     int
}

func newAllOfFlattener(r *parser.Resolver) *allOfFlattener {
	return &allOfFlattener{resolver: r, cache: make(map[string]*parser.Schema)}
}

// flatten returns schema with its allOf members merged in left to right and
// the schema's own fields applied last. Schemas without allOf are returned
// unchanged; the document is never modified.
func (f *allOfFlattener) flatten(schema *parser.Schema) (*parser.Schema, error) {
	return f.flattenVisiting(schema, make(map[string]bool))
}

func (f *allOfFlattener) flattenVisiting(schema *parser.Schema, visiting map[string]bool) (*parser.Schema, error) {
	if schema == nil || len(schema.AllOf) == 0 {
		return schema, nil
	}

	sig, cacheable := memberSignature(schema.AllOf)
	members, ok := f.cache[sig]
	if cacheable && ok {
		f.hits++
	} else {
		members = &parser.Schema{}
		for _, m := range schema.AllOf {
			if m == nil {
				continue
			}
			if m.Ref != "" {
				// allOf cycle: a member already being folded adds nothing
				if visiting[m.Ref] {
					continue
				}
				visiting[m.Ref] = true
			}
			resolved, err := f.resolver.Schema(m)
			if err != nil {
				return nil, err
			}
			flat, err := f.flattenVisiting(resolved, visiting)
			if err != nil {
				return nil, err
			}
			if m.Ref != "" {
				delete(visiting, m.Ref)
			}
			mergeSchema(members, flat)
		}
		if cacheable {
			f.cache[sig] = members
		}
	}

	result := cloneSchema(members)
	own := *schema
	own.AllOf = nil
	mergeSchema(result, &own)
	result.AllOf = nil
	return result, nil
}

// memberSignature joins the member references. Lists with inline members
// are not cacheable.
func memberSignature(members []*parser.Schema) (string, bool) {
	refs := make([]string, 0, len(members))
	for _, m := range members {
		if m == nil || m.Ref == "" {
			return "", false
		}
		refs = append(refs, m.Ref)
	}
	return strings.Join(refs, "|"), true
}

// cloneSchema copies s deeply enough that merging into the copy cannot
// change s.
func cloneSchema(s *parser.Schema) *parser.Schema {
	c := *s
	c.Properties = maps.Clone(s.Properties)
	c.Extra = maps.Clone(s.Extra)
	c.Required = slices.Clone(s.Required)
	c.Enum = slices.Clone(s.Enum)
	return &c
}

// mergeSchema folds src into dst. Scalar fields set in src overwrite dst;
// properties, required, enum and extensions are unioned.
func mergeSchema(dst, src *parser.Schema) {
	if src == nil {
		return
	}

	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Pattern != "" {
		dst.Pattern = src.Pattern
	}
	if src.Type != nil {
		dst.Type = src.Type
	}
	if src.Default != nil {
		dst.Default = src.Default
	}
	if src.Example != nil {
		dst.Example = src.Example
	}
	if src.ExclusiveMaximum != nil {
		dst.ExclusiveMaximum = src.ExclusiveMaximum
	}
	if src.ExclusiveMinimum != nil {
		dst.ExclusiveMinimum = src.ExclusiveMinimum
	}

	overwrite(&dst.MultipleOf, src.MultipleOf)
	overwrite(&dst.Maximum, src.Maximum)
	overwrite(&dst.Minimum, src.Minimum)
	overwrite(&dst.MaxLength, src.MaxLength)
	overwrite(&dst.MinLength, src.MinLength)
	overwrite(&dst.MaxItems, src.MaxItems)
	overwrite(&dst.MinItems, src.MinItems)
	overwrite(&dst.MaxProperties, src.MaxProperties)
	overwrite(&dst.MinProperties, src.MinProperties)
	overwrite(&dst.Items, src.Items)
	overwrite(&dst.AdditionalProperties, src.AdditionalProperties)
	overwrite(&dst.Not, src.Not)
	overwrite(&dst.Discriminator, src.Discriminator)

	dst.Nullable = dst.Nullable || src.Nullable
	dst.ReadOnly = dst.ReadOnly || src.ReadOnly
	dst.WriteOnly = dst.WriteOnly || src.WriteOnly
	dst.Deprecated = dst.Deprecated || src.Deprecated
	dst.UniqueItems = dst.UniqueItems || src.UniqueItems

	if len(src.OneOf) > 0 {
		dst.OneOf = src.OneOf
	}
	if len(src.AnyOf) > 0 {
		dst.AnyOf = src.AnyOf
	}

	if len(src.Properties) > 0 {
		if dst.Properties == nil {
			dst.Properties = make(map[string]*parser.Schema, len(src.Properties))
		}
		maps.Copy(dst.Properties, src.Properties)
	}
	if len(src.Extra) > 0 {
		if dst.Extra == nil {
			dst.Extra = make(map[string]any, len(src.Extra))
		}
		maps.Copy(dst.Extra, src.Extra)
	}
	for _, r := range src.Required {
		if !slices.Contains(dst.Required, r) {
			dst.Required = append(dst.Required, r)
		}
	}
	for _, v := range src.Enum {
		if !slices.ContainsFunc(dst.Enum, func(e any) bool { return enumKey(e) == enumKey(v) }) {
			dst.Enum = append(dst.Enum, v)
		}
	}
}

func overwrite[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}
