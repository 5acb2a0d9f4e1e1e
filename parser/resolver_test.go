package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oascompat/oaserrors"
)

func testDocument() *Document {
	return &Document{
		Components: &Components{
			Schemas: map[string]*Schema{
				"Pet":   {Type: "object"},
				"Alias": {Ref: "#/components/schemas/Pet"},
				"LoopA": {Ref: "#/components/schemas/LoopB"},
				"LoopB": {Ref: "#/components/schemas/LoopA"},
			},
			Parameters: map[string]*Parameter{
				"Limit": {Name: "limit", In: ParamInQuery},
			},
			Responses: map[string]*Response{
				"NotFound": {Description: "missing"},
			},
			RequestBodies: map[string]*RequestBody{
				"PetBody": {Required: true},
			},
			Headers: map[string]*Header{
				"RateLimit": {Required: true},
			},
			SecuritySchemes: map[string]*SecurityScheme{
				"apiKey": {Type: "apiKey", In: "header", Name: "X-Key"},
				"shared": {Ref: "#/components/securitySchemes/apiKey"},
			},
		},
	}
}

func TestResolverSchema(t *testing.T) {
	r := NewResolver(testDocument())

	inline := &Schema{Type: "string"}
	got, err := r.Schema(inline)
	require.NoError(t, err)
	assert.Same(t, inline, got)

	got, err = r.Schema(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = r.Schema(&Schema{Ref: "#/components/schemas/Alias"})
	require.NoError(t, err)
	assert.Equal(t, "object", got.TypeName())
}

func TestResolverErrors(t *testing.T) {
	r := NewResolver(testDocument())

	tests := []struct {
		name     string
		ref      string
		circular bool
	}{
		{"missing", "#/components/schemas/Missing", false},
		{"wrong table", "#/components/parameters/Limit", false},
		{"external", "pets.yaml#/Pet", false},
		{"loop", "#/components/schemas/LoopA", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.SchemaByRef(tt.ref)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrReference))
			assert.Equal(t, tt.circular, errors.Is(err, oaserrors.ErrCircularReference))
		})
	}
}

func TestResolverComponents(t *testing.T) {
	r := NewResolver(testDocument())

	p, err := r.Parameter(&Parameter{Ref: "#/components/parameters/Limit"})
	require.NoError(t, err)
	assert.Equal(t, "limit", p.Name)

	resp, err := r.Response(&Response{Ref: "#/components/responses/NotFound"})
	require.NoError(t, err)
	assert.Equal(t, "missing", resp.Description)

	rb, err := r.RequestBody(&RequestBody{Ref: "#/components/requestBodies/PetBody"})
	require.NoError(t, err)
	assert.True(t, rb.Required)

	h, err := r.Header(&Header{Ref: "#/components/headers/RateLimit"})
	require.NoError(t, err)
	assert.True(t, h.Required)

	ss, err := r.SecurityScheme("shared")
	require.NoError(t, err)
	assert.Equal(t, "X-Key", ss.Name)

	_, err = r.SecurityScheme("oauth")
	require.Error(t, err)
	var refErr *oaserrors.ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "securitySchemes", refErr.Component)
}

func TestResolverWithoutComponents(t *testing.T) {
	r := NewResolver(&Document{})
	_, err := r.SchemaByRef("#/components/schemas/Pet")
	assert.True(t, errors.Is(err, oaserrors.ErrReference))

	r = NewResolver(nil)
	_, err = r.SecurityScheme("apiKey")
	assert.Error(t, err)
}

func TestOAuthFlows(t *testing.T) {
	flows := &OAuthFlows{Password: &OAuthFlow{TokenURL: "https://t"}}
	assert.Equal(t, "https://t", flows.Flow("password").TokenURL)
	assert.Nil(t, flows.Flow("implicit"))
	assert.Nil(t, flows.Flow("bogus"))

	var none *OAuthFlows
	assert.Nil(t, none.Flow("password"))
}
