package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/pets", "/pets"},
		{"/pets/", "/pets/"},
		{"/", "/"},
		{"/pets/{petId}", "/pets/{}"},
		{"/pets/{id}/owners/{ownerId}", "/pets/{}/owners/{}"},
		{"/reports/{year}-{month}", "/reports/{}-{}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Signature(tt.input))
		})
	}
}

func TestSignatureMatchesRenamedParameters(t *testing.T) {
	assert.Equal(t, Signature("/pets/{petId}"), Signature("/pets/{id}"))
	assert.NotEqual(t, Signature("/pets/{petId}"), Signature("/owners/{petId}"))
	assert.NotEqual(t, Signature("/pets"), Signature("/pets/"))
	assert.NotEqual(t, Signature("/pets/{id}"), Signature("/pets/{id}/"))
}

func TestParamNames(t *testing.T) {
	assert.Equal(t, []string{"petId", "ownerId"}, ParamNames("/pets/{petId}/owners/{ownerId}"))
	assert.Nil(t, ParamNames("/pets/all"))
}

func TestRenameMap(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     map[string]string
	}{
		{
			name: "no rename",
			old:  "/pets/{petId}",
			new:  "/pets/{petId}",
			want: nil,
		},
		{
			name: "single rename",
			old:  "/pets/{petId}",
			new:  "/pets/{id}",
			want: map[string]string{"petId": "id"},
		},
		{
			name: "partial rename",
			old:  "/pets/{petId}/owners/{ownerId}",
			new:  "/pets/{petId}/owners/{owner}",
			want: map[string]string{"ownerId": "owner"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenameMap(tt.old, tt.new))
		})
	}
}

func TestComponentName(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		component string
		want      string
		ok        bool
	}{
		{"schema", "#/components/schemas/Pet", ComponentSchemas, "Pet", true},
		{"escaped", "#/components/schemas/a~1b~0c", ComponentSchemas, "a/b~c", true},
		{"wrong table", "#/components/parameters/limit", ComponentSchemas, "", false},
		{"nested pointer", "#/components/schemas/Pet/properties/id", ComponentSchemas, "", false},
		{"empty name", "#/components/schemas/", ComponentSchemas, "", false},
		{"external", "other.yaml#/components/schemas/Pet", ComponentSchemas, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComponentName(tt.ref, tt.component)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefHelpers(t *testing.T) {
	assert.Equal(t, RefPrefixSchemas+"Pet", ComponentRef(ComponentSchemas, "Pet"))
	assert.Equal(t, "#/components/headers/X-Rate~1Limit", ComponentRef(ComponentHeaders, "X-Rate/Limit"))
	assert.Equal(t, "Pet", RefName("#/components/schemas/Pet"))
	assert.Equal(t, "local", RefType("#/components/schemas/Pet"))
	assert.Equal(t, "http", RefType("https://example.com/pet.yaml"))
	assert.Equal(t, "file", RefType("pet.yaml#/Pet"))
}
