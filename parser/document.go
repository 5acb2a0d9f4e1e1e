package parser

import (
	"maps"
	"slices"
	"strings"
)

// Document represents an OpenAPI Specification 3.x document.
// Supports OAS 3.0.x and 3.1.x.
type Document struct {
	OpenAPI    string                `yaml:"openapi" json:"openapi"`
	Info       *Info                 `yaml:"info" json:"info"`
	Servers    []*Server             `yaml:"servers,omitempty" json:"servers,omitempty"`
	Paths      Paths                 `yaml:"paths,omitempty" json:"paths,omitempty"`
	Components *Components           `yaml:"components,omitempty" json:"components,omitempty"`
	Security   []SecurityRequirement `yaml:"security,omitempty" json:"security,omitempty"`
	Tags       []*Tag                `yaml:"tags,omitempty" json:"tags,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Info provides metadata about the API
type Info struct {
	Title          string         `yaml:"title" json:"title"`
	Description    string         `yaml:"description,omitempty" json:"description,omitempty"`
	TermsOfService string         `yaml:"termsOfService,omitempty" json:"termsOfService,omitempty"`
	Version        string         `yaml:"version" json:"version"`
	Extra          map[string]any `yaml:",inline" json:"-"`
}

// Server represents a server URL
type Server struct {
	URL         string         `yaml:"url" json:"url"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Tag adds metadata to a single tag used by operations
type Tag struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Components holds the reusable objects of a document. The differ uses it
// only as the reference-resolution table.
type Components struct {
	Schemas         map[string]*Schema         `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Responses       map[string]*Response       `yaml:"responses,omitempty" json:"responses,omitempty"`
	Parameters      map[string]*Parameter      `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBodies   map[string]*RequestBody    `yaml:"requestBodies,omitempty" json:"requestBodies,omitempty"`
	Headers         map[string]*Header         `yaml:"headers,omitempty" json:"headers,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// SecurityRequirement maps a security scheme name to its required scopes
type SecurityRequirement map[string][]string

// SecurityScheme defines a security scheme that can be used by operations
type SecurityScheme struct {
	Ref              string      `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type             string      `yaml:"type,omitempty" json:"type,omitempty"` // "apiKey", "http", "oauth2", "openIdConnect", "mutualTLS"
	Description      string      `yaml:"description,omitempty" json:"description,omitempty"`
	Name             string      `yaml:"name,omitempty" json:"name,omitempty"`
	In               string      `yaml:"in,omitempty" json:"in,omitempty"` // "query", "header", "cookie"
	Scheme           string      `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	BearerFormat     string      `yaml:"bearerFormat,omitempty" json:"bearerFormat,omitempty"`
	Flows            *OAuthFlows `yaml:"flows,omitempty" json:"flows,omitempty"`
	OpenIDConnectURL string      `yaml:"openIdConnectUrl,omitempty" json:"openIdConnectUrl,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// OAuthFlows allows configuration of the supported OAuth Flows
type OAuthFlows struct {
	Implicit          *OAuthFlow     `yaml:"implicit,omitempty" json:"implicit,omitempty"`
	Password          *OAuthFlow     `yaml:"password,omitempty" json:"password,omitempty"`
	ClientCredentials *OAuthFlow     `yaml:"clientCredentials,omitempty" json:"clientCredentials,omitempty"`
	AuthorizationCode *OAuthFlow     `yaml:"authorizationCode,omitempty" json:"authorizationCode,omitempty"`
	Extra             map[string]any `yaml:",inline" json:"-"`
}

// OAuthFlow holds configuration details for a supported OAuth Flow
type OAuthFlow struct {
	AuthorizationURL string            `yaml:"authorizationUrl,omitempty" json:"authorizationUrl,omitempty"`
	TokenURL         string            `yaml:"tokenUrl,omitempty" json:"tokenUrl,omitempty"`
	RefreshURL       string            `yaml:"refreshUrl,omitempty" json:"refreshUrl,omitempty"`
	Scopes           map[string]string `yaml:"scopes" json:"scopes"`
	Extra            map[string]any    `yaml:",inline" json:"-"`
}

// Flow returns the flow configured under the given OAS key
// ("implicit", "password", "clientCredentials", "authorizationCode").
func (f *OAuthFlows) Flow(name string) *OAuthFlow {
	if f == nil {
		return nil
	}
	switch name {
	case "implicit":
		return f.Implicit
	case "password":
		return f.Password
	case "clientCredentials":
		return f.ClientCredentials
	case "authorizationCode":
		return f.AuthorizationCode
	}
	return nil
}

// OAuthFlowNames lists the OAuth flow keys in document order.
var OAuthFlowNames = []string{"implicit", "password", "clientCredentials", "authorizationCode"}

// Extensions returns the specification extensions ("x-" keys) of an Extra map.
// The result is nil when there are none.
func Extensions(extra map[string]any) map[string]any {
	var out map[string]any
	for k, v := range extra {
		if !strings.HasPrefix(k, "x-") {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
