package parser

// Parameter describes a single operation parameter
type Parameter struct {
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	// Name and In use omitempty because parameters can be defined via $ref.
	Name            string                `yaml:"name,omitempty" json:"name,omitempty"`
	In              string                `yaml:"in,omitempty" json:"in,omitempty"` // "query", "header", "path", "cookie"
	Description     string                `yaml:"description,omitempty" json:"description,omitempty"`
	Required        bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated      bool                  `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	AllowEmptyValue bool                  `yaml:"allowEmptyValue,omitempty" json:"allowEmptyValue,omitempty"`
	Style           string                `yaml:"style,omitempty" json:"style,omitempty"`
	Explode         *bool                 `yaml:"explode,omitempty" json:"explode,omitempty"`
	AllowReserved   bool                  `yaml:"allowReserved,omitempty" json:"allowReserved,omitempty"`
	Schema          *Schema               `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example         any                   `yaml:"example,omitempty" json:"example,omitempty"`
	Content         map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Parameter locations
const (
	ParamInQuery  = "query"
	ParamInHeader = "header"
	ParamInPath   = "path"
	ParamInCookie = "cookie"
)

// RequestBody describes a single request body
type RequestBody struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Content uses omitempty because request bodies can be defined via $ref.
	Content  map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Required bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Extra    map[string]any        `yaml:",inline" json:"-"`
}

// Header represents a header object
type Header struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated  bool                  `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Style       string                `yaml:"style,omitempty" json:"style,omitempty"`
	Explode     *bool                 `yaml:"explode,omitempty" json:"explode,omitempty"`
	Schema      *Schema               `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example     any                   `yaml:"example,omitempty" json:"example,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Extra       map[string]any        `yaml:",inline" json:"-"`
}
