package httputil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{"default keyword", "default", true},
		{"extension x-custom", "x-custom", true},
		{"wildcard 2XX", "2XX", true},
		{"wildcard 5XX", "5XX", true},
		{"invalid wildcard 0XX", "0XX", false},
		{"invalid wildcard 6XX", "6XX", false},
		{"partial wildcard 20X", "20X", false},
		{"valid 200", "200", true},
		{"valid 599", "599", true},
		{"invalid 099", "099", false},
		{"invalid 600", "600", false},
		{"too short", "20", false},
		{"letters", "abc", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateStatusCode(tt.code))
		})
	}
}

func TestCompareStatusCodes(t *testing.T) {
	codes := []string{"default", "4XX", "404", "x-other", "200", "2XX", "201"}
	slices.SortFunc(codes, CompareStatusCodes)
	assert.Equal(t, []string{"200", "201", "404", "2XX", "4XX", "default", "x-other"}, codes)
}

func TestMethods(t *testing.T) {
	assert.Equal(t, len(Methods), MethodIndex("parameters"))
	assert.Equal(t, len(Methods), MethodIndex("GET"))
	assert.Equal(t, 0, MethodIndex(MethodGet))
	assert.Less(t, MethodIndex(MethodPost), MethodIndex(MethodDelete))
	assert.Equal(t, len(Methods), MethodIndex("connect"))
}

func TestIsValidMediaType(t *testing.T) {
	tests := []struct {
		mediaType string
		expected  bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"*/*", true},
		{"application/*", true},
		{"*/json", false},
		{"*/*/*", false},
		{"", false},
		{"not a media type", false},
	}

	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidMediaType(tt.mediaType))
		})
	}
}
