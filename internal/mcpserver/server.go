// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oascompat comparison engine as an MCP tool over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oascompat"
)

const serverInstructions = `oascompat MCP server: compares two versions of an OpenAPI 3.x contract and classifies every difference by client compatibility.

Severity levels, least to most severe: no_changes, metadata, compatible, unknown, incompatible. A contract is safe to ship when the overall severity is compatible or lower.

Configuration: defaults are configurable via OASCOMPAT_* environment variables set in your MCP client config.
- OASCOMPAT_MAX_CHANGES (default: 100): default number of change entries returned per call
- OASCOMPAT_MAX_LIMIT (default: 1000): upper bound for the limit argument
- OASCOMPAT_INCLUDE_METADATA (default: false): include metadata-only entries by default
- OASCOMPAT_CACHE_ENABLED (default: true): cache parsed documents between calls
- OASCOMPAT_MAX_INLINE_SIZE (default: 10MiB): maximum size of inline content`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := newServer()
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oascompat", Version: oascompat.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerTools(server)
	return server
}

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff",
		Description: "Compare a source (old) and target (new) OpenAPI 3.x document and classify each difference as no_changes, metadata, compatible, unknown or incompatible for existing clients. Returns the overall severity, added/removed/deprecated endpoints, and the changed locations ordered from most specific to most general. Use min_severity=incompatible to see only breaking changes. Use offset/limit to page through large results.",
	}, handleDiff)
}

// paginate applies offset/limit pagination to a slice. A non-positive limit
// defaults to cfg.MaxChanges.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.MaxChanges
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics).
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages so
// they are not leaked to MCP clients.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
