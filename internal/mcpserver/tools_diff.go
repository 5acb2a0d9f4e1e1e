package mcpserver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oascompat/differ"
	"github.com/erraggy/oascompat/parser"
)

type diffInput struct {
	Source           specInput `json:"source"                      jsonschema:"The original (old) OpenAPI document"`
	Target           specInput `json:"target"                      jsonschema:"The revised (new) OpenAPI document to compare against the source"`
	MinSeverity      string    `json:"min_severity,omitempty"      jsonschema:"Only list changes at or above this severity: metadata, compatible, unknown or incompatible (default compatible)"`
	IncludeMetadata  bool      `json:"include_metadata,omitempty"  jsonschema:"Also list metadata-only changes such as descriptions and summaries"`
	IgnoreExtensions []string  `json:"ignore_extensions,omitempty" jsonschema:"Extension names (x-...) whose changes are ignored"`
	Offset           int       `json:"offset,omitempty"            jsonschema:"Skip the first N changes"`
	Limit            int       `json:"limit,omitempty"             jsonschema:"Maximum number of changes to return (default from OASCOMPAT_MAX_CHANGES)"`
}

type diffChange struct {
	Path         string   `json:"path"`
	Severity     string   `json:"severity"`
	CoreSeverity string   `json:"core_severity"`
	Deltas       []string `json:"deltas,omitempty"`
}

type diffOutput struct {
	Severity          string            `json:"severity"`
	Compatible        bool              `json:"compatible"`
	TotalChanges      int               `json:"total_changes"`
	Returned          int               `json:"returned"`
	IncompatibleCount int               `json:"incompatible_count"`
	UnknownCount      int               `json:"unknown_count"`
	CompatibleCount   int               `json:"compatible_count"`
	MetadataCount     int               `json:"metadata_count"`
	NewEndpoints      []differ.Endpoint `json:"new_endpoints,omitempty"`
	MissingEndpoints  []differ.Endpoint `json:"missing_endpoints,omitempty"`
	Deprecated        []differ.Endpoint `json:"deprecated_endpoints,omitempty"`
	Changes           []diffChange      `json:"changes,omitempty"`
	Summary           string            `json:"summary"`
}

func handleDiff(_ context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	threshold, err := input.threshold()
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	var source, target *parser.ParseResult
	var g errgroup.Group
	g.Go(func() error {
		var err error
		source, err = input.Source.resolve("source")
		return err
	})
	g.Go(func() error {
		var err error
		target, err = input.Target.resolve("target")
		return err
	})
	if err := g.Wait(); err != nil {
		return errResult(err), diffOutput{}, nil
	}

	result, err := differ.DiffWithOptions(
		differ.WithSourceParsed(*source),
		differ.WithTargetParsed(*target),
		differ.WithIgnoreExtensions(input.IgnoreExtensions...),
	)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	output := diffOutput{
		Severity:         result.Severity().String(),
		Compatible:       result.IsCompatible(),
		NewEndpoints:     result.NewEndpoints,
		MissingEndpoints: result.MissingEndpoints,
		Deprecated:       result.DeprecatedEndpoints,
	}

	var all []diffChange
	for _, entry := range result.Flatten() {
		if entry.CoreSeverity < threshold {
			continue
		}
		switch entry.CoreSeverity {
		case differ.Incompatible:
			output.IncompatibleCount++
		case differ.Unknown:
			output.UnknownCount++
		case differ.Compatible:
			output.CompatibleCount++
		case differ.Metadata:
			output.MetadataCount++
		}
		all = append(all, toDiffChange(entry))
	}

	output.TotalChanges = len(all)
	page := paginate(all, input.Offset, input.Limit)
	output.Changes = makeSlice[diffChange](len(page))
	output.Changes = append(output.Changes, page...)
	output.Returned = len(output.Changes)
	output.Summary = buildDiffSummary(output)

	return nil, output, nil
}

// threshold is the lowest core severity listed in the output.
func (in diffInput) threshold() (differ.Severity, error) {
	if in.MinSeverity != "" {
		level, ok := differ.ParseSeverity(in.MinSeverity)
		if !ok {
			return differ.NoChanges, fmt.Errorf("invalid min_severity %q; valid values: metadata, compatible, unknown, incompatible", in.MinSeverity)
		}
		return max(level, differ.Metadata), nil
	}
	if in.IncludeMetadata || cfg.IncludeMetadata {
		return differ.Metadata, nil
	}
	return differ.Compatible, nil
}

func toDiffChange(entry differ.FlatEntry) diffChange {
	c := diffChange{
		Path:         entry.Path,
		Severity:     entry.Severity.String(),
		CoreSeverity: entry.CoreSeverity.String(),
		Deltas:       makeSlice[string](len(entry.Deltas)),
	}
	for _, d := range entry.Deltas {
		c.Deltas = append(c.Deltas, d.String())
	}
	return c
}

func buildDiffSummary(output diffOutput) string {
	if output.Severity == differ.NoChanges.String() {
		return "No changes detected."
	}

	var b strings.Builder
	if output.Compatible {
		b.WriteString("The target is compatible with existing clients. ")
	} else {
		b.WriteString("Breaking changes detected. ")
	}
	b.WriteString("Overall severity: " + output.Severity + ". ")
	b.WriteString(formatCount(output.TotalChanges, "change") + " listed")
	if output.IncompatibleCount > 0 {
		b.WriteString(" (" + formatCount(output.IncompatibleCount, "incompatible change") + ")")
	}
	b.WriteString(".")
	if n := len(output.NewEndpoints); n > 0 {
		b.WriteString(" " + formatCount(n, "new endpoint") + ".")
	}
	if n := len(output.MissingEndpoints); n > 0 {
		b.WriteString(" " + formatCount(n, "removed endpoint") + ".")
	}
	return b.String()
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
