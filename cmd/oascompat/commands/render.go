package commands

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oascompat"
	"github.com/erraggy/oascompat/differ"
	"github.com/erraggy/oascompat/internal/cliutil"
)

// Report is the structured (json/yaml) form of a comparison.
type Report struct {
	Source        string             `json:"source" yaml:"source"`
	Target        string             `json:"target" yaml:"target"`
	SourceVersion string             `json:"sourceVersion" yaml:"sourceVersion"`
	TargetVersion string             `json:"targetVersion" yaml:"targetVersion"`
	Severity      differ.Severity    `json:"severity" yaml:"severity"`
	Compatible    bool               `json:"compatible" yaml:"compatible"`
	New           []differ.Endpoint  `json:"newEndpoints,omitempty" yaml:"newEndpoints,omitempty"`
	Missing       []differ.Endpoint  `json:"missingEndpoints,omitempty" yaml:"missingEndpoints,omitempty"`
	Deprecated    []differ.Endpoint  `json:"deprecatedEndpoints,omitempty" yaml:"deprecatedEndpoints,omitempty"`
	Changes       []differ.FlatEntry `json:"changes,omitempty" yaml:"changes,omitempty"`
}

// NewReport builds a Report listing the entries whose core severity is at
// least threshold.
func NewReport(result *differ.DiffResult, threshold differ.Severity) Report {
	report := Report{
		Source:        result.SourcePath,
		Target:        result.TargetPath,
		SourceVersion: result.SourceVersion,
		TargetVersion: result.TargetVersion,
		Severity:      result.Severity(),
		Compatible:    result.IsCompatible(),
		New:           result.NewEndpoints,
		Missing:       result.MissingEndpoints,
		Deprecated:    result.DeprecatedEndpoints,
	}
	for _, entry := range result.Flatten() {
		if entry.CoreSeverity >= threshold {
			report.Changes = append(report.Changes, entry)
		}
	}
	return report
}

// palette colors severity labels. Enabled colors still honor color.NoColor
// (NO_COLOR in the environment).
type palette struct {
	levels map[differ.Severity]*color.Color
	header *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		levels: map[differ.Severity]*color.Color{
			differ.Incompatible: color.New(color.FgRed, color.Bold),
			differ.Unknown:      color.New(color.FgYellow, color.Bold),
			differ.Compatible:   color.New(color.FgGreen),
			differ.Metadata:     color.New(color.FgCyan),
			differ.NoChanges:    color.New(color.FgWhite),
		},
		header: color.New(color.Bold),
	}
	if !enabled {
		for _, c := range p.levels {
			c.DisableColor()
		}
		p.header.DisableColor()
	}
	return p
}

func (p *palette) severity(level differ.Severity) string {
	return p.levels[level].Sprint(title(level.String()))
}

// title turns a severity or section name such as "no_changes" into "No Changes".
func title(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// RenderText writes report to w as human-readable text.
func RenderText(w io.Writer, report Report, colored bool) {
	p := newPalette(colored)

	cliutil.Writef(w, "%s\n", p.header.Sprint("OpenAPI Compatibility Report"))
	cliutil.Writef(w, "oascompat version: %s\n\n", oascompat.Version())
	cliutil.Writef(w, "Source: %s (OAS %s)\n", report.Source, report.SourceVersion)
	cliutil.Writef(w, "Target: %s (OAS %s)\n", report.Target, report.TargetVersion)

	renderEndpoints(w, p, "new endpoints", report.New)
	renderEndpoints(w, p, "missing endpoints", report.Missing)
	renderEndpoints(w, p, "deprecated endpoints", report.Deprecated)

	if len(report.Changes) > 0 {
		cliutil.Writef(w, "\n%s (%d)\n", p.header.Sprint(title("changes")), len(report.Changes))
		for _, entry := range report.Changes {
			cliutil.Writef(w, "  [%s] %s\n", p.severity(entry.CoreSeverity), entry.Path)
			for _, d := range entry.Deltas {
				cliutil.Writef(w, "      %s\n", d)
			}
		}
	}

	cliutil.Writef(w, "\nResult: %s\n", p.severity(report.Severity))
	if report.Compatible {
		cliutil.Writef(w, "The target is compatible with existing clients.\n")
	} else {
		cliutil.Writef(w, "The target breaks existing clients.\n")
	}
}

func renderEndpoints(w io.Writer, p *palette, heading string, endpoints []differ.Endpoint) {
	if len(endpoints) == 0 {
		return
	}
	cliutil.Writef(w, "\n%s (%d)\n", p.header.Sprint(title(heading)), len(endpoints))
	for _, e := range endpoints {
		line := strings.ToUpper(e.Method) + " " + e.Path
		if e.OperationID != "" {
			line += "  (" + e.OperationID + ")"
		}
		cliutil.Writef(w, "  %s\n", line)
	}
}
