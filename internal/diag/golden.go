package diag

import (
	"fmt"
	"sort"
	"strings"

	"velab/internal/source"
)

type goldenEntry struct {
	Path    string
	Line    uint32
	Col     uint32
	Sev     string
	Code    string
	Message string
}

// FormatGolden renders diagnostics into a stable, single-line-per-entry
// string suitable for snapshot tests: sorted by (path, line, col, code);
// entries equal on all four keys keep their input order.
func FormatGolden(diags []Diagnostic, fs *source.FileSet) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	rendered := make([]goldenEntry, 0, len(diags))
	for _, d := range diags {
		f := fs.Get(d.Span.File)
		path := "<unknown>"
		if f != nil {
			path = f.Path
		}
		pos := fs.Resolve(d.Span.File, d.Span.Start)
		rendered = append(rendered, goldenEntry{
			Path:    path,
			Line:    pos.Line,
			Col:     pos.Col,
			Sev:     d.Severity.String(),
			Code:    fmt.Sprintf("%04d", d.Code),
			Message: formatArgs(d),
		})
	}
	sort.SliceStable(rendered, func(i, j int) bool {
		a, b := rendered[i], rendered[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.Code < b.Code
	})
	var sb strings.Builder
	for _, r := range rendered {
		fmt.Fprintf(&sb, "%s:%d:%d: %s[%s]: %s\n", r.Path, r.Line, r.Col, r.Sev, r.Code, r.Message)
	}
	return sb.String()
}

func formatArgs(d Diagnostic) string {
	if len(d.Args) == 0 {
		return d.Code.Category()
	}
	parts := make([]string, len(d.Args))
	for i, a := range d.Args {
		parts[i] = fmt.Sprint(a)
	}
	return d.Code.Category() + ": " + strings.Join(parts, ", ")
}
