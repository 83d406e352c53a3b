package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"velab/internal/diag"
	"velab/internal/source"
)

// renderOpts controls pretty-printing; useColor is resolved once from the
// --color flag and TTY detection (on|off override auto-detection, auto
// checks the terminal).
type renderOpts struct {
	useColor       bool
	maxDiagnostics int
}

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgYellow, color.Bold)
	noteStyle    = color.New(color.FgCyan)
	locationStyle = lipgloss.NewStyle().Bold(true)
)

// renderPretty writes one line per diagnostic (location, severity, code,
// message), plus a caret line under the offending span padded by
// go-runewidth so multi-width source characters still line the caret up
// correctly, followed by any backtrace frames attached for
// max_constexpr_backtrace.
func renderPretty(out io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts renderOpts) int {
	shown := 0
	for _, d := range diags {
		if opts.maxDiagnostics > 0 && shown >= opts.maxDiagnostics {
			fmt.Fprintf(out, "... %d more diagnostics suppressed (--max-diagnostics)\n", len(diags)-shown)
			break
		}
		renderOne(out, d, fs, opts)
		shown++
	}
	return shown
}

func renderOne(out io.Writer, d diag.Diagnostic, fs *source.FileSet, opts renderOpts) {
	path, pos, line := "<unknown>", source.LineCol{}, ""
	if f := fs.Get(d.Span.File); f != nil {
		path = f.Path
		pos = fs.Resolve(d.Span.File, d.Span.Start)
		line = sourceLine(f.Content, d.Span.Start)
	}

	loc := fmt.Sprintf("%s:%d:%d:", path, pos.Line, pos.Col)
	if opts.useColor {
		loc = locationStyle.Render(loc)
	}
	sevText := severityText(d, opts.useColor)
	fmt.Fprintf(out, "%s %s [%04d]: %s\n", loc, sevText, d.Code, formatMessage(d))

	if line != "" {
		fmt.Fprintf(out, "    %s\n", line)
		col := int(pos.Col) - 1
		if col < 0 {
			col = 0
		}
		pad := runewidth.StringWidth(line[:minInt(col, len(line))])
		fmt.Fprintf(out, "    %s^\n", strings.Repeat(" ", pad))
	}

	for _, bt := range d.Backtrace {
		fmt.Fprintf(out, "        from %s\n", bt.Note)
	}
	for _, n := range d.Notes {
		fmt.Fprintf(out, "    note: %s\n", formatMessage(n))
	}
}

func severityText(d diag.Diagnostic, useColor bool) string {
	s := d.Severity.String()
	if !useColor {
		return s
	}
	switch d.Severity {
	case diag.SevError:
		return errorStyle.Sprint(s)
	case diag.SevWarning:
		return warningStyle.Sprint(s)
	default:
		return noteStyle.Sprint(s)
	}
}

func formatMessage(d diag.Diagnostic) string {
	if len(d.Args) == 0 {
		return d.Code.Category()
	}
	parts := make([]string, len(d.Args))
	for i, a := range d.Args {
		parts[i] = fmt.Sprint(a)
	}
	return d.Code.Category() + ": " + strings.Join(parts, ", ")
}

func sourceLine(content []byte, offset uint32) string {
	if int(offset) > len(content) {
		return ""
	}
	start := int(offset)
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := int(offset)
	for end < len(content) && content[end] != '\n' {
		end++
	}
	return string(content[start:end])
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
