package diag

import "velab/internal/source"

// Frame is one entry in an include/instantiation backtrace, capped by
// max_constexpr_backtrace.
type Frame struct {
	Span source.Span
	Note string
}

// Diagnostic is a single recoverable report. The offending subtree becomes
// an Invalid expression/type; the diagnostic records why.
type Diagnostic struct {
	Code      Code
	Severity  Severity
	Span      source.Span
	Args      []any
	Notes     []Diagnostic // duplicate-suppression attaches instantiation stacks here
	Backtrace []Frame
}

// New builds a diagnostic at the code's natural severity (errors for >=9000
// and most category codes; *Info codes default to note).
func New(code Code, span source.Span, args ...any) Diagnostic {
	return Diagnostic{Code: code, Severity: defaultSeverity(code), Span: span, Args: args}
}

// WithSeverity returns a copy of d with severity overridden (e.g. width
// mismatches are often warnings rather than errors).
func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}

// WithNote appends a note, used for the instantiation-stack attachment
// used to fold a repeated diagnostic into its first occurrence.
func (d Diagnostic) WithNote(note Diagnostic) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

func defaultSeverity(c Code) Severity {
	switch c {
	case NameInfo, TypeInfo, ElabInfo, ConstInfo, InternalInfo:
		return SevNote
	case TypeWidthMismatch, NameUnusedSymbol:
		return SevWarning
	default:
		return SevError
	}
}

// key identifies a diagnostic for duplicate suppression: (code, location).
type key struct {
	code Code
	span source.Span
}
