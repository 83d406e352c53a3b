// Package compilation implements the top-level driver: it
// owns every arena and interning table, walks added syntax trees into
// Definitions, and elaborates the design's top modules into InstanceBody
// trees through internal/symbols, internal/binder, and internal/eval.
package compilation

import "velab/internal/eval"

// Options configures a Compilation with its named elaboration knobs.
// Every field has a documented default applied by DefaultOptions so a zero
// Options{} is never silently passed through unadjusted.
type Options struct {
	// MaxInstanceDepth bounds recursive instance elaboration.
	MaxInstanceDepth int

	// MaxDefparamSteps bounds the defparam fixed-point iteration.
	MaxDefparamSteps int

	// MaxGenerateSteps bounds genvar `for` unrolling.
	MaxGenerateSteps int

	// MaxConstexprSteps / MaxConstexprDepth feed internal/eval.Context.
	MaxConstexprSteps int
	MaxConstexprDepth int

	// MaxConstexprBacktrace caps how many call frames a depth-budget
	// diagnostic attaches as notes.
	MaxConstexprBacktrace int

	// TypoCorrectionLimit bounds internal/symbols.Context's typo budget.
	TypoCorrectionLimit int

	// DisableInstanceCaching forces every instantiation to elaborate a
	// fresh InstanceBody rather than reusing one from the cache.
	DisableInstanceCaching bool

	// ErrorLimit stops elaboration once the diagnostic bag holds this many
	// errors.
	ErrorLimit int

	// TopModules, when non-empty, restricts top-module selection to these
	// names instead of inferring the set from the instantiation graph.
	TopModules []string

	// ParamOverrides seeds the hierarchical override tree applied during
	// parameter resolution, rooted at the
	// top-instance level.
	ParamOverrides *ParamOverrideNode

	// MinTypMax selects which arm of a `min:typ:max` expression the
	// constant evaluator folds.
	MinTypMax eval.TimingMode

	// LintMode enables additional non-essential diagnostics (currently:
	// unused-symbol warnings) beyond what correctness requires.
	LintMode bool

	// SuppressUnused silences unused-symbol warnings even when LintMode is
	// on.
	SuppressUnused bool
}

// DefaultOptions returns the knob values used when a caller doesn't
// override them, chosen to be generous enough for ordinary designs while
// still bounding pathological input.
func DefaultOptions() Options {
	return Options{
		MaxInstanceDepth:       512,
		MaxDefparamSteps:       128,
		MaxGenerateSteps:       65535,
		MaxConstexprSteps:      100000,
		MaxConstexprDepth:      256,
		MaxConstexprBacktrace:  10,
		TypoCorrectionLimit:    32,
		DisableInstanceCaching: false,
		ErrorLimit:             64,
	}
}

func (o *Options) applyDefaults() {
	d := DefaultOptions()
	if o.MaxInstanceDepth <= 0 {
		o.MaxInstanceDepth = d.MaxInstanceDepth
	}
	if o.MaxDefparamSteps <= 0 {
		o.MaxDefparamSteps = d.MaxDefparamSteps
	}
	if o.MaxGenerateSteps <= 0 {
		o.MaxGenerateSteps = d.MaxGenerateSteps
	}
	if o.MaxConstexprSteps <= 0 {
		o.MaxConstexprSteps = d.MaxConstexprSteps
	}
	if o.MaxConstexprDepth <= 0 {
		o.MaxConstexprDepth = d.MaxConstexprDepth
	}
	if o.MaxConstexprBacktrace <= 0 {
		o.MaxConstexprBacktrace = d.MaxConstexprBacktrace
	}
	if o.TypoCorrectionLimit <= 0 {
		o.TypoCorrectionLimit = d.TypoCorrectionLimit
	}
	if o.ErrorLimit <= 0 {
		o.ErrorLimit = d.ErrorLimit
	}
}
