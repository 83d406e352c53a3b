// Package eval implements the constant evaluator: a
// depth-first walker over the bound expression tree (internal/binder) that
// produces a constval.Value, enforcing the step and call-depth budgets and
// executing constexpr function bodies on their own call frame.
package eval

import (
	"velab/internal/binder"
	"velab/internal/constval"
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/types"
)

// Mode selects how strictly the evaluator treats constructs the language
// allows outside a true constant-expression context: ModeConstant is used for parameter/genvar/array-bound evaluation,
// ModeScript relaxes the "already verified constant" precondition for
// speculative evaluation (e.g. a `dump` command folding a candidate
// expression for display).
type Mode uint8

const (
	ModeConstant Mode = iota
	ModeScript
)

// TimingMode selects which arm of a `min:typ:max` expression folds. TimingTyp is the zero value so an unconfigured
// Context defaults to the conventional choice.
type TimingMode uint8

const (
	TimingTyp TimingMode = iota
	TimingMin
	TimingMax
)

// Frame is one constexpr function call's activation record.
type Frame struct {
	Subroutine symbols.SymbolID
	Locals     map[symbols.SymbolID]constval.Value
	Return     constval.Value
	Returned   bool
}

// Context is the evaluator's mutable state, analogous to slang's
// EvalContext: it owns the call-frame stack, the
// step and depth counters and their budgets, the current mode, and the
// diagnostic sink it reports overruns and evaluation errors to.
type Context struct {
	Types   *types.Interner
	Syms    *symbols.Table
	Strings *source.Interner
	Tree    *binder.Builder
	Diags   *diag.Bag
	Mode    Mode
	Timing  TimingMode

	MaxSteps int
	MaxDepth int
	// MaxBacktrace caps how many call frames get attached as notes to a
	// depth-budget diagnostic; 0
	// means no notes are attached.
	MaxBacktrace int
	steps        int
	depth        int
	frames       []*Frame

	// Globals holds values stored to symbols that are not locals of the
	// current call frame (any store made with no call active lands here);
	// loadBase consults it before falling back to a Symbol's own Value.
	Globals map[symbols.SymbolID]constval.Value

	// Bodies resolves a constexpr subroutine's own bound statement tree
	// (bound through its own Binder, hence its own arena, at declaration
	// time). evalCall swaps Tree to it for the duration of the call and
	// restores the caller's Tree on return. Nil (or a symbol Bodies doesn't
	// know) means the call has no executable body, e.g. a DPI import.
	Bodies BodyResolver
}

// BodyResolver looks up the bound statement tree for a constexpr
// subroutine's body, returning ok=false when sym has none (not a constexpr
// function, or a DPI import whose body lives in foreign code).
type BodyResolver func(sym symbols.SymbolID) (tree *binder.Builder, root binder.StmtID, ok bool)

// New creates an evaluator bounded by maxSteps/maxDepth.
func New(t *types.Interner, syms *symbols.Table, strings *source.Interner, tree *binder.Builder, diags *diag.Bag, maxSteps, maxDepth int) *Context {
	return &Context{
		Types: t, Syms: syms, Strings: strings, Tree: tree, Diags: diags,
		MaxSteps: maxSteps, MaxDepth: maxDepth,
		Globals: make(map[symbols.SymbolID]constval.Value),
	}
}

// step charges one unit against the step budget, returning false (and
// leaving a diagnostic) once exhausted.
func (c *Context) step(span source.Span) bool {
	c.steps++
	if c.MaxSteps > 0 && c.steps > c.MaxSteps {
		c.Diags.Report(diag.New(diag.ConstStepBudget, span))
		return false
	}
	return true
}

// enterCall pushes a new call frame, enforcing the depth budget.
func (c *Context) enterCall(sub symbols.SymbolID, span source.Span) (*Frame, bool) {
	c.depth++
	if c.MaxDepth > 0 && c.depth > c.MaxDepth {
		d := diag.New(diag.ConstDepthBudget, span)
		for i := len(c.frames) - 1; i >= 0 && len(c.frames)-i <= c.MaxBacktrace; i-- {
			s := c.Syms.Symbol(c.frames[i].Subroutine)
			if s == nil {
				continue
			}
			d.Backtrace = append(d.Backtrace, diag.Frame{Span: span, Note: c.Strings.MustLookup(s.Name)})
		}
		c.Diags.Report(d)
		c.depth--
		return nil, false
	}
	f := &Frame{Subroutine: sub, Locals: make(map[symbols.SymbolID]constval.Value)}
	c.frames = append(c.frames, f)
	return f, true
}

func (c *Context) leaveCall() {
	c.depth--
	c.frames = c.frames[:len(c.frames)-1]
}

func (c *Context) currentFrame() *Frame {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// Reset clears step/depth counters between independent top-level
// evaluations.
func (c *Context) Reset() {
	c.steps = 0
	c.depth = 0
	c.frames = nil
}
