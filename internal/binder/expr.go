package binder

import (
	"velab/internal/constval"
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/types"
)

// Kind enumerates the typed expression shapes the binder produces.
type Kind uint8

const (
	Invalid Kind = iota
	IntegerLiteral
	RealLiteral
	StringLiteral
	NullLiteral
	NamedValue // resolved value reference: parameter, variable, net, enum value, function call target
	Unary
	Binary
	Conditional
	MinTypMax
	Assign
	Concat
	Replication
	ElementSelect
	RangeSelect
	MemberAccess
	Call
	Conversion // implicit or explicit; Implicit distinguishes the two for diagnostics
	AssignPatternArray
	AssignPatternStruct
	Bad // a subtree that failed to bind; absorbs further errors silently
)

// Expr is one node of the bound expression tree. Fields are shared across
// variants rather than routed through an interface, matching the flat
// arena-node shape over open inheritance.
type Expr struct {
	Kind Kind
	Type types.TypeID
	Span source.Span

	// Constant-foldable subtrees carry their folded value inline so the
	// evaluator (internal/eval) can short-circuit re-evaluation of literals
	// and other already-known values.
	Const      constval.Value
	ConstValid bool
	IsLValue   bool

	IntVal  constval.Integer
	RealVal float64
	StrVal  string

	// NamedValue
	Sym symbols.SymbolID

	// Unary / Binary
	UnOp  types.UnaryOp
	BinOp types.BinaryOp
	LHS   ExprID
	RHS   ExprID

	// Conditional / MinTypMax: Cond holds the predicate (Conditional) or the
	// "min" arm (MinTypMax); LHS/RHS double as the remaining arms.
	Cond ExprID

	// Concat / Replication / Call / assignment patterns
	Elems []ExprID
	Count ExprID // Replication

	// ElementSelect / RangeSelect / MemberAccess
	Base       ExprID
	Index      ExprID // ElementSelect
	RangeLeft  ExprID // RangeSelect
	RangeRight ExprID
	IndexedPart bool // RangeSelect: +: / -: form, vs. constant [a:b]
	Down        bool // IndexedPart direction: -: when true
	FieldName  source.StringID // MemberAccess

	// Call
	Target symbols.SymbolID

	// Conversion
	Implicit bool

	// AssignPatternStruct keys (field names) parallel to Elems.
	Keys []source.StringID
}
