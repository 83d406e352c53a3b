package syntax

import "velab/internal/source"

// ExprKind enumerates the syntactic expression shapes the binder must
// recognize.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIntegerLiteral
	ExprRealLiteral
	ExprStringLiteral
	ExprNullLiteral
	ExprUnbasedUnsizedLiteral // '0 '1 'x 'z
	ExprIdentifier            // named-value reference, possibly the head of a hierarchical path
	ExprScopedName            // pkg::name or Class::name
	ExprUnary
	ExprBinary
	ExprConditional // a ? b : c
	ExprMinTypMax   // a : b : c, min:typ:max
	ExprAssign
	ExprConcat
	ExprReplication // {N{expr}}
	ExprElementSelect
	ExprRangeSelect
	ExprMemberAccess
	ExprCall
	ExprCast              // type'(expr) explicit conversion syntax
	ExprDataTypeAsExpr    // a type name used where an expression is expected (type(...) queries)
	ExprAssignPatternPositional
	ExprAssignPatternForStruct
	ExprAssignPatternForArray
)

// UnaryOp mirrors the textual unary operators.
type UnaryOp uint8

const (
	UnPlus UnaryOp = iota
	UnMinus
	UnBitNot
	UnReduceAnd
	UnReduceOr
	UnReduceXor
	UnReduceNand
	UnReduceNor
	UnReduceXnor
	UnLogNot
	UnPreInc
	UnPreDec
	UnPostInc
	UnPostDec
)

// BinaryOp mirrors the textual binary operators.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinPow
	BinAnd
	BinOr
	BinXor
	BinXnor
	BinEq
	BinNe
	BinCaseEq
	BinCaseNe
	BinWildcardEq
	BinWildcardNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinLogAnd
	BinLogOr
	BinImpl
	BinIff
	BinShl
	BinShr
	BinAShl
	BinAShr
)

// RangeKind distinguishes the three SV range-select forms.
type RangeKind uint8

const (
	RangeConstant   RangeKind = iota // [a:b]
	RangeIndexedUp                   // [a +: b]
	RangeIndexedDown                 // [a -: b]
)

// Selector is one step of a hierarchical or member-access chain.
type Selector struct {
	IsElement bool // true: ElementSelect carried as syntax; false: dotted member
	Name      source.StringID
	Index     ExprID // element-select index expression, valid when IsElement
	Dot       source.Span
	NameRange source.Span
}

// Expr is the compact syntax-node descriptor for one expression, stored in
// an arena addressed by ExprID.
type Expr struct {
	Kind ExprKind
	Span source.Span

	// Literals
	IntText   string // raw digits, parsed lazily by the binder into constval.Integer
	IntWidth  uint32
	IntSigned bool
	RealVal   float64
	StrVal    string
	UnbasedBit byte // '0','1','x','z'

	// Identifier / scoped name / member access
	Name      source.StringID
	ScopePkg  source.StringID // non-zero for pkg::name
	Base      ExprID          // member-access / element-select / range-select base
	Selectors []Selector      // trailing hierarchical/member chain off Base

	// Operators
	Unary  UnaryOp
	Binary BinaryOp
	LHS    ExprID
	RHS    ExprID
	Cond   ExprID // conditional predicate / min:typ:max has LHS=min RHS=typ, Extra=max

	// Ranges / calls / concatenation
	RangeKind RangeKind
	Extra     ExprID   // range-select upper bound / min:typ:max "max" arm
	Elems     []ExprID // concatenation members, call arguments, assignment-pattern elements
	Count     ExprID   // replication count

	// Conversion
	TargetType TypeID

	// Assignment-pattern field/index keys (ExprAssignPatternForStruct/ForArray)
	Keys []ExprID
}
