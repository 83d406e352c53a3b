// Package binder turns syntax.Expr trees into typed, resolved Expr trees:
// names become symbol references, operators pick a concrete overload, and
// every subtree ends up with a canonical types.TypeID, inserting implicit
// conversions where the language's context-determined typing rules require
// a width or kind change.
package binder

// ExprID identifies a bound expression node in a Builder's arena. It is
// deliberately distinct from syntax.ExprID: one syntax node can bind to
// several different Exprs across overload attempts, and a bound tree
// contains synthesized nodes (implicit conversions) that have no syntax
// counterpart at all.
type ExprID uint32

// NoExprID marks the absence of a bound expression.
const NoExprID ExprID = 0

func (id ExprID) IsValid() bool { return id != NoExprID }
