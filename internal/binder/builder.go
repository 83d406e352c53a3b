package binder

import "fortio.org/safecast"

// Builder is the bound-tree arena, one per Binder. The compilation creates
// a fresh Binder, and so a fresh Builder, for each constant expression,
// type and constexpr function body it binds. It also owns the bound-statement arena for whatever
// constexpr function/task bodies were bound through the same Binder.
type Builder struct {
	exprs []Expr
	stmts []Stmt
}

// NewBuilder creates an empty arena with the sentinel slot reserved.
func NewBuilder() *Builder {
	return &Builder{exprs: []Expr{{Kind: Invalid}}, stmts: []Stmt{{Kind: StmtInvalid}}}
}

func idOverflow(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(err)
	}
	return v
}

// Add allocates e and returns its ExprID.
func (b *Builder) Add(e Expr) ExprID {
	id := ExprID(idOverflow(len(b.exprs)))
	b.exprs = append(b.exprs, e)
	return id
}

// Expr returns the node for id, or nil if id is invalid.
func (b *Builder) Expr(id ExprID) *Expr {
	if !id.IsValid() || int(id) >= len(b.exprs) {
		return nil
	}
	return &b.exprs[id]
}

// Len reports the number of bound nodes, excluding the sentinel.
func (b *Builder) Len() int { return len(b.exprs) - 1 }

// AddStmt allocates s and returns its StmtID.
func (b *Builder) AddStmt(s Stmt) StmtID {
	id := StmtID(idOverflow(len(b.stmts)))
	b.stmts = append(b.stmts, s)
	return id
}

// Stmt returns the node for id, or nil if id is invalid.
func (b *Builder) Stmt(id StmtID) *Stmt {
	if !id.IsValid() || int(id) >= len(b.stmts) {
		return nil
	}
	return &b.stmts[id]
}
