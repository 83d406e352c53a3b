package syntax

import (
	"fortio.org/safecast"

	"velab/internal/source"
)

// Builder is the arena that owns every node of one parsed file, addressed
// by the ID types above. A real parser would populate one of these per
// file; tests construct them by hand to drive the binder directly.
type Builder struct {
	exprs  []Expr
	types  []TypeNode
	items  []Item
	fields []FieldDecl
}

// NewBuilder creates an empty arena with sentinel index 0 reserved in every table.
func NewBuilder() *Builder {
	b := &Builder{}
	b.exprs = append(b.exprs, Expr{Kind: ExprInvalid})
	b.types = append(b.types, TypeNode{Kind: TypeInvalid})
	b.items = append(b.items, Item{Kind: ItemInvalid})
	b.fields = append(b.fields, FieldDecl{})
	return b
}

func idOverflow(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(err)
	}
	return v
}

// AddExpr allocates e and returns its ID.
func (b *Builder) AddExpr(e Expr) ExprID {
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

// AddType allocates t and returns its ID.
func (b *Builder) AddType(t TypeNode) TypeID {
	id := TypeID(idOverflow(len(b.types)))
	b.types = append(b.types, t)
	return id
}

// Type returns the syntax node for id, or nil if id is invalid.
func (b *Builder) Type(id TypeID) *TypeNode {
	if !id.IsValid() || int(id) >= len(b.types) {
		return nil
	}
	return &b.types[id]
}

// AddItem allocates it and returns its ID.
func (b *Builder) AddItem(it Item) ItemID {
	id := ItemID(idOverflow(len(b.items)))
	b.items = append(b.items, it)
	return id
}

// Item returns the declaration node for id, or nil if id is invalid.
func (b *Builder) Item(id ItemID) *Item {
	if !id.IsValid() || int(id) >= len(b.items) {
		return nil
	}
	return &b.items[id]
}

// AddField allocates a struct/union member and returns its ID.
func (b *Builder) AddField(f FieldDecl) FieldID {
	id := FieldID(idOverflow(len(b.fields)))
	b.fields = append(b.fields, f)
	return id
}

// Field returns the field declarator for id.
func (b *Builder) Field(id FieldID) *FieldDecl {
	if int(id) >= len(b.fields) || id == NoFieldID {
		return nil
	}
	return &b.fields[id]
}

// NewTree wraps root items parsed from sourceFile into a Tree owned by b.
func NewTree(file FileID, sourceFile source.FileID, lib string, root []ItemID, b *Builder) *Tree {
	return &Tree{File: file, SourceFile: sourceFile, SourceLib: lib, Root: root, b: b}
}
