// Package syntax models the shape of syntax-tree nodes the binder consumes.
// The lexer, preprocessor, and parser that would actually produce these
// trees from source text are external collaborators — this
// package exists only to give the binder (internal/binder) and the
// compilation driver (internal/compilation) a concrete input contract,
// the same way slang's own AST headers are consumed but not reimplemented
// by this spec's core.
package syntax

import "velab/internal/source"

type (
	FileID  uint32
	ExprID  uint32
	TypeID  uint32 // type syntax, distinct from types.TypeID (the interned semantic type)
	ItemID  uint32
	FieldID uint32
)

const (
	NoFileID  FileID  = 0
	NoExprID  ExprID  = 0
	NoTypeID  TypeID  = 0
	NoItemID  ItemID  = 0
	NoFieldID FieldID = 0
)

func (id ExprID) IsValid() bool { return id != NoExprID }
func (id TypeID) IsValid() bool { return id != NoTypeID }
func (id ItemID) IsValid() bool { return id != NoItemID }
func (id FieldID) IsValid() bool { return id != NoFieldID }

// Tree is one parsed compilation unit: the source buffer id, root node,
// a parse-error count, and an optional source_library tag.
type Tree struct {
	File        FileID
	SourceFile  source.FileID
	SourceLib   string
	Root        []ItemID
	ParseErrors int // count only; parse diagnostics live in the external parser's own channel
	b           *Builder
}

// Builder returns the arena backing this tree's nodes.
func (t *Tree) Builder() *Builder { return t.b }
