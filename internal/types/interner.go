package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins holds the always-present primitive TypeIDs, seeded once per
// Interner so every Compilation shares the same canonical instances for
// them.
type Builtins struct {
	Error     TypeID
	Void      TypeID
	Null      TypeID
	Unbounded TypeID
	Bit       TypeID // bit (1-bit, 2-state, unsigned)
	Logic     TypeID // logic (1-bit, 4-state, unsigned)
	Int       TypeID // int (32-bit, 2-state, signed)
	Integer   TypeID // integer (32-bit, 4-state, signed)
	Byte      TypeID // byte (8-bit, 2-state, signed)
	Shortint  TypeID // shortint (16-bit, 2-state, signed)
	Longint   TypeID // longint (64-bit, 2-state, signed)
	String    TypeID
	Chandle   TypeID
	Event     TypeID
	Real      TypeID
}

// Interner assigns stable TypeIDs to structural Type descriptors.
type Interner struct {
	types    []Type
	index    map[string]TypeID
	builtins Builtins
}

// NewInterner creates an interner pre-seeded with the language's built-in
// types.
func NewInterner() *Interner {
	in := &Interner{index: make(map[string]TypeID, 64)}
	in.types = append(in.types, Type{Kind: KindError}) // reserve TypeID 0
	in.builtins.Error = NoTypeID
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Null = in.Intern(Type{Kind: KindNull})
	in.builtins.Unbounded = in.Intern(Type{Kind: KindUnbounded})
	in.builtins.Bit = in.Intern(Type{Kind: KindBit, Width: 1})
	in.builtins.Logic = in.Intern(Type{Kind: KindLogic, Width: 1, FourStat: true})
	in.builtins.Int = in.Intern(Type{Kind: KindPacked, Width: 32, Signed: true})
	in.builtins.Integer = in.Intern(Type{Kind: KindPacked, Width: 32, Signed: true, FourStat: true})
	in.builtins.Byte = in.Intern(Type{Kind: KindPacked, Width: 8, Signed: true})
	in.builtins.Shortint = in.Intern(Type{Kind: KindPacked, Width: 16, Signed: true})
	in.builtins.Longint = in.Intern(Type{Kind: KindPacked, Width: 64, Signed: true})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Chandle = in.Intern(Type{Kind: KindChandle})
	in.builtins.Event = in.Intern(Type{Kind: KindEvent})
	in.builtins.Real = in.Intern(Type{Kind: KindReal, RealKind: RealKindReal})
	return in
}

// Builtins returns the always-present primitive TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Intern ensures t has a stable TypeID, returning the existing one if an
// equal structural key was interned before.
func (in *Interner) Intern(t Type) TypeID {
	key := structuralKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics on an invalid id.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// Len reports the number of distinct interned types.
func (in *Interner) Len() int { return len(in.types) }

// structuralKey renders a Type into a string that is equal iff the two
// types have equal structural keys; child
// TypeIDs are already canonical, so nesting only needs their integer value.
func structuralKey(t Type) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d|%d|%d|%v|%v|%d|%q", t.Kind, t.Elem, t.Width, t.Signed, t.FourStat, t.RealKind, t.Name)
	for _, d := range t.Dims {
		fmt.Fprintf(&sb, "|d(%d,%d,%v,%v,%v,%d)", d.Left, d.Right, d.Dynamic, d.Assoc, d.Queue, d.KeyType)
	}
	for _, f := range t.Fields {
		fmt.Fprintf(&sb, "|f(%q,%d)", f.Name, f.Type)
	}
	return sb.String()
}
