// Package types implements the interned, immutable type table: two types
// are identical iff their structural keys match, and the compilation owns
// exactly one canonical instance per key.
package types

import "fmt"

// TypeID uniquely identifies an interned type.
type TypeID uint32

// NoTypeID marks the absence of a type; the interner reserves it for the
// error type, so Builtins().Error is NoTypeID.
const NoTypeID TypeID = 0

// Kind enumerates the type variants.
type Kind uint8

const (
	KindError Kind = iota // absorbs further operations silently
	KindVoid
	KindNull
	KindUnbounded
	KindBit    // 1-bit, 2-state unless explicitly logic/reg
	KindLogic  // 4-state scalar/vector
	KindReg    // 4-state scalar/vector, alias family of Logic for net/var distinction
	KindPacked // packed integer of width W (int, shortint, integer, byte, bit [W-1:0], …)
	KindUnpackedArray
	KindPackedStruct
	KindPackedUnion
	KindString
	KindChandle
	KindEvent
	KindReal // real/shortreal/realtime family, see RealKind
)

func (k Kind) String() string {
	names := [...]string{"error", "void", "null", "unbounded", "bit", "logic", "reg",
		"packed", "unpacked_array", "packed_struct", "packed_union", "string",
		"chandle", "event", "real"}
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// RealKind distinguishes members of the real family.
type RealKind uint8

const (
	RealKindReal RealKind = iota
	RealKindShortreal
	RealKindRealtime
)

// Dim describes one dimension of an unpacked array.
type Dim struct {
	Left, Right int64 // declared bounds; Left>=Right for ascending packed-like ranges
	Dynamic     bool  // true for `[]` (dynamic array) and queues
	Assoc       bool  // true for associative arrays; KeyType gives the key type
	Queue       bool
	KeyType     TypeID
}

// FieldInfo is one member of a packed struct/union.
type FieldInfo struct {
	Name string
	Type TypeID
}

// Type is the structural descriptor interned behind a TypeID. Equality of
// two Type values (via structuralKey) is the compilation's only notion of type
// identity.
type Type struct {
	Kind     Kind
	Elem     TypeID // array element type, or alias target
	Width    uint32 // packed integer / bit / logic scalar width
	Signed   bool
	FourStat bool // false = 2-state (bit), true = 4-state (logic/reg)
	RealKind RealKind
	Dims     []Dim       // KindUnpackedArray
	Fields   []FieldInfo // KindPackedStruct / KindPackedUnion
	Name     string      // optional tag name for struct/union/enum-like types
}

// BitWidth returns the total number of bits the type occupies when packed,
// or 0 for types with no bit representation (string, chandle, event, …).
func (t Type) BitWidth() uint32 {
	switch t.Kind {
	case KindBit, KindLogic, KindReg, KindPacked:
		return t.Width
	case KindPackedStruct, KindPackedUnion:
		return t.Width
	default:
		return 0
	}
}

// IsIntegral reports whether values of this type participate in 4-state
// integer arithmetic.
func (t Type) IsIntegral() bool {
	switch t.Kind {
	case KindBit, KindLogic, KindReg, KindPacked, KindPackedStruct, KindPackedUnion:
		return true
	default:
		return false
	}
}

// IsError reports whether t is the designated error type, which silently
// absorbs further operations.
func (t Type) IsError() bool { return t.Kind == KindError }
