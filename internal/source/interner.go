package source

import "slices"

// StringID is a stable handle for an interned identifier or literal text.
type StringID uint32

// NoStringID is the sentinel for "no string" (maps to "").
const NoStringID StringID = 0

// Interner deduplicates strings (symbol names, package names, string
// literals) behind small stable IDs, the same shape as the type interner in
// internal/types — equal text always yields the same ID.
type Interner struct {
	byID  []string
	index map[string]StringID
}

// NewInterner creates an interner pre-seeded with the empty string at NoStringID.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the StringID for s, allocating a new one if needed.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	cpy := string([]byte(s)) // detach from caller's backing buffer
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// Lookup returns the text for id, or ("", false) if id is out of range.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if !in.Has(id) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup panics on an invalid id; callers hold ids obtained from this interner.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}

// Has reports whether id was produced by this interner.
func (in *Interner) Has(id StringID) bool {
	return int(id) >= 0 && int(id) < len(in.byID)
}

// Len returns the number of distinct strings, including the empty sentinel.
func (in *Interner) Len() int { return len(in.byID) }

// Snapshot returns a defensive copy of every interned string in ID order.
func (in *Interner) Snapshot() []string { return slices.Clone(in.byID) }
