package diag

import "sort"

// Reporter decouples diagnostic emission from any particular sink (the
// compilation, a lookup result, an eval context all hold one of these
// rather than a concrete *Bag).
type Reporter interface {
	Report(d Diagnostic)
	ErrorCount() int
}

// Bag is an append-only structured diagnostic collection. It enforces error_limit and (code, location)
// duplicate suppression: a second report at the same key is not appended as
// its own entry; its notes are appended to the first entry's notes.
type Bag struct {
	entries    []Diagnostic
	seen       map[key]int // key -> index into entries
	errorCount int
	limit      int
	limited    bool
}

// NewBag creates a bag bounded by limit (0 means unbounded).
func NewBag(limit int) *Bag {
	return &Bag{seen: make(map[key]int), limit: limit}
}

// Report appends d or, when an entry at the same (code, location) exists,
// appends d's notes to that entry. Once error_limit errors have been
// recorded, a single ElabTooManyErrors entry is appended and every further
// report is dropped.
func (b *Bag) Report(d Diagnostic) {
	if b.limited {
		return
	}
	k := key{code: d.Code, span: d.Span}
	if idx, ok := b.seen[k]; ok {
		b.entries[idx].Notes = append(b.entries[idx].Notes, d.Notes...)
		return
	}
	b.seen[k] = len(b.entries)
	b.entries = append(b.entries, d)
	if d.Severity == SevError {
		b.errorCount++
		if b.limit > 0 && b.errorCount >= b.limit {
			b.limited = true
			b.entries = append(b.entries, New(ElabTooManyErrors, d.Span))
		}
	}
}

// ErrorCount returns the number of distinct errors recorded so far.
func (b *Bag) ErrorCount() int { return b.errorCount }

// Entries returns diagnostics ordered by (file, offset) within a buffer;
// across buffers the relative order of first appearance is preserved.
func (b *Bag) Entries() []Diagnostic {
	out := make([]Diagnostic, len(b.entries))
	copy(out, b.entries)
	firstSeenFile := make(map[uint32]int)
	order := make([]int, 0, len(out))
	for i, d := range out {
		if _, ok := firstSeenFile[uint32(d.Span.File)]; !ok {
			firstSeenFile[uint32(d.Span.File)] = len(firstSeenFile)
		}
		order = append(order, i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, c := out[order[i]], out[order[j]]
		fa, fc := firstSeenFile[uint32(a.Span.File)], firstSeenFile[uint32(c.Span.File)]
		if fa != fc {
			return fa < fc
		}
		return a.Span.Start < c.Span.Start
	})
	sorted := make([]Diagnostic, len(out))
	for i, idx := range order {
		sorted[i] = out[idx]
	}
	return sorted
}

// Reset clears the bag for reuse (e.g. speculative folding).
func (b *Bag) Reset() {
	b.entries = nil
	b.seen = make(map[key]int)
	b.errorCount = 0
	b.limited = false
}
