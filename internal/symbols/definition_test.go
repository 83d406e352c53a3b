package symbols

import (
	"testing"

	"velab/internal/source"
	"velab/internal/syntax"
)

func TestDefinitionTableAddAndLookup(t *testing.T) {
	dt := NewDefinitionTable()
	strs := source.NewInterner()
	name := strs.Intern("top")
	id := dt.Add(Definition{Name: name, Kind: syntax.ItemModule}, true)

	if got := dt.ByName(name); got != id {
		t.Fatalf("expected ByName to return %d, got %d", id, got)
	}
	if d := dt.Get(id); d == nil || d.Name != name {
		t.Fatalf("expected Get to return the registered definition, got %+v", d)
	}
}

func TestDefinitionTableDuplicateNameKeepsFirst(t *testing.T) {
	dt := NewDefinitionTable()
	strs := source.NewInterner()
	name := strs.Intern("dup")
	first := dt.Add(Definition{Name: name}, true)
	second := dt.Add(Definition{Name: name}, true)

	if got := dt.ByName(name); got != first {
		t.Fatalf("expected ByName to keep resolving to the first definition %d, got %d", first, got)
	}
	if dt.Get(second) == nil {
		t.Fatalf("expected the shadowed definition to remain addressable by id")
	}
}

func TestDefinitionTableNames(t *testing.T) {
	dt := NewDefinitionTable()
	strs := source.NewInterner()
	dt.Add(Definition{Name: strs.Intern("a")}, true)
	dt.Add(Definition{Name: strs.Intern("b")}, true)
	if got := dt.Names(); len(got) != 2 {
		t.Fatalf("expected 2 distinct names, got %d", len(got))
	}
}

func TestDefinitionTableLocalNotInByName(t *testing.T) {
	dt := NewDefinitionTable()
	strs := source.NewInterner()
	name := strs.Intern("nested")
	id := dt.Add(Definition{Name: name}, false)

	if got := dt.ByName(name); got != NoDefinitionID {
		t.Fatalf("expected a non-global definition to stay out of ByName, got %d", got)
	}
	if d := dt.Get(id); d == nil || d.Name != name {
		t.Fatalf("expected Get to still resolve a non-global definition by id, got %+v", d)
	}
}

func TestDefinitionTableGetInvalidID(t *testing.T) {
	dt := NewDefinitionTable()
	if dt.Get(NoDefinitionID) != nil {
		t.Fatalf("expected nil for NoDefinitionID")
	}
}
