// Package testkit holds invariant checkers shared by the package test
// suites, centralizing scope and instance-body sanity checks rather than
// duplicating them per _test.go file.
package testkit

import (
	"fmt"

	"velab/internal/symbols"
)

// CheckScopeMemberOrder verifies that scope's members carry strictly
// increasing Index values in declaration order.
func CheckScopeMemberOrder(t *symbols.Table, scope symbols.ScopeID) error {
	sc := t.Scope(scope)
	if sc == nil {
		return fmt.Errorf("testkit: scope %d not found", scope)
	}
	var prev symbols.Index
	for i, id := range sc.Members() {
		sym := t.Symbol(id)
		if sym == nil {
			return fmt.Errorf("testkit: nil symbol at member index %d", i)
		}
		if i > 0 && sym.Index <= prev {
			return fmt.Errorf("testkit: member %d (%q) has non-increasing index %d <= %d", i, sym.Name, sym.Index, prev)
		}
		prev = sym.Index
	}
	return nil
}

// CheckInstanceBodyInvariants verifies an elaborated InstanceBody has a
// non-empty HierPath and that its Params carry no duplicate names. It does
// not check which name the path ends in.
func CheckInstanceBodyInvariants(it *symbols.InstanceTable, id symbols.InstanceBodyID) error {
	body := it.Get(id)
	if body == nil {
		return fmt.Errorf("testkit: instance body %d not found", id)
	}
	if len(body.HierPath) == 0 {
		return fmt.Errorf("testkit: instance body %d has empty HierPath", id)
	}
	seen := make(map[string]bool, len(body.Params))
	for _, p := range body.Params {
		key := fmt.Sprintf("%d", p.Name)
		if seen[key] {
			return fmt.Errorf("testkit: instance body %d has duplicate parameter %q", id, p.Name)
		}
		seen[key] = true
	}
	return nil
}
