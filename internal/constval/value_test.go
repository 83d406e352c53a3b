package constval

import "testing"

func TestIsTruthy(t *testing.T) {
	if !IsTruthy(FromInteger(FromInt64(4, false, 1))) {
		t.Fatalf("expected nonzero known integer to be truthy")
	}
	if IsTruthy(FromInteger(FromInt64(4, false, 0))) {
		t.Fatalf("expected zero to be falsy")
	}
	if IsTruthy(FromInteger(AllX(4, false))) {
		t.Fatalf("expected an X-bearing value to be falsy")
	}
	if IsTruthy(FromString("x")) {
		t.Fatalf("expected a non-integer value to be falsy")
	}
}

func TestFromBool(t *testing.T) {
	if n, _ := FromBool(true).Int.AsInt64(); n != 1 {
		t.Fatalf("expected true to pack to 1, got %d", n)
	}
	if n, _ := FromBool(false).Int.AsInt64(); n != 0 {
		t.Fatalf("expected false to pack to 0, got %d", n)
	}
}

func TestValueFieldLookup(t *testing.T) {
	v := Value{Kind: KindStruct, Fields: []Field{{Name: "a", Value: FromInteger(FromInt64(4, false, 1))}}}
	got, ok := v.Field("a")
	n, ok2 := got.Int.AsInt64()
	if !ok || !ok2 || n != 1 {
		t.Fatalf("expected field a to hold 1, got %d (ok=%v,%v)", n, ok, ok2)
	}
	if _, ok := v.Field("missing"); ok {
		t.Fatalf("expected missing field to report ok=false")
	}
}

func TestValueWithFieldPreservesOrderAndIsImmutable(t *testing.T) {
	base := Value{Kind: KindStruct, Fields: []Field{
		{Name: "a", Value: FromInteger(FromInt64(4, false, 1))},
		{Name: "b", Value: FromInteger(FromInt64(4, false, 2))},
	}}
	updated := base.WithField("a", FromInteger(FromInt64(4, false, 9)))

	orig, _ := base.Field("a")
	if n, _ := orig.Int.AsInt64(); n != 1 {
		t.Fatalf("expected original value untouched, got %d", n)
	}
	upd, _ := updated.Field("a")
	if n, _ := upd.Int.AsInt64(); n != 9 {
		t.Fatalf("expected updated value 9, got %d", n)
	}
	if updated.Fields[0].Name != "a" || updated.Fields[1].Name != "b" {
		t.Fatalf("expected field order preserved, got %+v", updated.Fields)
	}
}

func TestValueWithElem(t *testing.T) {
	base := Value{Kind: KindArray, Elems: []Value{
		FromInteger(FromInt64(4, false, 1)),
		FromInteger(FromInt64(4, false, 2)),
	}}
	updated := base.WithElem(1, FromInteger(FromInt64(4, false, 7)))
	if n, _ := updated.Elems[1].Int.AsInt64(); n != 7 {
		t.Fatalf("expected elem 1 updated to 7, got %d", n)
	}
	if n, _ := base.Elems[1].Int.AsInt64(); n != 2 {
		t.Fatalf("expected original array untouched, got %d", n)
	}
}

func TestValueEqual(t *testing.T) {
	a := FromInteger(FromInt64(4, false, 5))
	b := FromInteger(FromInt64(8, false, 5))
	if !a.Equal(b) {
		t.Fatalf("expected equal values across differing widths to compare equal via CaseEq semantics")
	}
	if a.Equal(FromString("5")) {
		t.Fatalf("expected values of different kinds to never be equal")
	}
	if !Null().Equal(Null()) {
		t.Fatalf("expected null to equal null")
	}
}
