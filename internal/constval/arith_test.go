package constval

import "testing"

func TestAddWidensToWiderOperand(t *testing.T) {
	a := FromInt64(4, false, 3)
	b := FromInt64(8, false, 10)
	r := Add(a, b)
	if r.Width() != 8 {
		t.Fatalf("expected result width 8, got %d", r.Width())
	}
	n, ok := r.AsInt64()
	if !ok || n != 13 {
		t.Fatalf("expected 13, got %d (ok=%v)", n, ok)
	}
}

func TestAddWithUnknownOperandYieldsAllX(t *testing.T) {
	a := AllX(4, false)
	b := FromInt64(4, false, 1)
	r := Add(a, b)
	if !r.HasUnknown() {
		t.Fatalf("expected all-X result when an operand has unknown bits")
	}
}

func TestDivByZeroReportsFlag(t *testing.T) {
	a := FromInt64(8, false, 10)
	b := FromInt64(8, false, 0)
	r := Div(a, b)
	if !r.DivByZero {
		t.Fatalf("expected DivByZero to be set")
	}
	if !r.Value.HasUnknown() {
		t.Fatalf("expected all-X value on divide by zero")
	}
}

func TestModKeepsDividendSign(t *testing.T) {
	a := FromInt64(8, true, -7)
	b := FromInt64(8, true, 3)
	r := Mod(a, b)
	n, ok := r.Value.AsInt64()
	if !ok || n != -1 {
		t.Fatalf("expected -1 (sign of dividend), got %d (ok=%v)", n, ok)
	}
}

func TestPowNegativeExponentSpecialCases(t *testing.T) {
	base1 := FromInt64(8, true, 1)
	baseNeg1 := FromInt64(8, true, -1)
	negExp := FromInt64(8, true, -3)

	if n, _ := Pow(base1, negExp).AsInt64(); n != 1 {
		t.Fatalf("1 ** negative expected 1, got %d", n)
	}
	if n, _ := Pow(baseNeg1, negExp).AsInt64(); n != -1 {
		t.Fatalf("-1 ** odd negative expected -1, got %d", n)
	}
}

func TestBitwiseAndTruthTable(t *testing.T) {
	a := FromInt64(1, false, 1)
	x := AllX(1, false)
	r := And(a, x)
	if r.Bit(0) != BitX {
		t.Fatalf("1 & X should be X, got %v", r.Bit(0))
	}
}

func TestShlFillsZeroAtLSB(t *testing.T) {
	v := FromInt64(4, false, 0b0001)
	r := Shl(v, FromInt64(4, false, 1))
	n, _ := r.AsInt64()
	if n != 0b0010 {
		t.Fatalf("expected 0b0010, got %b", n)
	}
}

func TestShrArithmeticSignExtendsFill(t *testing.T) {
	v := FromInt64(4, true, -2) // 4'b1110
	r := Shr(v, FromInt64(4, false, 1), true)
	n, _ := r.AsInt64()
	if n != -1 {
		t.Fatalf("expected arithmetic shift of -2 by 1 to give -1, got %d", n)
	}
}

func TestEqPropagatesUnknown(t *testing.T) {
	a := FromInt64(4, false, 1)
	b := AllX(4, false)
	if Eq(a, b) != BitX {
		t.Fatalf("expected Eq with an unknown operand to be X")
	}
}

func TestCaseEqIsExactIncludingX(t *testing.T) {
	a := AllX(4, false)
	b := AllX(4, false)
	if !CaseEq(a, b) {
		t.Fatalf("expected identical X patterns to be === equal")
	}
	c := FromInt64(4, false, 0)
	if CaseEq(a, c) {
		t.Fatalf("expected X pattern to not be === equal to a known 0")
	}
}

func TestWildcardEqTreatsZAsDontCare(t *testing.T) {
	a := FromInt64(4, false, 0b1010)
	b := AllZ(4, false)
	if WildcardEq(a, b) != Bit1 {
		t.Fatalf("expected all-Z wildcard to match any known value")
	}
}

func TestCompareReturnsNotOkOnUnknown(t *testing.T) {
	a := AllX(4, false)
	b := FromInt64(4, false, 1)
	if _, ok := Compare(a, b); ok {
		t.Fatalf("expected ok=false when an operand has unknown bits")
	}
}
