package constval

import "testing"

func TestFromInt64RoundTrips(t *testing.T) {
	v := FromInt64(8, true, -5)
	n, ok := v.AsInt64()
	if !ok || n != -5 {
		t.Fatalf("expected -5, got %d (ok=%v)", n, ok)
	}
}

func TestAllXHasUnknown(t *testing.T) {
	v := AllX(4, false)
	if !v.HasUnknown() {
		t.Fatalf("expected AllX to have unknown bits")
	}
	for i := uint32(0); i < 4; i++ {
		if v.Bit(i) != BitX {
			t.Fatalf("bit %d: expected X, got %v", i, v.Bit(i))
		}
	}
}

func TestAllZBitsAreZ(t *testing.T) {
	v := AllZ(3, false)
	for i := uint32(0); i < 3; i++ {
		if v.Bit(i) != BitZ {
			t.Fatalf("bit %d: expected Z, got %v", i, v.Bit(i))
		}
	}
}

func TestResizeZeroExtendsUnsigned(t *testing.T) {
	v := FromInt64(4, false, 0xF)
	r := v.Resize(8, false)
	n, ok := r.AsInt64()
	if !ok || n != 0xF {
		t.Fatalf("expected zero-extended 0xF, got %d (ok=%v)", n, ok)
	}
}

func TestResizeSignExtendsSigned(t *testing.T) {
	v := FromInt64(4, true, -1) // 4'b1111
	r := v.Resize(8, true)
	n, ok := r.AsInt64()
	if !ok || n != -1 {
		t.Fatalf("expected sign-extended -1, got %d (ok=%v)", n, ok)
	}
}

func TestResizeTruncates(t *testing.T) {
	v := FromInt64(8, false, 0xFF)
	r := v.Resize(4, false)
	n, ok := r.AsInt64()
	if !ok || n != 0xF {
		t.Fatalf("expected truncated 0xF, got %d (ok=%v)", n, ok)
	}
}

func TestIntegerStringRendersUnknownBits(t *testing.T) {
	v := FromInt64(4, false, 0b0110)
	setBit(&v, 3, BitX)
	if got := v.String(); got != "x110" {
		t.Fatalf("expected x110, got %q", got)
	}
}
