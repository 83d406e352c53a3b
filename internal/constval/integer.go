package constval

import "math/big"

// FourState is one of {0, 1, X, Z}.
type FourState uint8

const (
	Bit0 FourState = iota
	Bit1
	BitX
	BitZ
)

// Integer is an arbitrary-precision, explicitly-sized 4-state integer.
// Known bits live in val; unknown bits are marked in unknown, and among
// those, z distinguishes Z from X. This mirrors the aval/bval encoding real
// 4-state simulators use, expressed with math/big rather than a
// hand-rolled bit-vector (see DESIGN.md for why).
type Integer struct {
	width    uint32
	signed   bool
	twoState bool // bit[N] (2-state) vs logic/reg[N] (4-state)
	val      big.Int
	unknown  big.Int
	z        big.Int // meaningful only where unknown bit is 1
}

func mask(width uint32) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return m.Sub(m, big.NewInt(1))
}

// FromInt64 builds a fully-known integer of the given width/signedness.
func FromInt64(width uint32, signed bool, v int64) Integer {
	bv := big.NewInt(v)
	if bv.Sign() < 0 {
		twos := new(big.Int).Lsh(big.NewInt(1), uint(width))
		bv.Add(bv, twos)
	}
	bv.And(bv, mask(width))
	return Integer{width: width, signed: signed, twoState: true, val: *bv}
}

// FromBig builds a fully-known integer from an arbitrary-precision value.
func FromBig(width uint32, signed bool, v *big.Int) Integer {
	bv := new(big.Int).Set(v)
	if bv.Sign() < 0 {
		twos := new(big.Int).Lsh(big.NewInt(1), uint(width))
		bv.Add(bv, twos)
	}
	bv.And(bv, mask(width))
	return Integer{width: width, signed: signed, twoState: true, val: *bv}
}

// AllX returns a fully-unknown 4-state integer of the given width.
func AllX(width uint32, signed bool) Integer {
	return Integer{width: width, signed: signed, unknown: *mask(width)}
}

// AllZ returns a fully-high-impedance 4-state integer of the given width.
func AllZ(width uint32, signed bool) Integer {
	m := mask(width)
	return Integer{width: width, signed: signed, unknown: *m, z: *m}
}

func (in Integer) Width() uint32  { return in.width }
func (in Integer) Signed() bool   { return in.signed }
func (in Integer) TwoState() bool { return in.twoState }

// HasUnknown reports whether any bit is X or Z.
func (in Integer) HasUnknown() bool { return in.unknown.Sign() != 0 }

// Bit returns the 4-state value of bit i (0 = LSB).
func (in Integer) Bit(i uint32) FourState {
	if i >= in.width {
		return Bit0
	}
	if in.unknown.Bit(int(i)) == 1 {
		if in.z.Bit(int(i)) == 1 {
			return BitZ
		}
		return BitX
	}
	if in.val.Bit(int(i)) == 1 {
		return Bit1
	}
	return Bit0
}

// AsInt64 returns the value as int64 and true if fully known and representable.
func (in Integer) AsInt64() (int64, bool) {
	if in.HasUnknown() {
		return 0, false
	}
	v := in.signedValue()
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

// signedValue interprets val as a signed magnitude if signed is set.
func (in Integer) signedValue() *big.Int {
	v := new(big.Int).Set(&in.val)
	if in.signed && in.width > 0 && v.Bit(int(in.width)-1) == 1 {
		twos := new(big.Int).Lsh(big.NewInt(1), uint(in.width))
		v.Sub(v, twos)
	}
	return v
}

// Resize extends or truncates to newWidth, preserving signedness of newSigned
// per the language's context-determined extension rules.
func (in Integer) Resize(newWidth uint32, newSigned bool) Integer {
	out := Integer{width: newWidth, signed: newSigned, twoState: in.twoState}
	out.val = *new(big.Int).And(&in.val, mask(newWidth))
	out.unknown = *new(big.Int).And(&in.unknown, mask(newWidth))
	out.z = *new(big.Int).And(&in.z, mask(newWidth))
	if newWidth > in.width {
		extBit := Bit0
		if in.signed && in.width > 0 {
			extBit = in.Bit(in.width - 1)
		}
		for i := in.width; i < newWidth; i++ {
			setBit(&out, i, extBit)
		}
	}
	return out
}

func setBit(in *Integer, i uint32, v FourState) {
	switch v {
	case Bit0:
		in.val.SetBit(&in.val, int(i), 0)
		in.unknown.SetBit(&in.unknown, int(i), 0)
	case Bit1:
		in.val.SetBit(&in.val, int(i), 1)
		in.unknown.SetBit(&in.unknown, int(i), 0)
	case BitX:
		in.unknown.SetBit(&in.unknown, int(i), 1)
		in.z.SetBit(&in.z, int(i), 0)
	case BitZ:
		in.unknown.SetBit(&in.unknown, int(i), 1)
		in.z.SetBit(&in.z, int(i), 1)
	}
}

// String renders a fully known integer as a decimal number (negative only
// when signed), and an integer with any X/Z bit as its bits MSB-first
// (0/1/x/z), with no width or base prefix in either case.
func (in Integer) String() string {
	if !in.HasUnknown() {
		return in.signedValue().String()
	}
	out := make([]byte, in.width)
	for i := uint32(0); i < in.width; i++ {
		switch in.Bit(in.width - 1 - i) {
		case Bit0:
			out[i] = '0'
		case Bit1:
			out[i] = '1'
		case BitX:
			out[i] = 'x'
		case BitZ:
			out[i] = 'z'
		}
	}
	return string(out)
}
