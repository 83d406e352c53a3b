package constval

import "math/big"

// Concat joins parts MSB-first into a single integer, the 4-state form of
// SystemVerilog's `{a, b, c}`.
func Concat(parts ...Integer) Integer {
	var total uint32
	for _, p := range parts {
		total += p.width
	}
	out := Integer{width: total}
	pos := total
	for _, p := range parts {
		pos -= p.width
		for i := uint32(0); i < p.width; i++ {
			setBit(&out, pos+i, p.Bit(i))
		}
	}
	return out
}

// Replicate repeats v n times, MSB-first, implementing `{N{v}}`.
func Replicate(v Integer, n int) Integer {
	if n <= 0 {
		return Integer{width: 0}
	}
	parts := make([]Integer, n)
	for i := range parts {
		parts[i] = v
	}
	return Concat(parts...)
}

// Slice extracts bits [hi:lo] (inclusive, hi>=lo) as a new integer of width
// hi-lo+1, the 4-state form of a constant range-select.
func Slice(v Integer, hi, lo int) Integer {
	if hi < lo {
		hi, lo = lo, hi
	}
	width := uint32(hi - lo + 1)
	out := Integer{width: width, signed: v.signed}
	for i := uint32(0); i < width; i++ {
		src := uint32(lo) + i
		bit := Bit0
		if src < v.width {
			bit = v.Bit(src)
		}
		setBit(&out, i, bit)
	}
	return out
}

// WithSlice returns a copy of v with bits [lo:hi] (inclusive) overwritten
// from val's low bits, leaving every bit outside the range untouched. The
// dual of Slice, used for a bit/range-select LValue store on a scalar
// vector rather than an array element.
func (v Integer) WithSlice(hi, lo int, val Integer) Integer {
	if hi < lo {
		hi, lo = lo, hi
	}
	out := v
	out.val = *new(big.Int).Set(&v.val)
	out.unknown = *new(big.Int).Set(&v.unknown)
	out.z = *new(big.Int).Set(&v.z)
	for i := lo; i <= hi; i++ {
		if i < 0 || uint32(i) >= out.width {
			continue
		}
		src := uint32(i - lo)
		bit := Bit0
		if src < val.width {
			bit = val.Bit(src)
		}
		setBit(&out, uint32(i), bit)
	}
	return out
}
