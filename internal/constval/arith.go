package constval

import "math/big"

// resultWidth is the context-determined width used for binary arithmetic;
// here it's simply the wider of the two operands, which is what the binder
// will have already arranged before calling into eval.
func resultWidth(a, b Integer) uint32 {
	if a.width > b.width {
		return a.width
	}
	return b.width
}

func resultSigned(a, b Integer) bool { return a.signed && b.signed }

func binaryOp(a, b Integer, f func(x, y *big.Int) *big.Int) Integer {
	w := resultWidth(a, b)
	signed := resultSigned(a, b)
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(w, signed)
	}
	av, bv := a.signedValue(), b.signedValue()
	r := f(av, bv)
	return FromBig(w, signed, r)
}

// Add implements +.
func Add(a, b Integer) Integer {
	return binaryOp(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) })
}

// Sub implements -.
func Sub(a, b Integer) Integer {
	return binaryOp(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) })
}

// Mul implements *.
func Mul(a, b Integer) Integer {
	return binaryOp(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) })
}

// DivResult carries a divide-by-zero flag so the binder/evaluator can emit
// a diagnostic: division by zero yields all-X of the result width in
// strict mode.
type DivResult struct {
	Value      Integer
	DivByZero  bool
}

// Div implements / (truncating toward zero, per SV integer division).
func Div(a, b Integer) DivResult {
	w := resultWidth(a, b)
	signed := resultSigned(a, b)
	if a.HasUnknown() || b.HasUnknown() {
		return DivResult{Value: AllX(w, signed)}
	}
	bv := b.signedValue()
	if bv.Sign() == 0 {
		return DivResult{Value: AllX(w, signed), DivByZero: true}
	}
	av := a.signedValue()
	q := new(big.Int).Quo(av, bv)
	return DivResult{Value: FromBig(w, signed, q)}
}

// Mod implements % (remainder with the sign of the dividend, per SV).
func Mod(a, b Integer) DivResult {
	w := resultWidth(a, b)
	signed := resultSigned(a, b)
	if a.HasUnknown() || b.HasUnknown() {
		return DivResult{Value: AllX(w, signed)}
	}
	bv := b.signedValue()
	if bv.Sign() == 0 {
		return DivResult{Value: AllX(w, signed), DivByZero: true}
	}
	av := a.signedValue()
	r := new(big.Int).Rem(av, bv)
	return DivResult{Value: FromBig(w, signed, r)}
}

// Pow implements **. A negative exponent on an integer base yields 0 (SV
// rule) except base 1 (->1) and base -1 (-> +-1 by parity).
func Pow(a, b Integer) Integer {
	w := resultWidth(a, b)
	signed := resultSigned(a, b)
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(w, signed)
	}
	av, bv := a.signedValue(), b.signedValue()
	if bv.Sign() < 0 {
		switch av.Int64() {
		case 1:
			return FromInt64(w, signed, 1)
		case -1:
			if new(big.Int).And(bv, big.NewInt(1)).Sign() == 0 {
				return FromInt64(w, signed, 1)
			}
			return FromInt64(w, signed, -1)
		default:
			return FromInt64(w, signed, 0)
		}
	}
	r := new(big.Int).Exp(av, bv, nil)
	return FromBig(w, signed, r)
}

// bitwiseOp implements the classic 4-state truth tables for AND/OR/XOR.
func bitwiseOp(a, b Integer, table func(x, y FourState) FourState) Integer {
	w := resultWidth(a, b)
	signed := resultSigned(a, b)
	out := Integer{width: w, signed: signed}
	for i := uint32(0); i < w; i++ {
		ax, bx := Bit0, Bit0
		if i < a.width {
			ax = a.Bit(i)
		}
		if i < b.width {
			bx = b.Bit(i)
		}
		setBit(&out, i, table(ax, bx))
	}
	return out
}

func andBit(x, y FourState) FourState {
	if x == Bit0 || y == Bit0 {
		return Bit0
	}
	if x == Bit1 && y == Bit1 {
		return Bit1
	}
	return BitX
}

func orBit(x, y FourState) FourState {
	if x == Bit1 || y == Bit1 {
		return Bit1
	}
	if x == Bit0 && y == Bit0 {
		return Bit0
	}
	return BitX
}

func xorBit(x, y FourState) FourState {
	if isUnknown(x) || isUnknown(y) {
		return BitX
	}
	if x == y {
		return Bit0
	}
	return Bit1
}

func xnorBit(x, y FourState) FourState {
	r := xorBit(x, y)
	if r == BitX {
		return BitX
	}
	if r == Bit0 {
		return Bit1
	}
	return Bit0
}

func isUnknown(b FourState) bool { return b == BitX || b == BitZ }

// And implements bitwise &.
func And(a, b Integer) Integer { return bitwiseOp(a, b, andBit) }

// Or implements bitwise |.
func Or(a, b Integer) Integer { return bitwiseOp(a, b, orBit) }

// Xor implements bitwise ^.
func Xor(a, b Integer) Integer { return bitwiseOp(a, b, xorBit) }

// Xnor implements bitwise ~^ / ^~.
func Xnor(a, b Integer) Integer { return bitwiseOp(a, b, xnorBit) }

// Not implements unary bitwise ~.
func Not(a Integer) Integer {
	out := Integer{width: a.width, signed: a.signed}
	for i := uint32(0); i < a.width; i++ {
		switch a.Bit(i) {
		case Bit0:
			setBit(&out, i, Bit1)
		case Bit1:
			setBit(&out, i, Bit0)
		default:
			setBit(&out, i, BitX)
		}
	}
	return out
}

// reduce applies a unary reduction operator (&, |, ^, ~&, ~|, ~^) across all bits.
func reduce(a Integer, seed FourState, step func(acc, bit FourState) FourState) FourState {
	acc := seed
	for i := uint32(0); i < a.width; i++ {
		acc = step(acc, a.Bit(i))
	}
	return acc
}

// ReduceAnd implements unary &.
func ReduceAnd(a Integer) FourState { return reduce(a, Bit1, andBit) }

// ReduceOr implements unary |.
func ReduceOr(a Integer) FourState { return reduce(a, Bit0, orBit) }

// ReduceXor implements unary ^.
func ReduceXor(a Integer) FourState { return reduce(a, Bit0, xorBit) }

// Shl implements <<, <<<. Shifting by an unknown amount yields all-X.
func Shl(a Integer, amount Integer) Integer {
	if amount.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	amt, _ := amount.AsInt64()
	if amt < 0 {
		return Shr(a, FromInt64(amount.width, false, -amt), false)
	}
	out := Integer{width: a.width, signed: a.signed}
	for i := int64(a.width) - 1; i >= 0; i-- {
		src := i - amt
		if src < 0 {
			setBit(&out, uint32(i), Bit0)
		} else {
			setBit(&out, uint32(i), a.Bit(uint32(src)))
		}
	}
	return out
}

// Shr implements >>, >>>. arithmetic selects sign-extension (>>>) vs
// zero-fill (>>) for the vacated high bits.
func Shr(a Integer, amount Integer, arithmetic bool) Integer {
	if amount.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	amt, _ := amount.AsInt64()
	if amt < 0 {
		return Shl(a, FromInt64(amount.width, false, -amt))
	}
	fill := Bit0
	if arithmetic && a.width > 0 {
		fill = a.Bit(a.width - 1)
	}
	out := Integer{width: a.width, signed: a.signed}
	for i := uint32(0); i < a.width; i++ {
		src := int64(i) + amt
		if src >= int64(a.width) {
			setBit(&out, i, fill)
		} else {
			setBit(&out, i, a.Bit(uint32(src)))
		}
	}
	return out
}

// Eq implements == / != with 4-state X-propagation: any unknown bit in
// either operand makes the comparison result unknown.
func Eq(a, b Integer) FourState {
	w := resultWidth(a, b)
	for i := uint32(0); i < w; i++ {
		ax, bx := Bit0, Bit0
		if i < a.width {
			ax = a.Bit(i)
		}
		if i < b.width {
			bx = b.Bit(i)
		}
		if isUnknown(ax) || isUnknown(bx) {
			return BitX
		}
		if ax != bx {
			return Bit0
		}
	}
	return Bit1
}

// CaseEq implements === / !==: a definite, bit-exact comparison including X/Z.
func CaseEq(a, b Integer) bool {
	w := resultWidth(a, b)
	for i := uint32(0); i < w; i++ {
		ax, bx := Bit0, Bit0
		if i < a.width {
			ax = a.Bit(i)
		}
		if i < b.width {
			bx = b.Bit(i)
		}
		if ax != bx {
			return false
		}
	}
	return true
}

// WildcardEq implements ==? / !=?: like Eq but Z (not X) in either operand
// acts as a don't-care wildcard at that bit position.
func WildcardEq(a, b Integer) FourState {
	w := resultWidth(a, b)
	for i := uint32(0); i < w; i++ {
		ax, bx := Bit0, Bit0
		if i < a.width {
			ax = a.Bit(i)
		}
		if i < b.width {
			bx = b.Bit(i)
		}
		if ax == BitZ || bx == BitZ {
			continue
		}
		if ax == BitX || bx == BitX {
			return BitX
		}
		if ax != bx {
			return Bit0
		}
	}
	return Bit1
}

// Compare implements < <= > >=, returning (-1,0,1, ok). ok is false if
// either operand has an unknown bit, in which case the binder should treat
// the relational result itself as unknown.
func Compare(a, b Integer) (int, bool) {
	if a.HasUnknown() || b.HasUnknown() {
		return 0, false
	}
	av, bv := a.signedValue(), b.signedValue()
	return av.Cmp(bv), true
}
