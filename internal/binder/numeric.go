package binder

import "math/big"

// bigIntFromString parses the raw decimal digits a literal's syntax node
// carries (size/base handling happens in the external lexer).
// An unparsable literal yields zero rather than a binder-side panic — a
// malformed literal is the lexer's diagnostic to raise, not the binder's.
func bigIntFromString(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return big.NewInt(0)
	}
	return v
}
