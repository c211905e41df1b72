package lexer

// matchIdent returns the length of the maximal identifier at the start of b,
// or 0. The first character may not be a digit; later ones may.
func matchIdent(b []byte) uint32 {
	r, sz, ok := decodeValid(b)
	if !ok || !isIdentStartRune(r) {
		return 0
	}
	n := uint32(sz) // #nosec G115 -- sz <= 4
	for int(n) < len(b) {
		r, sz, ok = decodeValid(b[n:])
		if !ok || !isIdentContinueRune(r) {
			break
		}
		n += uint32(sz) // #nosec G115
	}
	return n
}
