package lexer

import (
	"unicode/utf8"

	"ranoc/internal/token"
)

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isBin(b byte) bool { return b == '0' || b == '1' }
func isOct(b byte) bool { return b >= '0' && b <= '7' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

// isIdentContinueRune: anything except whitespace, line breaks and the
// punctuation set. Digits, quotes and '_' are all allowed.
func isIdentContinueRune(r rune) bool {
	if r < utf8.RuneSelf && token.IsPunctByte(byte(r)) {
		return false
	}
	return !isSpaceRune(r) && !isLineBreakRune(r)
}

// isIdentStartRune is isIdentContinueRune minus ASCII digits.
func isIdentStartRune(r rune) bool {
	if r >= '0' && r <= '9' {
		return false
	}
	return isIdentContinueRune(r)
}

// decodeValid decodes one rune; ok is false for invalid UTF-8.
func decodeValid(b []byte) (r rune, size int, ok bool) {
	r, size = utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return r, size, false
	}
	return r, size, true
}

// runLen counts leading bytes of b that satisfy pred.
func runLen(b []byte, pred func(byte) bool) uint32 {
	var n uint32
	for int(n) < len(b) && pred(b[n]) {
		n++
	}
	return n
}

// invalidRunLen measures a run of undecodable bytes at the cursor.
func (lx *Lexer) invalidRunLen() uint32 {
	rest := lx.cursor.Rest()
	var n uint32
	for int(n) < len(rest) {
		if _, _, ok := decodeValid(rest[n:]); ok {
			break
		}
		n++
	}
	if n == 0 {
		// should not happen: every valid rune matches some class
		n = 1
	}
	return n
}
