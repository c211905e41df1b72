package lexer

import (
	"unicode/utf8"
)

// skipTrivia consumes line breaks and horizontal space. Line breaks are
// checked first: each one bumps the line counter and moves lastBreak to its
// end offset. Nothing here produces a token.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		if n := lineBreakLen(lx.cursor.Rest()); n > 0 {
			lx.cursor.Advance(n)
			lx.line++
			lx.lastBreak = lx.cursor.Off
			continue
		}
		if n := spaceLen(lx.cursor.Rest()); n > 0 {
			lx.cursor.Advance(n)
			continue
		}
		return
	}
}

// lineBreakLen returns the byte length of a line break at the start of b:
// "\r\n" or one of \n \v \f \r U+0085 U+2028 U+2029.
func lineBreakLen(b []byte) uint32 {
	if len(b) == 0 {
		return 0
	}
	switch b[0] {
	case '\r':
		if len(b) > 1 && b[1] == '\n' {
			return 2
		}
		return 1
	case '\n', '\v', '\f':
		return 1
	}
	if b[0] < utf8.RuneSelf {
		return 0
	}
	r, sz := utf8.DecodeRune(b)
	if isLineBreakRune(r) {
		return uint32(sz) // #nosec G115 -- sz <= 4
	}
	return 0
}

// spaceLen returns the length of the horizontal-space run at the start of b.
func spaceLen(b []byte) uint32 {
	var n uint32
	for int(n) < len(b) {
		c := b[n]
		if c == ' ' || c == '\t' {
			n++
			continue
		}
		if c < utf8.RuneSelf {
			break
		}
		r, sz := utf8.DecodeRune(b[n:])
		if !isSpaceRune(r) {
			break
		}
		n += uint32(sz) // #nosec G115
	}
	return n
}

func isLineBreakRune(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\r',
		'\u0085', // NEXT LINE
		'\u2028', // LINE SEPARATOR
		'\u2029': // PARAGRAPH SEPARATOR
		return true
	}
	return false
}

func isSpaceRune(r rune) bool {
	switch r {
	case '\t', ' ',
		'\u00AD', // SOFT HYPHEN
		'\u00A0', // NO-BREAK SPACE
		'\u1680', // OGHAM SPACE MARK
		'\u200E', // LEFT-TO-RIGHT MARK
		'\u200F', // RIGHT-TO-LEFT MARK
		'\u202F', // NARROW NO-BREAK SPACE
		'\u205F', // MEDIUM MATHEMATICAL SPACE
		'\u3000', // IDEOGRAPHIC SPACE
		'\uFEFF': // ZERO WIDTH NO-BREAK SPACE
		return true
	}
	// EN QUAD .. ZERO WIDTH SPACE
	return r >= '\u2000' && r <= '\u200B'
}
