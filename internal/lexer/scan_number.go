package lexer

import (
	"ranoc/internal/token"
)

// matchNumber handles a digit-leading token. It evaluates every numeric
// pattern and keeps the longest:
//
//	integral  [0-9]+ | 0b[01]+ | 0o[0-7]+ | 0x[0-9a-fA-F]+
//	decimal   [0-9]+\.[0-9]+
//	exponent  [0-9]+(\.[0-9]+)?[eE][+-][0-9]+
//
// Underscores and type suffixes are not part of any pattern.
func matchNumber(b []byte) (token.Kind, uint32) {
	digits := runLen(b, isDec)
	kind, best := token.IntLit, digits

	if digits == 1 && b[0] == '0' && len(b) > 2 {
		var pred func(byte) bool
		switch b[1] {
		case 'b':
			pred = isBin
		case 'o':
			pred = isOct
		case 'x':
			pred = isHex
		}
		if pred != nil {
			if n := runLen(b[2:], pred); n > 0 && n+2 > best {
				best = n + 2
			}
		}
	}

	mant := digits
	if int(digits) < len(b) && b[digits] == '.' {
		if frac := runLen(b[digits+1:], isDec); frac > 0 {
			mant = digits + 1 + frac
			if mant > best {
				kind, best = token.DecimalLit, mant
			}
		}
	}

	if n := exponentLen(b[mant:]); n > 0 && mant+n > best {
		kind, best = token.ExponentLit, mant+n
	}
	return kind, best
}

// exponentLen matches [eE][+-][0-9]+.
func exponentLen(b []byte) uint32 {
	if len(b) < 3 || (b[0] != 'e' && b[0] != 'E') || (b[1] != '+' && b[1] != '-') {
		return 0
	}
	n := runLen(b[2:], isDec)
	if n == 0 {
		return 0
	}
	return n + 2
}
