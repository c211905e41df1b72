package lexer

import (
	"ranoc/internal/token"
)

// matchPunct: жадность, сначала 3-символьные, затем 2, затем 1.
func matchPunct(b []byte) (token.Kind, uint32) {
	for n := min(token.MaxPunctLen, len(b)); n > 0; n-- {
		if k, ok := token.LookupPunct(string(b[:n])); ok {
			return k, uint32(n) // #nosec G115
		}
	}
	return token.Invalid, 0
}
