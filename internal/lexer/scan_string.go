package lexer

import "bytes"

// matchChar matches '(\\'|[^']*[^\\])' at the start of b and returns the
// length of the longest match, or 0. The body may span line breaks; those
// are not counted as lines since they sit inside a token.
func matchChar(b []byte) uint32 {
	var best int

	// '\''
	if len(b) >= 4 && b[1] == '\\' && b[2] == '\'' && b[3] == '\'' {
		best = 4
	}

	// [^']* runs up to the first quote after the opening one
	j := bytes.IndexByte(b[1:], '\'')
	if j >= 0 {
		j++
		// last char of the run is the [^\\] part
		if j >= 2 && b[j-1] != '\\' {
			best = max(best, j+1)
		}
		// the quote itself is the [^\\] part and another quote closes
		if j+1 < len(b) && b[j+1] == '\'' {
			best = max(best, j+2)
		}
	}
	return uint32(best) // #nosec G115 -- bounded by input length
}

// matchString matches ""|"(\\"|[^"])*[^\\]" at the start of b, longest
// match wins. The repetition is simulated as an NFA over a 3-byte window:
// body states are inside the (…)* loop, closing states have consumed the
// final [^\\] and expect '"'.
func matchString(b []byte) uint32 {
	best := 0
	if len(b) >= 2 && b[1] == '"' {
		best = 2
	}

	const w = 3
	var body, closing [w]bool
	body[1%w] = true
	for p := 1; p < len(b); p++ {
		slot := p % w
		inBody, inClose := body[slot], closing[slot]
		body[slot], closing[slot] = false, false

		ch := b[p]
		if inClose && ch == '"' {
			best = max(best, p+1)
		}
		if inBody {
			if ch == '\\' && p+1 < len(b) && b[p+1] == '"' {
				body[(p+2)%w] = true
			}
			if ch != '"' {
				body[(p+1)%w] = true
			}
			if ch != '\\' {
				closing[(p+1)%w] = true
			}
		}
		if !anySet(body) && !anySet(closing) {
			break
		}
	}
	return uint32(best) // #nosec G115
}

func anySet(states [3]bool) bool {
	return states[0] || states[1] || states[2]
}
