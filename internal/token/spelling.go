package token

// spellings holds the fixed source text of punctuation and keywords.
var spellings = func() map[Kind]string {
	m := make(map[Kind]string, len(punct)+len(keywords))
	for s, k := range punct {
		m[k] = s
	}
	for s, k := range keywords {
		if k != BoolLit {
			m[k] = s
		}
	}
	return m
}()

var classNames = map[Kind]string{
	Invalid:     "unrecognized input",
	Ident:       "identifier",
	CharLit:     "char literal",
	StringLit:   "string literal",
	IntLit:      "integer literal",
	DecimalLit:  "decimal literal",
	ExponentLit: "exponent literal",
	BoolLit:     "boolean literal",
}

// Describe returns a human readable form of k for diagnostics:
// the quoted spelling for fixed tokens, a class name otherwise.
func (k Kind) Describe() string {
	if s, ok := spellings[k]; ok {
		return "`" + s + "`"
	}
	if s, ok := classNames[k]; ok {
		return s
	}
	return k.String()
}
