package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectExpression Code = 2003
	SynUnclosedParen    Code = 2004
	SynTrailingInput    Code = 2005
	SynUnimplemented    Code = 2099

	// Кодогенерация
	GenInfo             Code = 3000
	GenUndefinedName    Code = 3001
	GenPlaceholderValue Code = 3002
	GenLiteralOverflow  Code = 3003
	GenBadLiteral       Code = 3004
	GenBadEscape        Code = 3005
	GenInternal         Code = 3098
	GenUnimplemented    Code = 3099

	// IO
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	LexInfo:             "Lexical information",
	LexUnknownChar:      "Unrecognized input",
	SynInfo:             "Syntax information",
	SynUnexpectedToken:  "Unexpected token",
	SynExpectSemicolon:  "Expected ';'",
	SynExpectExpression: "Expected expression",
	SynUnclosedParen:    "Unclosed parenthesis",
	SynTrailingInput:    "Unconsumed input after module",
	SynUnimplemented:    "Syntax not yet supported",
	GenInfo:             "Codegen information",
	GenUndefinedName:    "Undefined name",
	GenPlaceholderValue: "Placeholder used as value",
	GenLiteralOverflow:  "Literal out of range",
	GenBadLiteral:       "Malformed literal",
	GenBadEscape:        "Invalid escape sequence",
	GenInternal:         "Internal compiler error",
	GenUnimplemented:    "Feature not yet supported",
	IOLoadFileError:     "Failed to load file",
}

// ID returns the stable identifier of the code, e.g. "SYN2001".
func (c Code) ID() string {
	switch {
	case c >= 1000 && c < 2000:
		return fmt.Sprintf("LEX%04d", uint16(c))
	case c >= 2000 && c < 3000:
		return fmt.Sprintf("SYN%04d", uint16(c))
	case c >= 3000 && c < 4000:
		return fmt.Sprintf("GEN%04d", uint16(c))
	case c >= 4000 && c < 5000:
		return fmt.Sprintf("IO%04d", uint16(c))
	}
	return "E0000"
}

// Title returns a short human description of the code.
func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}

// IsUnimplemented reports whether c marks an implementation-incomplete fault
// rather than a problem in user code.
func (c Code) IsUnimplemented() bool {
	return c == SynUnimplemented || c == GenUnimplemented
}
