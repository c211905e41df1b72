package codegen

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"ranoc/internal/ast"
	"ranoc/internal/diag"
	"ranoc/internal/ir"
	"ranoc/internal/source"
)

func walkLiteral(ctx *Context, id ast.ExprID, sp source.Span) error {
	lit, ok := ctx.Builder.Exprs.Literal(id)
	if !ok {
		return internalFault(sp, "literal payload missing")
	}
	raw := ctx.Builder.Strings.MustLookup(lit.Raw)

	var in ir.Instr
	switch lit.Kind {
	case ast.LitInt:
		v, err := parseInt(raw)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return userFault(diag.GenLiteralOverflow, sp, "integer literal `%s` does not fit in 64 bits", raw)
			}
			return userFault(diag.GenBadLiteral, sp, "malformed integer literal `%s`", raw)
		}
		in = ir.Instr{Op: ir.OpPushInt, Int: v}
	case ast.LitDecimal, ast.LitExponent:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return userFault(diag.GenLiteralOverflow, sp, "number `%s` is out of range", raw)
			}
			return userFault(diag.GenBadLiteral, sp, "malformed number `%s`", raw)
		}
		in = ir.Instr{Op: ir.OpPushDec, Float: v}
	case ast.LitBool:
		v := int64(0)
		if raw == "true" {
			v = 1
		}
		in = ir.Instr{Op: ir.OpPushBool, Int: v}
	case ast.LitChar:
		s, err := unescape(raw, sp)
		if err != nil {
			return err
		}
		if utf8.RuneCountInString(s) != 1 {
			return userFault(diag.GenBadLiteral, sp, "char literal %s must contain exactly one character", raw)
		}
		r, _ := utf8.DecodeRuneInString(s)
		in = ir.Instr{Op: ir.OpPushChar, Int: int64(r)}
	case ast.LitString:
		s, err := unescape(raw, sp)
		if err != nil {
			return err
		}
		in = ir.Instr{Op: ir.OpPushStr, Str: s}
	default:
		return internalFault(sp, "unknown literal kind %v", lit.Kind)
	}
	ctx.emit(in, sp)
	return nil
}

// parseInt handles the 0b, 0o and 0x prefixes; anything else is decimal,
// leading zeros included.
func parseInt(raw string) (int64, error) {
	digits, base := intDigits(raw)
	return strconv.ParseInt(digits, base, 64)
}

func intDigits(raw string) (digits string, base int) {
	if len(raw) > 2 && raw[0] == '0' {
		switch raw[1] {
		case 'b':
			return raw[2:], 2
		case 'o':
			return raw[2:], 8
		case 'x':
			return raw[2:], 16
		}
	}
	return raw, 10
}

// minIntOperand reports whether id is the int literal 9223372036854775808,
// which only makes sense under a unary minus.
func minIntOperand(ctx *Context, id ast.ExprID) bool {
	expr := ctx.Builder.Exprs.Get(id)
	if expr == nil || expr.Kind != ast.ExprLiteral {
		return false
	}
	lit, ok := ctx.Builder.Exprs.Literal(id)
	if !ok || lit.Kind != ast.LitInt {
		return false
	}
	digits, base := intDigits(ctx.Builder.Strings.MustLookup(lit.Raw))
	v, err := strconv.ParseUint(digits, base, 64)
	return err == nil && v == 1<<63
}

// unescape strips the surrounding quotes of a char or string literal and
// decodes \n \r \t \0 \\ \' \" and \u{XXXX}.
func unescape(raw string, sp source.Span) (string, error) {
	if len(raw) < 2 {
		return "", internalFault(sp, "literal %q has no quotes", raw)
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		n, r, ok := escapeAt(body[i:])
		if !ok {
			bad := body[i : i+min(n, len(body)-i)]
			// +1 for the opening quote
			at := escapeSpan(sp, i+1, len(bad))
			return "", userFault(diag.GenBadEscape, at, "unknown escape sequence `%s`", bad)
		}
		sb.WriteRune(r)
		i += n
	}
	return sb.String(), nil
}

// escapeAt decodes the escape at the start of s (s[0] == '\\') and returns
// its length. On failure n is the length of the bad sequence if known.
func escapeAt(s string) (n int, r rune, ok bool) {
	if len(s) < 2 {
		return 1, 0, false
	}
	switch s[1] {
	case 'n':
		return 2, '\n', true
	case 'r':
		return 2, '\r', true
	case 't':
		return 2, '\t', true
	case '0':
		return 2, 0, true
	case '\\', '\'', '"':
		return 2, rune(s[1]), true
	case 'u':
		end := strings.IndexByte(s, '}')
		if len(s) < 4 || s[2] != '{' || end < 0 {
			return 2, 0, false
		}
		hex := s[3:end]
		if len(hex) == 0 || len(hex) > 6 {
			return end + 1, 0, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return end + 1, 0, false
		}
		return end + 1, rune(v), true
	default:
		return 2, 0, false
	}
}

func escapeSpan(lit source.Span, off, n int) source.Span {
	start := lit.Start + uint32(off)     // #nosec G115 -- off < literal length
	end := min(start+uint32(n), lit.End) // #nosec G115
	return source.Span{
		Start:  start,
		End:    end,
		Line:   lit.Line,
		Column: lit.Column - (lit.End - end),
		Len:    end - start,
	}
}
