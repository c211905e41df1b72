package parser

import (
	"ranoc/internal/source"
	"ranoc/internal/token"
)

// Input is an immutable position in a token slice. Rules return a new
// Input on success; backtracking is just keeping the old one.
type Input struct {
	toks []token.Token
	pos  int
}

func NewInput(toks []token.Token) Input {
	return Input{toks: toks}
}

// Peek returns the current token; ok is false at the end of input.
func (in Input) Peek() (token.Token, bool) {
	if in.pos >= len(in.toks) {
		return token.Token{}, false
	}
	return in.toks[in.pos], true
}

// Advance returns the input one token further, clamped at the end.
func (in Input) Advance() Input {
	if in.pos < len(in.toks) {
		in.pos++
	}
	return in
}

// At returns the input positioned at token index pos.
func (in Input) At(pos int) Input {
	in.pos = min(max(pos, 0), len(in.toks))
	return in
}

func (in Input) AtEnd() bool { return in.pos >= len(in.toks) }

// Pos is the index of the current token.
func (in Input) Pos() int { return in.pos }

// Len is the number of tokens left.
func (in Input) Len() int { return len(in.toks) - in.pos }

// Span locates the current token. At the end of input it is a zero-width
// span just past the last token.
func (in Input) Span() source.Span {
	if tok, ok := in.Peek(); ok {
		return tok.Span
	}
	if len(in.toks) == 0 {
		return source.Span{}
	}
	last := in.toks[len(in.toks)-1].Span
	return source.Span{Start: last.End, End: last.End, Line: last.Line, Column: last.Column}
}

// Consumed returns the span of tokens between from and in.
func (in Input) Consumed(from Input) source.Span {
	acc := source.EmptySpan
	for i := from.pos; i < in.pos && i < len(in.toks); i++ {
		acc = acc.Join(in.toks[i].Span)
	}
	return acc
}
