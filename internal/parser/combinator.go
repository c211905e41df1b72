package parser

import (
	"ranoc/internal/diag"
	"ranoc/internal/token"
)

// Rule parses a prefix of in. On success it returns the remaining input and
// the value. A *Error of kind ErrMismatch means "no match" and leaves the
// caller free to backtrack; any other error is fatal.
type Rule[T any] func(in Input) (Input, T, error)

// Both is the result of Pair.
type Both[A, B any] struct {
	First  A
	Second B
}

// Tag matches exactly one token of the given kind.
func Tag(kind token.Kind) Rule[token.Token] {
	code := tagCode(kind)
	want := kind.Describe()
	return func(in Input) (Input, token.Token, error) {
		tok, ok := in.Peek()
		if !ok || tok.Kind != kind {
			return in, token.Token{}, mismatch(in, code, want)
		}
		return in.Advance(), tok, nil
	}
}

// OneOf matches one token whose kind is any of kinds.
func OneOf(kinds ...token.Kind) Rule[token.Token] {
	want := make([]string, len(kinds))
	for i, k := range kinds {
		want[i] = k.Describe()
	}
	return func(in Input) (Input, token.Token, error) {
		tok, ok := in.Peek()
		if ok {
			for _, k := range kinds {
				if tok.Kind == k {
					return in.Advance(), tok, nil
				}
			}
		}
		return in, token.Token{}, mismatch(in, diag.SynUnexpectedToken, want...)
	}
}

func tagCode(kind token.Kind) diag.Code {
	switch kind {
	case token.Semicolon:
		return diag.SynExpectSemicolon
	case token.RParen:
		return diag.SynUnclosedParen
	default:
		return diag.SynUnexpectedToken
	}
}

// Map transforms the value of a successful match.
func Map[A, B any](r Rule[A], f func(A) B) Rule[B] {
	return func(in Input) (Input, B, error) {
		rest, a, err := r(in)
		if err != nil {
			var zero B
			return in, zero, err
		}
		return rest, f(a), nil
	}
}

// Alt tries rules left to right and commits to the first success. When all
// of them mismatch, the error that got furthest is returned.
func Alt[T any](rules ...Rule[T]) Rule[T] {
	return func(in Input) (Input, T, error) {
		var best *Error
		for _, r := range rules {
			rest, v, err := r(in)
			if err == nil {
				return rest, v, nil
			}
			if !recoverable(err) {
				var zero T
				return in, zero, err
			}
			pe, _ := asError(err)
			best = furthest(best, pe)
		}
		var zero T
		if best == nil {
			best = mismatch(in, diag.SynUnexpectedToken)
		}
		return in, zero, best
	}
}

// Seq runs rules in order and collects their values.
func Seq[T any](rules ...Rule[T]) Rule[[]T] {
	return func(in Input) (Input, []T, error) {
		out := make([]T, 0, len(rules))
		cur := in
		for _, r := range rules {
			rest, v, err := r(cur)
			if err != nil {
				return in, nil, err
			}
			out = append(out, v)
			cur = rest
		}
		return cur, out, nil
	}
}

// Pair runs a then b.
func Pair[A, B any](a Rule[A], b Rule[B]) Rule[Both[A, B]] {
	return func(in Input) (Input, Both[A, B], error) {
		var out Both[A, B]
		rest, va, err := a(in)
		if err != nil {
			return in, out, err
		}
		rest, vb, err := b(rest)
		if err != nil {
			return in, out, err
		}
		out.First, out.Second = va, vb
		return rest, out, nil
	}
}

// Preceded runs first then r and keeps r's value.
func Preceded[A, T any](first Rule[A], r Rule[T]) Rule[T] {
	return Map(Pair(first, r), func(p Both[A, T]) T { return p.Second })
}

// Terminated runs r then last and keeps r's value.
func Terminated[T, B any](r Rule[T], last Rule[B]) Rule[T] {
	return Map(Pair(r, last), func(p Both[T, B]) T { return p.First })
}

// Delimited runs open, r, close and keeps r's value.
func Delimited[A, T, B any](open Rule[A], r Rule[T], close Rule[B]) Rule[T] {
	return Preceded(open, Terminated(r, close))
}

// Many0 applies r until it mismatches. The result may be empty. A match
// that consumes nothing ends the loop.
func Many0[T any](r Rule[T]) Rule[[]T] {
	return func(in Input) (Input, []T, error) {
		var out []T
		cur := in
		for !cur.AtEnd() {
			rest, v, err := r(cur)
			if err != nil {
				if recoverable(err) {
					break
				}
				return in, nil, err
			}
			if rest.Pos() == cur.Pos() {
				break
			}
			out = append(out, v)
			cur = rest
		}
		return cur, out, nil
	}
}

// Opt returns nil instead of failing when r mismatches.
func Opt[T any](r Rule[T]) Rule[*T] {
	return func(in Input) (Input, *T, error) {
		rest, v, err := r(in)
		if err != nil {
			if recoverable(err) {
				return in, nil, nil
			}
			return in, nil, err
		}
		return rest, &v, nil
	}
}

// SeparatedList1 matches elem (sep elem)*. A trailing separator is left
// unconsumed.
func SeparatedList1[S, T any](sep Rule[S], elem Rule[T]) Rule[[]T] {
	return Map(Pair(elem, Many0(Preceded(sep, elem))), func(p Both[T, []T]) []T {
		return append([]T{p.First}, p.Second...)
	})
}

// AllConsuming fails with ErrTrailing unless r consumes every token.
func AllConsuming[T any](r Rule[T]) Rule[T] {
	return func(in Input) (Input, T, error) {
		rest, v, err := r(in)
		if err != nil {
			return in, v, err
		}
		if !rest.AtEnd() {
			var zero T
			return in, zero, &Error{
				Kind:  ErrTrailing,
				Code:  diag.SynTrailingInput,
				Pos:   rest.Pos(),
				Span:  rest.Span(),
				Found: describeAt(rest),
			}
		}
		return rest, v, nil
	}
}

// Label replaces the expectations of a mismatch that did not get past
// the starting token with a single description.
func Label[T any](r Rule[T], what string, code diag.Code) Rule[T] {
	return func(in Input) (Input, T, error) {
		rest, v, err := r(in)
		if err != nil && recoverable(err) {
			if pe, _ := asError(err); pe.Pos == in.Pos() {
				return in, v, mismatch(in, code, what)
			}
		}
		return rest, v, err
	}
}

// Lazy defers building a rule, which allows recursive grammars.
func Lazy[T any](build func() Rule[T]) Rule[T] {
	var r Rule[T]
	return func(in Input) (Input, T, error) {
		if r == nil {
			r = build()
		}
		return r(in)
	}
}

// Unimplemented turns a match of trigger into an ErrUnimplemented cut.
// A mismatch of trigger stays a mismatch.
func Unimplemented[A, T any](trigger Rule[A], feature string) Rule[T] {
	return func(in Input) (Input, T, error) {
		var zero T
		if _, _, err := trigger(in); err != nil {
			return in, zero, err
		}
		return in, zero, &Error{
			Kind:    ErrUnimplemented,
			Code:    diag.SynUnimplemented,
			Pos:     in.Pos(),
			Span:    in.Span(),
			Found:   describeAt(in),
			Feature: feature,
		}
	}
}
