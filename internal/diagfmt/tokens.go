package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"ranoc/internal/source"
	"ranoc/internal/token"
)

// SpanJSON is a span as the scanner produced it: byte range, 0-based line
// and the offset-distance column.
type SpanJSON struct {
	Start  uint32 `json:"start"`
	End    uint32 `json:"end"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
	Len    uint32 `json:"len"`
}

func spanJSON(sp source.Span) SpanJSON {
	return SpanJSON{Start: sp.Start, End: sp.End, Line: sp.Line, Column: sp.Column, Len: sp.Len}
}

type TokenOutput struct {
	Kind string   `json:"kind"`
	Text string   `json:"text"`
	Span SpanJSON `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, file source.FileID) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(file, tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-12s %-16q at %d:%d-%d:%d\n",
			i+1, tok.Kind, tok.Text,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: spanJSON(tok.Span),
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
