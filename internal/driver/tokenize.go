package driver

import (
	"ranoc/internal/diag"
	"ranoc/internal/lexer"
	"ranoc/internal/source"
	"ranoc/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and scans it completely.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lex(file, bag),
		Bag:     bag,
	}, nil
}

// lex scans file; unrecognized input is reported into bag.
func lex(file *source.File, bag *diag.Bag) []token.Token {
	reporter := &diag.BagReporter{Bag: bag, File: file.ID}
	return lexer.Tokenize(file.Content, lexer.Options{Reporter: reporter})
}
