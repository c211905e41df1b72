package driver

import (
	"errors"
	"fmt"

	"ranoc/internal/ast"
	"ranoc/internal/diag"
	"ranoc/internal/parser"
	"ranoc/internal/source"
	"ranoc/internal/token"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Builder *ast.Builder
	// Module is ast.NoModuleID when parsing failed; the reason is in Bag.
	Module ast.ModuleID
	Bag    *diag.Bag
}

// Parse loads path, scans and parses it. Syntax errors end up in Bag;
// only I/O problems are returned as errors.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	toks := lex(file, bag)
	builder := newBuilder(toks)
	mod, err := parseTokens(file, toks, builder, bag)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tokens:  toks,
		Builder: builder,
		Module:  mod,
		Bag:     bag,
	}, nil
}

func newBuilder(toks []token.Token) *ast.Builder {
	// на глаз: примерно одно выражение на два токена
	n := uint(len(toks))
	return ast.NewBuilder(ast.Hints{Modules: 1, Nodes: n/4 + 1, Stmts: n/4 + 1, Exprs: n/2 + 1}, nil)
}

// parseTokens records a syntax error as a diagnostic and returns
// ast.NoModuleID for it. Errors of any other type are returned.
func parseTokens(file *source.File, toks []token.Token, b *ast.Builder, bag *diag.Bag) (ast.ModuleID, error) {
	mod, err := parser.Parse(toks, b)
	if err == nil {
		return mod, nil
	}
	var pe *parser.Error
	if !errors.As(err, &pe) {
		return ast.NoModuleID, fmt.Errorf("parse %s: %w", file.Path, err)
	}
	bag.Add(pe.Diagnostic(file.ID))
	return ast.NoModuleID, nil
}
