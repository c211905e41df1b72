package driver

import (
	"context"
	"errors"
	"fmt"

	"ranoc/internal/ast"
	"ranoc/internal/codegen"
	"ranoc/internal/diag"
	"ranoc/internal/ir"
	"ranoc/internal/project"
	"ranoc/internal/source"
	"ranoc/internal/trace"
)

// CompileResult is the outcome of compiling one file. A file with errors
// still has a result; Bag says what went wrong.
type CompileResult struct {
	Path    string
	FileSet *source.FileSet
	// File is nil when the file could not be loaded.
	File *source.File
	// Builder is nil for results served from the cache.
	Builder *ast.Builder
	Module  ast.ModuleID
	// Program holds the IR of every statement that lowered cleanly.
	Program *ir.Program
	Bag     *diag.Bag
	Cached  bool
	// Aborted is set when strict mode stopped codegen early.
	Aborted bool
}

// Failed reports whether the file has error diagnostics.
func (r *CompileResult) Failed() bool {
	return r.Bag.HasErrors()
}

// Compile loads path and runs every phase on it.
func Compile(ctx context.Context, path string, opts Options) (*CompileResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return compileFile(ctx, fs, fileID, &opts)
}

// CompileSource compiles an in-memory text registered under name.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) (*CompileResult, error) {
	fs := source.NewFileSet()
	return compileFile(ctx, fs, fs.AddVirtual(name, src), &opts)
}

func compileFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts *Options) (*CompileResult, error) {
	file := fs.Get(id)
	if file == nil {
		return nil, fmt.Errorf("compile: unknown file id %d", id)
	}
	fileSpan := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, file.Path, trace.ParentID(ctx))
	defer fileSpan.End("")
	ctx = trace.WithParent(ctx, fileSpan)

	res := &CompileResult{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Module:  ast.NoModuleID,
		Program: ir.NewProgram(file.Path),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	key := cacheKey(project.Digest(file.Hash), opts)
	if opts.Cache != nil {
		if loadCached(ctx, opts, key, res) {
			return res, nil
		}
	}

	ph := startPhase(ctx, opts, file.Path, PhaseLex)
	toks := lex(file, res.Bag)
	ph.end(fmt.Sprintf("%d tokens", len(toks)), false)

	ph = startPhase(ctx, opts, file.Path, PhaseParse)
	res.Builder = newBuilder(toks)
	mod, err := parseTokens(file, toks, res.Builder, res.Bag)
	if err != nil {
		ph.end(err.Error(), true)
		return nil, err
	}
	res.Module = mod
	ph.end("", !mod.IsValid())

	if mod.IsValid() {
		if err := generate(ctx, opts, res); err != nil {
			return nil, err
		}
	}

	if opts.Cache != nil {
		storeCached(ctx, opts, key, res)
	}
	return res, nil
}

func generate(ctx context.Context, opts *Options, res *CompileResult) error {
	ph := startPhase(ctx, opts, res.Path, PhaseCodegen)
	cg := codegen.NewContext(res.Builder, codegen.Options{
		Strict: opts.Strict,
		// лимит применяет res.Bag, иначе отброшенные не посчитать
		MaxDiagnostics: 0,
		File:           res.File.ID,
		Tracer:         trace.FromContext(ctx),
		TraceParent:    ph.span.ID(),
	})
	cg.Program.Source = res.Path

	err := codegen.WalkModule(cg, res.Module)
	for _, d := range cg.Diagnostics() {
		res.Bag.Add(d)
	}
	res.Program = cg.Program
	switch {
	case err == nil:
	case errors.Is(err, codegen.ErrUnimplemented):
		res.Aborted = true
	default:
		ph.end(err.Error(), true)
		return fmt.Errorf("codegen %s: %w", res.Path, err)
	}
	ph.end(fmt.Sprintf("%d instrs", res.Program.Len()), cg.HasErrors())
	return nil
}

func loadCached(ctx context.Context, opts *Options, key project.Digest, res *CompileResult) bool {
	ph := startPhase(ctx, opts, res.Path, PhaseCache)
	var payload DiskPayload
	hit, err := opts.Cache.Get(key, &payload)
	if err != nil || !hit {
		// испорченная запись: просто перекомпилируем
		ph.end("miss", false)
		return false
	}
	prog, err := ir.Unmarshal(payload.Program)
	if err != nil {
		ph.end("corrupt", false)
		return false
	}
	prog.Source = res.Path
	res.Program = prog
	for _, d := range payload.Diagnostics {
		d.File = res.File.ID
		res.Bag.Add(d)
	}
	res.Bag.AddDropped(payload.Dropped)
	res.Aborted = payload.Aborted
	res.Cached = true
	ph.end("hit "+key.Short(), res.Bag.HasErrors())
	return true
}

// storeCached never fails the compilation: a broken cache only costs time.
func storeCached(ctx context.Context, opts *Options, key project.Digest, res *CompileResult) {
	data, err := res.Program.Marshal()
	if err == nil {
		err = opts.Cache.Put(key, &DiskPayload{
			Path:        res.Path,
			ContentHash: project.Digest(res.File.Hash),
			Program:     data,
			Diagnostics: res.Bag.Items(),
			Dropped:     res.Bag.Dropped(),
			Aborted:     res.Aborted,
		})
	}
	if err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopePass, PhaseCache, "store failed: "+err.Error(), trace.ParentID(ctx))
	}
}
