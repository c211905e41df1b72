package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ranoc/internal/ast"
	"ranoc/internal/diag"
	"ranoc/internal/ir"
	"ranoc/internal/source"
	"ranoc/internal/trace"
)

// ListSources возвращает отсортированный список всех *.rano файлов в директории
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CompileDir компилирует все *.rano файлы в директории параллельно.
// Each file gets its own codegen Context; results keep the order of
// ListSources. A file that fails to load yields a result with an
// IOLoadFileError diagnostic instead of aborting the rest.
func CompileDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []*CompileResult, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "compile-dir", trace.ParentID(ctx))
	defer span.End("")
	ctx = trace.WithParent(ctx, span)

	// FileSet заполняется до запуска горутин, дальше только читается
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			continue
		}
		fileIDs[i] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*CompileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if loadErr, failed := loadErrors[i]; failed {
				results[i] = loadFailure(filepath.ToSlash(filepath.Clean(path)), fileSet, loadErr, &opts)
				return nil
			}
			res, err := compileFile(gctx, fileSet, fileIDs[i], &opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func loadFailure(path string, fs *source.FileSet, err error, opts *Options) *CompileResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.EmptySpan, "failed to load file: "+err.Error()))
	if opts.Observer != nil {
		opts.Observer(PhaseEvent{File: path, Name: PhaseLoad, Status: PhaseFailed})
	}
	return &CompileResult{
		Path:    path,
		FileSet: fs,
		Module:  ast.NoModuleID,
		Program: ir.NewProgram(path),
		Bag:     bag,
	}
}
