// Package buildpipeline orchestrates a build: it runs the driver over a
// file or a directory, turns phase events into per-file progress and
// writes the artifacts.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"ranoc/internal/driver"
	"ranoc/internal/source"
)

// CompileRequest configures the shared compilation pipeline.
type CompileRequest struct {
	// TargetPath is a .rano file or a directory with them.
	TargetPath string
	// BaseDir makes progress and artifact paths relative.
	BaseDir  string
	Options  driver.Options
	Jobs     int
	Progress ProgressSink
}

// CompileResult captures per-file results and stage timings.
type CompileResult struct {
	FileSet *source.FileSet
	Files   []*driver.CompileResult
	// Names are the display names of Files, index for index.
	Names   []string
	Timings *Timings
}

// HasErrors reports whether any file failed.
func (r *CompileResult) HasErrors() bool {
	for _, f := range r.Files {
		if f != nil && f.Failed() {
			return true
		}
	}
	return false
}

// ErrNoSources is returned for a directory without .rano files.
var ErrNoSources = errors.New("no " + driver.SourceExt + " files found")

// Compile runs the driver for the target.
func Compile(ctx context.Context, req *CompileRequest) (*CompileResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return nil, fmt.Errorf("missing compile request")
	}
	if req.TargetPath == "" {
		return nil, fmt.Errorf("missing target path")
	}
	info, err := os.Stat(req.TargetPath)
	if err != nil {
		return nil, err
	}

	files := []string{req.TargetPath}
	if info.IsDir() {
		if files, err = driver.ListSources(req.TargetPath); err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%s: %w", req.TargetPath, ErrNoSources)
		}
	}
	names, byKey := progressNames(files, req.BaseDir)
	result := &CompileResult{Names: names, Timings: &Timings{}}

	emitQueued(req.Progress, names)
	obs := &phaseObserver{sink: req.Progress, names: byKey, timings: result.Timings, next: req.Options.Observer}
	opts := req.Options
	opts.Observer = obs.OnPhase

	if info.IsDir() {
		result.FileSet, result.Files, err = driver.CompileDir(ctx, req.TargetPath, opts, req.Jobs)
	} else {
		var res *driver.CompileResult
		res, err = driver.Compile(ctx, req.TargetPath, opts)
		if res != nil {
			result.FileSet = res.FileSet
			result.Files = []*driver.CompileResult{res}
		}
	}
	if err != nil {
		emitStage(req.Progress, names, StageCodegen, StatusError, err, 0)
		return result, err
	}

	for i, res := range result.Files {
		if res == nil {
			continue
		}
		status := StatusDone
		if res.Failed() {
			status = StatusError
		}
		emitFile(req.Progress, names[i], StageCodegen, status, nil, 0)
	}
	return result, nil
}

// phaseObserver turns driver phase events into progress events.
type phaseObserver struct {
	sink    ProgressSink
	names   map[string]string
	timings *Timings
	next    driver.PhaseObserver
}

// OnPhase is called concurrently by CompileDir workers.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	if p.next != nil {
		p.next(ev)
	}
	stage := stageOf(ev.Name)
	if ev.Status != driver.PhaseStart {
		p.timings.Add(stage, ev.Elapsed)
	}
	name, ok := p.names[ev.File]
	if !ok {
		name = ev.File
	}
	switch ev.Status {
	case driver.PhaseStart:
		emitFile(p.sink, name, stage, StatusWorking, nil, 0)
	case driver.PhaseFailed:
		if stage == StageLoad {
			emitFile(p.sink, name, stage, StatusError, nil, ev.Elapsed)
		}
	}
}

func stageOf(phase string) Stage {
	switch phase {
	case driver.PhaseLoad:
		return StageLoad
	case driver.PhaseCache:
		return StageCache
	case driver.PhaseLex:
		return StageLex
	case driver.PhaseParse:
		return StageParse
	default:
		return StageCodegen
	}
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageLex, Status: StatusQueued})
	}
}

func emitFile(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

func emitStage(sink ProgressSink, files []string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	}
}
