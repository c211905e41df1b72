package buildpipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ranoc/internal/driver"
	"ranoc/internal/project"
)

// Artifact extensions per emit format.
const (
	ExtIR      = ".rir"
	ExtMsgpack = ".rirb"
)

// BuildRequest configures output generation for a compilation.
type BuildRequest struct {
	CompileRequest
	// Emit is one of project.EmitNone, EmitIR, EmitMsgpack.
	Emit string
	// OutputRoot receives artifacts; defaults to "build" under BaseDir.
	OutputRoot string
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	*CompileResult
	// Outputs lists written artifacts in file order.
	Outputs []string
}

// Build compiles the target and, unless Emit is none, writes one artifact
// per file that compiled without errors.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	emit := req.Emit
	if emit == "" {
		emit = project.EmitNone
	}
	ext, err := artifactExt(emit)
	if err != nil {
		return result, err
	}

	compiled, err := Compile(ctx, &req.CompileRequest)
	result.CompileResult = compiled
	if err != nil || emit == project.EmitNone {
		return result, err
	}

	outRoot := req.OutputRoot
	if outRoot == "" {
		outRoot = filepath.Join(req.BaseDir, "build")
	}
	start := time.Now()
	for i, res := range compiled.Files {
		if res == nil || res.Failed() {
			continue
		}
		name := compiled.Names[i]
		emitFile(req.Progress, name, StageEmit, StatusWorking, nil, 0)
		out := filepath.Join(outRoot, filepath.FromSlash(artifactName(name, ext)))
		if err := writeArtifact(out, res, emit); err != nil {
			emitFile(req.Progress, name, StageEmit, StatusError, err, 0)
			return result, fmt.Errorf("emit %s: %w", name, err)
		}
		emitFile(req.Progress, name, StageEmit, StatusDone, nil, 0)
		result.Outputs = append(result.Outputs, out)
	}
	compiled.Timings.Set(StageEmit, time.Since(start))
	return result, nil
}

func artifactExt(emit string) (string, error) {
	switch emit {
	case project.EmitNone:
		return "", nil
	case project.EmitIR:
		return ExtIR, nil
	case project.EmitMsgpack:
		return ExtMsgpack, nil
	}
	return "", fmt.Errorf("unknown emit format %q", emit)
}

// artifactName keeps the directory layout; ../ prefixes are flattened so
// artifacts never leave the output root.
func artifactName(display, ext string) string {
	name := strings.TrimSuffix(display, driver.SourceExt)
	name = strings.TrimLeft(strings.ReplaceAll(name, "../", ""), "/")
	return name + ext
}

func writeArtifact(path string, res *driver.CompileResult, emit string) error {
	var data []byte
	if emit == project.EmitMsgpack {
		var err error
		if data, err = res.Program.Marshal(); err != nil {
			return err
		}
	} else {
		data = []byte(res.Program.String())
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644) // #nosec G306 -- build output
}
