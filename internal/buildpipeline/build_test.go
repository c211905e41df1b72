package buildpipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"ranoc/internal/ir"
	"ranoc/internal/project"
)

type collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *collector) OnEvent(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

// last returns the final status seen for file.
func (c *collector) last(file string) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	var st Status
	for _, ev := range c.events {
		if ev.File == file {
			st = ev.Status
		}
	}
	return st
}

func (c *collector) stages(file string) []Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Stage
	for _, ev := range c.events {
		if ev.File == file && ev.Status == StatusWorking {
			out = append(out, ev.Stage)
		}
	}
	return out
}

func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCompileDirProgress(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"a.rano":     "1 + 2;",
		"lib/b.rano": "missing;",
	})
	sink := &collector{}
	res, err := Compile(context.Background(), &CompileRequest{
		TargetPath: dir,
		BaseDir:    dir,
		Jobs:       2,
		Progress:   sink,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !slices.Equal(res.Names, []string{"a.rano", "lib/b.rano"}) {
		t.Fatalf("names: %v", res.Names)
	}
	if !res.HasErrors() {
		t.Fatal("lib/b.rano has an undefined name")
	}
	if got := sink.last("a.rano"); got != StatusDone {
		t.Errorf("a.rano: want done, got %s", got)
	}
	if got := sink.last("lib/b.rano"); got != StatusError {
		t.Errorf("lib/b.rano: want error, got %s", got)
	}
	want := []Stage{StageLex, StageParse, StageCodegen}
	if got := sink.stages("a.rano"); !slices.Equal(got, want) {
		t.Errorf("stages: want %v, got %v", want, got)
	}
	if !res.Timings.Has(StageLex) || !res.Timings.Has(StageCodegen) {
		t.Error("timings must cover lex and codegen")
	}
}

func TestCompileEmptyDir(t *testing.T) {
	_, err := Compile(context.Background(), &CompileRequest{TargetPath: t.TempDir()})
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("want ErrNoSources, got %v", err)
	}
}

func TestBuildEmitsArtifacts(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"main.rano":    "let x = 1;\nx;",
		"sub/bad.rano": "y;",
	})
	out := filepath.Join(dir, "out")
	res, err := Build(context.Background(), &BuildRequest{
		CompileRequest: CompileRequest{TargetPath: dir, BaseDir: dir},
		Emit:           project.EmitIR,
		OutputRoot:     out,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []string{filepath.Join(out, "main.rir")}
	if !slices.Equal(res.Outputs, want) {
		t.Fatalf("outputs: want %v, got %v", want, res.Outputs)
	}
	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != res.Files[0].Program.String() {
		t.Fatalf("artifact differs from program:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(out, "sub", "bad.rir")); !os.IsNotExist(err) {
		t.Fatal("failed files get no artifact")
	}
}

func TestBuildMsgpack(t *testing.T) {
	dir := setupProject(t, map[string]string{"one.rano": "(1, true);"})
	target := filepath.Join(dir, "one.rano")
	res, err := Build(context.Background(), &BuildRequest{
		CompileRequest: CompileRequest{TargetPath: target, BaseDir: dir},
		Emit:           project.EmitMsgpack,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Outputs) != 1 || filepath.Base(res.Outputs[0]) != "one.rirb" {
		t.Fatalf("outputs: %v", res.Outputs)
	}
	data, err := os.ReadFile(res.Outputs[0])
	if err != nil {
		t.Fatal(err)
	}
	prog, err := ir.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if prog.String() != res.Files[0].Program.String() {
		t.Fatalf("round trip differs:\n%s", prog)
	}
}

func TestBuildUnknownEmit(t *testing.T) {
	_, err := Build(context.Background(), &BuildRequest{
		CompileRequest: CompileRequest{TargetPath: "x.rano"},
		Emit:           "wasm",
	})
	if err == nil {
		t.Fatal("want error for unknown emit format")
	}
}

func TestArtifactName(t *testing.T) {
	tests := map[string]string{
		"a.rano":        "a.rir",
		"lib/b.rano":    "lib/b.rir",
		"../up/c.rano":  "up/c.rir",
		"/abs/d/e.rano": "abs/d/e.rir",
	}
	for in, want := range tests {
		if got := artifactName(in, ExtIR); got != want {
			t.Errorf("%s: want %s, got %s", in, want, got)
		}
	}
}
