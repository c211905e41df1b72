package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// newTestRoot builds a fresh command tree so flag state does not leak
// between tests.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "ranoc", SilenceUsage: true, SilenceErrors: true}
	addPersistentFlags(root)

	tok := &cobra.Command{Use: "tokenize", Args: cobra.ExactArgs(1), RunE: runTokenize}
	tok.Flags().String("format", "pretty", "")
	parse := &cobra.Command{Use: "parse", Args: cobra.ExactArgs(1), RunE: runParse}
	parse.Flags().String("format", "pretty", "")
	build := &cobra.Command{Use: "build", Args: cobra.MaximumNArgs(1), RunE: runBuild}
	addBuildFlags(build)
	ver := &cobra.Command{Use: "version", RunE: runVersion}
	ver.Flags().String("format", "pretty", "")
	ver.Flags().Bool("hash", false, "")
	ver.Flags().Bool("date", false, "")
	ver.Flags().Bool("full", false, "")

	root.AddCommand(tok, parse, build, ver)
	return root
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newTestRoot()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--color=off"}, args...))
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeFiles(t *testing.T, files map[string]string) string {
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

func TestTokenizeCommand(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rano": "let x = 1;"})
	out, _, err := execute(t, "tokenize", filepath.Join(dir, "a.rano"))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 tokens, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "KwLet") || !strings.Contains(lines[1], "Ident") {
		t.Fatalf("unexpected token dump:\n%s", out)
	}
}

func TestTokenizeCommandJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rano": "_ foo"})
	out, _, err := execute(t, "tokenize", "--format", "json", filepath.Join(dir, "a.rano"))
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var toks []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(toks) != 2 || toks[0].Kind != "Placeholder" || toks[1].Text != "foo" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestParseCommandSyntaxError(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.rano": "let = ;"})
	_, stderr, err := execute(t, "parse", filepath.Join(dir, "bad.rano"))
	if err == nil {
		t.Fatal("expected an error for invalid syntax")
	}
	if !strings.Contains(stderr, "SYN") {
		t.Fatalf("expected a syntax diagnostic, got:\n%s", stderr)
	}
}

func TestParseCommandJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rano": "let x = 1;"})
	out, _, err := execute(t, "parse", "--format", "json", filepath.Join(dir, "a.rano"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var tree struct {
		Type     string `json:"type"`
		Children []struct {
			Kind string `json:"kind"`
			Text string `json:"text"`
		} `json:"children"`
	}
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if tree.Type != "Module" || len(tree.Children) != 1 || tree.Children[0].Text != "x" {
		t.Fatalf("unexpected tree: %+v", tree)
	}
}

func TestBuildCommandEmitsIR(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.rano":     "let x = 1;",
		"lib/util.rano": "let y = (1, 2);",
	})
	out, stderr, err := execute(t, "build", "--ui", "off", "--emit", "ir", dir)
	if err != nil {
		t.Fatalf("build: %v\n%s", err, stderr)
	}
	for _, name := range []string{"main.rir", filepath.Join("lib", "util.rir")} {
		path := filepath.Join(dir, "build", name)
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
		if !strings.Contains(out, path) {
			t.Fatalf("output does not mention %s:\n%s", path, out)
		}
	}
}

func TestBuildCommandReportsErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.rano": "let x = y;"})
	_, stderr, err := execute(t, "build", "--ui", "off", dir)
	if err == nil || err.Error() != "build failed" {
		t.Fatalf("expected build failure, got %v", err)
	}
	if !strings.Contains(stderr, "GEN3001") || !strings.Contains(stderr, "1 error") {
		t.Fatalf("unexpected diagnostics:\n%s", stderr)
	}
}

func TestBuildCommandJSONDiagnostics(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.rano": "let x = y;"})
	out, _, err := execute(t, "build", "--format", "json", dir)
	if err == nil {
		t.Fatal("expected build failure")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
}

func TestBuildCommandUsesManifest(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"rano.toml":     "[package]\nname = \"demo\"\n\n[build]\nemit = \"ir\"\nsources = \"src\"\n",
		"src/main.rano": "let x = 1;",
	})
	t.Chdir(dir)
	_, stderr, err := execute(t, "build", "--ui", "off", "--quiet")
	if err != nil {
		t.Fatalf("build: %v\n%s", err, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "build", "src", "main.rir")); err != nil {
		t.Fatalf("missing artifact: %v", err)
	}
}

func TestBuildCommandFlagOverridesManifest(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"rano.toml": "[package]\nname = \"demo\"\n\n[build]\nemit = \"ir\"\n",
		"main.rano": "let x = 1;",
	})
	_, stderr, err := execute(t, "build", "--ui", "off", "--emit", "none", dir)
	if err != nil {
		t.Fatalf("build: %v\n%s", err, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "build")); !os.IsNotExist(err) {
		t.Fatalf("expected no artifacts, stat err = %v", err)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if payload.Tool != "ranoc" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestParseProgressUI(t *testing.T) {
	tests := []struct {
		in      string
		want    progressUI
		wantErr bool
	}{
		{"", progressAuto, false},
		{"AUTO", progressAuto, false},
		{" on ", progressAlways, false},
		{"off", progressNever, false},
		{"sometimes", progressAuto, true},
	}
	for _, tt := range tests {
		got, err := parseProgressUI(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseProgressUI(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestProgressUIEnabled(t *testing.T) {
	tests := []struct {
		p    progressUI
		tty  bool
		want bool
	}{
		{progressAuto, true, true},
		{progressAuto, false, false},
		{progressAlways, false, true},
		{progressNever, true, false},
	}
	for _, tt := range tests {
		if got := tt.p.enabled(tt.tty); got != tt.want {
			t.Errorf("%v.enabled(%v) = %v, want %v", tt.p, tt.tty, got, tt.want)
		}
	}
}

func TestBuildCommandWritesProfiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.rano": "let x = 1;"})
	cpu := filepath.Join(t.TempDir(), "cpu.pprof")
	mem := filepath.Join(t.TempDir(), "mem.pprof")
	_, stderr, err := execute(t, "--cpu-profile", cpu, "--mem-profile", mem, "build", "--ui", "off", dir)
	if err != nil {
		t.Fatalf("build: %v\n%s", err, stderr)
	}
	for _, path := range []string{cpu, mem} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing profile %s: %v", filepath.Base(path), err)
		}
	}
}

func TestBuildCommandTimings(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.rano": "let x = 1;"})
	_, stderr, err := execute(t, "--timings", "build", "--ui", "off", dir)
	if err != nil {
		t.Fatalf("build: %v\n%s", err, stderr)
	}
	for _, stage := range []string{"lex", "parse", "codegen"} {
		if !strings.Contains(stderr, stage) {
			t.Errorf("timings output lacks %q:\n%s", stage, stderr)
		}
	}
}
