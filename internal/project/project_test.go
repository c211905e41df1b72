package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\nname = \"demo\"\n")

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Package.Name != "demo" || m.Root != dir {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if m.Build != DefaultBuild() {
		t.Fatalf("want default build, got %+v", m.Build)
	}
	if m.SourceDir() != dir {
		t.Fatalf("source dir: got %q", m.SourceDir())
	}
}

func TestLoadManifestBuildSection(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo-app"

[build]
max_diagnostics = 5
strict = true
emit = "ir"
cache = true
jobs = 2
sources = "src"
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	want := BuildConfig{MaxDiagnostics: 5, Strict: true, Emit: EmitIR, Cache: true, Jobs: 2, Sources: "src"}
	if m.Build != want {
		t.Fatalf("build: want %+v, got %+v", want, m.Build)
	}
	if m.SourceDir() != filepath.Join(dir, "src") {
		t.Fatalf("source dir: got %q", m.SourceDir())
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		is      error
		substr  string
	}{
		{name: "no package", content: "[build]\nstrict = true\n", is: ErrPackageSectionMissing},
		{name: "no name", content: "[package]\n", is: ErrPackageNameMissing},
		{name: "blank name", content: "[package]\nname = \"  \"\n", is: ErrPackageNameMissing},
		{name: "bad name", content: "[package]\nname = \"1abc\"\n", substr: "invalid [package].name"},
		{name: "bad emit", content: "[package]\nname = \"a\"\n[build]\nemit = \"wasm\"\n", substr: "[build].emit"},
		{name: "negative limit", content: "[package]\nname = \"a\"\n[build]\nmax_diagnostics = -1\n", substr: "max_diagnostics"},
		{name: "unknown key", content: "[package]\nname = \"a\"\nversion = \"1\"\n", substr: "unknown key package.version"},
		{name: "syntax", content: "[package\n", substr: "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			_, err := LoadManifest(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("want %v, got %v", tt.is, err)
			}
			if tt.substr != "" && !strings.Contains(err.Error(), tt.substr) {
				t.Fatalf("error %q does not mention %q", err, tt.substr)
			}
		})
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("root: want %q, got %q", root, m.Root)
	}
	got, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || got != root {
		t.Fatalf("FindProjectRoot: %q %v %v", got, ok, err)
	}
}

func TestDigest(t *testing.T) {
	a := Sum([]byte("1;"))
	b := Sum([]byte("2;"))
	if a == b || a.IsZero() {
		t.Fatal("distinct contents must hash differently")
	}
	if Combine(a, b) == Combine(b, a) {
		t.Fatal("Combine must depend on order")
	}
	if Combine(a) == a {
		t.Fatal("Combine without parts still rehashes")
	}
	if len(a.String()) != 64 || len(a.Short()) != 12 {
		t.Fatalf("unexpected hex lengths: %q", a.String())
	}
}

func TestIsValidPackageName(t *testing.T) {
	for name, want := range map[string]bool{
		"demo": true, "_x": true, "a-b2": true,
		"": false, "9a": false, "-a": false, "ä": false,
	} {
		if got := IsValidPackageName(name); got != want {
			t.Errorf("%q: want %v, got %v", name, want, got)
		}
	}
}
