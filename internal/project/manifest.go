package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

// Emit formats accepted by [build].emit.
const (
	EmitNone    = "none"
	EmitIR      = "ir"
	EmitMsgpack = "msgpack"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing in rano.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or empty.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// Manifest is a loaded rano.toml.
type Manifest struct {
	Path    string
	Root    string
	Package PackageConfig
	Build   BuildConfig
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig holds [build]; unset keys keep the defaults of DefaultBuild.
type BuildConfig struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Strict         bool   `toml:"strict"`
	Emit           string `toml:"emit"`
	Cache          bool   `toml:"cache"`
	Jobs           int    `toml:"jobs"`
	// Sources is the directory with .rano files, relative to the root.
	Sources string `toml:"sources"`
}

type manifestFile struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

// DefaultBuild is what a manifest without [build] means.
func DefaultBuild() BuildConfig {
	return BuildConfig{
		MaxDiagnostics: 100,
		Emit:           EmitNone,
		Sources:        ".",
	}
}

// LoadManifest parses rano.toml at path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	cfg.Build = DefaultBuild()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if !meta.IsDefined("package", "name") || name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if !IsValidPackageName(name) {
		return nil, fmt.Errorf("%s: invalid [package].name %q", path, name)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	build := cfg.Build
	switch build.Emit {
	case EmitNone, EmitIR, EmitMsgpack:
	default:
		return nil, fmt.Errorf("%s: [build].emit must be %q, %q or %q, got %q", path, EmitNone, EmitIR, EmitMsgpack, build.Emit)
	}
	if build.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [build].max_diagnostics must not be negative", path)
	}
	if build.Jobs < 0 {
		return nil, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	if filepath.IsAbs(build.Sources) {
		return nil, fmt.Errorf("%s: invalid [build].sources %q: must be relative", path, build.Sources)
	}
	return &Manifest{
		Path:    path,
		Root:    filepath.Dir(path),
		Package: PackageConfig{Name: name},
		Build:   build,
	}, nil
}

// Load finds rano.toml above startDir and parses it.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// SourceDir resolves [build].sources against the project root.
func (m *Manifest) SourceDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Build.Sources))
}

// IsValidPackageName accepts ASCII identifiers plus '-'.
func IsValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
