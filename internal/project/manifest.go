// Package project locates and reads sable.toml, the optional project
// manifest. A manifest pins the project root for relative paths and may
// tune the analyzer (entry-function name, diagnostic budget, source
// directories).
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the walk-up discovery looks for.
const ManifestName = "sable.toml"

// Config mirrors the manifest's TOML shape.
type Config struct {
	Package PackageConfig `toml:"package"`
	Analyze AnalyzeConfig `toml:"analyze"`
}

// PackageConfig is the required [package] section.
type PackageConfig struct {
	Name string `toml:"name"`
}

// AnalyzeConfig is the optional [analyze] section. Zero values mean
// "use the built-in default".
type AnalyzeConfig struct {
	// Entry overrides the entry-function name the analyzer requires.
	Entry string `toml:"entry"`
	// MaxErrors caps accumulated diagnostics per run; 0 keeps the
	// default budget.
	MaxErrors int `toml:"max_errors"`
	// Include lists directories (relative to the project root) that
	// hold sources. Empty means the root itself.
	Include []string `toml:"include"`
}

// Manifest couples a parsed config with where it came from.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Load reads and validates one manifest file. [package].name is the
// only required field; everything under [analyze] is optional.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if meta.IsDefined("analyze", "max_errors") && cfg.Analyze.MaxErrors < 0 {
		return nil, fmt.Errorf("%s: [analyze].max_errors must not be negative", path)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// SourceDirs resolves the configured include list against the project
// root, defaulting to the root itself.
func (m *Manifest) SourceDirs() []string {
	if len(m.Config.Analyze.Include) == 0 {
		return []string{m.Root}
	}
	dirs := make([]string, len(m.Config.Analyze.Include))
	for i, inc := range m.Config.Analyze.Include {
		dirs[i] = filepath.Join(m.Root, filepath.FromSlash(inc))
	}
	return dirs
}
