package source

import (
	"os"
	"path/filepath"
)

// FileID identifies one file inside a FileSet. IDs are handed out
// sequentially starting at zero.
type FileID uint32

// FileFlags records how a file's content reached the set.
type FileFlags uint8

const (
	// FileVirtual marks content added from memory rather than disk.
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks content that arrived with a UTF-8 BOM.
	FileHadBOM
	// FileNormalizedCRLF marks content whose CRLF pairs were rewritten.
	FileNormalizedCRLF
)

// File is one registered source file plus the derived data the rest of
// the pipeline leans on: a line index for position lookups and a
// content hash for caching.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// GetLine returns the 1-based line without its trailing newline. Lines
// outside the file come back empty.
func (f *File) GetLine(lineNum uint32) string {
	n := int(lineNum)
	if n == 0 || n > len(f.LineIdx)+1 {
		return ""
	}

	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if n-1 < len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start >= len(f.Content) {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for display. Modes: "absolute",
// "relative" (against baseDir), "basename", and "auto", which keeps
// short or relative paths and shortens long absolute ones.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return BaseName(f.Path)
		}
	}
	return f.Path
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
