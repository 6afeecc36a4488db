package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every file seen during one run and resolves spans back
// to line/column positions. Reloading a path points the path index at
// the newest version while earlier IDs stay valid.
type FileSet struct {
	files   []File
	byPath  map[string]FileID
	baseDir string
}

// NewFileSet returns an empty set with no base directory.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase returns an empty set whose relative paths render
// against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		byPath:  make(map[string]FileID),
		baseDir: baseDir,
	}
}

// SetBaseDir overrides the directory relative paths render against.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the render base, defaulting to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir != "" {
		return fileSet.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Load reads path from disk, strips a UTF-8 BOM, normalizes CRLF line
// endings, and registers the result.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(raw)
	content, hadCRLF := normalizeCRLF(content)

	var flags FileFlags
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.add(path, content, flags), nil
}

// AddVirtual registers in-memory content under name. Tests and stdin
// feeds go through here.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.add(name, content, FileVirtual)
}

// add hashes and indexes content under a fresh ID.
func (fileSet *FileSet) add(path string, content []byte, flags FileFlags) FileID {
	count, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}

	id := FileID(count)
	normalized := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.byPath[normalized] = id
	return id
}

// Get returns the file registered under id.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Resolve maps a span's byte offsets to start and end positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}
