package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sable/internal/diag"
)

// Bump when DiskPayload changes shape; readers drop older entries.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file analysis results keyed by content hash.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is one rendered diagnostic row. Spans do not survive
// caching; line and column are resolved at write time. Program-level
// diagnostics keep line zero.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Line     uint32
	Col      uint32
	Message  string
}

// CachedFunction is the slice of a function the directory report needs.
type CachedFunction struct {
	Name  string
	Class uint8
	Line  uint32
}

// DiskPayload is the cached shape of one file's analysis.
type DiskPayload struct {
	Schema      uint16
	Path        string
	ContentHash [32]byte
	Diagnostics []CachedDiagnostic
	Functions   []CachedFunction
	GlobalCount int
}

// HasErrors reports whether any cached diagnostic is an error.
func (p *DiskPayload) HasErrors() bool {
	for i := range p.Diagnostics {
		if diag.Severity(p.Diagnostics[i].Severity) >= diag.SevError {
			return true
		}
	}
	return false
}

// OpenDiskCache initializes the cache at the standard XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	// A "files" subdirectory keeps manual cleanup easy.
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a payload under key, replacing atomically.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	// The rename below consumes the temp file; remove only cleans up
	// after a failed encode.
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get deserializes the payload stored under key. A miss, a schema
// mismatch, and an unreadable entry all come back as (false, nil).
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		// Corrupt entries behave like misses; the writer will replace them.
		return false, nil
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// payloadFromResult flattens a finished analysis into its cacheable
// shape. Timing diagnostics are skipped: a cached run has no timings.
func payloadFromResult(res *AnalyzeResult) *DiskPayload {
	if res == nil || res.File == nil {
		return nil
	}
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        res.File.Path,
		ContentHash: res.File.Hash,
	}
	if res.Bag != nil {
		items := res.Bag.Items()
		payload.Diagnostics = make([]CachedDiagnostic, 0, len(items))
		for i := range items {
			d := &items[i]
			if d.Code == diag.ObsTimings {
				continue
			}
			row := CachedDiagnostic{
				Severity: uint8(d.Severity),
				Code:     uint16(d.Code),
				Message:  d.Message,
			}
			// Program-level diagnostics carry an empty span at offset
			// zero and stay at line zero in the cache too.
			if !d.Primary.Empty() || d.Primary.Start != 0 {
				start, _ := res.FileSet.Resolve(d.Primary)
				row.Line = start.Line
				row.Col = start.Col
			}
			payload.Diagnostics = append(payload.Diagnostics, row)
		}
	}
	if res.Program != nil {
		payload.GlobalCount = len(res.Program.Globals)
		payload.Functions = make([]CachedFunction, 0, len(res.Program.Functions))
		for _, fn := range res.Program.Functions {
			payload.Functions = append(payload.Functions, CachedFunction{
				Name:  res.Program.Name(fn.Name),
				Class: uint8(fn.Class),
				Line:  fn.Line,
			})
		}
	}
	return payload
}
