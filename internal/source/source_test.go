package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualAssignsSequentialIDs(t *testing.T) {
	fs := NewFileSet()

	a := fs.AddVirtual("a.sbl", []byte("int x;"))
	b := fs.AddVirtual("b.sbl", []byte("int y;"))

	if a == b {
		t.Fatalf("expected distinct file IDs, got %d twice", a)
	}
	if got := fs.Get(a).Path; got != "a.sbl" {
		t.Fatalf("expected path a.sbl, got %q", got)
	}
	if fs.Get(a).Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag on virtual file")
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "prog.sbl")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("int x;\r\nint y;\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	f := fs.Get(id)
	if string(f.Content) != "int x;\nint y;\n" {
		t.Fatalf("expected normalized content, got %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.sbl", []byte("one\ntwo\nthree"))

	tests := []struct {
		name string
		span Span
		line uint32
		col  uint32
	}{
		{"start of file", Span{File: id, Start: 0, End: 1}, 1, 1},
		{"newline ends its own line", Span{File: id, Start: 3, End: 4}, 1, 4},
		{"second line", Span{File: id, Start: 4, End: 5}, 2, 1},
		{"inside third line", Span{File: id, Start: 10, End: 11}, 3, 3},
		{"one past end of file", Span{File: id, Start: 13, End: 13}, 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(tt.span)
			if start.Line != tt.line || start.Col != tt.col {
				t.Fatalf("expected %d:%d, got %d:%d", tt.line, tt.col, start.Line, start.Col)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.sbl", []byte("alpha\nbeta\ngamma\n"))
	f := fs.Get(id)

	if got := f.GetLine(2); got != "beta" {
		t.Fatalf("expected line 2 to be beta, got %q", got)
	}
	if got := f.GetLine(0); got != "" {
		t.Fatalf("expected empty string for line 0, got %q", got)
	}
	if got := f.GetLine(99); got != "" {
		t.Fatalf("expected empty string past EOF, got %q", got)
	}
}

func TestSpanCoverAndText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("snippet.sbl", []byte("x < 10"))
	f := fs.Get(id)

	a := Span{File: id, Start: 0, End: 1}
	b := Span{File: id, Start: 4, End: 6}
	merged := a.Cover(b)
	if merged.Start != 0 || merged.End != 6 {
		t.Fatalf("expected cover 0-6, got %d-%d", merged.Start, merged.End)
	}
	if got := merged.Text(f); got != "x < 10" {
		t.Fatalf("expected full snippet text, got %q", got)
	}

	other := Span{File: id + 1, Start: 100, End: 200}
	if got := a.Cover(other); got != a {
		t.Fatalf("cover across files must not widen, got %v", got)
	}
}

func TestInternerReusesIDs(t *testing.T) {
	in := NewInterner()

	first := in.Intern("counter")
	second := in.Intern("counter")
	if first != second {
		t.Fatalf("expected identical IDs for the same string, got %d and %d", first, second)
	}
	if first == NoStringID {
		t.Fatalf("interned string must not map to NoStringID")
	}
	if got := in.MustLookup(first); got != "counter" {
		t.Fatalf("expected counter, got %q", got)
	}
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID must resolve to the empty string")
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.sbl")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(target)
	if got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}
