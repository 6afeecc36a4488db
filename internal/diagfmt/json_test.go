package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sable/internal/diag"
	"sable/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("int x = 5;\nint y = ghost;\n")
	fileID := fs.AddVirtual("test.sbl", content)

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaUndeclaredVariable,
		Message:  "use of undeclared variable 'ghost'",
		Primary:  source.Span{File: fileID, Start: 19, End: 24},
	})

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if output.Count != 1 {
		t.Errorf("expected count 1, got %d", output.Count)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" {
		t.Errorf("expected severity ERROR, got %s", d.Severity)
	}
	if d.Code != "SEM3003" {
		t.Errorf("expected code SEM3003, got %s", d.Code)
	}
	if d.Location.File != "test.sbl" {
		t.Errorf("expected file test.sbl, got %s", d.Location.File)
	}
	if d.Location.StartByte != 19 || d.Location.EndByte != 24 {
		t.Errorf("expected bytes 19-24, got %d-%d", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 9 {
		t.Errorf("expected position 2:9, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sbl", []byte("int x = 5;\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaDuplicateVariable,
		Message:  "duplicate variable 'x'",
		Primary:  source.Span{File: fileID, Start: 4, End: 5},
	})

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "start_line") {
		t.Errorf("positions must be omitted without IncludePositions, got:\n%s", output)
	}
	if !strings.Contains(output, "\"start_byte\": 4") {
		t.Errorf("byte offsets must survive, got:\n%s", output)
	}
}

func TestJSONMaxLimitsOutputNotBag(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sbl", []byte("int a = 1;\n"))

	bag := diag.NewBag(10)
	for i := 0; i < 5; i++ {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SemaDuplicateVariable,
			Message:  "duplicate",
			Primary:  source.Span{File: fileID, Start: 4, End: 5},
		})
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 3, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if output.Count != 3 || len(output.Diagnostics) != 3 {
		t.Errorf("expected 3 rendered diagnostics, got count=%d len=%d", output.Count, len(output.Diagnostics))
	}
	if bag.Len() != 5 {
		t.Errorf("the bag must stay whole, got %d", bag.Len())
	}
}

func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.sbl", []byte("int x = 5;\n"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaDuplicateVariable,
		Message:  "duplicate variable 'x'",
		Primary:  source.Span{File: fileID, Start: 4, End: 5},
	})

	tests := []struct {
		name     string
		mode     PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/test.sbl"},
		{"Relative", PathModeRelative, "src/test.sbl"},
		{"Basename", PathModeBasename, "test.sbl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := JSON(&buf, bag, fs, JSONOpts{PathMode: tt.mode}); err != nil {
				t.Fatalf("JSON() error: %v", err)
			}

			var output DiagnosticsOutput
			if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if got := output.Diagnostics[0].Location.File; got != tt.expected {
				t.Errorf("expected file %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestJSONNotesGatedByOption(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sbl", []byte("int x = 5;\nint x = 3;\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaDuplicateVariable,
		Message:  "duplicate variable 'x'",
		Primary:  source.Span{File: fileID, Start: 15, End: 16},
		Notes: []diag.Note{
			{Span: source.Span{File: fileID, Start: 4, End: 5}, Msg: "previous declaration here"},
		},
	})

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(output.Diagnostics[0].Notes) != 0 {
		t.Errorf("notes must be omitted without IncludeNotes")
	}

	buf.Reset()
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	notes := output.Diagnostics[0].Notes
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Message != "previous declaration here" {
		t.Errorf("unexpected note message %q", notes[0].Message)
	}
}

func TestJSONTimingsKeepTheirNote(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sbl", []byte("int main() { return 0; }\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  "phase timings",
		Primary:  source.Span{File: fileID},
		Notes: []diag.Note{
			{Msg: `{"phases":[{"name":"tokenize","duration_us":12}]}`},
		},
	})

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(output.Diagnostics[0].Notes) != 1 {
		t.Errorf("timing diagnostics must carry their payload note even without IncludeNotes")
	}
}

func TestJSONProgramLevelOmitsPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sbl", []byte("int helper() { return 0; }\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaMissingEntry,
		Message:  "no entry function",
		Primary:  source.Span{File: fileID},
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaDuplicateFunction,
		Message:  "duplicate function 'helper'",
		Primary:  source.Span{File: fileID, Start: 4, End: 10},
	})

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got := output.Diagnostics[0].Location.StartLine; got != 0 {
		t.Errorf("program-level diagnostics must not resolve positions, got line %d", got)
	}
	if got := output.Diagnostics[1].Location.StartLine; got != 1 {
		t.Errorf("expected the located diagnostic on line 1, got %d", got)
	}
}
