package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/symbols"
	"sable/internal/types"
)

func summaryProgram() *symbols.Program {
	prog := symbols.NewProgram(nil)

	counter := &symbols.Variable{Name: prog.Strings.Intern("counter"), Type: types.Int, Global: true, Line: 1}
	counter.SetValue("0")
	prog.AddGlobal(counter)

	greeting := &symbols.Variable{Name: prog.Strings.Intern("greeting"), Type: types.String, Global: true, Line: 2}
	greeting.SetValue("hi")
	prog.AddGlobal(greeting)

	add := symbols.NewFunction(prog.Strings.Intern("add"), types.Int, 3, source.Span{})
	add.AddParam(&symbols.Variable{Name: prog.Strings.Intern("a"), Type: types.Int, Line: 3})
	add.AddParam(&symbols.Variable{Name: prog.Strings.Intern("b"), Type: types.Int, Line: 3})
	add.AddLocal(&symbols.Variable{Name: prog.Strings.Intern("sum"), Type: types.Int, Line: 4})
	add.AddControl(symbols.ControlStructure{Kind: symbols.CtrlIf, StartLine: 5, EndLine: 7, Condition: "sum > 0"})
	add.AddControl(symbols.ControlStructure{Kind: symbols.CtrlWhile, StartLine: 6, EndLine: 7, Depth: 1, Condition: "sum < 10"})
	prog.AddFunction(add)

	mainFn := symbols.NewFunction(prog.Strings.Intern("main"), types.Void, 9, source.Span{})
	mainFn.Class = symbols.ClassEntry
	prog.AddFunction(mainFn)

	return prog
}

func TestSummaryText(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("int counter = 0;\nstring greeting = \"hi\";\nint add(int a, int b) {\n")
	fileID := fs.AddVirtual("test.sbl", content)

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaUndeclaredVariable,
		Message:  "use of undeclared variable 'ghost'",
		Primary:  source.Span{File: fileID, Start: 17, End: 22},
	})

	var buf bytes.Buffer
	Summary(&buf, summaryProgram(), bag, fs)
	output := buf.String()

	expected := []string{
		"globals (2):",
		"  counter int = 0 (line 1)",
		"  greeting string = \"hi\" (line 2)",
		"functions (2):",
		"  add(int a, int b) int [normal] (line 3)",
		"    locals (1):",
		"      sum int (line 4)",
		"    controls (2):",
		"      if lines 5-7: sum > 0",
		"        while lines 6-7: sum < 10",
		"  main() void [entry] (line 9)",
		"diagnostics (1):",
		"  semantic line 2: use of undeclared variable 'ghost'",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("missing %q in summary:\n%s", want, output)
		}
	}
}

func TestSummaryProgramLevelDiagnosticKeepsLineZero(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sbl", []byte("int helper() { return 0; }\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaMissingEntry,
		Message:  "no entry function",
		Primary:  source.Span{File: fileID},
	})

	var buf bytes.Buffer
	Summary(&buf, nil, bag, fs)

	if !strings.Contains(buf.String(), "  semantic line 0: no entry function") {
		t.Fatalf("expected the line 0 row, got:\n%s", buf.String())
	}
}

func TestSummarySkipsTimingRows(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sbl", []byte("int main() { return 0; }\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  "phase timings",
		Primary:  source.Span{File: fileID},
		Notes:    []diag.Note{{Msg: `{"phases":[]}`}},
	})

	s := BuildSummary(nil, bag, fs)
	if len(s.Diagnostics) != 0 {
		t.Fatalf("timing rows must stay out of the summary, got %+v", s.Diagnostics)
	}
}

func TestSummaryJSONShapes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sbl", []byte("int x = 5;\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaMissingEntry,
		Message:  "no entry function",
		Primary:  source.Span{File: fileID},
	})

	var buf bytes.Buffer
	if err := SummaryJSON(&buf, summaryProgram(), bag, fs); err != nil {
		t.Fatalf("SummaryJSON() error: %v", err)
	}

	var s ProgramSummary
	if err := json.Unmarshal(buf.Bytes(), &s); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(s.Globals) != 2 {
		t.Fatalf("expected 2 globals, got %d", len(s.Globals))
	}
	if s.Globals[0].Value == nil || *s.Globals[0].Value != "0" {
		t.Errorf("expected counter value \"0\", got %v", s.Globals[0].Value)
	}
	if !s.Globals[0].Global {
		t.Errorf("globals must be marked global")
	}

	if len(s.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(s.Functions))
	}
	add := s.Functions[0]
	if add.Class != "normal" || len(add.Params) != 2 || len(add.Locals) != 1 {
		t.Errorf("unexpected add shape: %+v", add)
	}
	if add.Params[0].Value != nil {
		t.Errorf("parameters carry no value, got %v", *add.Params[0].Value)
	}
	if len(add.Controls) != 2 || add.Controls[1].Depth != 1 {
		t.Errorf("unexpected controls: %+v", add.Controls)
	}
	if s.Functions[1].Class != "entry" {
		t.Errorf("expected main classified entry, got %s", s.Functions[1].Class)
	}

	if len(s.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(s.Diagnostics))
	}
	d := s.Diagnostics[0]
	if d.Kind != "semantic" || d.Line != 0 {
		t.Errorf("expected semantic line 0, got %s line %d", d.Kind, d.Line)
	}
}

func TestSummaryNilProgramRendersEmptyArrays(t *testing.T) {
	fs := source.NewFileSet()

	var buf bytes.Buffer
	if err := SummaryJSON(&buf, nil, nil, fs); err != nil {
		t.Fatalf("SummaryJSON() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"\"globals\": []", "\"functions\": []", "\"diagnostics\": []"} {
		if !strings.Contains(output, want) {
			t.Errorf("missing %q in:\n%s", want, output)
		}
	}
}
