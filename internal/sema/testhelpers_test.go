package sema

import (
	"fmt"
	"strings"
	"testing"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/parser"
	"sable/internal/source"
	"sable/internal/symbols"
)

// analysis bundles everything a semantic test asserts against.
type analysis struct {
	fs      *source.FileSet
	program *symbols.Program
	diags   []diag.Diagnostic
}

// analyze runs the full front end plus the semantic pass over input.
// Parse errors fail the test immediately: fixtures stay syntactically
// clean so every diagnostic seen here belongs to this pass.
func analyze(t *testing.T, input string) analysis {
	t.Helper()
	return analyzeWith(t, input, Options{})
}

func analyzeWith(t *testing.T, input string, opts Options) analysis {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sbl", []byte(input))
	file := fs.Get(fileID)

	parseBag := diag.NewBag(100)
	parseReporter := &diag.BagReporter{Bag: parseBag}
	lx := lexer.New(file, lexer.Options{Reporter: parseReporter})
	builder := ast.NewBuilder(ast.Hints{})
	parsed := parser.ParseFile(fs, lx, builder, parser.Options{MaxErrors: 100, Reporter: parseReporter})
	if parseBag.HasErrors() {
		t.Fatalf("fixture does not parse: %s", summarize(parseBag.Items()))
	}

	bag := diag.NewBag(100)
	opts.Reporter = &diag.BagReporter{Bag: bag}
	opts.FileSet = fs
	res, err := Check(builder, parsed.File, opts)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	return analysis{fs: fs, program: res.Program, diags: bag.Items()}
}

func summarize(diags []diag.Diagnostic) string {
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// expectDiags asserts the exact diagnostic count.
func expectDiags(t *testing.T, a analysis, want int) {
	t.Helper()
	if len(a.diags) != want {
		t.Fatalf("expected %d diagnostics, got %d: %s", want, len(a.diags), summarize(a.diags))
	}
}

// findDiag returns the first diagnostic with the given code and a
// message containing substr.
func findDiag(t *testing.T, a analysis, code diag.Code, substr string) diag.Diagnostic {
	t.Helper()
	for _, d := range a.diags {
		if d.Code == code && strings.Contains(d.Message, substr) {
			return d
		}
	}
	t.Fatalf("no [%s] diagnostic containing %q; have: %s", code.ID(), substr, summarize(a.diags))
	return diag.Diagnostic{}
}

func expectNoDiag(t *testing.T, a analysis, code diag.Code) {
	t.Helper()
	for _, d := range a.diags {
		if d.Code == code {
			t.Fatalf("unexpected [%s] diagnostic: %s", code.ID(), d.Message)
		}
	}
}

func diagLine(a analysis, d diag.Diagnostic) uint32 {
	start, _ := a.fs.Resolve(d.Primary)
	return start.Line
}

func findFunction(t *testing.T, a analysis, name string) *symbols.Function {
	t.Helper()
	for _, fn := range a.program.Functions {
		if a.program.Name(fn.Name) == name {
			return fn
		}
	}
	t.Fatalf("function %q not registered; program has %d functions", name, len(a.program.Functions))
	return nil
}

func findGlobal(t *testing.T, a analysis, name string) *symbols.Variable {
	t.Helper()
	for _, v := range a.program.Globals {
		if a.program.Name(v.Name) == name {
			return v
		}
	}
	t.Fatalf("global %q not registered; program has %d globals", name, len(a.program.Globals))
	return nil
}
