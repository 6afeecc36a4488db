package sema

import (
	"strings"
	"testing"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/symbols"
	"sable/internal/types"
)

func TestSingleGlobalWithLiteral(t *testing.T) {
	a := analyze(t, `int x = 5;
`)

	v := findGlobal(t, a, "x")
	if v.Type != types.Int || !v.Global {
		t.Fatalf("expected global int, got type %s global=%v", v.Type, v.Global)
	}
	if !v.HasValue || v.Value != "5" {
		t.Fatalf("expected stored value 5, got %q (set=%v)", v.Value, v.HasValue)
	}
	if v.Line != 1 {
		t.Fatalf("expected declaration line 1, got %d", v.Line)
	}

	// No entry function exists, so that is the only diagnostic.
	expectDiags(t, a, 1)
	findDiag(t, a, diag.SemaMissingEntry, "no entry function")
}

func TestDuplicateGlobalKeepsFirstAndSkipsInitializer(t *testing.T) {
	// The duplicate's initializer would fail to parse as an int; the
	// discard happens before the initializer is looked at, so the only
	// diagnostics are the duplicate itself and the missing entry.
	a := analyze(t, `int x = 5;
int x = zzz;
`)

	expectDiags(t, a, 2)
	d := findDiag(t, a, diag.SemaDuplicateVariable, "duplicate global variable 'x'")
	if got := diagLine(a, d); got != 2 {
		t.Fatalf("expected duplicate reported on line 2, got %d", got)
	}
	expectNoDiag(t, a, diag.SemaInvalidInitializer)

	if len(a.program.Globals) != 1 {
		t.Fatalf("expected 1 global, got %d", len(a.program.Globals))
	}
	if v := findGlobal(t, a, "x"); v.Value != "5" {
		t.Fatalf("first declaration must win, got value %q", v.Value)
	}
}

func TestDuplicateFunctionBodyNotAnalyzed(t *testing.T) {
	// The duplicate body assigns an undeclared name; no diagnostic for
	// it may appear because the whole declaration is dropped.
	a := analyze(t, `int main() { return 0; }
int main() { zzz = 1; return 1; }
`)

	expectDiags(t, a, 1)
	d := findDiag(t, a, diag.SemaDuplicateFunction, "duplicate function 'main'")
	if got := diagLine(a, d); got != 2 {
		t.Fatalf("expected duplicate reported on line 2, got %d", got)
	}

	if len(a.program.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(a.program.Functions))
	}
	if fn := findFunction(t, a, "main"); fn.Class != symbols.ClassEntry {
		t.Fatalf("surviving main must stay the entry, got %s", fn.Class)
	}
}

func TestDuplicateParameter(t *testing.T) {
	// After the discard f's recorded arity is 1, so the call below
	// passes one argument to stay clean.
	a := analyze(t, `int f(int a, int a) { return a; }
int main() { return f(1); }
`)

	expectDiags(t, a, 1)
	findDiag(t, a, diag.SemaDuplicateVariable, "duplicate parameter 'a'")

	fn := findFunction(t, a, "f")
	if fn.Arity() != 1 {
		t.Fatalf("duplicate parameter must be discarded, arity %d", fn.Arity())
	}
}

func TestLocalCollidingWithParameter(t *testing.T) {
	a := analyze(t, `int f(int a) { int a = 1; return a; }
int main() { return f(1); }
`)

	expectDiags(t, a, 1)
	findDiag(t, a, diag.SemaDuplicateVariable, "duplicate local variable 'a'")

	fn := findFunction(t, a, "f")
	if len(fn.Params) != 1 || len(fn.Locals) != 0 {
		t.Fatalf("parameter wins the shared namespace, got %d params %d locals", len(fn.Params), len(fn.Locals))
	}
}

func TestGlobalAndLocalMayShareName(t *testing.T) {
	a := analyze(t, `int x = 1;
int f() { int x = 2; return x; }
int main() { return f(); }
`)

	expectDiags(t, a, 0)
	fn := findFunction(t, a, "f")
	if len(fn.Locals) != 1 {
		t.Fatalf("expected local x alongside global x, got %d locals", len(fn.Locals))
	}
}

func TestFunctionMetadata(t *testing.T) {
	a := analyze(t, `float scale(float v, int k) { return v; }
int main() { return 0; }
`)

	fn := findFunction(t, a, "scale")
	if fn.Return != types.Float {
		t.Fatalf("expected float return, got %s", fn.Return)
	}
	if fn.Line != 1 {
		t.Fatalf("expected declaration line 1, got %d", fn.Line)
	}
	if fn.Arity() != 2 {
		t.Fatalf("expected arity 2, got %d", fn.Arity())
	}
	if got := a.program.Name(fn.Params[1].Name); got != "k" {
		t.Fatalf("parameters must keep source order, got %q second", got)
	}
	if fn.Params[0].Type != types.Float || fn.Params[0].Global {
		t.Fatalf("parameters are local variables, got type %s global=%v",
			fn.Params[0].Type, fn.Params[0].Global)
	}
}

func TestMissingEntryIsProgramLevel(t *testing.T) {
	a := analyze(t, `int helper() { return 0; }
`)

	d := findDiag(t, a, diag.SemaMissingEntry, "no entry function")
	if !d.Primary.Empty() || d.Primary.Start != 0 {
		t.Fatalf("program-level diagnostic must carry the empty span, got %+v", d.Primary)
	}
}

func TestMissingEntryFiresAlongsideOtherDiagnostics(t *testing.T) {
	a := analyze(t, `int x = 5;
int x = 6;
`)

	findDiag(t, a, diag.SemaDuplicateVariable, "duplicate global variable 'x'")
	findDiag(t, a, diag.SemaMissingEntry, "no entry function")
}

func TestEntryNameOverride(t *testing.T) {
	a := analyzeWith(t, `int start() { return 0; }
`, Options{EntryName: "start"})

	expectDiags(t, a, 0)
	if fn := findFunction(t, a, "start"); fn.Class != symbols.ClassEntry {
		t.Fatalf("expected start to be the entry, got %s", fn.Class)
	}

	b := analyzeWith(t, `int main() { return 0; }
`, Options{EntryName: "start"})
	findDiag(t, b, diag.SemaMissingEntry, "no entry function")
	if fn := findFunction(t, b, "main"); fn.Class != symbols.ClassNormal {
		t.Fatalf("main is ordinary under another entry name, got %s", fn.Class)
	}
}

func TestTopLevelStatementsRunAgainstGlobals(t *testing.T) {
	a := analyze(t, `int x = 0;
x = 3;
y = 4;
int main() { return x; }
`)

	expectDiags(t, a, 1)
	d := findDiag(t, a, diag.SemaAssignUndeclared, "assignment to undeclared variable 'y'")
	if got := diagLine(a, d); got != 3 {
		t.Fatalf("expected line 3, got %d", got)
	}
}

func TestVarDeclStatementOutsideFunctionOwnsGlobal(t *testing.T) {
	// A declaration inside a top-level block still lands in the global
	// table: there is no enclosing function to own it.
	a := analyze(t, `{
    int shadowless = 7;
}
int main() { return shadowless; }
`)

	expectDiags(t, a, 0)
	v := findGlobal(t, a, "shadowless")
	if !v.Global || v.Value != "7" {
		t.Fatalf("expected global with value 7, got global=%v value=%q", v.Global, v.Value)
	}
}

func TestUnknownTypeAbortsPass(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("broken.sbl", []byte("banana x;"))

	builder := ast.NewBuilder(ast.Hints{})
	sp := source.Span{File: fileID, Start: 0, End: 9}
	file := builder.NewFile(sp)
	typeRef := ast.TypeRef{Name: builder.Intern("banana"), Span: source.Span{File: fileID, Start: 0, End: 6}}
	nameSpan := source.Span{File: fileID, Start: 7, End: 8}
	item := builder.Items.NewGlobal(typeRef, builder.Intern("x"), nameSpan, ast.NoExprID, sp)
	builder.PushItem(file, item)

	bag := diag.NewBag(10)
	_, err := Check(builder, file, Options{Reporter: &diag.BagReporter{Bag: bag}, FileSet: fs})
	if err == nil {
		t.Fatal("expected an error for an unknown type spelling")
	}
	if !strings.Contains(err.Error(), "unknown type 'banana'") {
		t.Fatalf("expected the spelling in the error, got %v", err)
	}
	if bag.Len() != 0 {
		t.Fatalf("a contract violation is not a diagnostic, got %s", summarize(bag.Items()))
	}
}

func TestCheckRequiresFileSet(t *testing.T) {
	builder := ast.NewBuilder(ast.Hints{})
	file := builder.NewFile(source.Span{})

	if _, err := Check(builder, file, Options{}); err == nil {
		t.Fatal("expected an error when no FileSet is configured")
	}
}
