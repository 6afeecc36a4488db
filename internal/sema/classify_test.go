package sema

import (
	"testing"

	"sable/internal/diag"
	"sable/internal/symbols"
)

func TestEntryClassificationIsCaseInsensitive(t *testing.T) {
	a := analyze(t, `int MAIN() { return 0; }
`)

	expectDiags(t, a, 0)
	if fn := findFunction(t, a, "MAIN"); fn.Class != symbols.ClassEntry {
		t.Fatalf("expected entry, got %s", fn.Class)
	}
}

func TestEntryKeywordDeclaration(t *testing.T) {
	a := analyze(t, `int main() { return 0; }
`)

	expectDiags(t, a, 0)
	if fn := findFunction(t, a, "main"); fn.Class != symbols.ClassEntry {
		t.Fatalf("expected entry, got %s", fn.Class)
	}
}

func TestPlainFunctionIsNormal(t *testing.T) {
	a := analyze(t, `int helper(int n) { return n + 1; }
int main() { return helper(1); }
`)

	if fn := findFunction(t, a, "helper"); fn.Class != symbols.ClassNormal {
		t.Fatalf("expected normal, got %s", fn.Class)
	}
}

func TestSelfCallMakesRecursive(t *testing.T) {
	// The self-call happens before the function is registered, so the
	// walk reports it as undefined; classification still sees it.
	a := analyze(t, `int countdown(int n) {
    if (n > 0) {
        countdown(n - 1);
    }
    return n;
}
int main() {
    countdown(3);
    return 0;
}
`)

	expectDiags(t, a, 1)
	findDiag(t, a, diag.SemaUndefinedFunction, "call to undefined function 'countdown'")

	if fn := findFunction(t, a, "countdown"); fn.Class != symbols.ClassRecursive {
		t.Fatalf("expected recursive, got %s", fn.Class)
	}
}

func TestSelfCallInsideReturnExpression(t *testing.T) {
	a := analyze(t, `int fib(int n) {
    if (n < 2) {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}
int main() { return fib(9); }
`)

	if len(a.diags) != 2 {
		t.Fatalf("expected one diagnostic per self-call site, got %s", summarize(a.diags))
	}
	if fn := findFunction(t, a, "fib"); fn.Class != symbols.ClassRecursive {
		t.Fatalf("expected recursive, got %s", fn.Class)
	}
}

func TestEntryNameBeatsSelfCall(t *testing.T) {
	a := analyze(t, `int main() {
    main();
    return 0;
}
`)

	if fn := findFunction(t, a, "main"); fn.Class != symbols.ClassEntry {
		t.Fatalf("the entry tag wins over self-calls, got %s", fn.Class)
	}
}

func TestSelfCallMatchIsExact(t *testing.T) {
	// Identifier resolution is case-sensitive, so calling another
	// casing is a plain undefined call, not recursion.
	a := analyze(t, `int Work() {
    work();
    return 0;
}
int main() { return 0; }
`)

	findDiag(t, a, diag.SemaUndefinedFunction, "call to undefined function 'work'")
	if fn := findFunction(t, a, "Work"); fn.Class != symbols.ClassNormal {
		t.Fatalf("expected normal, got %s", fn.Class)
	}
}

func TestMutualCallsAreNotRecursive(t *testing.T) {
	a := analyze(t, `int ping(int n) { return pong(n); }
int pong(int n) { return ping(n); }
int main() { return ping(1); }
`)

	// ping's body walks before pong exists; pong sees ping just fine.
	findDiag(t, a, diag.SemaUndefinedFunction, "call to undefined function 'pong'")
	if fn := findFunction(t, a, "ping"); fn.Class != symbols.ClassNormal {
		t.Fatalf("ping is not self-recursive, got %s", fn.Class)
	}
	if fn := findFunction(t, a, "pong"); fn.Class != symbols.ClassNormal {
		t.Fatalf("pong is not self-recursive, got %s", fn.Class)
	}
}

func TestSelfCallInLoopHeader(t *testing.T) {
	a := analyze(t, `int spin(int n) {
    for (n = spin(n); n > 0; n = n - 1) {
        return n;
    }
    return 0;
}
int main() { return spin(2); }
`)

	if fn := findFunction(t, a, "spin"); fn.Class != symbols.ClassRecursive {
		t.Fatalf("expected recursive via the loop header, got %s", fn.Class)
	}
}
