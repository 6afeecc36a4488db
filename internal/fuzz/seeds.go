package fuzztests

import "testing"

const maxFuzzInput = 64 << 10

// corpusSeeds spans the language surface: globals with and without
// initializers, every control form, calls, and the inputs error
// recovery is most often wrong about.
var corpusSeeds = []string{
	"",
	"void main() {}\n",
	"int x = 0;\n",
	"float ratio = 1.5;\ndouble wide = 2.25;\nstring name = \"sable\";\n",
	`int counter = 0;

int add(int a, int b) {
    int sum = a + b;
    return sum;
}

void main() {
    counter = add(counter, 1);
}
`,
	`int fib(int n) {
    if (n < 2) {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}

void main() {
    int f = fib(10);
}
`,
	`void main() {
    int i = 0;
    while (i < 10) {
        for (int j = 0; j < i; j = j + 1) {
            i = i + j;
        }
        i = i + 1;
    }
}
`,
	// Inputs that once tripped error recovery.
	"int x = ;\n",
	"int f( {\n",
	"void main() { int a = 1\nint b = 2; }\n",
	"void main() { { { { } } }\n",
	"string s = \"unterminated\n",
	"/* unterminated block comment\n",
	"int 9lives = 0;\n",
	"void main() { for (int i = 0 i < 10 i = i + 1) {} }\n",
	"@#$%^&\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range corpusSeeds {
		f.Add(clampInput([]byte(seed)))
	}
}

// clampInput bounds one input and detaches it from the caller's
// backing array.
func clampInput(src []byte) []byte {
	if len(src) > maxFuzzInput {
		src = src[:maxFuzzInput]
	}
	return append([]byte(nil), src...)
}
