package types

import "testing"

func TestResolveCaseInsensitive(t *testing.T) {
	tests := []struct {
		name string
		want Primitive
	}{
		{"int", Int},
		{"INT", Int},
		{"Int", Int},
		{"float", Float},
		{"FLOAT", Float},
		{"double", Double},
		{"Double", Double},
		{"string", String},
		{"STRING", String},
		{"void", Void},
		{"VoID", Void},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.name)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	for _, name := range []string{"bool", "char", "in", "integer", ""} {
		if _, err := Resolve(name); err == nil {
			t.Errorf("Resolve(%q) should fail", name)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	if !Int.IsNumeric() || !Float.IsNumeric() || !Double.IsNumeric() {
		t.Error("int, float, double are numeric")
	}
	if String.IsNumeric() || Void.IsNumeric() || Invalid.IsNumeric() {
		t.Error("string, void, invalid are not numeric")
	}
}

func TestStringNames(t *testing.T) {
	if Int.String() != "int" || Void.String() != "void" {
		t.Error("String() should return lowercase canonical names")
	}
	if Primitive(99).String() != "Primitive(99)" {
		t.Errorf("out-of-range String() = %q", Primitive(99).String())
	}
}
