package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"

	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/symbols"
)

// VariableSummary is one declared variable in the program summary.
// Value is nil when the declaration had no stored literal.
type VariableSummary struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Global bool    `json:"global"`
	Line   uint32  `json:"line"`
	Value  *string `json:"value,omitempty"`
}

// ControlSummary is one recorded control structure.
type ControlSummary struct {
	Kind      string `json:"kind"`
	StartLine uint32 `json:"start_line"`
	EndLine   uint32 `json:"end_line"`
	Depth     uint32 `json:"depth"`
	Condition string `json:"condition,omitempty"`
}

// FunctionSummary is one declared function with its scope contents.
type FunctionSummary struct {
	Name     string            `json:"name"`
	Return   string            `json:"return"`
	Line     uint32            `json:"line"`
	Class    string            `json:"class"`
	Params   []VariableSummary `json:"params,omitempty"`
	Locals   []VariableSummary `json:"locals,omitempty"`
	Controls []ControlSummary  `json:"controls,omitempty"`
}

// DiagnosticSummary is one diagnostic reduced to kind, line, and
// message. Program-level diagnostics keep line 0.
type DiagnosticSummary struct {
	Kind    string `json:"kind"`
	Line    uint32 `json:"line"`
	Message string `json:"message"`
}

// ProgramSummary is the analyzer's whole output in one document:
// globals, functions, and diagnostics, each in source order.
type ProgramSummary struct {
	Globals     []VariableSummary   `json:"globals"`
	Functions   []FunctionSummary   `json:"functions"`
	Diagnostics []DiagnosticSummary `json:"diagnostics"`
}

// BuildSummary shapes the summary document from the analyzed program
// and its diagnostics. prog may be nil when analysis stopped before
// the check stage. Timing rows stay out; they describe the run, not
// the program.
func BuildSummary(prog *symbols.Program, bag *diag.Bag, fs *source.FileSet) ProgramSummary {
	s := ProgramSummary{
		Globals:     []VariableSummary{},
		Functions:   []FunctionSummary{},
		Diagnostics: []DiagnosticSummary{},
	}

	if prog != nil {
		for _, g := range prog.Globals {
			s.Globals = append(s.Globals, variableSummary(prog, g))
		}
		for _, fn := range prog.Functions {
			s.Functions = append(s.Functions, functionSummary(prog, fn))
		}
	}

	if bag != nil {
		for _, d := range bag.Items() {
			if d.Code == diag.ObsTimings {
				continue
			}
			line := uint32(0)
			if !programLevel(d.Primary) {
				start, _ := fs.Resolve(d.Primary)
				line = start.Line
			}
			s.Diagnostics = append(s.Diagnostics, DiagnosticSummary{
				Kind:    d.Code.Kind(),
				Line:    line,
				Message: d.Message,
			})
		}
	}

	return s
}

func variableSummary(prog *symbols.Program, v *symbols.Variable) VariableSummary {
	s := VariableSummary{
		Name:   prog.Name(v.Name),
		Type:   v.Type.String(),
		Global: v.Global,
		Line:   v.Line,
	}
	if v.HasValue {
		value := v.Value
		s.Value = &value
	}
	return s
}

func functionSummary(prog *symbols.Program, fn *symbols.Function) FunctionSummary {
	s := FunctionSummary{
		Name:   prog.Name(fn.Name),
		Return: fn.Return.String(),
		Line:   fn.Line,
		Class:  fn.Class.String(),
	}
	for _, p := range fn.Params {
		s.Params = append(s.Params, variableSummary(prog, p))
	}
	for _, l := range fn.Locals {
		s.Locals = append(s.Locals, variableSummary(prog, l))
	}
	for _, cs := range fn.Controls {
		s.Controls = append(s.Controls, ControlSummary{
			Kind:      cs.Kind.String(),
			StartLine: cs.StartLine,
			EndLine:   cs.EndLine,
			Depth:     cs.Depth,
			Condition: cs.Condition,
		})
	}
	return s
}

// Summary writes the aggregate as indented text: globals, then
// functions with their parameters, locals, and control structures
// (indented by nesting depth), then diagnostics.
func Summary(w io.Writer, prog *symbols.Program, bag *diag.Bag, fs *source.FileSet) {
	s := BuildSummary(prog, bag, fs)

	fmt.Fprintf(w, "globals (%d):\n", len(s.Globals))
	for _, g := range s.Globals {
		fmt.Fprintf(w, "  %s\n", formatVariable(g))
	}

	fmt.Fprintf(w, "functions (%d):\n", len(s.Functions))
	for _, fn := range s.Functions {
		fmt.Fprintf(w, "  %s [%s] (line %d)\n", formatSignature(fn), fn.Class, fn.Line)
		if len(fn.Locals) > 0 {
			fmt.Fprintf(w, "    locals (%d):\n", len(fn.Locals))
			for _, l := range fn.Locals {
				fmt.Fprintf(w, "      %s\n", formatVariable(l))
			}
		}
		if len(fn.Controls) > 0 {
			fmt.Fprintf(w, "    controls (%d):\n", len(fn.Controls))
			for _, c := range fn.Controls {
				writeControl(w, c)
			}
		}
	}

	fmt.Fprintf(w, "diagnostics (%d):\n", len(s.Diagnostics))
	for _, d := range s.Diagnostics {
		fmt.Fprintf(w, "  %s line %d: %s\n", d.Kind, d.Line, d.Message)
	}
}

// SummaryJSON writes the aggregate as an indented JSON document.
func SummaryJSON(w io.Writer, prog *symbols.Program, bag *diag.Bag, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildSummary(prog, bag, fs))
}

func formatVariable(v VariableSummary) string {
	var b strings.Builder
	b.WriteString(v.Name)
	b.WriteByte(' ')
	b.WriteString(v.Type)
	if v.Value != nil {
		if v.Type == "string" {
			fmt.Fprintf(&b, " = %q", *v.Value)
		} else {
			b.WriteString(" = ")
			b.WriteString(*v.Value)
		}
	}
	fmt.Fprintf(&b, " (line %d)", v.Line)
	return b.String()
}

func formatSignature(fn FunctionSummary) string {
	var b strings.Builder
	b.WriteString(fn.Name)
	b.WriteByte('(')
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type)
		b.WriteByte(' ')
		b.WriteString(p.Name)
	}
	b.WriteByte(')')
	b.WriteByte(' ')
	b.WriteString(fn.Return)
	return b.String()
}

func writeControl(w io.Writer, c ControlSummary) {
	depth, err := safecast.Conv[int](c.Depth)
	if err != nil {
		depth = 0
	}
	fmt.Fprintf(w, "      %s%s lines %d-%d", strings.Repeat("  ", depth), c.Kind, c.StartLine, c.EndLine)
	if c.Condition != "" {
		fmt.Fprintf(w, ": %s", c.Condition)
	}
	fmt.Fprintln(w)
}
