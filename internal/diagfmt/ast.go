package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"sable/internal/ast"
	"sable/internal/source"
)

// ASTNodeOutput is one node of the JSON AST dump. Children reached
// through a labeled edge record the label under Fields["role"].
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// FormatASTPretty writes the parsed file as an indented tree, one node
// per line with resolved span positions.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not in builder", fileID)
	}

	fmt.Fprintf(w, "File (span: %s)\n", formatSpan(file.Span, fs))
	for i, itemID := range file.Items {
		marker, childPrefix := treeBranch("", i == len(file.Items)-1)
		fmt.Fprintf(w, "%s Item[%d]: ", marker, i)
		writeItemPretty(w, builder, itemID, fs, childPrefix)
	}
	return nil
}

// BuildASTJSON assembles the JSON tree for one parsed file. Directory
// dumps key several of these by display path.
func BuildASTJSON(builder *ast.Builder, fileID ast.FileID) (ASTNodeOutput, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file %d not in builder", fileID)
	}

	var children []ASTNodeOutput
	for _, itemID := range file.Items {
		children = append(children, itemJSON(builder, itemID))
	}

	return ASTNodeOutput{
		Type:     "File",
		Span:     file.Span,
		Children: children,
	}, nil
}

// FormatASTJSON writes the parsed file as an indented JSON tree.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	output, err := BuildASTJSON(builder, fileID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// treeBranch yields the marker for one child line and the prefix its
// own children continue under.
func treeBranch(prefix string, last bool) (marker, childPrefix string) {
	if last {
		return prefix + "└─", prefix + "   "
	}
	return prefix + "├─", prefix + "│  "
}

func withRole(fields map[string]any, role string) map[string]any {
	if fields == nil {
		fields = make(map[string]any, 1)
	}
	fields["role"] = role
	return fields
}
