package diagfmt

import (
	"fmt"
	"io"

	"sable/internal/ast"
	"sable/internal/source"
)

func writeItemPretty(w io.Writer, b *ast.Builder, id ast.ItemID, fs *source.FileSet, prefix string) {
	item := b.Items.Get(id)
	if item == nil {
		fmt.Fprintln(w, "<nil>")
		return
	}
	span := formatSpan(item.Span, fs)

	switch item.Kind {
	case ast.ItemGlobal:
		if g, ok := b.Items.Global(id); ok {
			fmt.Fprintf(w, "Global %s %s (span: %s)\n", b.Name(g.Type.Name), b.Name(g.Name), span)
			if g.Init.IsValid() {
				marker, childPrefix := treeBranch(prefix, true)
				fmt.Fprintf(w, "%s Init: ", marker)
				writeExprPretty(w, b, g.Init, fs, childPrefix)
			}
			return
		}

	case ast.ItemFn:
		if fn, ok := b.Items.Fn(id); ok {
			fmt.Fprintf(w, "Fn %s returns %s (span: %s)\n", b.Name(fn.Name), b.Name(fn.ReturnType.Name), span)
			if fn.EntryWord {
				marker, _ := treeBranch(prefix, false)
				fmt.Fprintf(w, "%s EntryWord: true\n", marker)
			}
			for i, p := range b.Items.FnParams(fn) {
				marker, _ := treeBranch(prefix, false)
				fmt.Fprintf(w, "%s Param[%d]: %s %s (span: %s)\n",
					marker, i, b.Name(p.Type.Name), b.Name(p.Name), formatSpan(p.Span, fs))
			}
			marker, childPrefix := treeBranch(prefix, true)
			if fn.Body.IsValid() {
				fmt.Fprintf(w, "%s Body: ", marker)
				writeStmtPretty(w, b, fn.Body, fs, childPrefix)
			} else {
				fmt.Fprintf(w, "%s Body: <none>\n", marker)
			}
			return
		}

	case ast.ItemStmt:
		if stmtID, ok := b.Items.Stmt(id); ok {
			fmt.Fprintf(w, "TopLevelStmt (span: %s)\n", span)
			marker, childPrefix := treeBranch(prefix, true)
			fmt.Fprintf(w, "%s Stmt: ", marker)
			writeStmtPretty(w, b, stmtID, fs, childPrefix)
			return
		}
	}

	fmt.Fprintf(w, "%s (span: %s)\n", item.Kind, span)
}

func itemJSON(b *ast.Builder, id ast.ItemID) ASTNodeOutput {
	item := b.Items.Get(id)
	if item == nil {
		return ASTNodeOutput{Type: "Item", Kind: "missing"}
	}
	node := ASTNodeOutput{Type: "Item", Kind: item.Kind.String(), Span: item.Span}

	switch item.Kind {
	case ast.ItemGlobal:
		if g, ok := b.Items.Global(id); ok {
			node.Text = b.Name(g.Name)
			node.Fields = map[string]any{"type": b.Name(g.Type.Name)}
			if g.Init.IsValid() {
				init := exprJSON(b, g.Init)
				init.Fields = withRole(init.Fields, "init")
				node.Children = append(node.Children, init)
			}
		}

	case ast.ItemFn:
		if fn, ok := b.Items.Fn(id); ok {
			node.Text = b.Name(fn.Name)
			fields := map[string]any{"return": b.Name(fn.ReturnType.Name)}
			if fn.EntryWord {
				fields["entry_word"] = true
			}
			if params := b.Items.FnParams(fn); len(params) > 0 {
				list := make([]map[string]any, 0, len(params))
				for _, p := range params {
					list = append(list, map[string]any{
						"name": b.Name(p.Name),
						"type": b.Name(p.Type.Name),
					})
				}
				fields["params"] = list
			}
			node.Fields = fields
			if fn.Body.IsValid() {
				body := stmtJSON(b, fn.Body)
				body.Fields = withRole(body.Fields, "body")
				node.Children = append(node.Children, body)
			}
		}

	case ast.ItemStmt:
		if stmtID, ok := b.Items.Stmt(id); ok {
			node.Children = append(node.Children, stmtJSON(b, stmtID))
		}
	}

	return node
}
