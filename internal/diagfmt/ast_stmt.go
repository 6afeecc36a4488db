package diagfmt

import (
	"fmt"
	"io"

	"sable/internal/ast"
	"sable/internal/source"
)

func writeStmtPretty(w io.Writer, b *ast.Builder, id ast.StmtID, fs *source.FileSet, prefix string) {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		fmt.Fprintln(w, "<nil>")
		return
	}
	span := formatSpan(stmt.Span, fs)

	switch stmt.Kind {
	case ast.StmtBlock:
		if data, ok := b.Stmts.Block(id); ok {
			fmt.Fprintf(w, "Block (span: %s)\n", span)
			for i, child := range data.Stmts {
				marker, childPrefix := treeBranch(prefix, i == len(data.Stmts)-1)
				fmt.Fprintf(w, "%s Stmt[%d]: ", marker, i)
				writeStmtPretty(w, b, child, fs, childPrefix)
			}
			return
		}

	case ast.StmtVarDecl:
		if data, ok := b.Stmts.VarDecl(id); ok {
			fmt.Fprintf(w, "VarDecl %s %s (span: %s)\n", b.Name(data.Type.Name), b.Name(data.Name), span)
			if data.Init.IsValid() {
				marker, childPrefix := treeBranch(prefix, true)
				fmt.Fprintf(w, "%s Init: ", marker)
				writeExprPretty(w, b, data.Init, fs, childPrefix)
			}
			return
		}

	case ast.StmtIf:
		if data, ok := b.Stmts.If(id); ok {
			fmt.Fprintf(w, "If (span: %s)\n", span)
			marker, childPrefix := treeBranch(prefix, false)
			fmt.Fprintf(w, "%s Cond: ", marker)
			writeExprPretty(w, b, data.Cond, fs, childPrefix)
			hasElse := data.Else.IsValid()
			marker, childPrefix = treeBranch(prefix, !hasElse)
			fmt.Fprintf(w, "%s Then: ", marker)
			writeStmtPretty(w, b, data.Then, fs, childPrefix)
			if hasElse {
				marker, childPrefix = treeBranch(prefix, true)
				fmt.Fprintf(w, "%s Else: ", marker)
				writeStmtPretty(w, b, data.Else, fs, childPrefix)
			}
			return
		}

	case ast.StmtWhile:
		if data, ok := b.Stmts.While(id); ok {
			fmt.Fprintf(w, "While (span: %s)\n", span)
			marker, childPrefix := treeBranch(prefix, false)
			fmt.Fprintf(w, "%s Cond: ", marker)
			writeExprPretty(w, b, data.Cond, fs, childPrefix)
			marker, childPrefix = treeBranch(prefix, true)
			fmt.Fprintf(w, "%s Body: ", marker)
			writeStmtPretty(w, b, data.Body, fs, childPrefix)
			return
		}

	case ast.StmtFor:
		if data, ok := b.Stmts.For(id); ok {
			fmt.Fprintf(w, "For (span: %s)\n", span)
			if data.Init.IsValid() {
				marker, childPrefix := treeBranch(prefix, false)
				fmt.Fprintf(w, "%s Init: ", marker)
				writeStmtPretty(w, b, data.Init, fs, childPrefix)
			}
			if data.Cond.IsValid() {
				marker, childPrefix := treeBranch(prefix, false)
				fmt.Fprintf(w, "%s Cond: ", marker)
				writeExprPretty(w, b, data.Cond, fs, childPrefix)
			}
			if data.Post.IsValid() {
				marker, childPrefix := treeBranch(prefix, false)
				fmt.Fprintf(w, "%s Post: ", marker)
				writeExprPretty(w, b, data.Post, fs, childPrefix)
			}
			marker, childPrefix := treeBranch(prefix, true)
			fmt.Fprintf(w, "%s Body: ", marker)
			writeStmtPretty(w, b, data.Body, fs, childPrefix)
			return
		}

	case ast.StmtReturn:
		if data, ok := b.Stmts.Return(id); ok {
			fmt.Fprintf(w, "Return (span: %s)\n", span)
			if data.Value.IsValid() {
				marker, childPrefix := treeBranch(prefix, true)
				fmt.Fprintf(w, "%s Value: ", marker)
				writeExprPretty(w, b, data.Value, fs, childPrefix)
			}
			return
		}

	case ast.StmtExpr:
		if data, ok := b.Stmts.ExprStmt(id); ok {
			fmt.Fprintf(w, "ExprStmt (span: %s)\n", span)
			marker, childPrefix := treeBranch(prefix, true)
			fmt.Fprintf(w, "%s Expr: ", marker)
			writeExprPretty(w, b, data.Expr, fs, childPrefix)
			return
		}

	case ast.StmtEmpty:
		fmt.Fprintf(w, "Empty (span: %s)\n", span)
		return
	}

	fmt.Fprintf(w, "%s (span: %s)\n", stmt.Kind, span)
}

func stmtJSON(b *ast.Builder, id ast.StmtID) ASTNodeOutput {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		return ASTNodeOutput{Type: "Stmt", Kind: "missing"}
	}
	node := ASTNodeOutput{Type: "Stmt", Kind: stmt.Kind.String(), Span: stmt.Span}

	switch stmt.Kind {
	case ast.StmtBlock:
		if data, ok := b.Stmts.Block(id); ok {
			for _, child := range data.Stmts {
				node.Children = append(node.Children, stmtJSON(b, child))
			}
		}

	case ast.StmtVarDecl:
		if data, ok := b.Stmts.VarDecl(id); ok {
			node.Text = b.Name(data.Name)
			node.Fields = map[string]any{"type": b.Name(data.Type.Name)}
			if data.Init.IsValid() {
				init := exprJSON(b, data.Init)
				init.Fields = withRole(init.Fields, "init")
				node.Children = append(node.Children, init)
			}
		}

	case ast.StmtIf:
		if data, ok := b.Stmts.If(id); ok {
			cond := exprJSON(b, data.Cond)
			cond.Fields = withRole(cond.Fields, "cond")
			then := stmtJSON(b, data.Then)
			then.Fields = withRole(then.Fields, "then")
			node.Children = append(node.Children, cond, then)
			if data.Else.IsValid() {
				els := stmtJSON(b, data.Else)
				els.Fields = withRole(els.Fields, "else")
				node.Children = append(node.Children, els)
			}
		}

	case ast.StmtWhile:
		if data, ok := b.Stmts.While(id); ok {
			cond := exprJSON(b, data.Cond)
			cond.Fields = withRole(cond.Fields, "cond")
			body := stmtJSON(b, data.Body)
			body.Fields = withRole(body.Fields, "body")
			node.Children = append(node.Children, cond, body)
		}

	case ast.StmtFor:
		if data, ok := b.Stmts.For(id); ok {
			if data.Init.IsValid() {
				init := stmtJSON(b, data.Init)
				init.Fields = withRole(init.Fields, "init")
				node.Children = append(node.Children, init)
			}
			if data.Cond.IsValid() {
				cond := exprJSON(b, data.Cond)
				cond.Fields = withRole(cond.Fields, "cond")
				node.Children = append(node.Children, cond)
			}
			if data.Post.IsValid() {
				post := exprJSON(b, data.Post)
				post.Fields = withRole(post.Fields, "post")
				node.Children = append(node.Children, post)
			}
			body := stmtJSON(b, data.Body)
			body.Fields = withRole(body.Fields, "body")
			node.Children = append(node.Children, body)
		}

	case ast.StmtReturn:
		if data, ok := b.Stmts.Return(id); ok {
			if data.Value.IsValid() {
				node.Children = append(node.Children, exprJSON(b, data.Value))
			}
		}

	case ast.StmtExpr:
		if data, ok := b.Stmts.ExprStmt(id); ok {
			node.Children = append(node.Children, exprJSON(b, data.Expr))
		}
	}

	return node
}
