package diagfmt

import (
	"fmt"
	"io"

	"sable/internal/ast"
	"sable/internal/source"
)

func writeExprPretty(w io.Writer, b *ast.Builder, id ast.ExprID, fs *source.FileSet, prefix string) {
	expr := b.Exprs.Get(id)
	if expr == nil {
		fmt.Fprintln(w, "<nil>")
		return
	}
	span := formatSpan(expr.Span, fs)

	switch expr.Kind {
	case ast.ExprIdent:
		if data, ok := b.Exprs.Ident(id); ok {
			fmt.Fprintf(w, "Ident %s (span: %s)\n", b.Name(data.Name), span)
			return
		}

	case ast.ExprLit:
		if data, ok := b.Exprs.Literal(id); ok {
			fmt.Fprintf(w, "Literal(%s) %s (span: %s)\n", data.Kind, b.Name(data.Value), span)
			return
		}

	case ast.ExprUnary:
		if data, ok := b.Exprs.Unary(id); ok {
			fmt.Fprintf(w, "Unary %s (span: %s)\n", data.Op, span)
			marker, childPrefix := treeBranch(prefix, true)
			fmt.Fprintf(w, "%s Operand: ", marker)
			writeExprPretty(w, b, data.Operand, fs, childPrefix)
			return
		}

	case ast.ExprBinary:
		if data, ok := b.Exprs.Binary(id); ok {
			fmt.Fprintf(w, "Binary %s (span: %s)\n", data.Op, span)
			marker, childPrefix := treeBranch(prefix, false)
			fmt.Fprintf(w, "%s Left: ", marker)
			writeExprPretty(w, b, data.Left, fs, childPrefix)
			marker, childPrefix = treeBranch(prefix, true)
			fmt.Fprintf(w, "%s Right: ", marker)
			writeExprPretty(w, b, data.Right, fs, childPrefix)
			return
		}

	case ast.ExprAssign:
		if data, ok := b.Exprs.Assign(id); ok {
			fmt.Fprintf(w, "Assign (span: %s)\n", span)
			marker, childPrefix := treeBranch(prefix, false)
			fmt.Fprintf(w, "%s Target: ", marker)
			writeExprPretty(w, b, data.Target, fs, childPrefix)
			marker, childPrefix = treeBranch(prefix, true)
			fmt.Fprintf(w, "%s Value: ", marker)
			writeExprPretty(w, b, data.Value, fs, childPrefix)
			return
		}

	case ast.ExprCall:
		if data, ok := b.Exprs.Call(id); ok {
			fmt.Fprintf(w, "Call (span: %s)\n", span)
			marker, childPrefix := treeBranch(prefix, len(data.Args) == 0)
			fmt.Fprintf(w, "%s Callee: ", marker)
			writeExprPretty(w, b, data.Callee, fs, childPrefix)
			for i, arg := range data.Args {
				marker, childPrefix = treeBranch(prefix, i == len(data.Args)-1)
				fmt.Fprintf(w, "%s Arg[%d]: ", marker, i)
				writeExprPretty(w, b, arg, fs, childPrefix)
			}
			return
		}

	case ast.ExprParen:
		if data, ok := b.Exprs.Paren(id); ok {
			fmt.Fprintf(w, "Paren (span: %s)\n", span)
			marker, childPrefix := treeBranch(prefix, true)
			fmt.Fprintf(w, "%s Inner: ", marker)
			writeExprPretty(w, b, data.Inner, fs, childPrefix)
			return
		}
	}

	fmt.Fprintf(w, "%s (span: %s)\n", expr.Kind, span)
}

func exprJSON(b *ast.Builder, id ast.ExprID) ASTNodeOutput {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "missing"}
	}
	node := ASTNodeOutput{Type: "Expr", Kind: expr.Kind.String(), Span: expr.Span}

	switch expr.Kind {
	case ast.ExprIdent:
		if data, ok := b.Exprs.Ident(id); ok {
			node.Text = b.Name(data.Name)
		}

	case ast.ExprLit:
		if data, ok := b.Exprs.Literal(id); ok {
			node.Text = b.Name(data.Value)
			node.Fields = map[string]any{"lit": data.Kind.String()}
		}

	case ast.ExprUnary:
		if data, ok := b.Exprs.Unary(id); ok {
			node.Text = data.Op.String()
			node.Children = append(node.Children, exprJSON(b, data.Operand))
		}

	case ast.ExprBinary:
		if data, ok := b.Exprs.Binary(id); ok {
			node.Text = data.Op.String()
			node.Children = append(node.Children, exprJSON(b, data.Left), exprJSON(b, data.Right))
		}

	case ast.ExprAssign:
		if data, ok := b.Exprs.Assign(id); ok {
			target := exprJSON(b, data.Target)
			target.Fields = withRole(target.Fields, "target")
			value := exprJSON(b, data.Value)
			value.Fields = withRole(value.Fields, "value")
			node.Children = append(node.Children, target, value)
		}

	case ast.ExprCall:
		if data, ok := b.Exprs.Call(id); ok {
			callee := exprJSON(b, data.Callee)
			callee.Fields = withRole(callee.Fields, "callee")
			node.Children = append(node.Children, callee)
			for _, arg := range data.Args {
				node.Children = append(node.Children, exprJSON(b, arg))
			}
		}

	case ast.ExprParen:
		if data, ok := b.Exprs.Paren(id); ok {
			node.Children = append(node.Children, exprJSON(b, data.Inner))
		}
	}

	return node
}
