package ast

import (
	"sable/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprUnary
	ExprBinary
	ExprAssign
	ExprCall
	ExprParen
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "ident"
	case ExprLit:
		return "literal"
	case ExprUnary:
		return "unary"
	case ExprBinary:
		return "binary"
	case ExprAssign:
		return "assign"
	case ExprCall:
		return "call"
	case ExprParen:
		return "paren"
	default:
		return "unknown"
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprLitKind uint8

const (
	LitInt ExprLitKind = iota
	LitFloat
	LitString
)

func (k ExprLitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitString:
		return "string"
	default:
		return "unknown"
	}
}

type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota // -
	ExprUnaryNot                    // !
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryNot:
		return "!"
	default:
		return "?"
	}
}

type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr

	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
)

func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	case ExprBinaryMod:
		return "%"
	case ExprBinaryLogicalAnd:
		return "&&"
	case ExprBinaryLogicalOr:
		return "||"
	case ExprBinaryEq:
		return "=="
	case ExprBinaryNotEq:
		return "!="
	case ExprBinaryLess:
		return "<"
	case ExprBinaryLessEq:
		return "<="
	case ExprBinaryGreater:
		return ">"
	case ExprBinaryGreaterEq:
		return ">="
	default:
		return "?"
	}
}

type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData keeps the raw source spelling; string literal values
// still carry their quotes.
type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

// ExprAssignData: the grammar admits any unary expression as a target;
// the analyzer decides whether it is assignable.
type ExprAssignData struct {
	Target ExprID
	Value  ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprParenData struct {
	Inner ExprID
}
