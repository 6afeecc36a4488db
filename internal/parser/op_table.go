package parser

import (
	"sable/internal/ast"
	"sable/internal/token"
)

// Binary operator precedence; larger binds tighter.
const (
	precAssignment     = 1
	precLogicalOr      = 2
	precLogicalAnd     = 3
	precEquality       = 4
	precComparison     = 5
	precAdditive       = 6
	precMultiplicative = 7
)

// binOps covers every binary operator except assignment, which builds
// an assign node instead of a binary node and is handled separately.
var binOps = map[token.Kind]struct {
	prec int
	op   ast.ExprBinaryOp
}{
	token.OrOr:    {precLogicalOr, ast.ExprBinaryLogicalOr},
	token.AndAnd:  {precLogicalAnd, ast.ExprBinaryLogicalAnd},
	token.EqEq:    {precEquality, ast.ExprBinaryEq},
	token.BangEq:  {precEquality, ast.ExprBinaryNotEq},
	token.Lt:      {precComparison, ast.ExprBinaryLess},
	token.LtEq:    {precComparison, ast.ExprBinaryLessEq},
	token.Gt:      {precComparison, ast.ExprBinaryGreater},
	token.GtEq:    {precComparison, ast.ExprBinaryGreaterEq},
	token.Plus:    {precAdditive, ast.ExprBinaryAdd},
	token.Minus:   {precAdditive, ast.ExprBinarySub},
	token.Star:    {precMultiplicative, ast.ExprBinaryMul},
	token.Slash:   {precMultiplicative, ast.ExprBinaryDiv},
	token.Percent: {precMultiplicative, ast.ExprBinaryMod},
}

// binaryPrec returns (precedence, right-associative) for k, or (-1,
// false) when k is not a binary operator. Assignment is the only
// right-associative operator.
func binaryPrec(k token.Kind) (int, bool) {
	if k == token.Assign {
		return precAssignment, true
	}
	if e, ok := binOps[k]; ok {
		return e.prec, false
	}
	return -1, false
}

func binaryOp(k token.Kind) ast.ExprBinaryOp {
	return binOps[k].op
}
