package sexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sergev/while/ast"
)

// ReadStatement reads a statement written in s-expression notation.
func ReadStatement(src string) (ast.Statement, error) {
	v, err := readOne(newScanner(newStringSource(src)))
	if err != nil {
		return nil, err
	}
	return toStatement(v)
}

// ReadBooleanExp reads a boolean expression written in s-expression notation.
// Comparisons are rebuilt as written, without normalisation.
func ReadBooleanExp(src string) (ast.BooleanExp, error) {
	v, err := readOne(newScanner(newStringSource(src)))
	if err != nil {
		return nil, err
	}
	return toBooleanExp(v)
}

// ReadArithmeticExp reads an arithmetic expression written in s-expression
// notation.
func ReadArithmeticExp(src string) (ast.ArithmeticExp, error) {
	v, err := readOne(newScanner(newStringSource(src)))
	if err != nil {
		return nil, err
	}
	return toArithmeticExp(v)
}

func toStatement(v value) (ast.Statement, error) {
	if !v.isList {
		if v.atom == "skip" {
			return &ast.Skip{}, nil
		}
		return nil, badForm(v, "statement")
	}
	switch v.head() {
	case ":=":
		if len(v.list) != 3 || v.list[1].isList || !isIdentifier(v.list[1].atom) {
			return nil, badForm(v, "assignment")
		}
		exp, err := toArithmeticExp(v.list[2])
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Var: v.list[1].atom, Value: exp}, nil
	case ";":
		if len(v.list) != 3 {
			return nil, badForm(v, "composition")
		}
		lhs, err := toStatement(v.list[1])
		if err != nil {
			return nil, err
		}
		rhs, err := toStatement(v.list[2])
		if err != nil {
			return nil, err
		}
		return &ast.Composition{Lhs: lhs, Rhs: rhs}, nil
	case "if":
		if len(v.list) != 4 {
			return nil, badForm(v, "conditional")
		}
		guard, err := toBooleanExp(v.list[1])
		if err != nil {
			return nil, err
		}
		trueBranch, err := toStatement(v.list[2])
		if err != nil {
			return nil, err
		}
		falseBranch, err := toStatement(v.list[3])
		if err != nil {
			return nil, err
		}
		return &ast.Conditional{Guard: guard, TrueBranch: trueBranch, FalseBranch: falseBranch}, nil
	case "while":
		if len(v.list) != 4 {
			return nil, badForm(v, "while loop")
		}
		pos, err := toPosition(v.list[1])
		if err != nil {
			return nil, err
		}
		guard, err := toBooleanExp(v.list[2])
		if err != nil {
			return nil, err
		}
		body, err := toStatement(v.list[3])
		if err != nil {
			return nil, err
		}
		return &ast.While{Pos: pos, Guard: guard, Body: body}, nil
	default:
		return nil, badForm(v, "statement")
	}
}

func toBooleanExp(v value) (ast.BooleanExp, error) {
	if !v.isList {
		switch v.atom {
		case "true":
			return &ast.Boolean{Value: true}, nil
		case "false":
			return &ast.Boolean{Value: false}, nil
		}
		return nil, badForm(v, "boolean expression")
	}
	switch head := v.head(); head {
	case "!":
		if len(v.list) != 2 {
			return nil, badForm(v, "negation")
		}
		exp, err := toBooleanExp(v.list[1])
		if err != nil {
			return nil, err
		}
		return &ast.Not{Exp: exp}, nil
	case "&":
		if len(v.list) != 3 {
			return nil, badForm(v, "conjunction")
		}
		lhs, err := toBooleanExp(v.list[1])
		if err != nil {
			return nil, err
		}
		rhs, err := toBooleanExp(v.list[2])
		if err != nil {
			return nil, err
		}
		return &ast.And{Lhs: lhs, Rhs: rhs}, nil
	case "<", "=":
		if len(v.list) != 3 {
			return nil, badForm(v, "comparison")
		}
		lhs, err := toArithmeticExp(v.list[1])
		if err != nil {
			return nil, err
		}
		rhs, err := toArithmeticExp(v.list[2])
		if err != nil {
			return nil, err
		}
		op := ast.StrictlyLess
		if head == "=" {
			op = ast.Equal
		}
		return &ast.ArithmeticCondition{Lhs: lhs, Op: op, Rhs: rhs}, nil
	default:
		return nil, badForm(v, "boolean expression")
	}
}

var operators = map[string]ast.Operator{
	"+": ast.Add,
	"-": ast.Sub,
	"*": ast.Mul,
	"/": ast.Div,
}

func toArithmeticExp(v value) (ast.ArithmeticExp, error) {
	if !v.isList {
		if n, err := strconv.ParseInt(v.atom, 10, 64); err == nil {
			return &ast.Integer{Value: n}, nil
		}
		if isIdentifier(v.atom) {
			return &ast.Variable{Name: v.atom}, nil
		}
		return nil, badForm(v, "arithmetic expression")
	}
	op, ok := operators[v.head()]
	if !ok || len(v.list) != 3 {
		return nil, badForm(v, "arithmetic expression")
	}
	lhs, err := toArithmeticExp(v.list[1])
	if err != nil {
		return nil, err
	}
	rhs, err := toArithmeticExp(v.list[2])
	if err != nil {
		return nil, err
	}
	return &ast.BinaryOperation{Lhs: lhs, Op: op, Rhs: rhs}, nil
}

func toPosition(v value) (ast.Position, error) {
	if v.isList {
		return ast.Position{}, badForm(v, "position")
	}
	lineText, colText, ok := strings.Cut(v.atom, ":")
	if !ok {
		return ast.Position{}, badForm(v, "position")
	}
	line, err := strconv.Atoi(lineText)
	if err != nil {
		return ast.Position{}, badForm(v, "position")
	}
	col, err := strconv.Atoi(colText)
	if err != nil {
		return ast.Position{}, badForm(v, "position")
	}
	return ast.Position{Line: line, Column: col}, nil
}

func isIdentifier(s string) bool {
	switch s {
	case "", "if", "then", "else", "while", "do", "skip", "true", "false":
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func badForm(v value, what string) error {
	return fmt.Errorf("offset %d: malformed %s %s", v.offset, what, v)
}
