// Package ast declares the syntax tree of While programs.
//
// Trees are built once by the parser and are not modified afterwards.
// Every node is owned by its parent; subtrees are never shared.
package ast

import "fmt"

// Position tracks a source location within a While source file.
type Position struct {
	Offset int // zero-based byte offset
	Line   int // one-based line number
	Column int // one-based column number
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is implemented by every tree node.
type Node interface {
	String() string
}

// Statement is a While statement.
type Statement interface {
	Node
	stmtNode()
}

// BooleanExp is a boolean expression.
type BooleanExp interface {
	Node
	boolNode()
}

// ArithmeticExp is an integer-valued expression.
type ArithmeticExp interface {
	Node
	arithNode()
}

// Skip does nothing.
type Skip struct{}

// Assignment stores the value of an arithmetic expression into a variable.
type Assignment struct {
	Var   string
	Value ArithmeticExp
}

// Composition executes Lhs and then Rhs.
type Composition struct {
	Lhs Statement
	Rhs Statement
}

// Conditional selects one of two branches by its guard.
type Conditional struct {
	Guard       BooleanExp
	TrueBranch  Statement
	FalseBranch Statement
}

// While repeats Body as long as Guard holds. Pos is the location of the
// while keyword; no other node records a position.
type While struct {
	Pos   Position
	Guard BooleanExp
	Body  Statement
}

func (*Skip) stmtNode()        {}
func (*Assignment) stmtNode()  {}
func (*Composition) stmtNode() {}
func (*Conditional) stmtNode() {}
func (*While) stmtNode()       {}

// Boolean is a boolean literal.
type Boolean struct {
	Value bool
}

// Not negates its operand.
type Not struct {
	Exp BooleanExp
}

// And is the conjunction of two boolean expressions.
type And struct {
	Lhs BooleanExp
	Rhs BooleanExp
}

// ArithmeticCondition compares two arithmetic expressions. Values built by
// the parser come from NewArithmeticCondition and are in normal form.
type ArithmeticCondition struct {
	Lhs ArithmeticExp
	Op  ConditionOperator
	Rhs ArithmeticExp
}

func (*Boolean) boolNode()             {}
func (*Not) boolNode()                 {}
func (*And) boolNode()                 {}
func (*ArithmeticCondition) boolNode() {}

// Integer is a 64-bit signed literal.
type Integer struct {
	Value int64
}

// Variable refers to a program variable.
type Variable struct {
	Name string
}

// BinaryOperation applies an arithmetic operator to two operands.
type BinaryOperation struct {
	Lhs ArithmeticExp
	Op  Operator
	Rhs ArithmeticExp
}

func (*Integer) arithNode()         {}
func (*Variable) arithNode()        {}
func (*BinaryOperation) arithNode() {}

// Operator is an arithmetic operator.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
)

func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "unknown"
	}
}

// ConditionOperator is a comparison operator.
type ConditionOperator int

const (
	StrictlyLess ConditionOperator = iota
	Equal
)

func (op ConditionOperator) String() string {
	switch op {
	case StrictlyLess:
		return "<"
	case Equal:
		return "="
	default:
		return "unknown"
	}
}

// NewArithmeticCondition builds the normal form of lhs op rhs: the
// comparison is rewritten as (lhs - rhs) op 0, unless rhs already is the
// literal zero.
func NewArithmeticCondition(lhs ArithmeticExp, op ConditionOperator, rhs ArithmeticExp) *ArithmeticCondition {
	if isZero(rhs) {
		return &ArithmeticCondition{Lhs: lhs, Op: op, Rhs: rhs}
	}
	return &ArithmeticCondition{
		Lhs: &BinaryOperation{Lhs: lhs, Op: Sub, Rhs: rhs},
		Op:  op,
		Rhs: &Integer{Value: 0},
	}
}

func isZero(exp ArithmeticExp) bool {
	lit, ok := exp.(*Integer)
	return ok && lit.Value == 0
}
