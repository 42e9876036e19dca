package ast

import (
	"strconv"
	"strings"
)

// String methods render nodes as single-line s-expressions, e.g.
// (; (:= x 1) (while 2:1 (< (- x 10) 0) (:= x (+ x 1)))).

func (*Skip) String() string { return "skip" }

func (s *Assignment) String() string {
	return list(":=", s.Var, s.Value.String())
}

func (s *Composition) String() string {
	return list(";", s.Lhs.String(), s.Rhs.String())
}

func (s *Conditional) String() string {
	return list("if", s.Guard.String(), s.TrueBranch.String(), s.FalseBranch.String())
}

func (s *While) String() string {
	return list("while", s.Pos.String(), s.Guard.String(), s.Body.String())
}

func (e *Boolean) String() string { return strconv.FormatBool(e.Value) }

func (e *Not) String() string { return list("!", e.Exp.String()) }

func (e *And) String() string { return list("&", e.Lhs.String(), e.Rhs.String()) }

func (e *ArithmeticCondition) String() string {
	return list(e.Op.String(), e.Lhs.String(), e.Rhs.String())
}

func (e *Integer) String() string { return strconv.FormatInt(e.Value, 10) }

func (e *Variable) String() string { return e.Name }

func (e *BinaryOperation) String() string {
	return list(e.Op.String(), e.Lhs.String(), e.Rhs.String())
}

func list(head string, items ...string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(head)
	for _, item := range items {
		b.WriteByte(' ')
		b.WriteString(item)
	}
	b.WriteByte(')')
	return b.String()
}
