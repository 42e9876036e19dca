package ast

import (
	"maps"
	"slices"
)

// Inspect traverses the tree rooted at node in depth-first order. It calls
// f(node); if f returns true, Inspect visits the children of node in source
// order. Nil nodes are ignored.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *Assignment:
		Inspect(n.Value, f)
	case *Composition:
		Inspect(n.Lhs, f)
		Inspect(n.Rhs, f)
	case *Conditional:
		Inspect(n.Guard, f)
		Inspect(n.TrueBranch, f)
		Inspect(n.FalseBranch, f)
	case *While:
		Inspect(n.Guard, f)
		Inspect(n.Body, f)
	case *Not:
		Inspect(n.Exp, f)
	case *And:
		Inspect(n.Lhs, f)
		Inspect(n.Rhs, f)
	case *ArithmeticCondition:
		Inspect(n.Lhs, f)
		Inspect(n.Rhs, f)
	case *BinaryOperation:
		Inspect(n.Lhs, f)
		Inspect(n.Rhs, f)
	}
}

// Vars returns the sorted set of variable names read or assigned in node.
func Vars(node Node) []string {
	seen := make(map[string]struct{})
	Inspect(node, func(n Node) bool {
		switch n := n.(type) {
		case *Assignment:
			seen[n.Var] = struct{}{}
		case *Variable:
			seen[n.Name] = struct{}{}
		}
		return true
	})
	return slices.Sorted(maps.Keys(seen))
}

// Constants returns the sorted set of integer literals occurring in node.
// Only the left side of a comparison is searched: its right side is the
// zero of the normal form.
func Constants(node Node) []int64 {
	seen := make(map[int64]struct{})
	var visit func(Node) bool
	visit = func(n Node) bool {
		switch n := n.(type) {
		case *Integer:
			seen[n.Value] = struct{}{}
		case *ArithmeticCondition:
			Inspect(n.Lhs, visit)
			return false
		}
		return true
	}
	Inspect(node, visit)
	return slices.Sorted(maps.Keys(seen))
}
