// Package axiom recognizes substitution instances of the three axiom schemas
// of the Hilbert system:
//
//	AX1: A -> (B -> A)
//	AX2: (A -> (B -> C)) -> ((A -> B) -> (A -> C))
//	AX3: (~B -> ~A) -> (A -> B)
//
// A formula matches a schema when each metavariable can be bound to some
// sub-formula such that repeated occurrences of the same metavariable bind to
// structurally equal terms. Each matcher first checks the minimum required
// shape, then extracts candidate bindings positionally, then asserts equality
// across the remaining occurrences. Matchers never panic on wrong-shaped
// input; they return false.
package axiom

import "github.com/halmos/ponens/internal/formula"

// Matches1 reports whether f instantiates AX1, A -> (B -> A).
func Matches1(f formula.Formula) bool {
	top, ok := f.(formula.Impl)
	if !ok {
		return false
	}
	inner, ok := top.Right.(formula.Impl)
	if !ok {
		return false
	}
	// Bindings: A = top.Left, B = inner.Left (unconstrained).
	// Second occurrence of A is inner.Right.
	return formula.Equal(top.Left, inner.Right)
}

// Matches2 reports whether f instantiates AX2,
// (A -> (B -> C)) -> ((A -> B) -> (A -> C)).
func Matches2(f formula.Formula) bool {
	top, ok := f.(formula.Impl)
	if !ok {
		return false
	}
	left, ok := top.Left.(formula.Impl)
	if !ok {
		return false
	}
	leftNest, ok := left.Right.(formula.Impl)
	if !ok {
		return false
	}
	right, ok := top.Right.(formula.Impl)
	if !ok {
		return false
	}
	rightAB, ok := right.Left.(formula.Impl)
	if !ok {
		return false
	}
	rightAC, ok := right.Right.(formula.Impl)
	if !ok {
		return false
	}
	// Bindings from the left side: A, B, C.
	a, b, c := left.Left, leftNest.Left, leftNest.Right
	// The right side must be (A -> B) -> (A -> C) under those bindings.
	return formula.Equal(rightAB.Left, a) && formula.Equal(rightAB.Right, b) &&
		formula.Equal(rightAC.Left, a) && formula.Equal(rightAC.Right, c)
}

// Matches3 reports whether f instantiates AX3, (~B -> ~A) -> (A -> B).
func Matches3(f formula.Formula) bool {
	top, ok := f.(formula.Impl)
	if !ok {
		return false
	}
	left, ok := top.Left.(formula.Impl)
	if !ok {
		return false
	}
	if !formula.IsNeg(left.Left) || !formula.IsNeg(left.Right) {
		return false
	}
	right, ok := top.Right.(formula.Impl)
	if !ok {
		return false
	}
	// Bindings from the right side: A, B.
	a, b := right.Left, right.Right
	// The left side must be ~B -> ~A under those bindings.
	return formula.Equal(left.Left, formula.Neg{Inner: b}) &&
		formula.Equal(left.Right, formula.Neg{Inner: a})
}
