// Package formula defines the term representation of propositional formulas
// and the parser that produces it from text.
//
// The language has exactly three constructs: single-letter variables (A–Z),
// negation (~F), and fully parenthesized implication ((F->G)). Values are
// immutable once constructed and compared by deep structural equality.
package formula

// Formula is a propositional formula term. Exactly three types implement it:
// Var, Neg, and Impl.
type Formula interface {
	// String renders the formula in the same grammar the parser accepts,
	// so Parse(f.String()) reproduces f.
	String() string

	formula()
}

// Var is a propositional variable named by a single uppercase letter.
type Var struct {
	Name byte
}

// Neg is the negation of an inner formula.
type Neg struct {
	Inner Formula
}

// Impl is an implication. Order matters: Left is the antecedent.
type Impl struct {
	Left  Formula
	Right Formula
}

func (Var) formula()  {}
func (Neg) formula()  {}
func (Impl) formula() {}

func (v Var) String() string  { return string(v.Name) }
func (n Neg) String() string  { return "~" + n.Inner.String() }
func (i Impl) String() string { return "(" + i.Left.String() + "->" + i.Right.String() + ")" }

// IsVar reports whether f is a variable.
func IsVar(f Formula) bool {
	_, ok := f.(Var)
	return ok
}

// IsNeg reports whether f is a negation.
func IsNeg(f Formula) bool {
	_, ok := f.(Neg)
	return ok
}

// IsImpl reports whether f is an implication.
func IsImpl(f Formula) bool {
	_, ok := f.(Impl)
	return ok
}

// Equal reports deep structural equality of two formulas. Variables are equal
// iff their names are equal; composite terms are equal iff their corresponding
// sub-terms are equal. Identity never matters.
func Equal(a, b Formula) bool {
	switch x := a.(type) {
	case Var:
		y, ok := b.(Var)
		return ok && x.Name == y.Name
	case Neg:
		y, ok := b.(Neg)
		return ok && Equal(x.Inner, y.Inner)
	case Impl:
		y, ok := b.(Impl)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	}
	return false
}
