package proof

import (
	"fmt"

	"github.com/halmos/ponens/internal/axiom"
	"github.com/halmos/ponens/internal/formula"
)

// FailureKind classifies why a proof line was rejected.
type FailureKind string

const (
	// FailLineFormat: the line lacked a parseable number or justification.
	FailLineFormat FailureKind = "line_format"
	// FailSyntax: the formula text does not conform to the grammar.
	FailSyntax FailureKind = "syntax"
	// FailSchemaMismatch: the formula is not an instance of the cited schema.
	FailSchemaMismatch FailureKind = "schema_mismatch"
	// FailForwardReference: Modus Ponens cites the current or a later line.
	FailForwardReference FailureKind = "forward_reference"
	// FailMissingLine: Modus Ponens cites a line that was never proven.
	FailMissingLine FailureKind = "missing_line"
	// FailNonConsequence: the cited lines do not yield the formula by Modus Ponens.
	FailNonConsequence FailureKind = "non_consequence"
)

// Failure describes the first rejected line of a proof.
type Failure struct {
	LineNumber int         `json:"line_number"`
	Kind       FailureKind `json:"kind"`
	Detail     string      `json:"detail"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("line %d: %s: %s", f.LineNumber, f.Kind, f.Detail)
}

// Verdict is the terminal state of one proof's verification. Failure is nil
// iff the proof succeeded.
type Verdict struct {
	Failure *Failure
}

// Succeeded reports whether every line of the proof was accepted.
func (v Verdict) Succeeded() bool { return v.Failure == nil }

// Verifier threads line numbers to proven formulas across one proof. The
// zero value is not usable; construct with NewVerifier. State is local to one
// proof and is discarded with the Verifier.
type Verifier struct {
	proven map[int]formula.Formula
	done   bool
	fail   *Failure
}

// NewVerifier returns a verifier in the running state with no proven lines.
func NewVerifier() *Verifier {
	return &Verifier{proven: make(map[int]formula.Formula)}
}

// Feed processes one proof line. Once a line has been rejected the verifier
// is terminal and further calls are no-ops.
func (v *Verifier) Feed(ln Line) {
	if v.done {
		return
	}
	if ln.Number <= 0 {
		v.reject(ln.Number, FailLineFormat, fmt.Sprintf("line number %d is not positive", ln.Number))
		return
	}

	f, err := formula.Parse(ln.FormulaText)
	if err != nil {
		v.reject(ln.Number, FailSyntax, err.Error())
		return
	}

	if kind, detail, ok := v.check(ln.Number, f, ln.Just); !ok {
		v.reject(ln.Number, kind, detail)
		return
	}

	v.proven[ln.Number] = f
}

// Verdict returns the terminal verdict. Calling it ends the run; the proof is
// considered complete once all its lines have been fed.
func (v *Verifier) Verdict() Verdict {
	return Verdict{Failure: v.fail}
}

// Proven returns the formula proven at line n, if any.
func (v *Verifier) Proven(n int) (formula.Formula, bool) {
	f, ok := v.proven[n]
	return f, ok
}

func (v *Verifier) reject(line int, kind FailureKind, detail string) {
	v.done = true
	v.fail = &Failure{LineNumber: line, Kind: kind, Detail: detail}
}

// check validates a parsed formula against its justification. It returns
// ok=true when the line may be recorded as proven, or the most specific
// failure otherwise.
func (v *Verifier) check(n int, f formula.Formula, j Justification) (FailureKind, string, bool) {
	switch j.Kind {
	case Premise:
		return "", "", true

	case Axiom1:
		if !axiom.Matches1(f) {
			return FailSchemaMismatch, "formula does not match the AX1 schema", false
		}
		return "", "", true

	case Axiom2:
		if !axiom.Matches2(f) {
			return FailSchemaMismatch, "formula does not match the AX2 schema", false
		}
		return "", "", true

	case Axiom3:
		if !axiom.Matches3(f) {
			return FailSchemaMismatch, "formula does not match the AX3 schema", false
		}
		return "", "", true

	case ModusPonens:
		// Both references must be strictly earlier, proven or not.
		if j.I >= n || j.J >= n {
			return FailForwardReference, fmt.Sprintf("MP refers to future lines %d,%d", j.I, j.J), false
		}
		fi, okI := v.proven[j.I]
		fj, okJ := v.proven[j.J]
		if !okI || !okJ {
			return FailMissingLine, fmt.Sprintf("MP refers to non-existent lines %d,%d", j.I, j.J), false
		}
		// Either cited line may hold the implication.
		if consequence(fj, fi, f) || consequence(fi, fj, f) {
			return "", "", true
		}
		return FailNonConsequence,
			fmt.Sprintf("conclusion does not follow from lines %d and %d by Modus Ponens", j.I, j.J), false
	}

	return FailLineFormat, fmt.Sprintf("unknown justification kind %d", j.Kind), false
}

// consequence reports whether impl is an implication whose antecedent is
// minor and whose consequent is conclusion.
func consequence(impl, minor, conclusion formula.Formula) bool {
	im, ok := impl.(formula.Impl)
	if !ok {
		return false
	}
	return formula.Equal(im.Left, minor) && formula.Equal(im.Right, conclusion)
}

// Verify runs a whole proof through a fresh verifier and returns its verdict.
func Verify(lines []Line) Verdict {
	v := NewVerifier()
	for _, ln := range lines {
		v.Feed(ln)
	}
	return v.Verdict()
}
