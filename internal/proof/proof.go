// Package proof implements the per-line proof verifier for the Hilbert
// system: premises, the three axiom schemas, and Modus Ponens.
package proof

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Line is one justified step of a proof. Numbers are positive but need not be
// contiguous.
type Line struct {
	Number      int
	FormulaText string
	Just        Justification
}

// Kind enumerates the justification variants.
type Kind int

const (
	Premise Kind = iota
	Axiom1
	Axiom2
	Axiom3
	ModusPonens
)

// Justification is a closed variant: Premise, one of the three axiom schemas,
// or Modus Ponens citing two earlier lines.
type Justification struct {
	Kind Kind
	I, J int // cited line numbers, Modus Ponens only
}

func (j Justification) String() string {
	switch j.Kind {
	case Premise:
		return "Premise"
	case Axiom1:
		return "AX1"
	case Axiom2:
		return "AX2"
	case Axiom3:
		return "AX3"
	case ModusPonens:
		return fmt.Sprintf("MP %d,%d", j.I, j.J)
	}
	return "unknown"
}

var mpRe = regexp.MustCompile(`^MP\s*(\d+),(\d+)$`)

// ParseJustification parses the trailing justification token of a proof line.
// Accepted forms: "Premise", "AX1", "AX2", "AX3", "MP i,j".
func ParseJustification(text string) (Justification, error) {
	switch s := strings.TrimSpace(text); s {
	case "Premise":
		return Justification{Kind: Premise}, nil
	case "AX1":
		return Justification{Kind: Axiom1}, nil
	case "AX2":
		return Justification{Kind: Axiom2}, nil
	case "AX3":
		return Justification{Kind: Axiom3}, nil
	default:
		if m := mpRe.FindStringSubmatch(s); m != nil {
			i, _ := strconv.Atoi(m[1])
			j, _ := strconv.Atoi(m[2])
			return Justification{Kind: ModusPonens, I: i, J: j}, nil
		}
		return Justification{}, fmt.Errorf("unrecognized justification %q", text)
	}
}
