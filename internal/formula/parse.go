package formula

import (
	"fmt"
	"strings"
)

// SyntaxError describes why a formula text could not be parsed.
type SyntaxError struct {
	Input  string // the offending (sub)string, already trimmed
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s in %q", e.Reason, e.Input)
}

// Parse converts formula text into a Formula term.
//
// Grammar:
//
//	Formula := [A-Z] | '~' Formula | '(' Formula '->' Formula ')'
//
// Implications carry no precedence: every implication is explicitly
// parenthesized, so the split point of an implication is the first '->' at
// parenthesis depth zero inside the outer pair. Parse is deterministic and
// has no side effects; all failures are *SyntaxError.
func Parse(text string) (Formula, error) {
	s := strings.TrimSpace(text)

	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		return Var{Name: s[0]}, nil
	}

	if strings.HasPrefix(s, "~") {
		inner, err := Parse(s[1:])
		if err != nil {
			return nil, err
		}
		return Neg{Inner: inner}, nil
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		interior := s[1 : len(s)-1]
		split, err := splitImplication(interior, s)
		if err != nil {
			return nil, err
		}
		if split >= 0 {
			leftStr := interior[:split]
			rightStr := interior[split+2:]
			if strings.TrimSpace(leftStr) != "" && strings.TrimSpace(rightStr) != "" {
				left, err := Parse(leftStr)
				if err != nil {
					return nil, err
				}
				right, err := Parse(rightStr)
				if err != nil {
					return nil, err
				}
				return Impl{Left: left, Right: right}, nil
			}
		}
		return nil, &SyntaxError{Input: s, Reason: "malformed implication or unbalanced parentheses"}
	}

	return nil, &SyntaxError{Input: s, Reason: "invalid formula syntax"}
}

// splitImplication scans interior left to right tracking parenthesis depth and
// returns the index of the first top-level "->", or -1 if none exists. A
// closing parenthesis that drops the depth below zero is a hard error; whole
// is the full text reported in that error.
func splitImplication(interior, whole string) (int, error) {
	depth := 0
	for i := 0; i < len(interior); i++ {
		switch interior[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return -1, &SyntaxError{Input: whole, Reason: "mismatched closing parenthesis"}
			}
		case '-':
			if depth == 0 && i+1 < len(interior) && interior[i+1] == '>' {
				return i, nil
			}
		}
	}
	return -1, nil
}
