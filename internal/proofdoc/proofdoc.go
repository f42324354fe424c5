// Package proofdoc handles the textual form of proof documents: splitting a
// multi-proof document into named proofs and tokenizing individual proof
// lines into their number, formula text, and justification.
package proofdoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/halmos/ponens/internal/proof"
)

// Delimiter starts a line that names and begins a new proof in a document.
const Delimiter = "--- TEST:"

// CommentMarker starts a comment line inside a proof.
const CommentMarker = "#"

// NamedProof is one demarcated proof: a name and its raw text lines, in order.
type NamedProof struct {
	Name  string
	Lines []string
}

// SplitDocument splits a document on Delimiter lines into named proofs. Text
// before the first delimiter forms an unnamed proof if it contains anything
// beyond blanks and comments. Proofs with no content at all are dropped.
func SplitDocument(data []byte) []NamedProof {
	var out []NamedProof
	current := NamedProof{Name: "Unnamed Proof"}

	flush := func() {
		if hasContent(current.Lines) {
			out = append(out, current)
		}
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, Delimiter) {
			flush()
			name := strings.TrimPrefix(line, Delimiter)
			name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), "---"))
			if name == "" {
				name = "Unnamed Proof"
			}
			current = NamedProof{Name: name}
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	flush()

	return out
}

func hasContent(lines []string) bool {
	for _, line := range lines {
		if !Skippable(line) {
			return true
		}
	}
	return false
}

// Skippable reports whether a raw line is blank or a comment and therefore
// ignored by per-line processing.
func Skippable(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" || strings.HasPrefix(t, CommentMarker)
}

// LineError is a format failure for one raw proof line. LineNumber is zero
// when the leading number itself could not be parsed.
type LineError struct {
	LineNumber int
	Text       string
	Reason     string
}

func (e *LineError) Error() string {
	if e.LineNumber > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.LineNumber, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

var (
	numberRe = regexp.MustCompile(`^\s*(\d+)\.\s*(.+)$`)
	justRe   = regexp.MustCompile(`\s+(Premise|AX[123]|MP\s*\d+,\d+)\s*$`)
)

// ParseLine tokenizes one raw proof line into its number, formula text, and
// justification. The caller is expected to filter Skippable lines first. All
// failures are *LineError.
func ParseLine(text string) (proof.Line, error) {
	m := numberRe.FindStringSubmatch(text)
	if m == nil {
		return proof.Line{}, &LineError{Text: text, Reason: "invalid line format"}
	}
	num, err := strconv.Atoi(m[1])
	if err != nil || num <= 0 {
		return proof.Line{}, &LineError{Text: text, Reason: "line number is not a positive integer"}
	}
	rest := m[2]

	jm := justRe.FindStringSubmatchIndex(rest)
	if jm == nil {
		return proof.Line{}, &LineError{LineNumber: num, Text: text, Reason: "malformed justification"}
	}
	formulaText := strings.TrimSpace(rest[:jm[0]])
	justText := strings.TrimSpace(rest[jm[2]:jm[3]])
	if formulaText == "" {
		return proof.Line{}, &LineError{LineNumber: num, Text: text, Reason: "missing formula"}
	}

	just, err := proof.ParseJustification(justText)
	if err != nil {
		return proof.Line{}, &LineError{LineNumber: num, Text: text, Reason: "malformed justification"}
	}

	return proof.Line{Number: num, FormulaText: formulaText, Just: just}, nil
}
