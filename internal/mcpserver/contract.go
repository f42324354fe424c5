package mcpserver

// ProofFormatContract describes the proof document format that LLM consumers
// should follow when submitting proofs for verification.
const ProofFormatContract = `# Ponens Proof Document Format

A proof document contains one or more proofs in a Hilbert-style system for
propositional logic with negation and implication.

## Document structure

` + "```" + `
--- TEST: name of the first proof ---
1. A Premise
2. (A->(B->A)) AX1
3. (B->A) MP 1,2

--- TEST: name of the second proof ---
...
` + "```" + `

Lines starting with ` + "`" + `--- TEST:` + "`" + ` begin a new named proof. Content before the
first delimiter forms an unnamed proof. Blank lines and lines starting with
` + "`" + `#` + "`" + ` are comments and are ignored.

## Proof lines

Each proof line is ` + "`" + `NUMBER. FORMULA JUSTIFICATION` + "`" + `:

- NUMBER is a positive integer followed by a period. Numbers need not be
  contiguous but later lines may only cite strictly smaller numbers.
- FORMULA uses single uppercase letters A–Z as variables, ` + "`" + `~` + "`" + ` for negation,
  and fully parenthesized ` + "`" + `->` + "`" + ` for implication: ` + "`" + `(A->(B->~C))` + "`" + `. There is no
  operator precedence; every implication needs its own parentheses.
- JUSTIFICATION is one of:
  - ` + "`" + `Premise` + "`" + `: accepted without proof.
  - ` + "`" + `AX1` + "`" + `: instance of ` + "`" + `A -> (B -> A)` + "`" + `.
  - ` + "`" + `AX2` + "`" + `: instance of ` + "`" + `(A -> (B -> C)) -> ((A -> B) -> (A -> C))` + "`" + `.
  - ` + "`" + `AX3` + "`" + `: instance of ` + "`" + `(~B -> ~A) -> (A -> B)` + "`" + `.
  - ` + "`" + `MP i,j` + "`" + `: Modus Ponens from lines i and j: one cited line must be an
    implication whose antecedent is the other cited line's formula and whose
    consequent is this line's formula. The order of i and j does not matter.

Axiom metavariables (A, B, C) stand for arbitrary sub-formulas, but repeated
occurrences of the same metavariable must be the same sub-formula.

## Verdicts

Each proof verifies independently. The first invalid line fails the whole
proof with a line number, a failure kind (line_format, syntax,
schema_mismatch, forward_reference, missing_line, non_consequence), and a
detail message.
`
