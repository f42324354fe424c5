// Package runner verifies batches of proofs. Each proof's verification is an
// independent computation over its own state, so a batch fans out across a
// bounded worker group and results are collected in input order.
package runner

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/halmos/ponens/internal/proof"
	"github.com/halmos/ponens/internal/proofdoc"
)

// Result pairs a proof's name with its terminal verdict.
type Result struct {
	Name    string         `json:"name"`
	Failure *proof.Failure `json:"failure,omitempty"`
}

// Succeeded reports whether the proof verified cleanly.
func (r Result) Succeeded() bool { return r.Failure == nil }

// VerifyProof tokenizes and verifies one demarcated proof. Blank and comment
// lines are skipped; the first rejected line determines the verdict.
func VerifyProof(np proofdoc.NamedProof) Result {
	v := proof.NewVerifier()
	for _, raw := range np.Lines {
		if proofdoc.Skippable(raw) {
			continue
		}
		ln, err := proofdoc.ParseLine(raw)
		if err != nil {
			le, _ := err.(*proofdoc.LineError)
			return Result{Name: np.Name, Failure: &proof.Failure{
				LineNumber: le.LineNumber,
				Kind:       proof.FailLineFormat,
				Detail:     le.Error(),
			}}
		}
		v.Feed(ln)
		if verdict := v.Verdict(); !verdict.Succeeded() {
			return Result{Name: np.Name, Failure: verdict.Failure}
		}
	}
	return Result{Name: np.Name, Failure: v.Verdict().Failure}
}

// Run verifies proofs concurrently and returns one Result per proof, in input
// order. Parallelism is bounded by GOMAXPROCS; proofs share no state, so no
// coordination beyond collecting results is needed.
func Run(ctx context.Context, proofs []proofdoc.NamedProof) ([]Result, error) {
	results := make([]Result, len(proofs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, np := range proofs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = VerifyProof(np)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// VerifyDocument splits a document into proofs and verifies them all.
func VerifyDocument(ctx context.Context, data []byte) ([]Result, error) {
	return Run(ctx, proofdoc.SplitDocument(data))
}
