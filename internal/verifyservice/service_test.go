package verifyservice

import (
	"context"
	"errors"
	"testing"

	"github.com/halmos/ponens/internal/apperr"
	"github.com/halmos/ponens/internal/index"
	"github.com/halmos/ponens/internal/testutil"
)

func testService(t *testing.T) *Service {
	t.Helper()
	_, store := testutil.TestCorpus(t)
	return NewService(store, testutil.TestDB(t))
}

const sampleDoc = `--- TEST: ax1 instance ---
1. (A->(B->A)) AX1
--- TEST: broken mp ---
1. A Premise
2. B MP 1,1
`

func TestPutAndGetDocument(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	doc, err := svc.PutDocument(ctx, "sample.proof", []byte(sampleDoc))
	if err != nil {
		t.Fatalf("PutDocument: %v", err)
	}
	if len(doc.Verdicts) != 2 {
		t.Fatalf("verdicts = %d, want 2", len(doc.Verdicts))
	}
	if doc.Verdicts[0].Status != index.StatusSucceeded {
		t.Errorf("verdicts[0] = %+v", doc.Verdicts[0])
	}
	if doc.Verdicts[1].Status != index.StatusFailed || doc.Verdicts[1].FailedLine != 2 {
		t.Errorf("verdicts[1] = %+v", doc.Verdicts[1])
	}

	got, err := svc.GetDocument(ctx, "sample.proof")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Content != sampleDoc {
		t.Errorf("content mismatch")
	}
	if got.Checksum != doc.Checksum {
		t.Errorf("checksum mismatch")
	}
}

func TestPutDocument_RequiresProofExtension(t *testing.T) {
	svc := testService(t)
	if _, err := svc.PutDocument(context.Background(), "sample.txt", []byte("1. A Premise\n")); err == nil {
		t.Error("non-.proof path should be rejected")
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	svc := testService(t)
	_, err := svc.GetDocument(context.Background(), "missing.proof")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDocument(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.PutDocument(ctx, "gone.proof", []byte("1. A Premise\n")); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteDocument(ctx, "gone.proof"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if _, err := svc.GetDocument(ctx, "gone.proof"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	rows, _, err := svc.ListVerdicts(ctx, 10, 0, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("verdicts should be pruned with the document, got %+v", rows)
	}
}

func TestVerifyContent_NotPersisted(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	results, err := svc.VerifyContent(ctx, []byte("1. (A->(B->A)) AX1\n"))
	if err != nil {
		t.Fatalf("VerifyContent: %v", err)
	}
	if len(results) != 1 || !results[0].Succeeded() {
		t.Fatalf("results = %+v", results)
	}

	s, err := svc.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.Documents != 0 {
		t.Errorf("ad-hoc verification should not touch the index, summary = %+v", s)
	}
}

func TestVerifyDocument_IndexesExistingFile(t *testing.T) {
	_, store := testutil.TestCorpus(t)
	svc := NewService(store, testutil.TestDB(t))
	ctx := context.Background()

	// Written behind the service's back, as the watcher would see it.
	if err := store.Write("direct.proof", []byte("1. (A->(B->A)) AX1\n")); err != nil {
		t.Fatal(err)
	}

	doc, err := svc.VerifyDocument(ctx, "direct.proof")
	if err != nil {
		t.Fatalf("VerifyDocument: %v", err)
	}
	if len(doc.Verdicts) != 1 || doc.Verdicts[0].Status != index.StatusSucceeded {
		t.Errorf("verdicts = %+v", doc.Verdicts)
	}

	if _, err := svc.VerifyDocument(ctx, "missing.proof"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListVerdicts_Filter(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.PutDocument(ctx, "sample.proof", []byte(sampleDoc)); err != nil {
		t.Fatal(err)
	}
	failed, total, err := svc.ListVerdicts(ctx, 10, 0, index.StatusFailed)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(failed) != 1 || failed[0].Name != "broken mp" {
		t.Errorf("failed = %+v, total = %d", failed, total)
	}
}
