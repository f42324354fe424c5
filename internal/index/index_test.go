package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/halmos/ponens/internal/proof"
	"github.com/halmos/ponens/internal/runner"
	"github.com/halmos/ponens/internal/storage"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "ponens-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleResults() []runner.Result {
	return []runner.Result{
		{Name: "identity"},
		{Name: "broken", Failure: &proof.Failure{
			LineNumber: 2,
			Kind:       proof.FailSchemaMismatch,
			Detail:     "formula does not match the AX1 schema",
		}},
	}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM runs`).Scan(&count); err != nil {
		t.Fatalf("runs table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM verdicts`).Scan(&count); err != nil {
		t.Fatalf("verdicts table missing: %v", err)
	}
}

func TestUpsertRunAndGetVerdicts(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertRun("a.proof", "cs1", sampleResults()); err != nil {
		t.Fatalf("UpsertRun: %v", err)
	}

	cs, err := db.GetChecksum("a.proof")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "cs1" {
		t.Errorf("checksum = %q, want %q", cs, "cs1")
	}

	rows, err := db.GetVerdicts("a.proof")
	if err != nil {
		t.Fatalf("GetVerdicts: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].Name != "identity" || rows[0].Status != StatusSucceeded {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].Status != StatusFailed || rows[1].FailedLine != 2 || rows[1].FailureKind != string(proof.FailSchemaMismatch) {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}

func TestUpsertRun_ReplacesPreviousVerdicts(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRun("a.proof", "cs1", sampleResults())
	if err := db.UpsertRun("a.proof", "cs2", []runner.Result{{Name: "only"}}); err != nil {
		t.Fatalf("UpsertRun: %v", err)
	}
	rows, _ := db.GetVerdicts("a.proof")
	if len(rows) != 1 || rows[0].Name != "only" {
		t.Fatalf("rows = %+v, want single replaced verdict", rows)
	}
	cs, _ := db.GetChecksum("a.proof")
	if cs != "cs2" {
		t.Errorf("checksum = %q, want cs2", cs)
	}
}

func TestListVerdicts_StatusFilter(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRun("a.proof", "cs1", sampleResults())
	_ = db.UpsertRun("b.proof", "cs2", []runner.Result{{Name: "fine"}})

	failed, total, err := db.ListVerdicts(10, 0, StatusFailed)
	if err != nil {
		t.Fatalf("ListVerdicts: %v", err)
	}
	if total != 1 || len(failed) != 1 || failed[0].Name != "broken" {
		t.Errorf("failed = %+v, total = %d", failed, total)
	}

	all, total, err := db.ListVerdicts(10, 0, "")
	if err != nil {
		t.Fatalf("ListVerdicts: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Errorf("all = %d rows, total = %d, want 3", len(all), total)
	}
}

func TestSummary(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRun("a.proof", "cs1", sampleResults())
	_ = db.UpsertRun("b.proof", "cs2", []runner.Result{{Name: "fine"}})

	s, err := db.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	want := Summary{Documents: 2, Proofs: 3, Succeeded: 2, Failed: 1}
	if s != want {
		t.Errorf("Summary = %+v, want %+v", s, want)
	}
}

func TestDeleteRun(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRun("a.proof", "cs1", sampleResults())
	if err := db.DeleteRun("a.proof"); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}
	cs, _ := db.GetChecksum("a.proof")
	if cs != "" {
		t.Errorf("deleted run still has checksum %q", cs)
	}
	rows, _ := db.GetVerdicts("a.proof")
	if len(rows) != 0 {
		t.Errorf("expected 0 verdicts after delete, got %d", len(rows))
	}
}

func TestSync_VerifiesAndPrunes(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	good := "--- TEST: ax1 ---\n1. (A->(B->A)) AX1\n"
	if err := os.WriteFile(filepath.Join(dir, "good.proof"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Sync(context.Background(), db, store, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	rows, _ := db.GetVerdicts("good.proof")
	if len(rows) != 1 || rows[0].Status != StatusSucceeded {
		t.Fatalf("rows = %+v", rows)
	}

	// Removing the file prunes its rows on the next sync.
	_ = os.Remove(filepath.Join(dir, "good.proof"))
	if err := Sync(context.Background(), db, store, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	cs, _ := db.GetChecksum("good.proof")
	if cs != "" {
		t.Error("stale run should be pruned")
	}
}

func TestSync_SkipsUnchanged(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()
	store, _ := storage.NewFS(dir)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	_ = os.WriteFile(filepath.Join(dir, "a.proof"), []byte("1. A Premise\n"), 0o644)
	_ = Sync(context.Background(), db, store, logger)

	before, _ := db.GetVerdicts("a.proof")
	_ = Sync(context.Background(), db, store, logger)
	after, _ := db.GetVerdicts("a.proof")

	if len(before) != len(after) || before[0].VerifiedAt != after[0].VerifiedAt {
		t.Error("unchanged document should not be re-verified")
	}
}
