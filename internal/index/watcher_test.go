package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/halmos/ponens/internal/storage"
)

// watcherTestEnv sets up a corpus dir, storage, and DB for watcher tests.
func watcherTestEnv(t *testing.T) (string, storage.Provider, *DB) {
	t.Helper()
	corpusDir := t.TempDir()
	store, err := storage.NewFS(corpusDir)
	if err != nil {
		t.Fatal(err)
	}
	return corpusDir, store, testDB(t)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatcher_NewDocumentVerified(t *testing.T) {
	corpusDir, store, db := watcherTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string

	go Watch(ctx, db, store, corpusDir, quietLogger(), func(kind, path string) {
		mu.Lock()
		events = append(events, kind+":"+path)
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(corpusDir, "new.proof"), []byte("1. (A->(B->A)) AX1\n"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum("new.proof")
		return cs != ""
	}, "new document not verified by watcher")

	rows, _ := db.GetVerdicts("new.proof")
	if len(rows) != 1 || rows[0].Status != StatusSucceeded {
		t.Errorf("verdicts = %+v", rows)
	}

	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			if e == "verified:new.proof" {
				return true
			}
		}
		return false
	}, "expected verified:new.proof callback")
}

func TestWatcher_NewDirWatched(t *testing.T) {
	corpusDir, store, db := watcherTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, corpusDir, quietLogger(), nil)

	time.Sleep(100 * time.Millisecond)

	subDir := filepath.Join(corpusDir, "subdir")
	_ = os.MkdirAll(subDir, 0o755)
	time.Sleep(200 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(subDir, "deep.proof"), []byte("1. A Premise\n"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum(filepath.Join("subdir", "deep.proof"))
		return cs != ""
	}, "document in new subdir not verified by watcher")
}

func TestWatcher_DeleteRemovesFromIndex(t *testing.T) {
	corpusDir, store, db := watcherTestEnv(t)

	_ = os.WriteFile(filepath.Join(corpusDir, "del.proof"), []byte("1. A Premise\n"), 0o644)
	_ = Sync(context.Background(), db, store, quietLogger())

	cs, _ := db.GetChecksum("del.proof")
	if cs == "" {
		t.Fatal("precondition: document should be indexed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, corpusDir, quietLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.Remove(filepath.Join(corpusDir, "del.proof"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum("del.proof")
		return cs == ""
	}, "deleted document still in index")
}

func TestWatcher_RenameReconciles(t *testing.T) {
	corpusDir, store, db := watcherTestEnv(t)

	_ = os.WriteFile(filepath.Join(corpusDir, "old.proof"), []byte("1. A Premise\n"), 0o644)
	_ = Sync(context.Background(), db, store, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, corpusDir, quietLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.Rename(filepath.Join(corpusDir, "old.proof"), filepath.Join(corpusDir, "renamed.proof"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		oldCS, _ := db.GetChecksum("old.proof")
		newCS, _ := db.GetChecksum("renamed.proof")
		return oldCS == "" && newCS != ""
	}, "rename reconciliation failed: old path should be removed and new path verified")
}
