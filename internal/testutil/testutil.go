// Package testutil provides shared test helpers for setting up corpora and
// databases.
package testutil

import (
	"os"
	"testing"

	"github.com/halmos/ponens/internal/index"
	"github.com/halmos/ponens/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "ponens-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestCorpus creates a temporary corpus directory with a storage.Provider.
func TestCorpus(t *testing.T) (string, storage.Provider) {
	t.Helper()
	corpusDir := t.TempDir()
	store, err := storage.NewFS(corpusDir)
	if err != nil {
		t.Fatal(err)
	}
	return corpusDir, store
}
