package index

import (
	"context"
	"log/slog"

	"github.com/halmos/ponens/internal/checksum"
	"github.com/halmos/ponens/internal/runner"
	"github.com/halmos/ponens/internal/storage"
)

// Sync walks the corpus and brings the index up to date:
//   - new/changed documents are re-verified and their verdicts upserted
//   - documents removed from disk are deleted from the index
func Sync(ctx context.Context, db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := verifyFile(ctx, db, m.Path, data); err != nil {
			logger.Warn("sync: verify failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: verified", slog.String("path", m.Path),
				slog.String("checksum", checksum.Short(m.Checksum)))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteRun(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// verifyFile verifies a document's proofs and upserts the run.
func verifyFile(ctx context.Context, db *DB, path string, data []byte) error {
	results, err := runner.VerifyDocument(ctx, data)
	if err != nil {
		return err
	}
	return db.UpsertRun(path, checksum.Sum(data), results)
}
