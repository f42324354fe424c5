package index

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/halmos/ponens/internal/runner"
)

// Verdict statuses as stored in the verdicts table.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// VerdictRow is one proof's stored verdict within a document.
type VerdictRow struct {
	Path        string    `json:"path"`
	Position    int       `json:"position"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	FailedLine  int       `json:"failed_line,omitempty"`
	FailureKind string    `json:"failure_kind,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	VerifiedAt  time.Time `json:"verified_at"`
}

// Summary aggregates verdict counts across the whole index.
type Summary struct {
	Documents int `json:"documents"`
	Proofs    int `json:"proofs"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// UpsertRun records one verification run of a document: the run row and one
// verdict row per proof, replacing any previous run of the same path, all in
// one transaction.
func (db *DB) UpsertRun(path, checksum string, results []runner.Result) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO runs (path, checksum, verified_at)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum    = excluded.checksum,
			verified_at = excluded.verified_at
	`, path, checksum, time.Now())
	if err != nil {
		return fmt.Errorf("index: upsert run: %w", err)
	}

	_, _ = tx.Exec(`DELETE FROM verdicts WHERE path = ?`, path)
	if len(results) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO verdicts (path, position, name, status, failed_line, failure_kind, detail)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("index: prepare verdict insert: %w", err)
		}
		defer stmt.Close()
		for pos, r := range results {
			status, line, kind, detail := StatusSucceeded, 0, "", ""
			if r.Failure != nil {
				status = StatusFailed
				line = r.Failure.LineNumber
				kind = string(r.Failure.Kind)
				detail = r.Failure.Detail
			}
			if _, err := stmt.Exec(path, pos, r.Name, status, line, kind, detail); err != nil {
				return fmt.Errorf("index: insert verdict: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteRun removes a document's run and verdicts.
func (db *DB) DeleteRun(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, _ = tx.Exec(`DELETE FROM verdicts WHERE path = ?`, path)
	_, _ = tx.Exec(`DELETE FROM runs WHERE path = ?`, path)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a document, or empty string if
// the document has never been verified.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM runs WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns path → checksum for every indexed document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM runs`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// GetVerdicts returns the stored verdicts of one document, in proof order.
func (db *DB) GetVerdicts(path string) ([]VerdictRow, error) {
	rows, err := db.conn.Query(`
		SELECT v.path, v.position, v.name, v.status, v.failed_line, v.failure_kind, v.detail, r.verified_at
		FROM verdicts v JOIN runs r ON r.path = v.path
		WHERE v.path = ?
		ORDER BY v.position
	`, path)
	if err != nil {
		return nil, fmt.Errorf("index: get verdicts: %w", err)
	}
	defer rows.Close()
	return scanVerdicts(rows)
}

// ListVerdicts returns a page of verdicts across all documents, optionally
// filtered by status, together with the total count for the filter.
func (db *DB) ListVerdicts(limit, offset int, status string) ([]VerdictRow, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []any{}
	if status != "" {
		where = `WHERE v.status = ?`
		args = append(args, status)
	}

	var total int
	countQ := `SELECT count(*) FROM verdicts v ` + where
	if err := db.conn.QueryRow(countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count verdicts: %w", err)
	}

	q := `
		SELECT v.path, v.position, v.name, v.status, v.failed_line, v.failure_kind, v.detail, r.verified_at
		FROM verdicts v JOIN runs r ON r.path = v.path ` + where + `
		ORDER BY v.path, v.position
		LIMIT ? OFFSET ?
	`
	rows, err := db.conn.Query(q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list verdicts: %w", err)
	}
	defer rows.Close()

	out, err := scanVerdicts(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Summary returns aggregate verdict counts.
func (db *DB) Summary() (Summary, error) {
	var s Summary
	err := db.conn.QueryRow(`
		SELECT
			(SELECT count(*) FROM runs),
			count(*),
			count(*) FILTER (WHERE status = ?),
			count(*) FILTER (WHERE status = ?)
		FROM verdicts
	`, StatusSucceeded, StatusFailed).Scan(&s.Documents, &s.Proofs, &s.Succeeded, &s.Failed)
	if err != nil {
		return Summary{}, fmt.Errorf("index: summary: %w", err)
	}
	return s, nil
}

func scanVerdicts(rows *sql.Rows) ([]VerdictRow, error) {
	var out []VerdictRow
	for rows.Next() {
		var v VerdictRow
		if err := rows.Scan(&v.Path, &v.Position, &v.Name, &v.Status,
			&v.FailedLine, &v.FailureKind, &v.Detail, &v.VerifiedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
