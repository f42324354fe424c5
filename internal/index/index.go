package index

import "github.com/halmos/ponens/internal/runner"

// ProofIndex defines the interface for verdict index operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type ProofIndex interface {
	UpsertRun(path, checksum string, results []runner.Result) error
	DeleteRun(path string) error
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	GetVerdicts(path string) ([]VerdictRow, error)
	ListVerdicts(limit, offset int, status string) ([]VerdictRow, int, error)
	Summary() (Summary, error)
	Close() error
}

// Verify *DB satisfies ProofIndex at compile time.
var _ ProofIndex = (*DB)(nil)
