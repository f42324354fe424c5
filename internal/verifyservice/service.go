// Package verifyservice coordinates storage, verification, and the verdict
// index.
package verifyservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/halmos/ponens/internal/apperr"
	"github.com/halmos/ponens/internal/checksum"
	"github.com/halmos/ponens/internal/index"
	"github.com/halmos/ponens/internal/runner"
	"github.com/halmos/ponens/internal/storage"
)

// DocumentDetail is the full representation of a proof document and its
// stored verdicts.
type DocumentDetail struct {
	Path     string             `json:"path"`
	Content  string             `json:"content"`
	Checksum string             `json:"checksum"`
	Verdicts []index.VerdictRow `json:"verdicts"`
}

// Service coordinates storage and index operations.
type Service struct {
	store storage.Provider
	db    index.ProofIndex
}

// NewService creates a new verification service.
func NewService(store storage.Provider, db index.ProofIndex) *Service {
	return &Service{store: store, db: db}
}

// GetDocument reads a document from storage and enriches it with its stored
// verdicts.
func (s *Service) GetDocument(_ context.Context, path string) (*DocumentDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	verdicts, err := s.db.GetVerdicts(path)
	if err != nil {
		return nil, err
	}
	if verdicts == nil {
		verdicts = []index.VerdictRow{}
	}
	return &DocumentDetail{
		Path:     path,
		Content:  string(data),
		Checksum: checksum.Sum(data),
		Verdicts: verdicts,
	}, nil
}

// PutDocument writes a document into the corpus, verifies it, and indexes the
// verdicts. Existing documents are replaced.
func (s *Service) PutDocument(ctx context.Context, path string, content []byte) (*DocumentDetail, error) {
	if !strings.HasSuffix(path, storage.Ext) {
		return nil, fmt.Errorf("document path must end with %s", storage.Ext)
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	results, err := runner.VerifyDocument(ctx, content)
	if err != nil {
		return nil, err
	}
	if err := s.db.UpsertRun(path, checksum.Sum(content), results); err != nil {
		return nil, err
	}
	return s.GetDocument(ctx, path)
}

// DeleteDocument removes a document from storage and index.
func (s *Service) DeleteDocument(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.db.DeleteRun(path)
}

// VerifyDocument re-verifies a stored document and refreshes its indexed
// verdicts.
func (s *Service) VerifyDocument(ctx context.Context, path string) (*DocumentDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	results, err := runner.VerifyDocument(ctx, data)
	if err != nil {
		return nil, err
	}
	if err := s.db.UpsertRun(path, checksum.Sum(data), results); err != nil {
		return nil, err
	}
	return s.GetDocument(ctx, path)
}

// VerifyContent verifies an ad-hoc document without persisting anything.
func (s *Service) VerifyContent(ctx context.Context, content []byte) ([]runner.Result, error) {
	return runner.VerifyDocument(ctx, content)
}

// ListVerdicts returns a page of stored verdicts, optionally filtered by
// status.
func (s *Service) ListVerdicts(_ context.Context, limit, offset int, status string) ([]index.VerdictRow, int, error) {
	rows, total, err := s.db.ListVerdicts(limit, offset, status)
	if err != nil {
		return nil, 0, err
	}
	if rows == nil {
		rows = []index.VerdictRow{}
	}
	return rows, total, nil
}

// Summary returns aggregate verdict counts.
func (s *Service) Summary(_ context.Context) (index.Summary, error) {
	return s.db.Summary()
}
