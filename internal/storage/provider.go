// Package storage defines the proof-corpus file-system abstraction.
package storage

import "github.com/halmos/ponens/internal/models"

// Ext is the file extension of proof documents in the corpus.
const Ext = ".proof"

// Provider is the interface for corpus file operations. All paths are
// relative to the corpus root.
type Provider interface {
	// List returns metadata for every proof document under dir.
	List(dir string) ([]models.DocumentMetadata, error)
	// Read returns the raw bytes of the document at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the document at path.
	Delete(path string) error
}
