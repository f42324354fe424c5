// Package models defines the domain types for Ponens.
package models

import "time"

// DocumentMetadata is a lightweight representation of a proof document in the
// corpus, returned by list operations.
type DocumentMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
