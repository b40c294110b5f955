// Package storage persists uploaded CV files. The S3 backend works with
// any S3-compatible service; the local backend writes to a directory and
// is the default for development.
package storage

import "io"

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file at the given path
	Save(path string, file io.Reader) error

	// Open returns the file stored at the given path
	Open(path string) (io.ReadCloser, error)

	// Delete removes a file at the given path
	Delete(path string) error
}
