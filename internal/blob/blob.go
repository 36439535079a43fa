// Package blob stores uploaded assessment payloads. Two interchangeable
// backends exist: Disk keeps files in a local directory and hands back a
// relative path, Embedded keeps the raw bytes for embedding in the owning
// document. One backend is chosen per deployment.
package blob

import "context"

// Ref describes where a payload was placed. Exactly one of Path or Data is
// set, depending on the backend.
type Ref struct {
	Path string
	Data []byte
}

// Storage places and retrieves payload bytes.
type Storage interface {
	Put(ctx context.Context, filename string, data []byte) (Ref, error)
	Get(ctx context.Context, ref Ref) ([]byte, error)
}
