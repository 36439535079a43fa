package blob

import (
	"context"
	"errors"
)

// Embedded keeps payload bytes in the Ref itself so the caller can store
// them inside the owning document.
type Embedded struct{}

// NewEmbedded returns an embedded-bytes store.
func NewEmbedded() *Embedded { return &Embedded{} }

// Put hands the payload back for document embedding.
func (e *Embedded) Put(_ context.Context, _ string, data []byte) (Ref, error) {
	if len(data) == 0 {
		return Ref{}, errors.New("blob: empty payload")
	}
	return Ref{Data: data}, nil
}

// Get returns the embedded payload.
func (e *Embedded) Get(_ context.Context, ref Ref) ([]byte, error) {
	if len(ref.Data) == 0 {
		return nil, errors.New("blob: no embedded payload")
	}
	return ref.Data, nil
}
