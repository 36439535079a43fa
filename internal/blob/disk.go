package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Disk writes payloads into a local directory. Stored names derive from the
// upload time and the original filename, so two uploads of the same name in
// the same instant overwrite each other (last write wins).
type Disk struct {
	dir string
}

// NewDisk creates the upload directory if needed and returns a disk store.
func NewDisk(dir string) (*Disk, error) {
	if dir == "" {
		return nil, errors.New("upload dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (d *Disk) Dir() string { return d.dir }

// Put writes the payload and returns a Ref carrying its relative path.
func (d *Disk) Put(_ context.Context, filename string, data []byte) (Ref, error) {
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(filename))
	if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
		return Ref{}, err
	}
	return Ref{Path: name}, nil
}

// Get reads the payload at the referenced path. A record pointing at a
// missing file is an error; no consistency check exists between the two.
func (d *Disk) Get(_ context.Context, ref Ref) ([]byte, error) {
	if ref.Path == "" {
		return nil, errors.New("blob: empty path reference")
	}
	return os.ReadFile(filepath.Join(d.dir, ref.Path))
}
