package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"jfold/internal/fold"
	"jfold/internal/source"
)

// Current schema version - increment when Snapshot format changes
const snapshotSchemaVersion uint16 = 1

var (
	ErrSnapshotSchema   = errors.New("snapshot schema mismatch")
	ErrSnapshotMismatch = errors.New("snapshot belongs to another revision")
)

// Snapshot is an installed model saved next to the document it belongs to.
type Snapshot struct {
	Schema  uint16
	Path    string
	Hash    [32]byte // of the document the model was computed for
	NextID  fold.Identity
	Entries []fold.Entry
}

// NewSnapshot captures model as computed for file.
func NewSnapshot(file *source.File, model *fold.Model) *Snapshot {
	return &Snapshot{
		Schema:  snapshotSchemaVersion,
		Path:    file.Path,
		Hash:    file.Hash,
		NextID:  model.NextIdentity(),
		Entries: model.Entries(),
	}
}

// Model rebuilds the saved model.
func (s *Snapshot) Model() *fold.Model {
	return fold.RestoreModel(s.Entries, s.NextID)
}

// ModelFor rebuilds the saved model for file. When the snapshot was taken for
// other content the model is still returned, with ErrSnapshotMismatch; a
// change pass over it carries collapse state across by owner.
func (s *Snapshot) ModelFor(file *source.File) (*fold.Model, error) {
	if !s.Matches(file) {
		return s.Model(), fmt.Errorf("%s: %w", file.Path, ErrSnapshotMismatch)
	}
	return s.Model(), nil
}

// Matches reports whether the snapshot was taken for exactly file's content.
func (s *Snapshot) Matches(file *source.File) bool {
	return s.Hash == file.Hash
}

// SaveSnapshot writes snap to path atomically.
func SaveSnapshot(path string, snap *Snapshot) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(snap); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("%s: %w: got %d, want %d", path, ErrSnapshotSchema, snap.Schema, snapshotSchemaVersion)
	}
	return &snap, nil
}
