package semantic

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Errors returned by snapshot persistence.
var (
	ErrSnapshotNotFound   = errors.New("semantic index snapshot not found")
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

const (
	// SnapshotFileName is the name of the persisted index file.
	SnapshotFileName = "semantic.gob"

	// CurrentSnapshotVersion is the format version for compatibility
	// checking. Increment on breaking changes to the snapshot format.
	CurrentSnapshotVersion = 1
)

// Snapshot is one fully built generation of the index: the vectors, the
// position<->document mappings, and the cached metadata. The two mappings
// are mutual inverses by construction, and a rebuild replaces the whole
// snapshot at once so stale mappings are never consulted against a newer
// index.
type Snapshot struct {
	index     *Index
	docIDs    []string       // position -> document ID
	positions map[string]int // document ID -> position
	meta      map[string]DocumentMeta

	ModelName    string
	BuiltAt      time.Time
	SkippedCount int
}

// newSnapshot assembles a snapshot from parallel slices. docIDs[i] is the
// document at index position i.
func newSnapshot(index *Index, docIDs []string, meta map[string]DocumentMeta, modelName string, skipped int) *Snapshot {
	positions := make(map[string]int, len(docIDs))
	for pos, id := range docIDs {
		positions[id] = pos
	}
	return &Snapshot{
		index:        index,
		docIDs:       docIDs,
		positions:    positions,
		meta:         meta,
		ModelName:    modelName,
		BuiltAt:      time.Now(),
		SkippedCount: skipped,
	}
}

// Len returns the number of indexed documents.
func (s *Snapshot) Len() int {
	return len(s.docIDs)
}

// DocumentID resolves an index position to a document ID.
func (s *Snapshot) DocumentID(position int) (string, bool) {
	if position < 0 || position >= len(s.docIDs) {
		return "", false
	}
	return s.docIDs[position], true
}

// Position resolves a document ID to its index position.
func (s *Snapshot) Position(documentID string) (int, bool) {
	pos, ok := s.positions[documentID]
	return pos, ok
}

// Metadata returns the cached metadata for a document.
func (s *Snapshot) Metadata(documentID string) (DocumentMeta, bool) {
	m, ok := s.meta[documentID]
	return m, ok
}

// snapshotFile is the on-disk gob representation of a Snapshot.
type snapshotFile struct {
	Version      int
	ModelName    string
	Dimensions   int
	BuiltAt      time.Time
	SkippedCount int
	DocIDs       []string
	Vectors      [][]float32
	Meta         map[string]DocumentMeta
}

// Save persists the snapshot to the given path using GOB encoding.
// The file is written via a temp file and renamed for atomicity.
func (s *Snapshot) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	file := snapshotFile{
		Version:      CurrentSnapshotVersion,
		ModelName:    s.ModelName,
		Dimensions:   s.index.Dimensions(),
		BuiltAt:      s.BuiltAt,
		SkippedCount: s.SkippedCount,
		DocIDs:       s.docIDs,
		Vectors:      s.index.vectors,
		Meta:         s.meta,
	}

	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	enc := gob.NewEncoder(f)
	if err := enc.Encode(file); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// LoadSnapshot reads a snapshot from disk and rebuilds the inverse mapping.
// Returns ErrUnsupportedVersion when the snapshot was written by an
// incompatible format.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	var file snapshotFile
	dec := gob.NewDecoder(f)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	if file.Version != CurrentSnapshotVersion {
		return nil, fmt.Errorf("%w: got %d, want %d (rebuild with 'sgr index build')",
			ErrUnsupportedVersion, file.Version, CurrentSnapshotVersion)
	}
	if len(file.DocIDs) != len(file.Vectors) {
		return nil, fmt.Errorf("corrupt snapshot: %d document IDs but %d vectors",
			len(file.DocIDs), len(file.Vectors))
	}

	index := NewIndex(file.Dimensions)
	if err := index.Add(file.Vectors); err != nil {
		return nil, fmt.Errorf("restoring index: %w", err)
	}

	snap := newSnapshot(index, file.DocIDs, file.Meta, file.ModelName, file.SkippedCount)
	snap.BuiltAt = file.BuiltAt
	return snap, nil
}
