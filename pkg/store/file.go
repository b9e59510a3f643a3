package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
)

// FileStore keeps snapshots as JSON files in a directory, one file per
// snapshot name. The default location is ~/.config/neurograph/snapshots/.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based snapshot store. An empty baseDir uses
// the default config location.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "neurograph", "snapshots")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) snapshotPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Get retrieves a snapshot by name.
func (s *FileStore) Get(ctx context.Context, name string) (*Snapshot, error) {
	if err := errs.ValidateSnapshotName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.snapshotPath(name))
	if os.IsNotExist(err) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "read snapshot %q", name)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "parse snapshot %q", name)
	}
	return &snap, nil
}

// List returns all snapshots without their payloads, newest first.
func (s *FileStore) List(ctx context.Context) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "read snapshot dir")
	}

	var out []Snapshot
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		out = append(out, Snapshot{
			ID:        snap.ID,
			Name:      snap.Name,
			CreatedAt: snap.CreatedAt,
			UpdatedAt: snap.UpdatedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return strings.Compare(out[i].Name, out[j].Name) < 0
	})
	return out, nil
}

// Save stores a snapshot, keeping the ID and creation time of any existing
// snapshot with the same name.
func (s *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := errs.ValidateSnapshotName(snap.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.snapshotPath(snap.Name)
	if data, err := os.ReadFile(path); err == nil {
		var prev Snapshot
		if err := json.Unmarshal(data, &prev); err == nil {
			snap.ID = prev.ID
			snap.CreatedAt = prev.CreatedAt
		}
	}
	snap.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "marshal snapshot %q", snap.Name)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "write snapshot %q", snap.Name)
	}
	return nil
}

// Delete removes a snapshot by name.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errs.ValidateSnapshotName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.snapshotPath(name))
	if os.IsNotExist(err) {
		return notFound(name)
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "remove snapshot %q", name)
	}
	return nil
}

// Close does nothing for the file backend.
func (s *FileStore) Close() error { return nil }

// Path returns the base directory for snapshot files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
