// Package store persists named snapshots of a graph together with its
// settled layout, so an interesting arrangement can be reopened later
// without resettling.
//
// Two backends exist: a file store for CLI usage and a mongo store for
// server deployments.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
)

// Snapshot is a named graph plus the layout it was saved with.
type Snapshot struct {
	ID        string       `json:"id" bson:"_id"`
	Name      string       `json:"name" bson:"name"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
	Graph     graph.Graph  `json:"graph" bson:"graph"`
	Layout    graph.Layout `json:"layout" bson:"layout"`
}

// NewSnapshot builds a snapshot with a fresh ID and timestamps.
func NewSnapshot(name string, g graph.Graph, l graph.Layout) (*Snapshot, error) {
	if err := errs.ValidateSnapshotName(name); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Graph:     g,
		Layout:    l,
	}, nil
}

// Store is the interface snapshot backends implement. Snapshots are
// addressed by name; saving an existing name replaces the snapshot while
// keeping its ID and creation time.
type Store interface {
	// Get retrieves a snapshot by name.
	Get(ctx context.Context, name string) (*Snapshot, error)

	// List returns all snapshot names with their timestamps, newest first.
	// Graph and layout payloads are not loaded.
	List(ctx context.Context) ([]Snapshot, error)

	// Save stores a snapshot, replacing any existing one with the same name.
	Save(ctx context.Context, snap *Snapshot) error

	// Delete removes a snapshot by name.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close() error
}

// notFound builds the standard missing-snapshot error.
func notFound(name string) error {
	return errs.New(errs.ErrCodeSnapshotNotFound, "snapshot %q not found", name)
}
