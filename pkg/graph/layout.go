package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Settled Positions
// =============================================================================

// Layout is the serialization format for a settled force layout: the final
// position of every node plus the viewport the simulation was centered in.
// Layouts are what the cache stores and what the exporters and the HTTP API
// consume.
type Layout struct {
	Width     float64    `json:"width" bson:"width"`
	Height    float64    `json:"height" bson:"height"`
	Positions []Position `json:"positions" bson:"positions"`
}

// Position is a node's settled coordinate, keyed by node ID.
type Position struct {
	ID string  `json:"id" bson:"id"`
	X  float64 `json:"x" bson:"x"`
	Y  float64 `json:"y" bson:"y"`
}

// PositionMap returns the positions indexed by node ID.
func (l *Layout) PositionMap() map[string]Position {
	m := make(map[string]Position, len(l.Positions))
	for _, p := range l.Positions {
		m[p.ID] = p
	}
	return m
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout must have positive dimensions")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
