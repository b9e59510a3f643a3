package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadGraph reads and validates a JSON graph from r.
// The returned graph has passed [Graph.Validate]; callers can hand it
// straight to scene construction.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	dec := json.NewDecoder(r)
	if err := dec.Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode graph: %w", err)
	}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// ReadGraphFile reads and validates a JSON graph from a file.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// MarshalGraph serializes a graph to pretty-printed JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// WriteGraph writes a graph as JSON to w.
func WriteGraph(g Graph, w io.Writer) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteGraphFile writes a graph to a JSON file.
func WriteGraphFile(g Graph, path string) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
