// Package graph defines the biomedical interaction graph model and its
// serialization formats.
//
// # Overview
//
// A [Graph] is a finite set of typed nodes (drugs, proteins, side effects)
// connected by typed links. The package owns two serialization formats:
//
//   - Graph: the input contract - nodes and links as supplied by a caller
//     (dataset file, API request, snapshot store)
//   - Layout: the output contract - settled 2D positions produced by the
//     force simulation, consumed by exporters and the HTTP API
//
// # Validation
//
// Graphs are validated on read: node IDs must be non-empty and unique, and
// every link endpoint must resolve to a node in the set. A dangling link
// reference is a hard error rather than a silent drop, because a partially
// connected rendering would misrepresent the data to the viewer.
//
//	g, err := graph.ReadGraphFile("dataset.json")
//	if err != nil {
//	    // e.g. graph.ErrUnknownLinkTarget
//	}
//
// # Visual Encoding
//
// The node radius and color formulas live here ([Node.Radius], [Node.Color])
// so that the interactive scene, the SVG exporter, and the HTML viewer all
// derive identical visuals from one definition. Hover emphasis in the scene
// is removed by recomputing these formulas, never by restoring cached values.
package graph
