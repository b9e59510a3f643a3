package export

import (
	"strings"
	"testing"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"
)

func exportGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "1", Label: "Aspirin", Type: graph.TypeDrug, Val: 4},
			{ID: "2", Label: "COX-1", Type: graph.TypeProtein},
		},
		Links: []graph.Link{{Source: "1", Target: "2", Type: "encodes"}},
	}
}

func exportLayout() graph.Layout {
	return graph.Layout{
		Width:  800,
		Height: 600,
		Positions: []graph.Position{
			{ID: "1", X: 300.5, Y: 200},
			{ID: "2", X: 420, Y: 260},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(exportGraph(), nil)

	for _, want := range []string{
		`graph G {`,
		`"1" [`,
		`label="Aspirin"`,
		`fillcolor="` + graph.ColorDrug + `"`,
		`"1" -- "2" [label="encodes"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "pos=") {
		t.Error("DOT without a layout should not pin positions")
	}
}

func TestToDOTPinsLayoutPositions(t *testing.T) {
	l := exportLayout()
	dot := ToDOT(exportGraph(), &l)

	// Y is negated for graphviz's upward axis, and the "!" pin suffix keeps
	// neato from moving the node.
	if !strings.Contains(dot, `pos="300.50,-200.00!"`) {
		t.Errorf("DOT missing pinned position:\n%s", dot)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(exportGraph(), HTMLOptions{Title: "Interactions"})
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}

	page := string(html)
	for _, want := range []string{
		"<title>Interactions</title>",
		"d3.forceSimulation",
		".distance(120)",
		".strength(-400)",
		".radius(40)",
		"scaleExtent([0.1, 8])",
		`"id":"1"`,
		`"type":"encodes"`,
		"No description available.",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestRenderHTMLSeedsLayout(t *testing.T) {
	l := exportLayout()
	html, err := RenderHTML(exportGraph(), HTMLOptions{Layout: &l})
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	if !strings.Contains(string(html), `"x":300.5`) {
		t.Error("HTML should embed seeded positions")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="540pt" height="360pt" viewBox="0.00 0.00 540.00 360.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)

	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 540.00 360.00"`) {
		t.Errorf("viewBox not normalized:\n%s", out)
	}
	if strings.Contains(out, "540pt") {
		t.Error("point-based dimensions should be rewritten")
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	in := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	if got := normalizeViewBox(in); string(got) != string(in) {
		t.Error("SVG without a viewBox should pass through unchanged")
	}
}
