package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/cache"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
)

func pipelineGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "1", Label: "Aspirin", Type: graph.TypeDrug, Val: 4},
			{ID: "2", Label: "COX-1", Type: graph.TypeProtein},
			{ID: "3", Label: "Gastric irritation", Type: graph.TypeSideEffect},
		},
		Links: []graph.Link{
			{Source: "1", Target: "2", Type: "encodes"},
			{Source: "1", Target: "3", Type: "predicts"},
		},
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("dimensions = %vx%v, want defaults", opts.Width, opts.Height)
	}
	if opts.LinkDistance != 120 || opts.ChargeStrength != -400 || opts.CollideRadius != 40 {
		t.Errorf("physics defaults wrong: %+v", opts)
	}
	if opts.MaxTicks != DefaultMaxTicks {
		t.Errorf("MaxTicks = %d, want %d", opts.MaxTicks, DefaultMaxTicks)
	}
}

func TestOptionsRejectBadFormat(t *testing.T) {
	opts := Options{Formats: []string{"pdf"}}
	err := opts.ValidateAndSetDefaults()
	if err == nil {
		t.Fatal("unsupported format should fail validation")
	}
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidFormat)
	}
}

func TestExecuteProducesLayoutAndArtifacts(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewNullCache(), nil, nil)

	result, err := r.Execute(ctx, pipelineGraph(), Options{
		Seed:    1,
		Formats: []string{FormatJSON, FormatDOT, FormatHTML},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.NodeCount != 3 || result.Stats.LinkCount != 2 {
		t.Errorf("stats = %d nodes, %d links; want 3, 2", result.Stats.NodeCount, result.Stats.LinkCount)
	}
	if result.GraphHash == "" {
		t.Error("graph hash should be computed")
	}
	if len(result.Layout.Positions) != 3 {
		t.Errorf("layout positions = %d, want 3", len(result.Layout.Positions))
	}
	if result.LayoutHit {
		t.Error("null cache should never hit")
	}

	if !strings.Contains(string(result.Artifacts[FormatDOT]), `"1" -- "2"`) {
		t.Error("DOT artifact missing link")
	}
	if !strings.Contains(string(result.Artifacts[FormatHTML]), "d3.forceSimulation") {
		t.Error("HTML artifact missing simulation")
	}
	if _, err := graph.UnmarshalLayout(result.Artifacts[FormatJSON]); err != nil {
		t.Errorf("JSON artifact should decode as layout: %v", err)
	}
}

func TestExecuteRejectsDanglingLink(t *testing.T) {
	g := pipelineGraph()
	g.Links = append(g.Links, graph.Link{Source: "1", Target: "missing"})

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), g, Options{}); err == nil {
		t.Fatal("Execute() should reject dangling links")
	}
}

func TestComputeLayoutUsesCache(t *testing.T) {
	ctx := context.Background()
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(backend, nil, nil)
	g := pipelineGraph()
	opts := Options{Seed: 7}

	first, err := r.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.LayoutHit {
		t.Error("first run should settle, not hit the cache")
	}

	second, err := r.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("Execute() rerun error: %v", err)
	}
	if !second.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if len(second.Layout.Positions) != len(first.Layout.Positions) {
		t.Error("cached layout should match the settled one")
	}

	// Refresh bypasses the cache.
	refreshOpts := opts
	refreshOpts.Refresh = true
	third, err := r.Execute(ctx, g, refreshOpts)
	if err != nil {
		t.Fatalf("Execute() refresh error: %v", err)
	}
	if third.LayoutHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestComputeLayoutKeyedByPhysics(t *testing.T) {
	ctx := context.Background()
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(backend, nil, nil)
	g := pipelineGraph()

	if _, err := r.Execute(ctx, g, Options{Seed: 7}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	other, err := r.Execute(ctx, g, Options{Seed: 7, LinkDistance: 60})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if other.LayoutHit {
		t.Error("different physics should not share cached layouts")
	}
}
