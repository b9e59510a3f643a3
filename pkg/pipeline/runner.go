package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/cache"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/force"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/render/export"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/scene"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
)

// Runner executes the pipeline with layout caching.
//
// The Runner is stateless except for the cache and logger - it does not
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Layouts *cache.LayoutCache
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache backend and keyer.
// A nil cache disables layout caching; a nil keyer uses the default scheme.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Layouts: cache.NewLayoutCache(c, keyer),
		Logger:  logger,
	}
}

// Execute runs the complete load → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	if err := g.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Graph:     g,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.LinkCount = len(g.Links)

	data, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, err
	}
	result.GraphHash = cache.Hash(data)

	layoutStart := time.Now()
	layout, hit, err := r.ComputeLayout(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.LayoutHit = hit
	result.Stats.LayoutTime = time.Since(layoutStart)

	opts.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"links", result.Stats.LinkCount,
		"cached", hit,
		"duration", result.Stats.LayoutTime.Round(time.Millisecond))

	renderStart := time.Now()
	for _, format := range opts.Formats {
		artifact, err := r.Render(ctx, g, layout, format, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = artifact
	}
	result.Stats.RenderTime = time.Since(renderStart)

	if len(opts.Formats) > 0 {
		opts.Logger.Info("rendered outputs",
			"formats", opts.Formats,
			"duration", result.Stats.RenderTime.Round(time.Millisecond))
	}

	return result, nil
}

// ComputeLayout settles the force simulation for a graph, consulting the
// layout cache first. The second return reports a cache hit.
func (r *Runner) ComputeLayout(ctx context.Context, g graph.Graph, graphHash string, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	key := cache.LayoutKeyOpts{
		Width:          opts.Width,
		Height:         opts.Height,
		LinkDistance:   opts.LinkDistance,
		ChargeStrength: opts.ChargeStrength,
		CollideRadius:  opts.CollideRadius,
		Seed:           opts.Seed,
	}

	if !opts.Refresh {
		if l, hit, err := r.Layouts.Get(ctx, graphHash, key); err == nil && hit {
			return l, true, nil
		}
	}

	s, err := scene.New(g, scene.Options{
		Width:  opts.Width,
		Height: opts.Height,
		Physics: force.Config{
			LinkDistance:   opts.LinkDistance,
			ChargeStrength: opts.ChargeStrength,
			CollideRadius:  opts.CollideRadius,
			Seed:           opts.Seed,
		},
	})
	if err != nil {
		return graph.Layout{}, false, err
	}
	defer s.Close()

	s.Settle(opts.MaxTicks)
	l := s.Layout()

	if err := r.Layouts.Set(ctx, graphHash, key, l); err != nil {
		// A failed cache write costs a recompute next run, nothing more.
		opts.Logger.Warn("layout cache write failed", "err", err)
	}
	return l, false, nil
}

// Render generates one output format for a settled layout.
func (r *Runner) Render(ctx context.Context, g graph.Graph, l graph.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(l)
	case FormatDOT:
		return []byte(export.ToDOT(g, &l)), nil
	case FormatSVG:
		return export.RenderSVG(ctx, export.ToDOT(g, &l))
	case FormatPNG:
		return export.RenderPNG(ctx, export.ToDOT(g, &l))
	case FormatHTML:
		return export.RenderHTML(g, export.HTMLOptions{
			Title:  opts.Title,
			Width:  opts.Width,
			Height: opts.Height,
			Layout: &l,
		})
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}

// applyLogger ensures opts carries a usable logger.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
