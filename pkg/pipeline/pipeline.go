// Package pipeline provides the core load → layout → render flow shared by
// the CLI and the viewer server.
//
// The three stages are:
//
//  1. Load: decode and validate a graph document
//  2. Layout: settle the force simulation (cached by content and physics)
//  3. Render: generate outputs in the requested formats
//
// Each stage can be run independently or as part of the complete pipeline.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/force"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultMaxTicks bounds the settle loop. The cooling schedule reaches
	// rest in roughly 300 steps, so this only guards against configurations
	// that keep the simulation warm.
	DefaultMaxTicks = 1000
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatHTML = "html"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatHTML: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width          float64 `json:"width,omitempty"`
	Height         float64 `json:"height,omitempty"`
	LinkDistance   float64 `json:"link_distance,omitempty"`
	ChargeStrength float64 `json:"charge_strength,omitempty"`
	CollideRadius  float64 `json:"collide_radius,omitempty"`
	Seed           int64   `json:"seed,omitempty"`
	MaxTicks       int     `json:"max_ticks,omitempty"`
	Refresh        bool    `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Title   string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// unsupported values.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width <= 0 || o.Height <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "frame must have positive dimensions, got %vx%v", o.Width, o.Height)
	}
	if o.LinkDistance == 0 {
		o.LinkDistance = force.DefaultLinkDistance
	}
	if o.ChargeStrength == 0 {
		o.ChargeStrength = force.DefaultChargeStrength
	}
	if o.CollideRadius == 0 {
		o.CollideRadius = force.DefaultCollideRadius
	}
	if o.MaxTicks == 0 {
		o.MaxTicks = DefaultMaxTicks
	}
	if o.MaxTicks < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_ticks must be positive, got %d", o.MaxTicks)
	}

	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q (want json, dot, svg, png, or html)", f)
		}
	}

	o.validated = true
	return nil
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the validated graph document.
	Graph graph.Graph

	// GraphHash is the content hash of the validated graph document.
	GraphHash string

	// Layout contains the settled node positions.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// LayoutHit reports whether the layout stage was served from cache.
	LayoutHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}
