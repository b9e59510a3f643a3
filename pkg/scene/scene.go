package scene

import (
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/force"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/observability"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
)

// Default viewport used when the caller does not supply dimensions.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Options configures scene construction.
type Options struct {
	// Width and Height are the logical viewport dimensions. Zero values
	// fall back to the package defaults.
	Width  float64
	Height float64

	// Physics tunes the force solver. Zero fields use the force package
	// defaults (link distance 120, charge -400, collision radius 40).
	Physics force.Config

	// OnNodeClick is invoked with the clicked node's original object, or
	// nil when a background click deselects. Optional.
	OnNodeClick func(*graph.Node)

	// EntryAnimation enables the cosmetic pop-in of nodes and fade-in of
	// links and labels after construction. Purely visual; the settled
	// geometry is identical either way.
	EntryAnimation bool
}

// sceneLink is a link resolved to its simulation nodes. Resolution happens
// once in New; nothing re-resolves by ID afterwards.
type sceneLink struct {
	key    string
	typ    string
	source *force.Node
	target *force.Node
}

// Scene is one mounted graph visualization: the force simulation, the
// visual primitives it writes into, the pan/zoom transform, and the
// hover/selection state. A Scene is built for one node/link set and torn
// down with [Scene.Close] before the data or display mode changes; it is
// never rebuilt in place.
//
// All methods must be called from the single goroutine that drives frames.
type Scene struct {
	width  float64
	height float64

	// original points into the caller's node slice so clicks report the
	// full original objects; work is the private simulation copy.
	original map[string]*graph.Node
	work     graph.Graph

	sim      *force.Simulation
	simNodes map[string]*force.Node
	links    []sceneLink

	visuals   Visuals
	transform Transform

	hovered  string
	selected string
	dragging string

	// pendingResize coalesces resize notifications; only the most recent
	// one is applied, on the next frame.
	pendingResize *[2]float64

	entryTick int
	animate   bool
	stopped   bool

	onNodeClick func(*graph.Node)
}

// New constructs a scene for the given graph. The input is validated and
// shallow-cloned; the simulation only ever mutates the clone. A graph whose
// links reference unknown node IDs fails construction and renders nothing.
//
// An empty node set yields an inert scene: no simulation is created and the
// render surface stays untouched.
func New(g graph.Graph, opts Options) (*Scene, error) {
	if err := g.Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "build scene")
	}

	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	s := &Scene{
		width:       opts.Width,
		height:      opts.Height,
		original:    make(map[string]*graph.Node, len(g.Nodes)),
		work:        g.Clone(),
		simNodes:    make(map[string]*force.Node, len(g.Nodes)),
		transform:   IdentityTransform(),
		animate:     opts.EntryAnimation,
		onNodeClick: opts.OnNodeClick,
	}
	for i := range g.Nodes {
		s.original[g.Nodes[i].ID] = &g.Nodes[i]
	}

	if len(s.work.Nodes) == 0 {
		return s, nil
	}

	simNodes := make([]*force.Node, len(s.work.Nodes))
	for i := range s.work.Nodes {
		n := &force.Node{ID: s.work.Nodes[i].ID}
		simNodes[i] = n
		s.simNodes[n.ID] = n
	}
	simLinks := make([]force.Link, len(s.work.Links))
	for i, l := range s.work.Links {
		simLinks[i] = force.Link{Source: l.Source, Target: l.Target}
	}

	cfg := opts.Physics
	cfg.Width = opts.Width
	cfg.Height = opts.Height
	sim, err := force.New(simNodes, simLinks, cfg)
	if err != nil {
		// Validate catches these first; a failure here is internal.
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "initialize simulation")
	}
	s.sim = sim

	for _, l := range s.work.Links {
		s.links = append(s.links, sceneLink{
			key:    l.Key(),
			typ:    l.Type,
			source: s.simNodes[l.Source],
			target: s.simNodes[l.Target],
		})
	}

	s.initVisuals()
	s.syncVisuals()

	observability.Scene().OnSceneInit(len(s.work.Nodes), len(s.work.Links))
	return s, nil
}

// Tick advances the scene by one frame: the latest queued resize is applied,
// the simulation steps if it still holds energy, and current positions are
// written into the visual primitives. Ticks arriving after Close are
// swallowed; they never touch the stale render surface.
func (s *Scene) Tick() {
	if s.stopped {
		return
	}
	if s.pendingResize != nil {
		w, h := s.pendingResize[0], s.pendingResize[1]
		s.pendingResize = nil
		s.applyResize(w, h)
	}
	if s.sim == nil {
		return
	}
	if s.sim.Step() {
		s.syncVisuals()
		observability.Scene().OnTick(s.sim.Alpha())
	}
}

// Active reports whether further ticks will move nodes.
func (s *Scene) Active() bool {
	return !s.stopped && s.sim != nil && s.sim.Active()
}

// Settle drives the scene until the simulation cools or maxTicks frames
// have run. Used for batch layout where no frames are displayed.
func (s *Scene) Settle(maxTicks int) {
	for i := 0; i < maxTicks && s.Active(); i++ {
		s.Tick()
	}
}

// Node returns the original caller-supplied node for an ID.
func (s *Scene) Node(id string) (*graph.Node, bool) {
	n, ok := s.original[id]
	return n, ok
}

// workNode returns the scene's private copy for an ID, used for the visual
// encoding formulas.
func (s *Scene) workNode(id string) *graph.Node {
	for i := range s.work.Nodes {
		if s.work.Nodes[i].ID == id {
			return &s.work.Nodes[i]
		}
	}
	return nil
}

// Hovered returns the ID of the hovered node, or "".
func (s *Scene) Hovered() string { return s.hovered }

// Selected returns the ID of the selected node, or "".
func (s *Scene) Selected() string { return s.selected }

// Viewport returns the current logical viewport dimensions.
func (s *Scene) Viewport() (w, h float64) { return s.width, s.height }

// Layout snapshots the current node positions for caching or export.
func (s *Scene) Layout() graph.Layout {
	l := graph.Layout{Width: s.width, Height: s.height}
	for i := range s.work.Nodes {
		n := s.simNodes[s.work.Nodes[i].ID]
		if n == nil {
			continue
		}
		l.Positions = append(l.Positions, graph.Position{ID: n.ID, X: n.X, Y: n.Y})
	}
	return l
}
