package force

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrUnknownNode is returned by [New] when a link references a node ID
	// that is not present in the node set. Links are resolved into direct
	// node references exactly once at construction; there is no re-resolution
	// later, so a dangling reference must fail the build.
	ErrUnknownNode = errors.New("link references unknown node")

	// ErrDuplicateNode is returned by [New] when two nodes share an ID.
	ErrDuplicateNode = errors.New("duplicate node ID")
)

// Node is a body in the simulation. X/Y are the current position, VX/VY the
// pending velocity. FX/FY, when non-nil, pin the node: the solver writes the
// pinned coordinates back every tick instead of integrating.
type Node struct {
	ID     string
	X, Y   float64
	VX, VY float64
	FX, FY *float64
}

// Pinned reports whether the node has a fixed position override.
func (n *Node) Pinned() bool { return n.FX != nil || n.FY != nil }

// Pin fixes the node at (x, y). The solver respects the pin until Unpin.
func (n *Node) Pin(x, y float64) {
	n.FX = &x
	n.FY = &y
}

// Unpin releases the node back to free physics.
func (n *Node) Unpin() {
	n.FX = nil
	n.FY = nil
}

// Link connects two nodes by ID. Resolution happens in [New].
type Link struct {
	Source string
	Target string
}

// resolvedLink carries direct node references plus the degree-derived
// strength and bias computed at construction.
type resolvedLink struct {
	source   *Node
	target   *Node
	strength float64
	bias     float64
}

// Config tunes the solver. Zero values fall back to the package defaults.
type Config struct {
	LinkDistance   float64
	ChargeStrength float64
	CollideRadius  float64
	Width          float64
	Height         float64

	// Seed makes initial placement deterministic; 0 uses a fixed seed so
	// layouts are reproducible by default.
	Seed int64
}

// Simulation is an iterative force solver that assigns 2D positions to
// nodes. It runs as a cooling process: each [Simulation.Step] applies the
// forces scaled by the current alpha, integrates velocities, and decays
// alpha toward the target. Once alpha falls below the stop threshold the
// simulation is settled and Step becomes a no-op until reheated.
//
// Simulation is not safe for concurrent use; the owning scene drives it from
// a single goroutine.
type Simulation struct {
	nodes []*Node
	links []resolvedLink

	linkDistance   float64
	chargeStrength float64
	collideRadius  float64
	centerX        float64
	centerY        float64

	alpha       float64
	alphaTarget float64
	stopped     bool

	onTick func()
	rand   func() float64
}

// New builds a simulation over the given nodes and links and assigns the
// initial placement: viewport center with small deterministic jitter.
// Node positions already set by the caller (non-zero) are kept.
//
// Returns ErrDuplicateNode or ErrUnknownNode when the node set or the link
// endpoints violate the identity invariants.
func New(nodes []*Node, links []Link, cfg Config) (*Simulation, error) {
	if cfg.LinkDistance == 0 {
		cfg.LinkDistance = DefaultLinkDistance
	}
	if cfg.ChargeStrength == 0 {
		cfg.ChargeStrength = DefaultChargeStrength
	}
	if cfg.CollideRadius == 0 {
		cfg.CollideRadius = DefaultCollideRadius
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	s := &Simulation{
		nodes:          nodes,
		linkDistance:   cfg.LinkDistance,
		chargeStrength: cfg.ChargeStrength,
		collideRadius:  cfg.CollideRadius,
		centerX:        cfg.Width / 2,
		centerY:        cfg.Height / 2,
		alpha:          1,
		rand:           rng.Float64,
	}

	byID := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		if _, exists := byID[n.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		byID[n.ID] = n
	}

	degree := make(map[*Node]int)
	for _, l := range links {
		src, ok := byID[l.Source]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, l.Source)
		}
		dst, ok := byID[l.Target]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, l.Target)
		}
		degree[src]++
		degree[dst]++
		s.links = append(s.links, resolvedLink{source: src, target: dst})
	}
	for i := range s.links {
		l := &s.links[i]
		ds, dt := degree[l.source], degree[l.target]
		l.strength = 1 / float64(min(ds, dt))
		l.bias = float64(ds) / float64(ds+dt)
	}

	for _, n := range nodes {
		if n.X == 0 && n.Y == 0 {
			angle := rng.Float64() * 2 * math.Pi
			r := rng.Float64() * 10
			n.X = s.centerX + math.Cos(angle)*r
			n.Y = s.centerY + math.Sin(angle)*r
		}
	}

	return s, nil
}

// OnTick registers fn to run after every step while the simulation is
// active. At most one handler is supported; nil clears it.
func (s *Simulation) OnTick(fn func()) { s.onTick = fn }

// Nodes returns the simulation's node slice. The nodes are live: the solver
// mutates their positions in place.
func (s *Simulation) Nodes() []*Node { return s.nodes }

// Alpha returns the current cooling energy.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Active reports whether further steps will move nodes: the simulation has
// not been stopped and either holds energy above the stop threshold or has a
// warm alpha target (e.g. during a drag).
func (s *Simulation) Active() bool {
	return !s.stopped && (s.alpha >= alphaMin || s.alphaTarget > 0)
}

// Reheat raises alpha to at least v so a settled simulation animates again.
// Used on drag-start and after a resize.
func (s *Simulation) Reheat(v float64) {
	if s.stopped {
		return
	}
	if v > s.alpha {
		s.alpha = v
	}
}

// SetAlphaTarget sets the decay target. A warm target (e.g. 0.3) keeps the
// simulation live for the duration of a drag; resetting to 0 lets it cool.
func (s *Simulation) SetAlphaTarget(v float64) { s.alphaTarget = v }

// SetCenter moves the centering force, typically after a viewport resize.
func (s *Simulation) SetCenter(x, y float64) {
	s.centerX = x
	s.centerY = y
}

// Center returns the current center force position.
func (s *Simulation) Center() (x, y float64) { return s.centerX, s.centerY }

// Stop permanently halts the simulation. Subsequent Step calls do nothing
// and emit no ticks; there is no restart after Stop.
func (s *Simulation) Stop() { s.stopped = true }

// Stopped reports whether Stop has been called.
func (s *Simulation) Stopped() bool { return s.stopped }

// Step advances the simulation by one tick: decay alpha, apply the four
// forces, integrate velocities, and re-assert pins. It reports whether the
// simulation was active; an inactive or stopped simulation is untouched.
func (s *Simulation) Step() bool {
	if !s.Active() || len(s.nodes) == 0 {
		return false
	}

	s.alpha += (s.alphaTarget - s.alpha) * alphaDecay

	s.applyLinks(s.alpha)
	s.applyCharge(s.alpha)
	s.applyCollide()
	s.applyCenter()

	for _, n := range s.nodes {
		n.VX *= 1 - velocityDecay
		n.VY *= 1 - velocityDecay
		n.X += n.VX
		n.Y += n.VY
		if n.FX != nil {
			n.X = *n.FX
			n.VX = 0
		}
		if n.FY != nil {
			n.Y = *n.FY
			n.VY = 0
		}
	}

	if s.onTick != nil {
		s.onTick()
	}
	return true
}

// Settle steps the simulation until it cools or maxSteps is reached,
// whichever comes first. Used for batch layout where no frames are rendered.
func (s *Simulation) Settle(maxSteps int) {
	for i := 0; i < maxSteps; i++ {
		if !s.Step() {
			return
		}
	}
}
