package force

import "math"

// Defaults match the tuning the interactive viewer ships with: linked nodes
// settle around 120 units apart, every pair repels with strength -400, and
// overlapping nodes are pushed out to a 40 unit clearance radius.
const (
	DefaultLinkDistance   = 120.0
	DefaultChargeStrength = -400.0
	DefaultCollideRadius  = 40.0

	// DefaultReheatAlpha is the warm energy used to reanimate a settled
	// simulation on drag-start or resize.
	DefaultReheatAlpha = 0.3
)

// Cooling constants. Alpha decays toward alphaTarget each tick and the
// simulation stops emitting ticks once it falls below alphaMin.
const (
	alphaMin      = 0.001
	alphaDecay    = 0.0228 // 1 - pow(alphaMin, 1/300)
	velocityDecay = 0.4
)

// chargeDistanceMin2 floors the squared distance in the charge force so
// near-coincident nodes get a bounded shove instead of a 1/d² blowup.
const chargeDistanceMin2 = 1.0

// jiggle returns a tiny deterministic displacement used to separate nodes
// that occupy the exact same point, so force directions stay defined.
func jiggle(r func() float64) float64 {
	return (r() - 0.5) * 1e-6
}

// applyLinks pulls linked nodes toward the configured target separation.
// The per-link strength and bias are derived from node degree so that
// heavily connected nodes move less than their leaf neighbors.
func (s *Simulation) applyLinks(alpha float64) {
	for _, l := range s.links {
		src, dst := l.source, l.target
		dx := dst.X + dst.VX - src.X - src.VX
		dy := dst.Y + dst.VY - src.Y - src.VY
		if dx == 0 {
			dx = jiggle(s.rand)
		}
		if dy == 0 {
			dy = jiggle(s.rand)
		}
		dist := math.Sqrt(dx*dx + dy*dy)
		k := (dist - s.linkDistance) / dist * alpha * l.strength
		dx *= k
		dy *= k
		dst.VX -= dx * l.bias
		dst.VY -= dy * l.bias
		src.VX += dx * (1 - l.bias)
		src.VY += dy * (1 - l.bias)
	}
}

// applyCharge applies pairwise repulsion scaled by inverse squared distance,
// so far-apart pairs feel the charge less.
func (s *Simulation) applyCharge(alpha float64) {
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := s.nodes[i], s.nodes[j]
			dx := b.X - a.X
			dy := b.Y - a.Y
			if dx == 0 {
				dx = jiggle(s.rand)
			}
			if dy == 0 {
				dy = jiggle(s.rand)
			}
			d2 := dx*dx + dy*dy
			if d2 < chargeDistanceMin2 {
				d2 = chargeDistanceMin2
			}
			w := s.chargeStrength * alpha / d2
			a.VX -= dx * w
			a.VY -= dy * w
			b.VX += dx * w
			b.VY += dy * w
		}
	}
}

// applyCenter translates all nodes so their centroid sits on the configured
// viewport center. Pinned nodes are excluded from the correction so a drag
// does not shove the rest of the graph around.
func (s *Simulation) applyCenter() {
	var sx, sy float64
	n := 0
	for _, node := range s.nodes {
		if node.Pinned() {
			continue
		}
		sx += node.X
		sy += node.Y
		n++
	}
	if n == 0 {
		return
	}
	dx := sx/float64(n) - s.centerX
	dy := sy/float64(n) - s.centerY
	for _, node := range s.nodes {
		if node.Pinned() {
			continue
		}
		node.X -= dx
		node.Y -= dy
	}
}

// applyCollide pushes overlapping nodes apart to the minimum clearance
// radius. Positions are evaluated with pending velocity applied, matching
// how the integrator will move them this tick.
func (s *Simulation) applyCollide() {
	min := 2 * s.collideRadius
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			a, b := s.nodes[i], s.nodes[j]
			dx := (b.X + b.VX) - (a.X + a.VX)
			dy := (b.Y + b.VY) - (a.Y + a.VY)
			if dx == 0 {
				dx = jiggle(s.rand)
			}
			if dy == 0 {
				dy = jiggle(s.rand)
			}
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist >= min {
				continue
			}
			k := (min - dist) / dist / 2
			dx *= k
			dy *= k
			a.VX -= dx
			a.VY -= dy
			b.VX += dx
			b.VY += dy
		}
	}
}
