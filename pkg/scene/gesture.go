package scene

import (
	"math"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/force"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/observability"
)

// Zoom scale bounds. Wheel input is clamped into this range regardless of
// delta magnitude.
const (
	MinZoom = 0.1
	MaxZoom = 8.0
)

// Transform is the 2D affine transform applied to the whole rendering
// group: screen = world*Scale + (TX, TY).
type Transform struct {
	Scale float64
	TX    float64
	TY    float64
}

// IdentityTransform returns the untransformed state.
func IdentityTransform() Transform { return Transform{Scale: 1} }

// Apply maps world coordinates to screen coordinates.
func (t Transform) Apply(x, y float64) (sx, sy float64) {
	return x*t.Scale + t.TX, y*t.Scale + t.TY
}

// Invert maps screen coordinates back to world coordinates.
func (t Transform) Invert(sx, sy float64) (x, y float64) {
	return (sx - t.TX) / t.Scale, (sy - t.TY) / t.Scale
}

// EventKind discriminates gesture events.
type EventKind int

const (
	// Pan translates the scene. Dx/Dy are screen-space deltas. Drivers
	// emit Pan only for drags that start on empty background.
	Pan EventKind = iota

	// Zoom scales the scene around the pointer. Factor is multiplicative
	// (e.g. 1.1 per wheel notch up).
	Zoom

	// DragStart begins dragging the node under the pointer, pinning it
	// and reheating the simulation. Ignored over empty background.
	DragStart

	// DragMove moves the active drag's pin to the pointer.
	DragMove

	// DragEnd releases the pin and lets the simulation cool.
	DragEnd

	// Click reports a press-and-release without movement. On a node it
	// selects and notifies the caller; on the background it deselects.
	// Drivers must not emit Click for gestures that panned or dragged.
	Click

	// Hover reports pointer motion without buttons. Entering a node
	// applies highlight emphasis and shows the tooltip; moving over
	// empty space restores baseline.
	Hover

	// Leave reports the pointer exiting the container entirely.
	Leave
)

// Event is the tagged union consumed by [Scene.Dispatch]. X/Y are pointer
// coordinates in container (screen) space; Dx/Dy and Factor are only
// meaningful for Pan and Zoom respectively. Nodes are never referenced
// directly: the dispatcher hit-tests against the scene's current node map,
// so events can be synthesized in tests without a pointer device.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Dx, Dy float64
	Factor float64
}

// Dispatch routes one gesture event through the scene. Events arriving
// after Close are swallowed.
func (s *Scene) Dispatch(ev Event) {
	if s.stopped {
		return
	}
	observability.Scene().OnGesture(int(ev.Kind))

	switch ev.Kind {
	case Pan:
		s.transform.TX += ev.Dx
		s.transform.TY += ev.Dy
	case Zoom:
		s.zoomAt(ev.X, ev.Y, ev.Factor)
	case DragStart:
		s.dragStart(ev.X, ev.Y)
	case DragMove:
		s.dragMove(ev.X, ev.Y)
	case DragEnd:
		s.dragEnd()
	case Click:
		s.click(ev.X, ev.Y)
	case Hover:
		s.hover(ev.X, ev.Y)
	case Leave:
		s.clearHover()
	}
}

// Transform returns the current pan/zoom transform.
func (s *Scene) Transform() Transform { return s.transform }

// NodeAt hit-tests screen coordinates against the rendered circles and
// returns the topmost node ID, or "" when the pointer is over background.
func (s *Scene) NodeAt(sx, sy float64) string {
	wx, wy := s.transform.Invert(sx, sy)
	for i := len(s.work.Nodes) - 1; i >= 0; i-- {
		n := &s.work.Nodes[i]
		sn := s.simNodes[n.ID]
		if sn == nil {
			continue
		}
		if math.Hypot(wx-sn.X, wy-sn.Y) <= n.Radius() {
			return n.ID
		}
	}
	return ""
}

// zoomAt scales around the pointer so the world point under it stays fixed.
func (s *Scene) zoomAt(sx, sy, factor float64) {
	if factor <= 0 {
		return
	}
	scale := s.transform.Scale * factor
	scale = math.Max(MinZoom, math.Min(MaxZoom, scale))
	if scale == s.transform.Scale {
		return
	}
	wx, wy := s.transform.Invert(sx, sy)
	s.transform.Scale = scale
	s.transform.TX = sx - wx*scale
	s.transform.TY = sy - wy*scale
}

func (s *Scene) dragStart(sx, sy float64) {
	id := s.NodeAt(sx, sy)
	if id == "" {
		return
	}
	s.dragging = id
	n := s.simNodes[id]
	n.Pin(n.X, n.Y)
	if s.sim != nil {
		s.sim.SetAlphaTarget(force.DefaultReheatAlpha)
		s.sim.Reheat(force.DefaultReheatAlpha)
	}
}

func (s *Scene) dragMove(sx, sy float64) {
	if s.dragging == "" {
		return
	}
	wx, wy := s.transform.Invert(sx, sy)
	s.simNodes[s.dragging].Pin(wx, wy)
}

// dragEnd releases the pin so the node returns to free physics, and resets
// the alpha target so the simulation cools back toward rest.
func (s *Scene) dragEnd() {
	if s.dragging == "" {
		return
	}
	s.simNodes[s.dragging].Unpin()
	s.dragging = ""
	if s.sim != nil {
		s.sim.SetAlphaTarget(0)
	}
}

// click selects the node under the pointer or deselects on background.
// The node branch returns before the background branch is considered, so a
// click landing on a node never reaches the deselect handler.
func (s *Scene) click(sx, sy float64) {
	if id := s.NodeAt(sx, sy); id != "" {
		s.selected = id
		if s.onNodeClick != nil {
			// Report the caller's original object, which retains fields
			// (e.g. description) the simulation copy does not need.
			s.onNodeClick(s.original[id])
		}
		return
	}
	s.selected = ""
	if s.onNodeClick != nil {
		s.onNodeClick(nil)
	}
}
