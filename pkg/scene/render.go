package scene

import "math"

// Baseline visual constants. Highlight restoration recomputes from these and
// from the graph package's radius/color formulas, never from saved values.
const (
	baseStrokeWidth = 1.5
	baseNodeOpacity = 1.0

	linkBaseColor   = "#999999"
	linkBaseWidth   = 1.5
	linkBaseOpacity = 0.4
)

// Entry animation timing, in ticks. Cosmetic only.
const (
	entryPopTicks   = 20
	entryLabelDelay = 10
	entryTotalTicks = entryPopTicks + entryLabelDelay
)

// Circle is the rendered shape for one node. Coordinates are world units;
// the consumer applies the scene transform when drawing.
type Circle struct {
	NodeID      string
	X, Y        float64
	R           float64
	Fill        string
	StrokeWidth float64
	Opacity     float64
}

// Line is the rendered geometry for one link.
type Line struct {
	LinkKey        string
	X1, Y1, X2, Y2 float64
	Color          string
	Width          float64
	Opacity        float64
}

// LinkLabel is a link's relationship text, positioned at the midpoint.
// Labels are hidden at baseline and revealed for links touching the hovered
// node.
type LinkLabel struct {
	LinkKey string
	Text    string
	X, Y    float64
	Visible bool
}

// NodeLabel is a node's display label, positioned below the circle.
type NodeLabel struct {
	NodeID  string
	Text    string
	X, Y    float64
	Opacity float64
}

// Visuals holds every visual primitive in the scene, keyed by node ID or
// link key. Primitives are created once at construction; each tick only
// rewrites their coordinates, so identity-preserving updates avoid flicker.
type Visuals struct {
	Circles    map[string]*Circle
	Lines      map[string]*Line
	LinkLabels map[string]*LinkLabel
	NodeLabels map[string]*NodeLabel
	Tooltip    Tooltip
}

// Visuals exposes the scene's primitives for drawing. The maps are live;
// consumers must treat them as read-only.
func (s *Scene) Visuals() *Visuals { return &s.visuals }

// initVisuals creates the primitives for the current node/link set. Called
// exactly once, from New. No other code path allocates visual elements.
func (s *Scene) initVisuals() {
	s.visuals = Visuals{
		Circles:    make(map[string]*Circle, len(s.work.Nodes)),
		Lines:      make(map[string]*Line, len(s.links)),
		LinkLabels: make(map[string]*LinkLabel, len(s.links)),
		NodeLabels: make(map[string]*NodeLabel, len(s.work.Nodes)),
	}

	for i := range s.work.Nodes {
		n := &s.work.Nodes[i]
		s.visuals.Circles[n.ID] = &Circle{
			NodeID:      n.ID,
			R:           n.Radius(),
			Fill:        n.Color(),
			StrokeWidth: baseStrokeWidth,
			Opacity:     baseNodeOpacity,
		}
		s.visuals.NodeLabels[n.ID] = &NodeLabel{
			NodeID:  n.ID,
			Text:    n.DisplayLabel(),
			Opacity: 1,
		}
	}
	for _, l := range s.links {
		s.visuals.Lines[l.key] = &Line{
			LinkKey: l.key,
			Color:   linkBaseColor,
			Width:   linkBaseWidth,
			Opacity: linkBaseOpacity,
		}
		s.visuals.LinkLabels[l.key] = &LinkLabel{
			LinkKey: l.key,
			Text:    l.typ,
		}
	}
}

// syncVisuals writes the simulation's current positions into the primitives.
// Radii, colors, widths, and visibility are owned by the highlight layer and
// are not recomputed here, so a hover survives across ticks.
func (s *Scene) syncVisuals() {
	for id, c := range s.visuals.Circles {
		n := s.simNodes[id]
		c.X = n.X
		c.Y = n.Y

		label := s.visuals.NodeLabels[id]
		label.X = n.X
		label.Y = n.Y + c.R + 12
	}
	for _, l := range s.links {
		line := s.visuals.Lines[l.key]
		line.X1 = l.source.X
		line.Y1 = l.source.Y
		line.X2 = l.target.X
		line.Y2 = l.target.Y

		label := s.visuals.LinkLabels[l.key]
		label.X = (l.source.X + l.target.X) / 2
		label.Y = (l.source.Y + l.target.Y) / 2
	}

	if s.animate && s.entryTick <= entryTotalTicks {
		s.applyEntryAnimation()
		s.entryTick++
	}
}

// applyEntryAnimation scales radii up from zero with an overshoot ease and
// fades links and labels in. On the final tick every value lands exactly on
// its baseline, so steady-state geometry is unaffected.
func (s *Scene) applyEntryAnimation() {
	if s.hovered != "" {
		// Hover emphasis owns the visuals; resume the fade afterwards.
		return
	}
	pop := easeOutBack(clamp01(float64(s.entryTick) / entryPopTicks))
	fade := clamp01(float64(s.entryTick) / entryPopTicks)
	labelFade := clamp01(float64(s.entryTick-entryLabelDelay) / entryPopTicks)

	for id, c := range s.visuals.Circles {
		if id == s.hovered {
			continue
		}
		n := s.workNode(id)
		c.R = n.Radius() * pop
		s.visuals.NodeLabels[id].Opacity = labelFade
	}
	for _, line := range s.visuals.Lines {
		line.Opacity = linkBaseOpacity * fade
	}
}

// easeOutBack is the overshoot easing used by the entry pop-in. It exceeds
// 1.0 mid-flight and returns to exactly 1.0 at t=1.
func easeOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
