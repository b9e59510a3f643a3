package scene

// Hover emphasis constants.
const (
	hoverRadiusScale = 1.3
	hoverStrokeWidth = 3.0

	linkHighlightColor   = "#ff6b00"
	linkHighlightWidth   = 2.5
	linkHighlightOpacity = 1.0
	linkDimOpacity       = 0.1
)

// Fallback tooltip body when a node carries no description.
const noDescription = "No description available."

// hover handles pointer motion: entering a node applies emphasis, moving
// within one repositions the tooltip, and moving onto background restores
// baseline.
func (s *Scene) hover(sx, sy float64) {
	id := s.NodeAt(sx, sy)
	if id == s.hovered {
		if id != "" {
			s.placeTooltip(sx, sy)
		}
		return
	}
	s.clearHover()
	if id == "" {
		return
	}
	s.applyHover(id, sx, sy)
}

// applyHover scales the hovered node, dims every non-incident link, raises
// incident links to the highlighted state, and reveals their labels.
// No layout recomputation happens; only emphasis fields change.
func (s *Scene) applyHover(id string, sx, sy float64) {
	s.hovered = id

	n := s.workNode(id)
	c := s.visuals.Circles[id]
	c.R = n.Radius() * hoverRadiusScale
	c.StrokeWidth = hoverStrokeWidth

	for _, l := range s.links {
		line := s.visuals.Lines[l.key]
		label := s.visuals.LinkLabels[l.key]
		if l.source.ID == id || l.target.ID == id {
			line.Color = linkHighlightColor
			line.Width = linkHighlightWidth
			line.Opacity = linkHighlightOpacity
			label.Visible = true
		} else {
			line.Opacity = linkDimOpacity
			label.Visible = false
		}
	}

	s.visuals.Tooltip = Tooltip{
		Visible:   true,
		Title:     n.DisplayLabel(),
		Body:      tooltipBody(n.Description),
		Indicator: n.Color(),
	}
	s.placeTooltip(sx, sy)
}

// clearHover restores every primitive to its baseline. Values are
// recomputed from the rendering formulas (radius, palette, baseline link
// style) rather than restored from snapshots, so they stay correct after
// resizes that happened mid-hover.
func (s *Scene) clearHover() {
	if s.hovered == "" {
		return
	}
	id := s.hovered
	s.hovered = ""

	n := s.workNode(id)
	c := s.visuals.Circles[id]
	c.R = n.Radius()
	c.StrokeWidth = baseStrokeWidth

	for _, l := range s.links {
		line := s.visuals.Lines[l.key]
		line.Color = linkBaseColor
		line.Width = linkBaseWidth
		line.Opacity = linkBaseOpacity
		s.visuals.LinkLabels[l.key].Visible = false
	}

	s.visuals.Tooltip = Tooltip{}
}

func tooltipBody(description string) string {
	if description == "" {
		return noDescription
	}
	return description
}
