package scene

// Tooltip layout constants. The anchor offset and flip thresholds mirror
// the hosting container's edges so the tooltip never renders outside it.
const (
	TooltipWidth  = 220.0
	TooltipHeight = 90.0

	tooltipOffset        = 15.0
	tooltipFlipRightPad  = 250.0
	tooltipFlipBottomPad = 120.0
)

// Tooltip is the hover popup: a type-colored indicator, the node's label,
// and its description (or a fallback). X/Y are container coordinates of the
// top-left corner.
type Tooltip struct {
	Visible   bool
	X, Y      float64
	Title     string
	Body      string
	Indicator string
}

// placeTooltip positions the visible tooltip for a pointer location.
func (s *Scene) placeTooltip(px, py float64) {
	s.visuals.Tooltip.X, s.visuals.Tooltip.Y = TooltipPosition(px, py, s.width, s.height)
}

// TooltipPosition computes the tooltip's top-left corner for a pointer at
// (px, py) inside a width×height container. The default anchor is
// pointer+(15,15); near the right edge it flips to the left of the pointer
// and near the bottom edge it flips above, then the result is clamped so
// the box always stays inside the container.
func TooltipPosition(px, py, width, height float64) (x, y float64) {
	x = px + tooltipOffset
	if px > width-tooltipFlipRightPad {
		x = px - tooltipOffset - TooltipWidth
	}

	y = py + tooltipOffset
	if py > height-tooltipFlipBottomPad {
		y = py - tooltipOffset - TooltipHeight
	}

	// Right/bottom clamp first, left/top last: in a container smaller than
	// the box the top-left corner stays inside.
	if x > width-TooltipWidth {
		x = width - TooltipWidth
	}
	if x < 0 {
		x = 0
	}
	if y > height-TooltipHeight {
		y = height - TooltipHeight
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
