package scene

import "testing"

func TestTooltipPosition(t *testing.T) {
	const w, h = 800.0, 600.0

	tests := []struct {
		name   string
		px, py float64
		wantX  float64
		wantY  float64
	}{
		{
			name:  "CenterOffsetsBelowRight",
			px:    400, py: 300,
			wantX: 415, wantY: 315,
		},
		{
			name:  "NearRightEdgeFlipsLeft",
			px:    600, py: 300,
			wantX: 600 - tooltipOffset - TooltipWidth, wantY: 315,
		},
		{
			name:  "NearBottomEdgeFlipsAbove",
			px:    400, py: 520,
			wantX: 415, wantY: 520 - tooltipOffset - TooltipHeight,
		},
		{
			name:  "CornerFlipsBoth",
			px:    w - 10, py: h - 10,
			wantX: w - 10 - tooltipOffset - TooltipWidth,
			wantY: h - 10 - tooltipOffset - TooltipHeight,
		},
		{
			name:  "OriginKeepsDefaultAnchor",
			px:    0, py: 0,
			wantX: 15, wantY: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := TooltipPosition(tt.px, tt.py, w, h)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("TooltipPosition(%v, %v) = (%v, %v), want (%v, %v)",
					tt.px, tt.py, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTooltipPositionUndersizedContainer(t *testing.T) {
	// Containers smaller than the tooltip box pin the top-left corner to
	// the origin instead of pushing it negative.
	tests := []struct {
		name          string
		width, height float64
	}{
		{name: "NarrowerThanBox", width: TooltipWidth - 20, height: 600},
		{name: "ShorterThanBox", width: 800, height: TooltipHeight - 20},
		{name: "SmallerBothWays", width: 100, height: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := TooltipPosition(tt.width/2, tt.height/2, tt.width, tt.height)
			if x < 0 || y < 0 {
				t.Errorf("TooltipPosition in %vx%v container = (%v, %v), want non-negative",
					tt.width, tt.height, x, y)
			}
		})
	}
}

func TestTooltipPositionStaysInsideContainer(t *testing.T) {
	const w, h = 800.0, 600.0

	probes := [][2]float64{
		{0, 0}, {w, 0}, {0, h}, {w, h},
		{w / 2, h / 2}, {w - 1, h / 2}, {w / 2, h - 1},
	}
	for _, p := range probes {
		x, y := TooltipPosition(p[0], p[1], w, h)
		if x < 0 || y < 0 || x > w-TooltipWidth || y > h-TooltipHeight {
			t.Errorf("TooltipPosition(%v, %v) = (%v, %v) escapes container", p[0], p[1], x, y)
		}
	}
}
