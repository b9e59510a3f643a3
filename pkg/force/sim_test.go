package force

import (
	"errors"
	"math"
	"testing"
)

func newTestSim(t *testing.T, nodes []*Node, links []Link) *Simulation {
	t.Helper()
	s, err := New(nodes, links, Config{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewResolvesLinksOnce(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []*Node
		links   []Link
		wantErr error
	}{
		{
			name:  "Valid",
			nodes: []*Node{{ID: "a"}, {ID: "b"}},
			links: []Link{{Source: "a", Target: "b"}},
		},
		{
			name:    "UnknownSource",
			nodes:   []*Node{{ID: "a"}},
			links:   []Link{{Source: "ghost", Target: "a"}},
			wantErr: ErrUnknownNode,
		},
		{
			name:    "UnknownTarget",
			nodes:   []*Node{{ID: "a"}},
			links:   []Link{{Source: "a", Target: "ghost"}},
			wantErr: ErrUnknownNode,
		},
		{
			name:    "DuplicateNode",
			nodes:   []*Node{{ID: "a"}, {ID: "a"}},
			wantErr: ErrDuplicateNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.nodes, tt.links, Config{Width: 800, Height: 600})
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("New: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInitialPlacementNearCenter(t *testing.T) {
	nodes := []*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	newTestSim(t, nodes, nil)

	for _, n := range nodes {
		dx := n.X - 400
		dy := n.Y - 300
		if math.Hypot(dx, dy) > 10 {
			t.Errorf("node %s placed at (%v,%v), want within jitter of (400,300)", n.ID, n.X, n.Y)
		}
	}
}

func TestCoolingTerminates(t *testing.T) {
	nodes := []*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	s := newTestSim(t, nodes, []Link{{Source: "a", Target: "b"}})

	steps := 0
	for s.Step() {
		steps++
		if steps > 1000 {
			t.Fatal("simulation did not cool within 1000 steps")
		}
	}
	if s.Active() {
		t.Error("simulation still active after cooling")
	}
	if s.Alpha() >= 0.001 {
		t.Errorf("alpha = %v, want below stop threshold", s.Alpha())
	}
}

func TestLinkedNodesApproachTargetDistance(t *testing.T) {
	nodes := []*Node{{ID: "a"}, {ID: "b"}}
	s := newTestSim(t, nodes, []Link{{Source: "a", Target: "b"}})
	s.Settle(500)

	dist := math.Hypot(nodes[0].X-nodes[1].X, nodes[0].Y-nodes[1].Y)
	// Charge repulsion stretches the link slightly past its target
	// distance; it must land in the same regime, not collapse or fly off.
	if dist < DefaultCollideRadius*2 || dist > DefaultLinkDistance*3 {
		t.Errorf("settled distance = %v, want within [%v, %v]", dist, DefaultCollideRadius*2, DefaultLinkDistance*3)
	}
}

func TestUnlinkedNodesRepel(t *testing.T) {
	nodes := []*Node{{ID: "a"}, {ID: "b"}}
	s := newTestSim(t, nodes, nil)
	s.Settle(500)

	dist := math.Hypot(nodes[0].X-nodes[1].X, nodes[0].Y-nodes[1].Y)
	if dist < 2*DefaultCollideRadius {
		t.Errorf("settled distance = %v, want at least collision clearance %v", dist, 2*DefaultCollideRadius)
	}
}

func TestNearCoincidentNodesGetBoundedKick(t *testing.T) {
	// Caller-preset positions a hair apart: the inverse-square charge is
	// floored so the first ticks push gently instead of launching the pair.
	nodes := []*Node{
		{ID: "a", X: 400, Y: 300},
		{ID: "b", X: 400.001, Y: 300.0005},
	}
	s := newTestSim(t, nodes, nil)
	s.Step()

	for _, n := range nodes {
		speed := math.Hypot(n.VX, n.VY)
		if speed > DefaultLinkDistance {
			t.Errorf("node %s first-tick speed = %v, want bounded below %v", n.ID, speed, DefaultLinkDistance)
		}
	}
}

func TestPinnedNodeStaysPut(t *testing.T) {
	nodes := []*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	s := newTestSim(t, nodes, []Link{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
	})

	nodes[0].Pin(100, 100)
	s.Reheat(DefaultReheatAlpha)
	for i := 0; i < 50; i++ {
		s.Step()
		if nodes[0].X != 100 || nodes[0].Y != 100 {
			t.Fatalf("pinned node moved to (%v,%v) on step %d", nodes[0].X, nodes[0].Y, i)
		}
	}

	// Neighbors must keep moving per physics while the pin holds.
	moved := math.Hypot(nodes[1].X-400, nodes[1].Y-300)
	if moved == 0 {
		t.Error("free neighbor did not move while node was pinned")
	}
}

func TestUnpinReleasesNode(t *testing.T) {
	nodes := []*Node{{ID: "a"}, {ID: "b"}}
	s := newTestSim(t, nodes, nil)

	nodes[0].Pin(0, 0)
	s.Step()
	nodes[0].Unpin()
	s.Reheat(1)
	s.Settle(200)

	if nodes[0].X == 0 && nodes[0].Y == 0 {
		t.Error("released node never moved from its pin")
	}
}

func TestStopHaltsTicksImmediately(t *testing.T) {
	nodes := []*Node{{ID: "a"}, {ID: "b"}}
	s := newTestSim(t, nodes, nil)

	ticks := 0
	s.OnTick(func() { ticks++ })
	s.Step()
	if ticks != 1 {
		t.Fatalf("ticks = %d, want 1", ticks)
	}

	s.Stop()
	if s.Step() {
		t.Error("Step returned true after Stop")
	}
	if ticks != 1 {
		t.Errorf("tick fired after Stop: ticks = %d", ticks)
	}
	if s.Active() {
		t.Error("simulation active after Stop")
	}
}

func TestReheatAfterStopIsNoop(t *testing.T) {
	s := newTestSim(t, []*Node{{ID: "a"}}, nil)
	s.Stop()
	s.Reheat(1)
	if s.Active() {
		t.Error("Reheat revived a stopped simulation")
	}
}

func TestReheatRaisesAlpha(t *testing.T) {
	s := newTestSim(t, []*Node{{ID: "a"}, {ID: "b"}}, nil)
	s.Settle(1000)
	if s.Active() {
		t.Fatal("expected settled simulation")
	}

	s.Reheat(DefaultReheatAlpha)
	if !s.Active() {
		t.Error("simulation not active after reheat")
	}
	if s.Alpha() < DefaultReheatAlpha {
		t.Errorf("alpha = %v, want at least %v", s.Alpha(), DefaultReheatAlpha)
	}
}

func TestWarmAlphaTargetKeepsSimulationLive(t *testing.T) {
	s := newTestSim(t, []*Node{{ID: "a"}, {ID: "b"}}, nil)
	s.SetAlphaTarget(DefaultReheatAlpha)
	s.Settle(2000)
	if !s.Active() {
		t.Error("simulation cooled despite warm alpha target")
	}

	s.SetAlphaTarget(0)
	s.Settle(2000)
	if s.Active() {
		t.Error("simulation did not cool after alpha target reset")
	}
}

func TestSetCenterRecenters(t *testing.T) {
	nodes := []*Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	s := newTestSim(t, nodes, nil)
	s.Settle(500)

	s.SetCenter(600, 200)
	s.Reheat(DefaultReheatAlpha)
	s.Settle(500)

	var cx, cy float64
	for _, n := range nodes {
		cx += n.X
		cy += n.Y
	}
	cx /= float64(len(nodes))
	cy /= float64(len(nodes))

	if math.Abs(cx-600) > 1 || math.Abs(cy-200) > 1 {
		t.Errorf("centroid = (%v,%v), want near (600,200)", cx, cy)
	}
}

func TestEmptySimulationIsInert(t *testing.T) {
	s, err := New(nil, nil, Config{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Step() {
		t.Error("Step returned true for empty node set")
	}
}

func TestDeterministicPlacement(t *testing.T) {
	a := []*Node{{ID: "x"}, {ID: "y"}}
	b := []*Node{{ID: "x"}, {ID: "y"}}

	sa, _ := New(a, nil, Config{Width: 800, Height: 600, Seed: 7})
	sb, _ := New(b, nil, Config{Width: 800, Height: 600, Seed: 7})
	sa.Settle(100)
	sb.Settle(100)

	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Errorf("node %d diverged: (%v,%v) vs (%v,%v)", i, a[i].X, a[i].Y, b[i].X, b[i].Y)
		}
	}
}
