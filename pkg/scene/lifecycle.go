package scene

import (
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/force"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/observability"
)

// Resize queues a viewport change. Notifications are coalesced: observers
// can fire many times within one frame, but only the most recent dimensions
// are applied, on the next [Scene.Tick]. Resizes after Close are swallowed.
func (s *Scene) Resize(width, height float64) {
	if s.stopped || width <= 0 || height <= 0 {
		return
	}
	s.pendingResize = &[2]float64{width, height}
}

// applyResize updates the logical viewport, recenters the simulation's
// center force on the new midpoint, and reheats briefly so nodes
// redistribute into the new space.
func (s *Scene) applyResize(width, height float64) {
	s.width = width
	s.height = height
	if s.sim == nil {
		return
	}
	s.sim.SetCenter(width/2, height/2)
	s.sim.Reheat(force.DefaultReheatAlpha)
	observability.Scene().OnResize(width, height)
}

// Close tears the scene down: the simulation is stopped so no further tick
// fires, and any queued tick or resize callback becomes a no-op. Close is
// idempotent. A scene must be closed before building a replacement for new
// data or a display-mode change; reusing a scene across unrelated data
// changes is not supported.
func (s *Scene) Close() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.pendingResize = nil
	if s.sim != nil {
		s.sim.Stop()
	}
	observability.Scene().OnTeardown()
}

// Closed reports whether Close has been called.
func (s *Scene) Closed() bool { return s.stopped }
