// Package force implements the iterative force solver behind the
// interactive graph view.
//
// # Model
//
// Four forces shape the layout each tick:
//
//   - link attraction pulling connected nodes toward a target separation
//   - many-body repulsion between every pair, scaled by inverse squared
//     distance so distant pairs barely feel it
//   - a centering correction keeping the free nodes' centroid on the
//     viewport center
//   - collision resolution pushing overlapping nodes out to a minimum
//     clearance radius
//
// # Cooling
//
// The simulation carries an energy scalar (alpha) that decays every step.
// High alpha means active movement; once alpha drops below the stop
// threshold the layout is considered settled and [Simulation.Step] becomes a
// no-op. Interactions reanimate a settled layout with [Simulation.Reheat]
// (drag-start, resize) or keep it warm with [Simulation.SetAlphaTarget]
// for the duration of a drag.
//
// # Pins
//
// A node with a fixed position override (fx/fy) is written back to the pin
// after every integration step, so the solver respects it while neighbors
// keep responding to physics. Dragging pins the node under the pointer and
// releases it on drag-end.
//
// The solver is single-threaded and allocation-free per tick; the owning
// scene drives it from its frame loop.
package force
