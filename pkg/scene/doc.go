// Package scene implements the interactive force-graph view: one mounted
// visualization of a node/link set, combining the physics simulation, the
// per-frame render loop, gesture handling, and hover/tooltip state.
//
// # Lifecycle
//
// A [Scene] is built with [New] for exactly one validated graph and one
// display configuration, driven by repeated [Scene.Tick] calls from the
// host's frame loop, and destroyed with [Scene.Close]. When the data or the
// display mode changes, the old scene is closed and a new one is built -
// scenes are never mutated in place across unrelated data changes, which
// keeps force references from going stale.
//
// # Input
//
// All interaction arrives as [Event] values through [Scene.Dispatch]: pan,
// zoom, per-node drag, click, and hover. The dispatcher hit-tests the
// pointer against the scene's own node map, so gestures can be synthesized
// in tests without a display or pointer device.
//
// # Output
//
// Each tick writes current positions into the scene's [Visuals]: circles,
// lines, and labels keyed by node and link identity. Consumers (the
// terminal viewer, the exporters, the HTTP API) read those primitives and
// apply [Scene.Transform] when drawing. The scene allocates primitives only
// at construction.
//
// # Threading
//
// Everything is single-goroutine and frame-driven. Ticks, gestures, and
// resize notifications are serialized by the caller; after Close, queued
// callbacks are swallowed rather than touching the stale surface.
package scene
