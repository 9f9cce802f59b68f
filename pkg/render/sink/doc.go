// Package sink serializes a [scene.Scene] into output bytes.
//
// SVG is written directly as XML. PNG and PDF replay the same scene onto a
// gonum vg.Canvas, flipping the y axis because vg puts the origin at the
// bottom left. JSON exports the scene items together with the computed
// chart layout so other tools can redraw it.
//
// All sinks are pure: they read the scene and never modify it, so a scene
// may be rendered to several formats concurrently.
package sink
