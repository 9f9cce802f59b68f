// Package chart holds what the chart kinds share: the kind registry,
// default frame sizes and drawing helpers for titles, legends and colour
// bars.
//
// Each kind lives in its own subpackage and is split in two steps:
//
//   - Build computes a layout from typed input. It is pure and returns
//     INVALID_INPUT or MISSING_KEY errors for unusable data.
//   - Draw turns the layout into a [scene.Scene] for the sinks in
//     pkg/render/sink.
//
// The layouts are exported so `chileviz inspect` and the JSON sink can show
// the numbers behind a chart.
//
// [scene.Scene]: github.com/matzehuels/chileviz/pkg/scene
package chart
