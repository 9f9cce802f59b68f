// Package render names the output formats chileviz can produce and
// dispatches a computed scene to the matching sink.
//
// # Formats
//
//   - svg: hand-written XML, see [sink.RenderSVG]
//   - png: raster through gonum's vgimg backend, see [sink.RenderPNG]
//   - pdf: vector through gonum's vgpdf backend, see [sink.RenderPDF]
//   - json: the scene plus the computed layout, see [sink.RenderJSON]
//   - dot: Graphviz source, only for the flow graph in [flowgraph]
//
// PNG and PDF are drawn natively in Go; no external converter is needed.
//
// [sink.RenderSVG]: github.com/matzehuels/chileviz/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/chileviz/pkg/render/sink
// [sink.RenderPDF]: github.com/matzehuels/chileviz/pkg/render/sink
// [sink.RenderJSON]: github.com/matzehuels/chileviz/pkg/render/sink
// [flowgraph]: github.com/matzehuels/chileviz/pkg/render/flowgraph
package render
