// Package layout computes the geometry every chart is built on.
//
// # Partition
//
// [Partition] divides a span (a length in pixels, or 2π radians for polar
// charts) among magnitudes in input order. Segment i starts where segment
// i-1 ends and its width is proportional to its magnitude:
//
//	segs, _ := layout.Partition([]float64{10, 30}, 1)
//	// segs[0]: Start 0,    Width 0.25
//	// segs[1]: Start 0.25, Width 0.75
//
// # Intensity
//
// [Intensities] maps a slice of values to scalars in [0, 1] that drive
// colour and radius. Three normalizations are available: [Linear] (min-max),
// [Log] (min-max on natural logarithms, positive values only) and
// [MaxRatio] (value over maximum). When every value is equal each intensity
// is 1.
//
// # Radius
//
// [Radius] maps an intensity onto [floor, 1] so that the smallest petal of
// a polar chart stays visible.
//
// All functions are pure and safe for concurrent use.
package layout
