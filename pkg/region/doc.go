// Package region defines the validated record types chileviz charts are
// computed from.
//
// A [Region] is a named administrative unit with a primary magnitude (the
// attribute that sizes a partition segment, e.g. land area) and a secondary
// magnitude (the attribute that drives visual intensity, e.g. population or
// density). Regions are validated at construction: magnitudes must be finite
// and non-negative, names must be non-empty.
//
// A [Dataset] holds regions in input order and answers lookups by folded name,
// so "O’Higgins", "O'Higgins" and "o'higgins" resolve to the same region.
//
// [Series] and [Migration] carry the extra shapes needed by horizon plots
// (values per period) and Sankey diagrams (emigrant totals and destination
// shares). None of these types are mutated after load.
package region
