// Package flow derives migration flows between regions and arranges them as
// a two-row network for Sankey and node-link charts.
//
// # Derivation
//
// A source reports, per origin region, the total number of emigrants and
// the percentage that moved to each of a few named destinations. [Derive]
// turns those percentages into absolute flows:
//
//	magnitude = total * percentage / 100
//
// Percentages are independent; they are not renormalized and usually sum to
// less than 100 because only the main destinations are reported. The part
// of each origin that no edge accounts for is the remainder; [Coverage]
// reports how much of the total the edges represent so charts can say so.
//
// # Network
//
// [Network] is a bipartite graph: origins in row 0, destinations in row 1.
// Each region appears on both sides under distinct node IDs, "X (Origen)"
// and "X (Destino)", matching how Sankey charts label them. Edges carry the
// derived magnitude and rank (0 for the primary destination).
//
// # Ordering
//
// Destination order affects how many bands cross. [CountCrossings] counts
// crossings between the rows and [OrderBarycentric] reorders destinations
// by the weighted mean position of their origins. The default ordering is
// the input order.
package flow
