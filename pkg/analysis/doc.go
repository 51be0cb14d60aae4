// Package analysis provides read-only views and metrics over a diagram.
//
// An [Index] is built once per export call from a [diagram.Diagram]. It
// groups nodes and edges by type (in first-seen order) and answers adjacency
// questions: which edges enter or leave a node, and what label a node id
// resolves to. Edges referencing unknown node ids are tolerated; their
// missing endpoint resolves to the raw id.
//
// On top of the index, the metric functions derive:
//
//   - [Index.Degree] and [MostConnected]: per-node connectivity
//   - [ClassifyFlows]: edges partitioned into data, user and dependency flows
//   - [Complexity]: node/edge counts, average degree, density and a bounded
//     0–100 complexity score
//
// Nothing in this package mutates the diagram or keeps state across calls,
// so indexes may be built concurrently for the same snapshot.
package analysis
