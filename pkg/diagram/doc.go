// Package diagram defines the architecture diagram snapshot consumed by the
// export engine.
//
// A [Diagram] is a labeled graph of typed [Node] values connected by typed,
// directed [Edge] values, plus descriptive fields (project, owner, viewport,
// free-form metadata). Snapshots are read-only input: nothing in archexport
// mutates a Diagram after it has been decoded.
//
// # Taxonomy
//
// Node types:
//
//	diagram.NodeUIComponent     // "ui-component"
//	diagram.NodeAPIEndpoint     // "api-endpoint"
//	diagram.NodeDatabase        // "database"
//	diagram.NodeService         // "service"
//	diagram.NodeInfrastructure  // "infrastructure"
//
// Edge types:
//
//	diagram.EdgeDataFlow    // "data-flow"
//	diagram.EdgeDependency  // "dependency"
//	diagram.EdgeUserFlow    // "user-flow"
//
// Absent node types resolve to [NodeUnknown]; absent edge types resolve to
// [EdgeDefault].
//
// # Decoding
//
// Snapshots are accepted as JSON or YAML:
//
//	d, _ := diagram.ReadFile("checkout.json")   // File → Diagram
//	d, _ := diagram.Unmarshal(data)             // JSON bytes → Diagram
//	d, _ := diagram.FromRecord(rec)             // stored row → Diagram
//
// Decoding failures are reported as INVALID_DATA errors from pkg/errors.
package diagram
