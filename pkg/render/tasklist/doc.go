// Package tasklist synthesizes an implementation task list from an
// architecture diagram.
//
// # Overview
//
// Every node becomes one task, numbered in input order ("task-1", ...).
// The per-type [Profiles] table supplies the title template, context
// sentence, objectives, acceptance criteria, file templates, base hours,
// tags and hints. Incident edges add the rest:
//
//   - incoming edges become Dependencies (the source is a dependency)
//   - outgoing edges become RelatedComponents
//   - both count toward the estimate: max(2, round(base + 0.5·degree))
//
// Priority and phase are rule based:
//
//	database, infrastructure       critical  Foundation
//	3+ related components          high
//	any dependency                 medium    Integration
//	service, api-endpoint, no deps           Core Features
//	ui-component, no deps                    UI & Polish
//	otherwise                      default   Core Features
//
// # Grouping
//
// With [Options.GroupByPhase] the "tasks" field changes from an array to an
// object keyed by phase name in first-seen order. Consumers must handle
// both shapes; [Tasks.UnmarshalJSON] accepts either.
//
// # References
//
// Each task carries a Ref: a name-based (SHA-1) UUID of the diagram id and
// node id, stable across exports of the same diagram.
package tasklist
