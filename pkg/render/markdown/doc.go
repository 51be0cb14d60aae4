// Package markdown renders architecture diagrams as human-readable Markdown
// documents.
//
// # Overview
//
// A document is an ordered list of sections joined by horizontal rules:
//
//   - Header: title, description, project, author and timestamps
//   - Table of Contents (optional)
//   - Overview: totals and per-type breakdowns
//   - Components: one entry per node, grouped by type (optional)
//   - Connections: one From/To/Description table per edge type (optional)
//   - Flows: data flows, user flows and dependencies as narrative lists
//   - Specifications: architecture summary bucketed by layer
//   - Architecture Diagram: a Mermaid flowchart (optional)
//   - Export Information: identifiers and totals (metadata only)
//
// # Usage
//
//	in := render.NewInput(d, render.Common{IncludeMetadata: true}, time.Now())
//	doc, err := markdown.Generate(in, markdown.DefaultOptions())
//
// # Heading Levels
//
// [Options.HeadingLevel] sets the level of the title heading. Every other
// heading shifts by the same offset and is capped at level 6.
//
// # Mermaid
//
// [ToMermaid] maps node types to shapes and edge types to arrow styles:
//
//	ui-component    [label]        data-flow   -->
//	api-endpoint    ([label])      dependency  -.->
//	database        [(label)]      user-flow   ==>
//	service         [[label]]      default     -->
//	infrastructure  {{label}}
package markdown
