// Package render holds the pieces shared by the export format generators.
//
// # Overview
//
// Each generator lives in its own subpackage and is a pure function of an
// [Input] plus format-specific options:
//
//   - [markdown]: human-readable structured document (with optional Mermaid block)
//   - [datajson]: normalized, versioned JSON document with optional computed metrics
//   - [tasklist]: IDE-consumable task list synthesized from the node taxonomy
//
// Generators share no mutable state. The export coordinator builds one
// [Input] per call (diagram, graph index, common options, clock reading)
// and hands it to exactly one generator.
//
//	in := render.NewInput(d, render.Common{IncludeMetadata: true}, time.Now())
//	doc, err := markdown.Generate(in, markdown.DefaultOptions())
//
// [markdown]: github.com/matzehuels/archexport/pkg/render/markdown
// [datajson]: github.com/matzehuels/archexport/pkg/render/datajson
// [tasklist]: github.com/matzehuels/archexport/pkg/render/tasklist
package render
