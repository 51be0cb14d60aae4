// Package datajson renders architecture diagrams as a normalized, versioned
// JSON document.
//
// # Overview
//
// The document has four top-level regions:
//
//   - metadata: diagram and project identity, overrides, author, timestamps
//   - diagram: every node and edge with a stable field set
//   - statistics: totals, node ids per type and edge counts per type
//   - computed: connectivity, flows and complexity (only on request)
//
// Absent node types normalize to "unknown" and absent edge types to
// "default", so consumers never see an empty type.
//
// # Usage
//
//	in := render.NewInput(d, render.Common{}, time.Now())
//	doc := datajson.Build(in, datajson.Options{Computed: true})
//	data, err := datajson.Generate(in, datajson.DefaultOptions())
//
// [Build] returns the [Document] value for callers that post-process it;
// [Generate] encodes it with the configured indentation. Compact output
// ([Options.Pretty] false) parses back to the same [Document].
package datajson
