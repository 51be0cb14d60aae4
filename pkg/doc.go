// Package pkg provides the core libraries for archexport.
//
// # Overview
//
// Archexport turns a snapshot of an architecture diagram (typed components
// joined by typed connections) into artifacts for people and tools: a
// markdown document, normalized JSON data with statistics, and an
// implementation task list for coding assistants. The pkg directory is
// organized into four areas:
//
//  1. [diagram] - Snapshot types and their JSON, YAML and stored-record forms
//  2. [analysis] - Graph index and derived metrics
//  3. [render] - One generator per artifact format
//  4. [export] - The coordinator callers talk to
//
// # Architecture
//
// The data flow of one export call:
//
//	Snapshot (file, MongoDB, request body)
//	         ↓
//	    [source] package (load by id)
//	         ↓
//	    [export] package (validate, pick generator, report progress)
//	         ↓
//	    [analysis] package (index nodes and edges, compute metrics)
//	         ↓
//	    [render/markdown], [render/datajson], [render/tasklist]
//	         ↓
//	    Artifact (content, media type, filename, metadata)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/archexport/pkg/diagram"
//	    "github.com/matzehuels/archexport/pkg/export"
//	)
//
//	d, _ := diagram.ReadFile("checkout.json")
//
//	opts := export.DefaultOptions()
//	opts.Markdown.Mermaid = true
//
//	art, err := export.Export(context.Background(), d, export.FormatMarkdown, &opts, nil)
//	if err != nil {
//	    // err is an *errors.Error with an INVALID_DATA, UNSUPPORTED_FORMAT,
//	    // NOT_IMPLEMENTED or EXPORT_FAILED code
//	}
//	os.WriteFile(art.Filename, art.Content, 0o644)
//
// # Main Packages
//
// ## Domain
//
// [diagram] - The snapshot model: nodes with a type, label, description and
// metadata; edges with a type and optional label. Reads JSON and YAML files
// and the stored form whose node and edge lists are JSON text.
//
// [analysis] - A read-only index over one snapshot (lookup, adjacency,
// grouping by type in first-seen order) and the metrics generators share:
// degrees, most connected components, flow classification, complexity.
//
// ## Generators
//
// [render/markdown] - Architecture document with overview, components,
// connection tables, flows, layer summary and an optional mermaid graph.
//
// [render/datajson] - Versioned JSON document: metadata, the diagram body,
// statistics and optional computed properties.
//
// [render/tasklist] - Task list with one task per component: priority,
// phase, estimate, dependencies, acceptance criteria and suggested files.
//
// ## Coordination
//
// [export] - Format registry, options, validation, dispatch, progress
// reporting, filename synthesis and the artifact envelope.
//
// [errors] - Typed errors carrying a code, a message and details.
//
// [observability] - Process-wide hooks for exports, snapshot loads and HTTP
// requests. No-ops by default.
//
// ## Infrastructure
//
// [source] - Snapshot providers: local files and MongoDB.
//
// [config] - TOML configuration for export defaults, sources and the server.
//
// [buildinfo] - Version stamping.
//
// # Testing
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/render/...       # Generators only
//	go test -run Example ./pkg/... # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/diagram
// [analysis]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/analysis
// [render]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/render
// [render/markdown]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/render/markdown
// [render/datajson]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/render/datajson
// [render/tasklist]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/render/tasklist
// [export]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/export
// [errors]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/observability
// [source]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/source
// [config]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/config
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/archexport/pkg/buildinfo
package pkg
