// Package export is the entry point of the diagram export engine.
//
// # Overview
//
// [Exporter.Export] validates a diagram snapshot, dispatches to the
// generator registered for the requested format and wraps the output in an
// [Artifact] with media type, suggested filename and statistics:
//
//	markdown  text/markdown     .md           pkg/render/markdown
//	json      application/json  .json         pkg/render/datajson
//	cursor    application/json  .cursor.json  pkg/render/tasklist
//	pdf, png, svg                             reserved, NOT_IMPLEMENTED
//
// # Usage
//
//	x := export.New(logger)
//	opts := export.DefaultOptions()
//	opts.Markdown.Mermaid = true
//	art, err := x.Export(ctx, d, export.FormatMarkdown, &opts, func(p export.Progress) {
//	    fmt.Println(p.Stage, p.Percent)
//	})
//
// # Errors
//
// Every failure is an *errors.Error from pkg/errors:
//
//   - INVALID_DATA: missing id or name, absent node or edge list, bad options
//   - UNSUPPORTED_FORMAT: unknown format tag
//   - NOT_IMPLEMENTED: reserved format, details["plannedWork"] says what is planned
//   - EXPORT_FAILED: the generator failed or panicked, or ctx was already done
//
// # Progress
//
// The optional [ProgressFunc] is called synchronously with the stages
// preparing (0), processing (25), finalizing (90) and complete (100).
// complete is reported on every call, successful or not.
//
// # Concurrency
//
// Export keeps no state between calls; one Exporter may serve any number of
// goroutines. The diagram is only read.
package export
