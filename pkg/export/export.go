package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/errors"
	"github.com/matzehuels/archexport/pkg/observability"
	"github.com/matzehuels/archexport/pkg/render"
	"github.com/matzehuels/archexport/pkg/render/datajson"
	"github.com/matzehuels/archexport/pkg/render/markdown"
	"github.com/matzehuels/archexport/pkg/render/tasklist"
)

// =============================================================================
// Artifact
// =============================================================================

// Artifact is the result of one export call. It is owned by the caller.
type Artifact struct {
	Format    Format           `json:"format"`
	Content   []byte           `json:"-"`
	MediaType string           `json:"mediaType"`
	Filename  string           `json:"filename"`
	Metadata  ArtifactMetadata `json:"metadata"`
}

// ArtifactMetadata records what went into an artifact.
type ArtifactMetadata struct {
	NodeCount   int       `json:"nodeCount"`
	EdgeCount   int       `json:"edgeCount"`
	GeneratedAt time.Time `json:"generatedAt"`
	Options     Options   `json:"options"`
}

// Size returns the content length in bytes.
func (a *Artifact) Size() int { return len(a.Content) }

// =============================================================================
// Progress
// =============================================================================

// Stage is a progress milestone of an export call.
type Stage string

// Stages in the order they are reported.
const (
	StagePreparing  Stage = "preparing"
	StageProcessing Stage = "processing"
	StageFinalizing Stage = "finalizing"
	StageComplete   Stage = "complete"
)

// Progress is one progress report.
type Progress struct {
	Stage   Stage
	Percent int
	Message string
}

// ProgressFunc receives progress reports synchronously on the calling
// goroutine. StageComplete is always reported, also on failure.
type ProgressFunc func(Progress)

// =============================================================================
// Exporter
// =============================================================================

type generator func(in render.Input, opts *Options) ([]byte, error)

var generators = map[Format]generator{
	FormatMarkdown: func(in render.Input, opts *Options) ([]byte, error) {
		return markdown.Generate(in, opts.Markdown)
	},
	FormatJSON: func(in render.Input, opts *Options) ([]byte, error) {
		return datajson.Generate(in, opts.JSON)
	},
	FormatCursor: func(in render.Input, opts *Options) ([]byte, error) {
		return tasklist.Generate(in, opts.Tasks)
	},
}

var discard = log.New(io.Discard)

// Exporter runs export calls. The zero value is ready to use; an Exporter
// holds no per-call state and is safe for concurrent use.
type Exporter struct {
	// Logger receives debug and completion logs. Nil discards them.
	Logger *log.Logger

	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

// New returns an Exporter logging to logger.
func New(logger *log.Logger) *Exporter {
	return &Exporter{Logger: logger}
}

// Export runs one export with a zero-value Exporter.
func Export(ctx context.Context, d *diagram.Diagram, format Format, opts *Options, progress ProgressFunc) (*Artifact, error) {
	var x Exporter
	return x.Export(ctx, d, format, opts, progress)
}

// Export validates d, renders it in format and wraps the result in an
// Artifact. A nil opts means [DefaultOptions]. Every failure is an
// *errors.Error carrying one of the export error codes.
func (x *Exporter) Export(ctx context.Context, d *diagram.Diagram, format Format, opts *Options, progress ProgressFunc) (art *Artifact, err error) {
	logger := x.logger()
	now := x.now()
	start := time.Now()

	report := func(stage Stage, percent int, msg string) {
		logger.Debug("export progress", "stage", stage, "percent", percent)
		if progress != nil {
			progress(Progress{Stage: stage, Percent: percent, Message: msg})
		}
	}

	report(StagePreparing, 0, "Validating diagram")
	defer func() {
		duration := time.Since(start)
		size := 0
		if art != nil {
			size = art.Size()
		}
		observability.Export().OnExportComplete(ctx, string(format), size, duration, err)
		if err != nil {
			logger.Debug("export failed", "format", format, "code", errors.GetCode(err), "error", err)
			report(StageComplete, 100, "Export failed")
			return
		}
		logger.Info("export complete",
			"format", format,
			"nodes", art.Metadata.NodeCount,
			"edges", art.Metadata.EdgeCount,
			"bytes", size,
			"duration", duration)
		report(StageComplete, 100, "Export complete")
	}()

	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	if err := Validate(d); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "invalid export options")
	}

	info, ok := Lookup(format)
	if !ok {
		return nil, unsupported(format)
	}
	gen, ok := generators[format]
	if !ok || !info.Implemented {
		return nil, notImplemented(info)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "export cancelled")
	}

	observability.Export().OnExportStart(ctx, string(format), len(d.Nodes))
	report(StageProcessing, 25, fmt.Sprintf("Generating %s", format))

	in := render.NewInput(d, opts.Common, now)
	content, genErr := run(gen, in, opts)
	if genErr != nil {
		if e, ok := errors.As(genErr); ok {
			return nil, e
		}
		return nil, errors.Wrap(errors.ErrCodeExportFailed, genErr, "%s export failed", format)
	}

	report(StageFinalizing, 90, "Finalizing export")
	return &Artifact{
		Format:    format,
		Content:   content,
		MediaType: info.MediaType,
		Filename:  Filename(d.Name, now, info),
		Metadata: ArtifactMetadata{
			NodeCount:   len(d.Nodes),
			EdgeCount:   len(d.Edges),
			GeneratedAt: now,
			Options:     *opts,
		},
	}, nil
}

// run calls gen and turns a panic into an EXPORT_FAILED error.
func run(gen generator, in render.Input, opts *Options) (content []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeExportFailed, "generator panicked: %v", r).
				WithDetail("panic", fmt.Sprint(r))
		}
	}()
	return gen(in, opts)
}

func (x *Exporter) logger() *log.Logger {
	if x.Logger == nil {
		return discard
	}
	return x.Logger
}

func (x *Exporter) now() time.Time {
	if x.Now == nil {
		return time.Now()
	}
	return x.Now()
}

// =============================================================================
// Validation and naming
// =============================================================================

// Validate checks the structural requirements of a diagram: a non-empty id
// and name, and present (possibly empty) node and edge lists. Dangling edge
// references are allowed.
func Validate(d *diagram.Diagram) error {
	switch {
	case d == nil:
		return errors.New(errors.ErrCodeInvalidData, "diagram is required")
	case strings.TrimSpace(d.ID) == "":
		return errors.New(errors.ErrCodeInvalidData, "diagram id is required").WithDetail("field", "id")
	case strings.TrimSpace(d.Name) == "":
		return errors.New(errors.ErrCodeInvalidData, "diagram name is required").WithDetail("field", "name")
	case d.Nodes == nil:
		return errors.New(errors.ErrCodeInvalidData, "diagram nodes must be a list").WithDetail("field", "nodes")
	case d.Edges == nil:
		return errors.New(errors.ErrCodeInvalidData, "diagram edges must be a list").WithDetail("field", "edges")
	}
	return nil
}

// fallbackSlug names files of diagrams whose name has no usable characters.
const fallbackSlug = "diagram"

// Filename builds the suggested file name: the slugified diagram name, the
// UTC date and the format extension, e.g. "checkout-flow-2024-03-15.md".
func Filename(name string, date time.Time, info FormatInfo) string {
	slug := render.Slugify(name)
	if slug == "" {
		slug = fallbackSlug
	}
	return slug + "-" + date.UTC().Format(time.DateOnly) + info.Extension
}
