package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archexport/pkg/config"
	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/errors"
	"github.com/matzehuels/archexport/pkg/export"
	"github.com/matzehuels/archexport/pkg/render/tasklist"
	"github.com/matzehuels/archexport/pkg/source"
)

// stdio names standard input or output in place of a path.
const stdio = "-"

// exportOpts holds the command-line flags for the export command.
// Flags left unset fall back to the config file.
type exportOpts struct {
	format      string // export format tag
	output      string // output path, "-" for stdout
	interactive bool   // pick the format in a TUI
	preview     bool   // print the artifact instead of writing it

	source    sourceFlags
	inputYAML bool // stdin carries YAML instead of JSON

	title        string
	description  string
	author       string
	noMetadata   bool
	noTimestamps bool

	headingLevel int
	toc          bool
	mermaid      bool
	computed     bool
	compact      bool
	groupByPhase bool
	hints        bool
	priority     string
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <snapshot>",
		Short: "Export a diagram snapshot as markdown, JSON or a task list",
		Long: `Export a diagram snapshot.

The snapshot is a file path, an id resolved against the snapshot directory
(<dir>/<id>.json, .yaml or .yml), a MongoDB document id with --source mongo,
or "-" to read JSON from standard input.`,
		Example: `  archexport export checkout.json
  archexport export checkout -f cursor -o tasks.json
  archexport export d-42 --source mongo --format json --computed
  cat diagram.json | archexport export - --preview`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "", "export format: markdown, json, cursor (default from config)")
	f.StringVarP(&opts.output, "output", "o", "", "output file, or - for stdout (default: generated filename)")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "choose the format interactively")
	f.BoolVar(&opts.preview, "preview", false, "print the artifact to the terminal instead of writing a file")

	opts.source.addFlags(cmd, sourceLocal, sourceLocal, sourceMongo)
	f.BoolVar(&opts.inputYAML, "yaml", false, "read YAML instead of JSON from stdin")

	f.StringVar(&opts.title, "title", "", "override the document title")
	f.StringVar(&opts.description, "description", "", "override the document description")
	f.StringVar(&opts.author, "author", "", "author recorded in the artifact")
	f.BoolVar(&opts.noMetadata, "no-metadata", false, "omit metadata blocks and the export footer")
	f.BoolVar(&opts.noTimestamps, "no-timestamps", false, "omit creation and update timestamps")

	f.IntVar(&opts.headingLevel, "heading-level", 1, "markdown: level of the title heading (1-6)")
	f.BoolVar(&opts.toc, "toc", false, "markdown: include a table of contents")
	f.BoolVar(&opts.mermaid, "mermaid", false, "markdown: include a mermaid diagram")
	f.BoolVar(&opts.computed, "computed", false, "json: include connectivity, flows and complexity")
	f.BoolVar(&opts.compact, "compact", false, "json: write compact output")
	f.BoolVar(&opts.groupByPhase, "group-by-phase", false, "cursor: group tasks by phase")
	f.BoolVar(&opts.hints, "hints", false, "cursor: include implementation hints")
	f.StringVar(&opts.priority, "priority", "", "cursor: priority for unclassified components")

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("priority", cobra.FixedCompletions(
		[]string{"critical", "high", "medium", "low"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, ref string, opts *exportOpts) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	format, err := c.resolveFormat(cmd, cfg, opts)
	if err != nil || format == "" {
		return err
	}

	exportOptions := cfg.ExportOptions()
	applyExportFlags(cmd, opts, &exportOptions)

	d, err := c.loadSnapshot(ctx, cfg, ref, opts)
	if err != nil {
		return err
	}

	c.Logger.Debug("exporting", "diagram", d.ID, "format", format, "nodes", len(d.Nodes), "edges", len(d.Edges))

	prog := newProgress(c.Logger)
	var progressFn export.ProgressFunc
	var spinner *Spinner
	if isTerminal(os.Stderr) && !opts.preview {
		spinner = newSpinnerWithContext(ctx, "Exporting "+d.Name)
		spinner.Start()
		progressFn = spinner.Progress()
	}

	art, err := export.New(c.Logger).Export(ctx, d, format, &exportOptions, progressFn)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError(errors.UserMessage(err))
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	if opts.preview {
		return c.previewArtifact(art)
	}
	path, err := writeArtifact(art, opts.output)
	if err != nil {
		return err
	}
	if path == stdio {
		return nil
	}

	prog.done("Exported " + art.Filename)
	printSuccess("Exported %s", StyleHighlight.Render(string(art.Format)))
	printFile(path)
	printStats(art.Metadata.NodeCount, art.Metadata.EdgeCount, art.Size())
	return nil
}

// resolveFormat picks the format from --format, the TUI, or the config
// default. An empty format with a nil error means the user cancelled.
func (c *CLI) resolveFormat(cmd *cobra.Command, cfg *config.Config, opts *exportOpts) (export.Format, error) {
	format := cfg.DefaultFormat()
	if cmd.Flags().Changed("format") {
		f, err := export.ParseFormat(opts.format)
		if err != nil {
			return "", err
		}
		format = f
	}
	if !opts.interactive {
		return format, nil
	}
	if !isTerminal(os.Stdin) {
		printWarning("--interactive needs a terminal; using %s", format)
		return format, nil
	}
	picked, ok, err := pickFormat(format)
	if err != nil {
		return "", fmt.Errorf("format picker: %w", err)
	}
	if !ok {
		printInfo("Cancelled")
		return "", nil
	}
	return picked, nil
}

// applyExportFlags overlays explicitly set flags onto config-derived options.
func applyExportFlags(cmd *cobra.Command, opts *exportOpts, o *export.Options) {
	changed := cmd.Flags().Changed

	if changed("title") {
		o.Title = opts.title
	}
	if changed("description") {
		o.Description = opts.description
	}
	if changed("author") {
		o.Author = opts.author
	}
	if changed("no-metadata") {
		o.IncludeMetadata = !opts.noMetadata
	}
	if changed("no-timestamps") {
		o.IncludeTimestamps = !opts.noTimestamps
	}
	if changed("heading-level") {
		o.Markdown.HeadingLevel = opts.headingLevel
	}
	if changed("toc") {
		o.Markdown.TableOfContents = opts.toc
	}
	if changed("mermaid") {
		o.Markdown.Mermaid = opts.mermaid
	}
	if changed("computed") {
		o.JSON.Computed = opts.computed
	}
	if changed("compact") {
		o.JSON.Pretty = !opts.compact
	}
	if changed("group-by-phase") {
		o.Tasks.GroupByPhase = opts.groupByPhase
	}
	if changed("hints") {
		o.Tasks.Hints = opts.hints
	}
	if changed("priority") {
		o.Tasks.DefaultPriority = tasklist.Priority(opts.priority)
	}
}

// loadSnapshot reads the diagram named by ref from stdin or a provider.
func (c *CLI) loadSnapshot(ctx context.Context, cfg *config.Config, ref string, opts *exportOpts) (*diagram.Diagram, error) {
	if ref == stdio {
		enc := diagram.EncodingJSON
		if opts.inputYAML {
			enc = diagram.EncodingYAML
		}
		return diagram.Read(os.Stdin, enc)
	}

	if opts.source.kind == sourceNone {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "export needs a snapshot source")
	}
	p, closeFn, err := opts.source.open(ctx, c, cfg)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return source.Load(ctx, p, ref)
}

// writeArtifact writes art to output and returns the path written.
// An empty output uses the artifact's generated filename.
func writeArtifact(art *export.Artifact, output string) (string, error) {
	if output == stdio {
		_, err := os.Stdout.Write(art.Content)
		return stdio, err
	}
	if output == "" {
		output = art.Filename
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(output, art.Content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", output, err)
	}
	return output, nil
}

// previewArtifact prints the artifact to stdout. Markdown is rendered for
// the terminal when stdout is one.
func (c *CLI) previewArtifact(art *export.Artifact) error {
	content := string(art.Content)
	if art.Format == export.FormatMarkdown && isTerminal(os.Stdout) {
		rendered, err := renderMarkdown(content)
		if err != nil {
			c.Logger.Warn("markdown rendering failed, printing raw", "error", err)
		}
		content = rendered
	}
	_, err := fmt.Fprintln(os.Stdout, content)
	return err
}
