package markdown

import (
	"fmt"
	"strings"

	"github.com/matzehuels/archexport/pkg/render"
)

// MaxHeadingLevel is the deepest heading Markdown supports.
const MaxHeadingLevel = 6

const separator = "\n\n---\n\n"

// Options configures Markdown generation.
type Options struct {
	// HeadingLevel is the level of the title heading (1-6).
	HeadingLevel int `json:"headingLevel" toml:"heading_level"`

	// TableOfContents adds a linked list of sections after the header.
	TableOfContents bool `json:"tableOfContents" toml:"table_of_contents"`

	// NodeDetails adds the Components section.
	NodeDetails bool `json:"nodeDetails" toml:"node_details"`

	// EdgeDetails adds the Connections section.
	EdgeDetails bool `json:"edgeDetails" toml:"edge_details"`

	// Mermaid adds a Mermaid flowchart of the diagram.
	Mermaid bool `json:"mermaid" toml:"mermaid"`
}

// DefaultOptions returns the options used when the caller sets none.
func DefaultOptions() Options {
	return Options{
		HeadingLevel: 1,
		NodeDetails:  true,
		EdgeDetails:  true,
	}
}

// Generate renders in as a Markdown document.
//
// The only failure mode is node metadata that cannot be encoded as JSON.
func Generate(in render.Input, opts Options) ([]byte, error) {
	w := &writer{in: in, opts: opts, base: clampLevel(opts.HeadingLevel)}

	sections := []string{w.header()}
	if opts.TableOfContents {
		sections = append(sections, w.tableOfContents())
	}
	sections = append(sections, w.overview())
	if opts.NodeDetails {
		s, err := w.components()
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	if opts.EdgeDetails {
		sections = append(sections, w.connections())
	}
	sections = append(sections, w.flows(), w.specifications())
	if opts.Mermaid {
		sections = append(sections, w.mermaid())
	}
	if in.Common.IncludeMetadata {
		sections = append(sections, w.footer())
	}

	return []byte(strings.Join(sections, separator) + "\n"), nil
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > MaxHeadingLevel:
		return MaxHeadingLevel
	default:
		return level
	}
}

// writer carries the per-call state shared by the section builders.
type writer struct {
	in   render.Input
	opts Options
	base int
}

// heading returns a heading depth levels below the title, capped at h6.
func (w *writer) heading(depth int, text string) string {
	level := min(w.base+depth, MaxHeadingLevel)
	return strings.Repeat("#", level) + " " + text
}

// sectionTitles lists the level-one sections in document order, honouring
// the same toggles as Generate.
func (w *writer) sectionTitles() []string {
	titles := []string{"Overview"}
	if w.opts.NodeDetails {
		titles = append(titles, "Components")
	}
	if w.opts.EdgeDetails {
		titles = append(titles, "Connections")
	}
	titles = append(titles, "Flows", "Specifications")
	if w.opts.Mermaid {
		titles = append(titles, "Architecture Diagram")
	}
	if w.in.Common.IncludeMetadata {
		titles = append(titles, "Export Information")
	}
	return titles
}

// anchor returns the GitHub-style fragment for a heading.
func anchor(text string) string {
	return render.Slugify(text)
}

// plural formats n with the singular or plural noun.
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}

// bold wraps s in strong emphasis.
func bold(s string) string {
	return "**" + s + "**"
}

// cell escapes s for use inside a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
