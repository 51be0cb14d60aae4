package export

import (
	"fmt"

	"github.com/matzehuels/archexport/pkg/render"
	"github.com/matzehuels/archexport/pkg/render/datajson"
	"github.com/matzehuels/archexport/pkg/render/markdown"
	"github.com/matzehuels/archexport/pkg/render/tasklist"
)

// MaxIndent bounds the JSON indentation width.
const MaxIndent = 16

// Options configures one export call. The common fields apply to every
// format; each generator reads only its own section.
//
// Start from [DefaultOptions]: several flags default to true.
type Options struct {
	render.Common

	Markdown markdown.Options `json:"markdown"`
	JSON     datajson.Options `json:"json"`
	Tasks    tasklist.Options `json:"cursor"`
}

// DefaultOptions returns the options used when the caller passes nil.
func DefaultOptions() Options {
	return Options{
		Common: render.Common{
			IncludeMetadata:   true,
			IncludeTimestamps: true,
		},
		Markdown: markdown.DefaultOptions(),
		JSON:     datajson.DefaultOptions(),
		Tasks:    tasklist.DefaultOptions(),
	}
}

// Validate checks option values that generators cannot recover from.
func (o Options) Validate() error {
	if l := o.Markdown.HeadingLevel; l < 1 || l > markdown.MaxHeadingLevel {
		return fmt.Errorf("markdown heading level must be between 1 and %d, got %d", markdown.MaxHeadingLevel, l)
	}
	if o.JSON.Indent < 0 || o.JSON.Indent > MaxIndent {
		return fmt.Errorf("json indent must be between 0 and %d, got %d", MaxIndent, o.JSON.Indent)
	}
	if err := o.Tasks.Validate(); err != nil {
		return fmt.Errorf("cursor: %w", err)
	}
	return nil
}
