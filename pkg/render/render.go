package render

import (
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/archexport/pkg/analysis"
	"github.com/matzehuels/archexport/pkg/diagram"
)

// Common holds the options every format understands.
type Common struct {
	IncludeMetadata   bool   `json:"includeMetadata" toml:"include_metadata"`
	IncludeTimestamps bool   `json:"includeTimestamps" toml:"include_timestamps"`
	Title             string `json:"title,omitempty" toml:"title"`
	Description       string `json:"description,omitempty" toml:"description"`
	Author            string `json:"author,omitempty" toml:"author"`
}

// Input is everything a generator reads during one export call.
type Input struct {
	Diagram *diagram.Diagram
	Index   *analysis.Index
	Common  Common
	Now     time.Time
}

// NewInput indexes d and bundles it with the common options and clock reading.
func NewInput(d *diagram.Diagram, common Common, now time.Time) Input {
	return Input{
		Diagram: d,
		Index:   analysis.NewIndex(d),
		Common:  common,
		Now:     now,
	}
}

// Title returns the title override, or the diagram name.
func (in Input) Title() string {
	if in.Common.Title != "" {
		return in.Common.Title
	}
	return in.Diagram.Name
}

// Description returns the description override, or the diagram description.
func (in Input) Description() string {
	if in.Common.Description != "" {
		return in.Common.Description
	}
	return in.Diagram.Description
}

// Author returns the author override, or the owner's name.
func (in Input) Author() string {
	if in.Common.Author != "" {
		return in.Common.Author
	}
	if in.Diagram.Owner != nil {
		return in.Diagram.Owner.Name
	}
	return ""
}

// Timestamp formats t the way every generator prints instants.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s, collapses every run of non-alphanumeric characters
// into a single hyphen and trims leading and trailing hyphens.
//
//	Slugify("User Login Form!@# Component") // "user-login-form-component"
func Slugify(s string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
