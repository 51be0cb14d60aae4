package export

import (
	"slices"
	"strings"

	"github.com/matzehuels/archexport/pkg/errors"
)

// Format is an export format tag.
type Format string

// Format tags.
const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCursor   Format = "cursor"
	FormatPDF      Format = "pdf"
	FormatPNG      Format = "png"
	FormatSVG      Format = "svg"
)

// DefaultFormat is used when the caller names none.
const DefaultFormat = FormatMarkdown

// FormatInfo describes one entry of the format registry.
type FormatInfo struct {
	Format      Format `json:"format"`
	Description string `json:"description"`
	MediaType   string `json:"mediaType"`
	Extension   string `json:"extension"`
	Implemented bool   `json:"implemented"`
	PlannedWork string `json:"plannedWork,omitempty"`
}

var registry = []FormatInfo{
	{
		Format:      FormatMarkdown,
		Description: "Human-readable architecture document",
		MediaType:   "text/markdown",
		Extension:   ".md",
		Implemented: true,
	},
	{
		Format:      FormatJSON,
		Description: "Normalized diagram data with statistics",
		MediaType:   "application/json",
		Extension:   ".json",
		Implemented: true,
	},
	{
		Format:      FormatCursor,
		Description: "Implementation task list for coding assistants",
		MediaType:   "application/json",
		Extension:   ".cursor.json",
		Implemented: true,
	},
	{
		Format:      FormatPDF,
		Description: "Paginated document",
		MediaType:   "application/pdf",
		Extension:   ".pdf",
		PlannedWork: "paginated rendering of the markdown document",
	},
	{
		Format:      FormatPNG,
		Description: "Raster image of the diagram",
		MediaType:   "image/png",
		Extension:   ".png",
		PlannedWork: "raster rendering of the diagram graph",
	},
	{
		Format:      FormatSVG,
		Description: "Vector image of the diagram",
		MediaType:   "image/svg+xml",
		Extension:   ".svg",
		PlannedWork: "vector rendering of the diagram graph",
	},
}

// Formats returns every registered format, implemented ones first.
func Formats() []FormatInfo {
	return slices.Clone(registry)
}

// Lookup returns the registry entry for f.
func Lookup(f Format) (FormatInfo, bool) {
	for _, info := range registry {
		if info.Format == f {
			return info, true
		}
	}
	return FormatInfo{}, false
}

// ParseFormat normalizes s and checks it against the registry. Reserved
// formats parse successfully; exporting them fails later.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Lookup(f); !ok {
		return "", unsupported(f)
	}
	return f, nil
}

func unsupported(f Format) *errors.Error {
	names := make([]string, len(registry))
	for i, info := range registry {
		names[i] = string(info.Format)
	}
	return errors.New(errors.ErrCodeUnsupportedFormat, "unsupported export format %q", string(f)).
		WithDetail("format", string(f)).
		WithDetail("supported", names)
}

func notImplemented(info FormatInfo) *errors.Error {
	return errors.New(errors.ErrCodeNotImplemented, "%s export is not implemented yet", string(info.Format)).
		WithDetail("format", string(info.Format)).
		WithDetail("plannedWork", info.PlannedWork)
}
