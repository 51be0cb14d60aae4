package datajson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/archexport/pkg/analysis"
	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/render"
)

// Version is the schema version written to every document.
const Version = "1.0"

// mostConnectedLimit bounds computed.connectivity.mostConnected.
const mostConnectedLimit = 5

// Options configures JSON generation.
type Options struct {
	// Indent is the number of spaces per nesting level when Pretty is set.
	Indent int `json:"indent" toml:"indent"`

	// Pretty selects indented output; otherwise the document is compact.
	Pretty bool `json:"pretty" toml:"pretty"`

	// Computed adds the computed region.
	Computed bool `json:"computed" toml:"computed"`
}

// DefaultOptions returns the options used when the caller sets none.
func DefaultOptions() Options {
	return Options{Indent: 2, Pretty: true}
}

// =============================================================================
// Document
// =============================================================================

// Document is the normalized representation of one diagram.
type Document struct {
	Version    string     `json:"version"`
	Metadata   Metadata   `json:"metadata"`
	Diagram    Body       `json:"diagram"`
	Statistics Statistics `json:"statistics"`
	Computed   *Computed  `json:"computed,omitempty"`
}

// Metadata describes where the document came from.
type Metadata struct {
	Diagram    DiagramInfo    `json:"diagram"`
	Project    *Project       `json:"project,omitempty"`
	Export     *ExportInfo    `json:"export,omitempty"`
	Author     *Author        `json:"author,omitempty"`
	Timestamps *Timestamps    `json:"timestamps,omitempty"`
	Custom     map[string]any `json:"custom,omitempty"`
}

// DiagramInfo identifies the source diagram.
type DiagramInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Project identifies the owning project.
type Project struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// ExportInfo carries the caller's title and description overrides.
type ExportInfo struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Author is the person the export is attributed to.
type Author struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Timestamps are RFC 3339 instants in UTC.
type Timestamps struct {
	Created    string `json:"created,omitempty"`
	Updated    string `json:"updated,omitempty"`
	ExportedAt string `json:"exportedAt"`
}

// Body holds the normalized graph.
type Body struct {
	Nodes    []Node            `json:"nodes"`
	Edges    []Edge            `json:"edges"`
	Viewport *diagram.Viewport `json:"viewport,omitempty"`
}

// Node is a diagram node with a stable field set.
type Node struct {
	ID          string           `json:"id"`
	Type        diagram.NodeType `json:"type"`
	Label       string           `json:"label"`
	Description string           `json:"description,omitempty"`
	Position    diagram.Position `json:"position"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
	Width       *float64         `json:"width,omitempty"`
	Height      *float64         `json:"height,omitempty"`
	Selected    *bool            `json:"selected,omitempty"`
	ParentID    string           `json:"parentId,omitempty"`
	ZIndex      *int             `json:"zIndex,omitempty"`
}

// Edge is a diagram edge with a stable field set.
type Edge struct {
	ID       string           `json:"id"`
	Source   string           `json:"source"`
	Target   string           `json:"target"`
	Type     diagram.EdgeType `json:"type"`
	Label    string           `json:"label,omitempty"`
	Animated *bool            `json:"animated,omitempty"`
}

// Statistics summarizes the graph by type.
type Statistics struct {
	NodeCount   int                 `json:"nodeCount"`
	EdgeCount   int                 `json:"edgeCount"`
	NodesByType map[string][]string `json:"nodesByType"`
	EdgesByType map[string]int      `json:"edgesByType"`
}

// Computed holds derived graph properties.
type Computed struct {
	Connectivity Connectivity               `json:"connectivity"`
	Flows        analysis.Flows             `json:"flows"`
	Complexity   analysis.ComplexityMetrics `json:"complexity"`
}

// Connectivity holds per-node degrees and the highest-degree nodes.
type Connectivity struct {
	Nodes         map[string]analysis.Degree `json:"nodes"`
	MostConnected []analysis.RankedNode      `json:"mostConnected"`
}

// =============================================================================
// Generation
// =============================================================================

// Generate encodes the normalized document for in.
func Generate(in render.Input, opts Options) ([]byte, error) {
	doc := Build(in, opts)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Pretty {
		enc.SetIndent("", strings.Repeat(" ", max(opts.Indent, 0)))
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Build assembles the normalized document for in.
func Build(in render.Input, opts Options) *Document {
	doc := &Document{
		Version:    Version,
		Metadata:   buildMetadata(in),
		Diagram:    buildBody(in.Diagram),
		Statistics: buildStatistics(in.Index),
	}
	if opts.Computed {
		doc.Computed = buildComputed(in.Index)
	}
	return doc
}

func buildMetadata(in render.Input) Metadata {
	d := in.Diagram
	m := Metadata{
		Diagram: DiagramInfo{ID: d.ID, Name: d.Name, Description: d.Description},
	}
	if d.ProjectID != "" || d.ProjectName != "" {
		m.Project = &Project{ID: d.ProjectID, Name: d.ProjectName}
	}
	if in.Common.Title != "" || in.Common.Description != "" {
		m.Export = &ExportInfo{Title: in.Common.Title, Description: in.Common.Description}
	}

	switch {
	case in.Common.Author != "":
		m.Author = &Author{Name: in.Common.Author}
	case d.Owner != nil:
		m.Author = &Author{ID: d.Owner.ID, Name: d.Owner.Name, Email: d.Owner.Email}
	}

	if in.Common.IncludeTimestamps {
		ts := &Timestamps{ExportedAt: render.Timestamp(in.Now)}
		if d.CreatedAt != nil {
			ts.Created = render.Timestamp(*d.CreatedAt)
		}
		if d.UpdatedAt != nil {
			ts.Updated = render.Timestamp(*d.UpdatedAt)
		}
		m.Timestamps = ts
	}
	if in.Common.IncludeMetadata && len(d.Metadata) > 0 {
		m.Custom = d.Metadata
	}
	return m
}

func buildBody(d *diagram.Diagram) Body {
	b := Body{
		Nodes:    make([]Node, 0, len(d.Nodes)),
		Edges:    make([]Edge, 0, len(d.Edges)),
		Viewport: d.Viewport,
	}
	for i := range d.Nodes {
		n := &d.Nodes[i]
		b.Nodes = append(b.Nodes, Node{
			ID:          n.ID,
			Type:        n.Kind(),
			Label:       n.Data.Label,
			Description: n.Data.Description,
			Position:    n.Position,
			Metadata:    n.Data.Metadata,
			Width:       n.Width,
			Height:      n.Height,
			Selected:    n.Selected,
			ParentID:    n.ParentID,
			ZIndex:      n.ZIndex,
		})
	}
	for i := range d.Edges {
		e := &d.Edges[i]
		b.Edges = append(b.Edges, Edge{
			ID:       e.ID,
			Source:   e.Source,
			Target:   e.Target,
			Type:     e.Kind(),
			Label:    e.Label(),
			Animated: e.Animated,
		})
	}
	return b
}

func buildStatistics(ix *analysis.Index) Statistics {
	s := Statistics{
		NodeCount:   ix.NodeCount(),
		EdgeCount:   ix.EdgeCount(),
		NodesByType: make(map[string][]string),
		EdgesByType: make(map[string]int),
	}
	for _, t := range ix.NodeTypes() {
		nodes := ix.NodesOfType(t)
		ids := make([]string, len(nodes))
		for i, n := range nodes {
			ids[i] = n.ID
		}
		s.NodesByType[string(t)] = ids
	}
	for _, t := range ix.EdgeTypes() {
		s.EdgesByType[string(t)] = len(ix.EdgesOfType(t))
	}
	return s
}

func buildComputed(ix *analysis.Index) *Computed {
	d := ix.Diagram()
	nodes := make(map[string]analysis.Degree, len(d.Nodes))
	for i := range d.Nodes {
		id := d.Nodes[i].ID
		nodes[id] = ix.Degree(id)
	}
	return &Computed{
		Connectivity: Connectivity{
			Nodes:         nodes,
			MostConnected: analysis.MostConnected(ix, mostConnectedLimit),
		},
		Flows:      analysis.ClassifyFlows(ix),
		Complexity: analysis.Complexity(ix),
	}
}
