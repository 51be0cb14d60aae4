package markdown

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/render"
)

// =============================================================================
// Header
// =============================================================================

func (w *writer) header() string {
	var b strings.Builder
	b.WriteString(w.heading(0, w.in.Title()))

	if desc := w.in.Description(); desc != "" {
		b.WriteString("\n\n" + desc)
	}

	d := w.in.Diagram
	var facts []string
	if d.ProjectName != "" {
		facts = append(facts, "- **Project**: "+d.ProjectName)
	}
	if author := w.in.Author(); author != "" {
		facts = append(facts, "- **Author**: "+author)
	}
	if w.in.Common.IncludeTimestamps {
		if d.CreatedAt != nil {
			facts = append(facts, "- **Created**: "+render.Timestamp(*d.CreatedAt))
		}
		if d.UpdatedAt != nil {
			facts = append(facts, "- **Last Updated**: "+render.Timestamp(*d.UpdatedAt))
		}
		facts = append(facts, "- **Generated**: "+render.Timestamp(w.in.Now))
	}
	if len(facts) > 0 {
		b.WriteString("\n\n" + strings.Join(facts, "\n"))
	}
	return b.String()
}

func (w *writer) tableOfContents() string {
	lines := []string{w.heading(1, "Table of Contents"), ""}
	for i, title := range w.sectionTitles() {
		lines = append(lines, fmt.Sprintf("%d. [%s](#%s)", i+1, title, anchor(title)))
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// Overview
// =============================================================================

func (w *writer) overview() string {
	ix := w.in.Index
	lines := []string{
		w.heading(1, "Overview"),
		"",
		fmt.Sprintf("This diagram contains %s and %s.",
			bold(plural(ix.NodeCount(), "component", "components")),
			bold(plural(ix.EdgeCount(), "connection", "connections"))),
		"",
		w.heading(2, "Components by Type"),
		"",
	}
	if ix.NodeCount() == 0 {
		lines = append(lines, "_No components defined._")
	}
	for _, t := range ix.NodeTypes() {
		n := len(ix.NodesOfType(t))
		lines = append(lines, fmt.Sprintf("- %s: %s", bold(t.DisplayName()), plural(n, "component", "components")))
	}

	lines = append(lines, "", w.heading(2, "Connections by Type"), "")
	if ix.EdgeCount() == 0 {
		lines = append(lines, "_No connections defined._")
	}
	for _, t := range ix.EdgeTypes() {
		n := len(ix.EdgesOfType(t))
		lines = append(lines, fmt.Sprintf("- %s: %s", bold(t.DisplayName()), plural(n, "connection", "connections")))
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// Components
// =============================================================================

func (w *writer) components() (string, error) {
	ix := w.in.Index
	blocks := []string{w.heading(1, "Components")}
	if ix.NodeCount() == 0 {
		blocks = append(blocks, "_No components defined._")
	}
	for _, t := range ix.NodeTypes() {
		blocks = append(blocks, w.heading(2, t.PluralName()))
		for _, n := range ix.NodesOfType(t) {
			entry, err := w.component(n)
			if err != nil {
				return "", err
			}
			blocks = append(blocks, entry)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

func (w *writer) component(n *diagram.Node) (string, error) {
	ix := w.in.Index
	parts := []string{
		w.heading(3, n.DisplayLabel()),
		fmt.Sprintf("- **ID**: `%s`\n- **Type**: %s", n.ID, n.Kind().DisplayName()),
	}

	if n.Data.Description != "" {
		parts = append(parts, n.Data.Description)
	} else {
		parts = append(parts, "_No description provided._")
	}

	if w.in.Common.IncludeMetadata && len(n.Data.Metadata) > 0 {
		meta, err := json.MarshalIndent(n.Data.Metadata, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode metadata of node %q: %w", n.ID, err)
		}
		parts = append(parts, "**Metadata:**", "```json\n"+string(meta)+"\n```")
	}

	var conns []string
	for _, e := range ix.Outgoing(n.ID) {
		conns = append(conns, "- Outgoing to "+bold(ix.Label(e.Target))+connectionSuffix(e))
	}
	for _, e := range ix.Incoming(n.ID) {
		conns = append(conns, "- Incoming from "+bold(ix.Label(e.Source))+connectionSuffix(e))
	}
	parts = append(parts, "**Connections:**")
	if len(conns) == 0 {
		parts = append(parts, "_No connections._")
	} else {
		parts = append(parts, strings.Join(conns, "\n"))
	}
	return strings.Join(parts, "\n\n"), nil
}

func connectionSuffix(e *diagram.Edge) string {
	s := " (" + e.Kind().DisplayName() + ")"
	if label := e.Label(); label != "" {
		s += ": " + label
	}
	return s
}

// =============================================================================
// Connections
// =============================================================================

// connectionGroups returns the edge types the Connections section lists:
// every known type, then any other type present in the diagram.
func (w *writer) connectionGroups() []diagram.EdgeType {
	groups := slices.Clone(diagram.EdgeTypes)
	for _, t := range w.in.Index.EdgeTypes() {
		if !slices.Contains(groups, t) {
			groups = append(groups, t)
		}
	}
	return groups
}

func (w *writer) connections() string {
	ix := w.in.Index
	blocks := []string{w.heading(1, "Connections")}
	for _, t := range w.connectionGroups() {
		blocks = append(blocks, w.heading(2, t.PluralName()))
		edges := ix.EdgesOfType(t)
		if len(edges) == 0 {
			blocks = append(blocks, fmt.Sprintf("_No %s connections._", strings.ToLower(t.DisplayName())))
			continue
		}
		rows := []string{"| From | To | Description |", "| --- | --- | --- |"}
		for _, e := range edges {
			desc := e.Label()
			if desc == "" {
				desc = "-"
			}
			rows = append(rows, fmt.Sprintf("| %s | %s | %s |",
				cell(ix.Label(e.Source)), cell(ix.Label(e.Target)), cell(desc)))
		}
		blocks = append(blocks, strings.Join(rows, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// =============================================================================
// Flows
// =============================================================================

func (w *writer) flows() string {
	ix := w.in.Index
	blocks := []string{w.heading(1, "Flows")}

	narrate := func(t diagram.EdgeType, empty string, ordered bool, line func(src, dst string) string) {
		blocks = append(blocks, w.heading(2, t.PluralName()))
		edges := ix.EdgesOfType(t)
		if len(edges) == 0 {
			blocks = append(blocks, empty)
			return
		}
		items := make([]string, len(edges))
		for i, e := range edges {
			text := line(bold(ix.Label(e.Source)), bold(ix.Label(e.Target)))
			if label := e.Label(); label != "" {
				text += ": " + label
			}
			if ordered {
				items[i] = fmt.Sprintf("%d. %s", i+1, text)
			} else {
				items[i] = "- " + text
			}
		}
		blocks = append(blocks, strings.Join(items, "\n"))
	}

	narrate(diagram.EdgeDataFlow, "_No data flows defined._", true, func(src, dst string) string {
		return src + " sends data to " + dst
	})
	narrate(diagram.EdgeUserFlow, "_No user flows defined._", true, func(src, dst string) string {
		return "User moves from " + src + " to " + dst
	})
	narrate(diagram.EdgeDependency, "_No dependencies defined._", false, func(src, dst string) string {
		return dst + " depends on " + src
	})
	return strings.Join(blocks, "\n\n")
}

// =============================================================================
// Specifications
// =============================================================================

// layer is one bucket of the architecture summary.
type layer struct {
	name  string
	types []diagram.NodeType
}

var layers = []layer{
	{"Frontend", []diagram.NodeType{diagram.NodeUIComponent}},
	{"API", []diagram.NodeType{diagram.NodeAPIEndpoint}},
	{"Services", []diagram.NodeType{diagram.NodeService}},
	{"Data", []diagram.NodeType{diagram.NodeDatabase}},
	{"Infrastructure", []diagram.NodeType{diagram.NodeInfrastructure}},
}

func (w *writer) specifications() string {
	ix := w.in.Index
	lines := []string{w.heading(1, "Specifications"), "", w.heading(2, "Architecture Summary"), ""}

	covered := make(map[diagram.NodeType]bool)
	var summary []string
	add := func(name string, types []diagram.NodeType) {
		var labels []string
		for _, t := range types {
			covered[t] = true
			for _, n := range ix.NodesOfType(t) {
				labels = append(labels, n.DisplayLabel())
			}
		}
		if len(labels) == 0 {
			return
		}
		summary = append(summary, fmt.Sprintf("- %s: %s (%s)",
			bold(name), plural(len(labels), "component", "components"), strings.Join(labels, ", ")))
	}

	for _, l := range layers {
		add(l.name, l.types)
	}
	var rest []diagram.NodeType
	for _, t := range ix.NodeTypes() {
		if !covered[t] {
			rest = append(rest, t)
		}
	}
	add("Other", rest)

	if len(summary) == 0 {
		summary = []string{"_No components defined._"}
	}
	return strings.Join(append(lines, summary...), "\n")
}

// =============================================================================
// Diagram and footer
// =============================================================================

func (w *writer) mermaid() string {
	return w.heading(1, "Architecture Diagram") + "\n\n```mermaid\n" + ToMermaid(w.in.Index) + "```"
}

func (w *writer) footer() string {
	d := w.in.Diagram
	lines := []string{
		w.heading(1, "Export Information"),
		"",
		"- **Diagram ID**: `" + d.ID + "`",
	}
	if d.ProjectID != "" {
		lines = append(lines, "- **Project ID**: `"+d.ProjectID+"`")
	}
	lines = append(lines,
		fmt.Sprintf("- **Total Components**: %d", w.in.Index.NodeCount()),
		fmt.Sprintf("- **Total Connections**: %d", w.in.Index.EdgeCount()),
	)
	if w.in.Common.IncludeTimestamps {
		lines = append(lines, "- **Exported At**: "+render.Timestamp(w.in.Now))
	}
	lines = append(lines, "", "_Generated by archexport._")
	return strings.Join(lines, "\n")
}
