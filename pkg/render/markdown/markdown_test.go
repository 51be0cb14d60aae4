package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/render"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func loginDiagram() *diagram.Diagram {
	return &diagram.Diagram{
		ID:   "d-1",
		Name: "Login",
		Nodes: []diagram.Node{
			{ID: "ui-1", Type: diagram.NodeUIComponent, Data: diagram.NodeData{Label: "Login Form"}},
			{ID: "api-1", Type: diagram.NodeAPIEndpoint, Data: diagram.NodeData{Label: "Auth API"}},
		},
		Edges: []diagram.Edge{
			{ID: "e-1", Source: "ui-1", Target: "api-1", Type: diagram.EdgeUserFlow},
		},
	}
}

func generate(t *testing.T, d *diagram.Diagram, common render.Common, opts Options) string {
	t.Helper()
	out, err := Generate(render.NewInput(d, common, fixedNow), opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return string(out)
}

func TestGenerateLoginScenario(t *testing.T) {
	doc := generate(t, loginDiagram(), render.Common{}, DefaultOptions())

	for _, want := range []string{
		"# Login\n",
		"This diagram contains **2 components** and **1 connection**.",
		"- **User Flow**: 1 connection",
		"- **UI Component**: 1 component",
		"| Login Form | Auth API | - |",
		"_No data flow connections._",
		"_No dependency connections._",
		"1. User moves from **Login Form** to **Auth API**",
		"- Outgoing to **Auth API** (User Flow)",
		"- Incoming from **Login Form** (User Flow)",
		"- **Frontend**: 1 component (Login Form)",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q\n%s", want, doc)
		}
	}
}

func TestGenerateSectionsSeparated(t *testing.T) {
	doc := generate(t, loginDiagram(), render.Common{}, DefaultOptions())
	// header, overview, components, connections, flows, specifications
	if got := strings.Count(doc, separator); got != 5 {
		t.Errorf("separators = %d, want 5", got)
	}
	if !strings.HasSuffix(doc, "\n") {
		t.Error("document should end with a newline")
	}
}

func TestGenerateToggles(t *testing.T) {
	tests := []struct {
		name    string
		common  render.Common
		opts    Options
		present []string
		absent  []string
	}{
		{
			name:    "defaults",
			opts:    DefaultOptions(),
			present: []string{"## Components", "## Connections"},
			absent:  []string{"## Table of Contents", "```mermaid", "## Export Information", "**Generated**"},
		},
		{
			name:    "no details",
			opts:    Options{HeadingLevel: 1},
			present: []string{"## Overview", "## Flows", "## Specifications"},
			absent:  []string{"## Components\n", "## Connections\n"},
		},
		{
			name:    "toc and mermaid",
			opts:    Options{HeadingLevel: 1, TableOfContents: true, Mermaid: true},
			present: []string{"## Table of Contents", "1. [Overview](#overview)", "[Architecture Diagram](#architecture-diagram)", "```mermaid\ngraph TD\n"},
		},
		{
			name:    "metadata and timestamps",
			common:  render.Common{IncludeMetadata: true, IncludeTimestamps: true},
			opts:    DefaultOptions(),
			present: []string{"## Export Information", "- **Diagram ID**: `d-1`", "- **Generated**: 2024-03-15T10:30:00Z", "- **Exported At**: 2024-03-15T10:30:00Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := generate(t, loginDiagram(), tt.common, tt.opts)
			for _, s := range tt.present {
				if !strings.Contains(doc, s) {
					t.Errorf("missing %q", s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(doc, s) {
					t.Errorf("unexpected %q", s)
				}
			}
		})
	}
}

func TestGenerateHeadingLevel(t *testing.T) {
	doc := generate(t, loginDiagram(), render.Common{}, Options{HeadingLevel: 3, NodeDetails: true})

	for _, want := range []string{"### Login\n", "#### Overview", "##### UI Components", "###### Login Form"} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q", want)
		}
	}

	doc = generate(t, loginDiagram(), render.Common{}, Options{HeadingLevel: 6, NodeDetails: true})
	if strings.Contains(doc, "#######") {
		t.Error("headings deeper than level 6 rendered")
	}
	if !strings.Contains(doc, "###### Overview") {
		t.Error("section heading not capped at level 6")
	}
}

func TestGenerateOverrides(t *testing.T) {
	d := loginDiagram()
	d.Description = "original"
	d.ProjectName = "Accounts"
	d.Owner = &diagram.Owner{Name: "Dana"}

	doc := generate(t, d, render.Common{}, DefaultOptions())
	for _, want := range []string{"# Login", "original", "- **Project**: Accounts", "- **Author**: Dana"} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q", want)
		}
	}

	doc = generate(t, d, render.Common{Title: "Custom", Description: "override", Author: "Lee"}, DefaultOptions())
	for _, want := range []string{"# Custom\n", "override", "- **Author**: Lee"} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestGenerateComponentDetails(t *testing.T) {
	d := &diagram.Diagram{
		ID:   "d",
		Name: "Shop",
		Nodes: []diagram.Node{
			{ID: "db", Type: diagram.NodeDatabase, Data: diagram.NodeData{
				Label:       "Orders DB",
				Description: "Stores orders",
				Metadata:    map[string]any{"engine": "postgres"},
			}},
			{ID: "lonely"},
		},
		Edges: []diagram.Edge{},
	}

	doc := generate(t, d, render.Common{IncludeMetadata: true}, DefaultOptions())
	for _, want := range []string{
		"### Databases",
		"#### Orders DB",
		"- **ID**: `db`\n- **Type**: Database",
		"Stores orders",
		"```json\n{\n  \"engine\": \"postgres\"\n}\n```",
		"### Other Components",
		"#### lonely",
		"_No description provided._",
		"_No connections._",
		"- **Other**: 1 component (lonely)",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q", want)
		}
	}

	doc = generate(t, d, render.Common{}, DefaultOptions())
	if strings.Contains(doc, "```json") {
		t.Error("metadata rendered with metadata disabled")
	}
}

func TestGenerateFlows(t *testing.T) {
	d := &diagram.Diagram{
		ID:   "d",
		Name: "Flows",
		Nodes: []diagram.Node{
			{ID: "a", Data: diagram.NodeData{Label: "A"}},
			{ID: "b", Data: diagram.NodeData{Label: "B"}},
		},
		Edges: []diagram.Edge{
			{ID: "1", Source: "a", Target: "b", Type: diagram.EdgeDataFlow, Data: &diagram.EdgeData{Label: "orders"}},
			{ID: "2", Source: "a", Target: "b", Type: diagram.EdgeDependency},
			{ID: "3", Source: "a", Target: "ghost"},
		},
	}

	doc := generate(t, d, render.Common{}, DefaultOptions())
	for _, want := range []string{
		"1. **A** sends data to **B**: orders",
		"- **B** depends on **A**",
		"_No user flows defined._",
		"### Default Connections",
		"| A | ghost | - |",
		"| A | B | orders |",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestGenerateEmptyDiagram(t *testing.T) {
	d := &diagram.Diagram{ID: "d", Name: "Empty", Nodes: []diagram.Node{}, Edges: []diagram.Edge{}}
	doc := generate(t, d, render.Common{IncludeMetadata: true}, Options{HeadingLevel: 1, NodeDetails: true, EdgeDetails: true, Mermaid: true})

	for _, want := range []string{
		"**0 components** and **0 connections**",
		"_No components defined._",
		"_No connections defined._",
		"_No user flow connections._",
		"- **Total Components**: 0",
		"```mermaid\ngraph TD\n```",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestCellEscaping(t *testing.T) {
	if got := cell("a|b\nc"); got != `a\|b c` {
		t.Errorf("cell = %q", got)
	}
}

func TestGenerateMetadataEncodingError(t *testing.T) {
	d := &diagram.Diagram{
		ID:   "d",
		Name: "Bad",
		Nodes: []diagram.Node{
			{ID: "x", Data: diagram.NodeData{Metadata: map[string]any{"ch": make(chan int)}}},
		},
		Edges: []diagram.Edge{},
	}
	_, err := Generate(render.NewInput(d, render.Common{IncludeMetadata: true}, fixedNow), DefaultOptions())
	if err == nil {
		t.Fatal("expected error for unencodable metadata")
	}
}
