package markdown

import (
	"strings"
	"testing"

	"github.com/matzehuels/archexport/pkg/analysis"
	"github.com/matzehuels/archexport/pkg/diagram"
)

func TestToMermaidShapes(t *testing.T) {
	tests := []struct {
		typ  diagram.NodeType
		want string
	}{
		{diagram.NodeUIComponent, `x["X"]`},
		{diagram.NodeAPIEndpoint, `x(["X"])`},
		{diagram.NodeDatabase, `x[("X")]`},
		{diagram.NodeService, `x[["X"]]`},
		{diagram.NodeInfrastructure, `x{{"X"}}`},
		{"", `x["X"]`},
		{"queue", `x["X"]`},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			d := &diagram.Diagram{
				Nodes: []diagram.Node{{ID: "x", Type: tt.typ, Data: diagram.NodeData{Label: "X"}}},
				Edges: []diagram.Edge{},
			}
			got := ToMermaid(analysis.NewIndex(d))
			if !strings.Contains(got, "    "+tt.want+"\n") {
				t.Errorf("ToMermaid = %q, want line %q", got, tt.want)
			}
		})
	}
}

func TestToMermaidArrows(t *testing.T) {
	d := &diagram.Diagram{
		Nodes: []diagram.Node{{ID: "a"}, {ID: "b"}},
		Edges: []diagram.Edge{
			{Source: "a", Target: "b", Type: diagram.EdgeDataFlow},
			{Source: "a", Target: "b", Type: diagram.EdgeDependency},
			{Source: "a", Target: "b", Type: diagram.EdgeUserFlow, Data: &diagram.EdgeData{Label: "click"}},
			{Source: "a", Target: "b"},
		},
	}

	got := ToMermaid(analysis.NewIndex(d))
	want := "graph TD\n" +
		"    a[\"a\"]\n" +
		"    b[\"b\"]\n" +
		"    a --> b\n" +
		"    a -.-> b\n" +
		"    a ==>|click| b\n" +
		"    a --> b\n"
	if got != want {
		t.Errorf("ToMermaid =\n%s\nwant\n%s", got, want)
	}
}

func TestToMermaidIdentifiers(t *testing.T) {
	d := &diagram.Diagram{
		Nodes: []diagram.Node{
			{ID: "api-1", Data: diagram.NodeData{Label: `Say "hi"`}},
			{ID: "api_1"},
			{ID: "1st"},
			{ID: "end", Type: diagram.NodeService},
			{ID: "subgraph"},
			{ID: "End"},
		},
		Edges: []diagram.Edge{
			{Source: "api-1", Target: "missing node"},
			{Source: "api_1", Target: "end"},
		},
	}

	got := ToMermaid(analysis.NewIndex(d))
	for _, want := range []string{
		`api_1["Say #quot;hi#quot;"]`,
		`api_1_2["api_1"]`,
		`n_1st["1st"]`,
		"api_1 --> missing_node",
		`n_end[["end"]]`,
		"api_1_2 --> n_end",
		`n_subgraph["subgraph"]`,
		`End["End"]`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}
