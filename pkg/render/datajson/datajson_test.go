package datajson

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/archexport/pkg/analysis"
	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/render"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func shopDiagram() *diagram.Diagram {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &diagram.Diagram{
		ID:          "d-1",
		Name:        "Shop",
		Description: "Storefront",
		ProjectID:   "p-1",
		ProjectName: "Commerce",
		Viewport:    &diagram.Viewport{X: 1, Y: 2, Zoom: 1.5},
		Metadata:    map[string]any{"team": "web"},
		CreatedAt:   &created,
		Owner:       &diagram.Owner{ID: "u-1", Name: "Dana", Email: "dana@example.com"},
		Nodes: []diagram.Node{
			{ID: "web", Type: diagram.NodeUIComponent, Position: diagram.Position{X: 10, Y: 20},
				Data: diagram.NodeData{Label: "Web", Metadata: map[string]any{"framework": "react"}},
				Width: ptr(120.0), Selected: ptr(true)},
			{ID: "api", Type: diagram.NodeAPIEndpoint, Data: diagram.NodeData{Label: "API", Description: "REST"}},
			{ID: "db", Type: diagram.NodeDatabase, Data: diagram.NodeData{Label: "DB"}, ParentID: "grp", ZIndex: ptr(2)},
			{ID: "misc", Data: diagram.NodeData{Label: "Misc"}},
		},
		Edges: []diagram.Edge{
			{ID: "e1", Source: "web", Target: "api", Type: diagram.EdgeUserFlow, Data: &diagram.EdgeData{Label: "checkout"}},
			{ID: "e2", Source: "api", Target: "db", Type: diagram.EdgeDataFlow, Animated: ptr(true)},
			{ID: "e3", Source: "api", Target: "misc"},
		},
	}
}

func TestBuildNormalizesTypes(t *testing.T) {
	doc := Build(render.NewInput(shopDiagram(), render.Common{}, fixedNow), DefaultOptions())

	if doc.Version != "1.0" {
		t.Errorf("Version = %q", doc.Version)
	}
	if got := doc.Diagram.Nodes[3].Type; got != diagram.NodeUnknown {
		t.Errorf("untyped node type = %q, want unknown", got)
	}
	if got := doc.Diagram.Edges[2].Type; got != diagram.EdgeDefault {
		t.Errorf("untyped edge type = %q, want default", got)
	}
	if got := doc.Diagram.Edges[0].Label; got != "checkout" {
		t.Errorf("edge label = %q", got)
	}
	if doc.Computed != nil {
		t.Error("computed region present without Computed option")
	}
}

func TestBuildStatistics(t *testing.T) {
	doc := Build(render.NewInput(shopDiagram(), render.Common{}, fixedNow), DefaultOptions())

	want := Statistics{
		NodeCount: 4,
		EdgeCount: 3,
		NodesByType: map[string][]string{
			"ui-component": {"web"},
			"api-endpoint": {"api"},
			"database":     {"db"},
			"unknown":      {"misc"},
		},
		EdgesByType: map[string]int{"user-flow": 1, "data-flow": 1, "default": 1},
	}
	if diff := cmp.Diff(want, doc.Statistics); diff != "" {
		t.Errorf("Statistics mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMetadata(t *testing.T) {
	tests := []struct {
		name   string
		common render.Common
		want   Metadata
	}{
		{
			name:   "bare",
			common: render.Common{},
			want: Metadata{
				Diagram: DiagramInfo{ID: "d-1", Name: "Shop", Description: "Storefront"},
				Project: &Project{ID: "p-1", Name: "Commerce"},
				Author:  &Author{ID: "u-1", Name: "Dana", Email: "dana@example.com"},
			},
		},
		{
			name:   "everything",
			common: render.Common{IncludeMetadata: true, IncludeTimestamps: true, Title: "T", Author: "Lee"},
			want: Metadata{
				Diagram:    DiagramInfo{ID: "d-1", Name: "Shop", Description: "Storefront"},
				Project:    &Project{ID: "p-1", Name: "Commerce"},
				Export:     &ExportInfo{Title: "T"},
				Author:     &Author{Name: "Lee"},
				Timestamps: &Timestamps{Created: "2024-01-02T03:04:05Z", ExportedAt: "2024-03-15T10:30:00Z"},
				Custom:     map[string]any{"team": "web"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Build(render.NewInput(shopDiagram(), tt.common, fixedNow), DefaultOptions())
			if diff := cmp.Diff(tt.want, doc.Metadata); diff != "" {
				t.Errorf("Metadata mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildComputed(t *testing.T) {
	doc := Build(render.NewInput(shopDiagram(), render.Common{}, fixedNow), Options{Computed: true})
	if doc.Computed == nil {
		t.Fatal("computed region missing")
	}

	c := doc.Computed
	sum := 0
	for id, deg := range c.Connectivity.Nodes {
		if deg.Total != deg.Incoming+deg.Outgoing {
			t.Errorf("%s: total %d != %d+%d", id, deg.Total, deg.Incoming, deg.Outgoing)
		}
		sum += deg.Total
	}
	if sum != 2*len(doc.Diagram.Edges) {
		t.Errorf("degree sum = %d, want %d", sum, 2*len(doc.Diagram.Edges))
	}

	if got := c.Connectivity.MostConnected[0]; got.ID != "api" || got.Connections != 3 {
		t.Errorf("MostConnected[0] = %+v, want api with 3", got)
	}
	if c.Flows.User.Count != 1 || c.Flows.Data.Count != 1 || c.Flows.Dependency.Count != 0 {
		t.Errorf("Flows = %+v", c.Flows)
	}
	if c.Complexity.NodeCount != 4 || c.Complexity.EdgeCount != 3 || c.Complexity.Density != 0.25 {
		t.Errorf("Complexity = %+v", c.Complexity)
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	common := render.Common{IncludeMetadata: true, IncludeTimestamps: true}
	for _, opts := range []Options{
		{Indent: 2, Pretty: true, Computed: true},
		{Pretty: false, Computed: true},
		{Indent: 4, Pretty: true},
	} {
		in := render.NewInput(shopDiagram(), common, fixedNow)
		data, err := Generate(in, opts)
		if err != nil {
			t.Fatalf("Generate(%+v): %v", opts, err)
		}

		var got Document
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%+v): %v", opts, err)
		}
		// Fresh build on a second input: decoding must reproduce it exactly.
		want := Build(render.NewInput(shopDiagram(), common, fixedNow), opts)
		if diff := cmp.Diff(want, &got); diff != "" {
			t.Errorf("round trip %+v (-want +got):\n%s", opts, diff)
		}

		again, err := Generate(in, opts)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, again) {
			t.Errorf("Generate(%+v) not deterministic", opts)
		}
	}
}

func TestGenerateCompact(t *testing.T) {
	in := render.NewInput(shopDiagram(), render.Common{}, fixedNow)
	data, err := Generate(in, Options{Pretty: false, Indent: 8})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Count(data, []byte("\n")) != 1 {
		t.Errorf("compact output spans lines:\n%s", data)
	}
	if !json.Valid(data) {
		t.Error("compact output is not valid JSON")
	}
}

func TestGenerateEmptyDiagram(t *testing.T) {
	d := &diagram.Diagram{ID: "e", Name: "Empty", Nodes: []diagram.Node{}, Edges: []diagram.Edge{}}
	data, err := Generate(render.NewInput(d, render.Common{}, fixedNow), Options{Computed: true})
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	body := raw["diagram"].(map[string]any)
	if nodes := body["nodes"].([]any); len(nodes) != 0 {
		t.Errorf("nodes = %v", nodes)
	}
	computed := raw["computed"].(map[string]any)
	complexity := computed["complexity"].(map[string]any)
	if complexity["score"].(float64) != 0 {
		t.Errorf("score = %v", complexity["score"])
	}
	if mc := computed["connectivity"].(map[string]any)["mostConnected"].([]any); len(mc) != 0 {
		t.Errorf("mostConnected = %v", mc)
	}
}

func TestComputedMatchesAnalysis(t *testing.T) {
	in := render.NewInput(shopDiagram(), render.Common{}, fixedNow)
	doc := Build(in, Options{Computed: true})
	if diff := cmp.Diff(analysis.Complexity(in.Index), doc.Computed.Complexity); diff != "" {
		t.Errorf("complexity mismatch:\n%s", diff)
	}
}
