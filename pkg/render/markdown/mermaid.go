package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/archexport/pkg/analysis"
	"github.com/matzehuels/archexport/pkg/diagram"
)

var shapes = map[diagram.NodeType][2]string{
	diagram.NodeUIComponent:    {"[", "]"},
	diagram.NodeAPIEndpoint:    {"([", "])"},
	diagram.NodeDatabase:       {"[(", ")]"},
	diagram.NodeService:        {"[[", "]]"},
	diagram.NodeInfrastructure: {"{{", "}}"},
}

var arrows = map[diagram.EdgeType]string{
	diagram.EdgeDataFlow:   "-->",
	diagram.EdgeDependency: "-.->",
	diagram.EdgeUserFlow:   "==>",
}

// ToMermaid converts the indexed diagram to a Mermaid flowchart
// ("graph TD"). Node ids are rewritten to Mermaid-safe identifiers; edges
// whose endpoints are not nodes still render, using the raw id as label.
func ToMermaid(ix *analysis.Index) string {
	ids := newMermaidIDs()

	var buf bytes.Buffer
	buf.WriteString("graph TD\n")

	d := ix.Diagram()
	for i := range d.Nodes {
		n := &d.Nodes[i]
		if _, seen := ids.byNode[n.ID]; seen {
			continue
		}
		shape, ok := shapes[n.Kind()]
		if !ok {
			shape = [2]string{"[", "]"}
		}
		fmt.Fprintf(&buf, "    %s%s\"%s\"%s\n", ids.of(n.ID), shape[0], escapeMermaid(n.DisplayLabel()), shape[1])
	}

	for i := range d.Edges {
		e := &d.Edges[i]
		arrow, ok := arrows[e.Kind()]
		if !ok {
			arrow = "-->"
		}
		if label := e.Label(); label != "" {
			arrow += "|" + escapeMermaid(label) + "|"
		}
		fmt.Fprintf(&buf, "    %s %s %s\n", ids.of(e.Source), arrow, ids.of(e.Target))
	}

	return buf.String()
}

var unsafeID = regexp.MustCompile(`[^A-Za-z0-9_]`)

// reserved ids are flowchart keywords that cannot name a node.
var reserved = map[string]bool{
	"end": true, "graph": true, "flowchart": true, "subgraph": true,
	"style": true, "class": true, "classDef": true, "click": true,
	"linkStyle": true, "direction": true,
}

// mermaidIDs hands out stable, unique Mermaid identifiers per node id.
type mermaidIDs struct {
	byNode map[string]string
	taken  map[string]bool
}

func newMermaidIDs() *mermaidIDs {
	return &mermaidIDs{byNode: make(map[string]string), taken: make(map[string]bool)}
}

func (m *mermaidIDs) of(nodeID string) string {
	if id, ok := m.byNode[nodeID]; ok {
		return id
	}
	base := unsafeID.ReplaceAllString(nodeID, "_")
	if base == "" || (base[0] >= '0' && base[0] <= '9') || reserved[base] {
		base = "n_" + base
	}
	id := base
	for i := 2; m.taken[id]; i++ {
		id = base + "_" + strconv.Itoa(i)
	}
	m.byNode[nodeID] = id
	m.taken[id] = true
	return id
}

func escapeMermaid(s string) string {
	r := strings.NewReplacer(`"`, "#quot;", "|", "#124;", "\n", " ")
	return r.Replace(s)
}
