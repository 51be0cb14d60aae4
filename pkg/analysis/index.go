package analysis

import "github.com/matzehuels/archexport/pkg/diagram"

// Index is a derived lookup structure over one diagram snapshot.
type Index struct {
	diagram *diagram.Diagram

	nodes     map[string]*diagram.Node
	byType    map[diagram.NodeType][]*diagram.Node
	typeOrder []diagram.NodeType

	edgesByType   map[diagram.EdgeType][]*diagram.Edge
	edgeTypeOrder []diagram.EdgeType

	incoming map[string][]*diagram.Edge
	outgoing map[string][]*diagram.Edge
}

// NewIndex builds the index for d. When node ids repeat, the first node
// wins for lookups; every node still appears in its type group.
func NewIndex(d *diagram.Diagram) *Index {
	ix := &Index{
		diagram:     d,
		nodes:       make(map[string]*diagram.Node, len(d.Nodes)),
		byType:      make(map[diagram.NodeType][]*diagram.Node),
		edgesByType: make(map[diagram.EdgeType][]*diagram.Edge),
		incoming:    make(map[string][]*diagram.Edge),
		outgoing:    make(map[string][]*diagram.Edge),
	}

	for i := range d.Nodes {
		n := &d.Nodes[i]
		if _, dup := ix.nodes[n.ID]; !dup {
			ix.nodes[n.ID] = n
		}
		t := n.Kind()
		if _, seen := ix.byType[t]; !seen {
			ix.typeOrder = append(ix.typeOrder, t)
		}
		ix.byType[t] = append(ix.byType[t], n)
	}

	for i := range d.Edges {
		e := &d.Edges[i]
		t := e.Kind()
		if _, seen := ix.edgesByType[t]; !seen {
			ix.edgeTypeOrder = append(ix.edgeTypeOrder, t)
		}
		ix.edgesByType[t] = append(ix.edgesByType[t], e)
		ix.outgoing[e.Source] = append(ix.outgoing[e.Source], e)
		ix.incoming[e.Target] = append(ix.incoming[e.Target], e)
	}

	return ix
}

// Diagram returns the indexed snapshot.
func (ix *Index) Diagram() *diagram.Diagram { return ix.diagram }

// NodeCount returns the number of nodes in the snapshot.
func (ix *Index) NodeCount() int { return len(ix.diagram.Nodes) }

// EdgeCount returns the number of edges in the snapshot.
func (ix *Index) EdgeCount() int { return len(ix.diagram.Edges) }

// Node looks up a node by id.
func (ix *Index) Node(id string) (*diagram.Node, bool) {
	n, ok := ix.nodes[id]
	return n, ok
}

// Label returns the display label of the node with the given id.
// Dangling references fall back to the raw id.
func (ix *Index) Label(id string) string {
	if n, ok := ix.nodes[id]; ok {
		return n.DisplayLabel()
	}
	return id
}

// NodeTypes returns the node types present, in first-seen order.
func (ix *Index) NodeTypes() []diagram.NodeType { return ix.typeOrder }

// NodesOfType returns the nodes of type t in input order.
func (ix *Index) NodesOfType(t diagram.NodeType) []*diagram.Node { return ix.byType[t] }

// EdgeTypes returns the edge types present, in first-seen order.
func (ix *Index) EdgeTypes() []diagram.EdgeType { return ix.edgeTypeOrder }

// EdgesOfType returns the edges of type t in input order.
func (ix *Index) EdgesOfType(t diagram.EdgeType) []*diagram.Edge { return ix.edgesByType[t] }

// Incoming returns the edges whose target is id.
func (ix *Index) Incoming(id string) []*diagram.Edge { return ix.incoming[id] }

// Outgoing returns the edges whose source is id.
func (ix *Index) Outgoing(id string) []*diagram.Edge { return ix.outgoing[id] }
