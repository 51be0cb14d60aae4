package analysis

import (
	"math"
	"sort"

	"github.com/matzehuels/archexport/pkg/diagram"
)

// =============================================================================
// Connectivity
// =============================================================================

// Degree is the connection count of one node.
type Degree struct {
	Incoming int `json:"incoming"`
	Outgoing int `json:"outgoing"`
	Total    int `json:"total"`
}

// Degree returns the incoming/outgoing edge counts for the node id.
func (ix *Index) Degree(id string) Degree {
	in, out := len(ix.incoming[id]), len(ix.outgoing[id])
	return Degree{Incoming: in, Outgoing: out, Total: in + out}
}

// RankedNode is a node ranked by its total degree.
type RankedNode struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Connections int    `json:"connections"`
}

// MostConnected returns up to limit nodes with the highest total degree.
// Ties keep input order.
func MostConnected(ix *Index, limit int) []RankedNode {
	nodes := ix.diagram.Nodes
	ranked := make([]RankedNode, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		ranked = append(ranked, RankedNode{
			ID:          n.ID,
			Label:       n.DisplayLabel(),
			Connections: ix.Degree(n.ID).Total,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Connections > ranked[j].Connections
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// =============================================================================
// Flow Classification
// =============================================================================

// Path is one directed hop between two node ids.
type Path struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Flow collects the edges of one flow class.
type Flow struct {
	Count int    `json:"count"`
	Paths []Path `json:"paths"`
}

// Flows partitions edges into the three flow classes. Untyped edges belong
// to none of them.
type Flows struct {
	Data       Flow `json:"dataFlows"`
	User       Flow `json:"userFlows"`
	Dependency Flow `json:"dependencies"`
}

// ClassifyFlows partitions the diagram's edges by flow class.
func ClassifyFlows(ix *Index) Flows {
	return Flows{
		Data:       flowOf(ix, diagram.EdgeDataFlow),
		User:       flowOf(ix, diagram.EdgeUserFlow),
		Dependency: flowOf(ix, diagram.EdgeDependency),
	}
}

func flowOf(ix *Index, t diagram.EdgeType) Flow {
	edges := ix.EdgesOfType(t)
	f := Flow{Count: len(edges), Paths: make([]Path, 0, len(edges))}
	for _, e := range edges {
		f.Paths = append(f.Paths, Path{Source: e.Source, Target: e.Target})
	}
	return f
}

// =============================================================================
// Complexity
// =============================================================================

// Score weights and saturation points.
const (
	nodeSaturation = 50.0
	edgeSaturation = 100.0
	nodeWeight     = 40.0
	edgeWeight     = 40.0
	densityWeight  = 20.0
)

// ComplexityMetrics summarizes the size and density of a diagram.
type ComplexityMetrics struct {
	NodeCount     int     `json:"nodeCount"`
	EdgeCount     int     `json:"edgeCount"`
	AverageDegree float64 `json:"averageDegree"`
	Density       float64 `json:"density"`
	Score         int     `json:"score"`
}

// Complexity computes the complexity metrics of the indexed diagram.
//
// Density is edges / (n·(n−1)) for n > 1 and 0 otherwise. The score is
// min(n/50,1)·40 + min(e/100,1)·40 + min(density,1)·20, rounded, which keeps
// it within 0–100 even for multigraphs.
func Complexity(ix *Index) ComplexityMetrics {
	n := float64(ix.NodeCount())
	e := float64(ix.EdgeCount())

	var avg, density float64
	if n > 0 {
		avg = 2 * e / n
	}
	if n > 1 {
		density = e / (n * (n - 1))
	}

	score := math.Min(n/nodeSaturation, 1)*nodeWeight +
		math.Min(e/edgeSaturation, 1)*edgeWeight +
		math.Min(density, 1)*densityWeight

	return ComplexityMetrics{
		NodeCount:     ix.NodeCount(),
		EdgeCount:     ix.EdgeCount(),
		AverageDegree: round(avg, 2),
		Density:       round(density, 4),
		Score:         int(math.Round(score)),
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
