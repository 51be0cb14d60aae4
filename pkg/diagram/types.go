package diagram

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// Taxonomy
// =============================================================================

// NodeType is the architectural role of a node.
type NodeType string

// Node types.
const (
	NodeUIComponent    NodeType = "ui-component"
	NodeAPIEndpoint    NodeType = "api-endpoint"
	NodeDatabase       NodeType = "database"
	NodeService        NodeType = "service"
	NodeInfrastructure NodeType = "infrastructure"
	NodeUnknown        NodeType = "unknown"
)

// EdgeType is the relationship kind of an edge.
type EdgeType string

// Edge types.
const (
	EdgeDataFlow   EdgeType = "data-flow"
	EdgeDependency EdgeType = "dependency"
	EdgeUserFlow   EdgeType = "user-flow"
	EdgeDefault    EdgeType = "default"
)

// NodeTypes lists the known node types in taxonomy order.
var NodeTypes = []NodeType{NodeUIComponent, NodeAPIEndpoint, NodeService, NodeDatabase, NodeInfrastructure}

// EdgeTypes lists the known edge types in the order documents present them.
var EdgeTypes = []EdgeType{EdgeDataFlow, EdgeUserFlow, EdgeDependency}

var nodeTypeNames = map[NodeType][2]string{
	NodeUIComponent:    {"UI Component", "UI Components"},
	NodeAPIEndpoint:    {"API Endpoint", "API Endpoints"},
	NodeDatabase:       {"Database", "Databases"},
	NodeService:        {"Service", "Services"},
	NodeInfrastructure: {"Infrastructure", "Infrastructure"},
	NodeUnknown:        {"Unknown", "Other Components"},
}

var edgeTypeNames = map[EdgeType][2]string{
	EdgeDataFlow:   {"Data Flow", "Data Flows"},
	EdgeDependency: {"Dependency", "Dependencies"},
	EdgeUserFlow:   {"User Flow", "User Flows"},
	EdgeDefault:    {"Default", "Default Connections"},
}

// Known reports whether t is part of the node taxonomy.
func (t NodeType) Known() bool {
	_, ok := nodeTypeNames[t]
	return ok && t != NodeUnknown
}

// DisplayName returns the singular human name, e.g. "API Endpoint".
// Types outside the taxonomy are title-cased from their tag.
func (t NodeType) DisplayName() string {
	if n, ok := nodeTypeNames[t]; ok {
		return n[0]
	}
	return titleCase(string(t))
}

// PluralName returns the plural human name, e.g. "API Endpoints".
func (t NodeType) PluralName() string {
	if n, ok := nodeTypeNames[t]; ok {
		return n[1]
	}
	return titleCase(string(t))
}

// Known reports whether t is one of the typed relationships.
func (t EdgeType) Known() bool {
	_, ok := edgeTypeNames[t]
	return ok && t != EdgeDefault
}

// DisplayName returns the singular human name, e.g. "User Flow".
func (t EdgeType) DisplayName() string {
	if n, ok := edgeTypeNames[t]; ok {
		return n[0]
	}
	return titleCase(string(t))
}

// PluralName returns the plural human name, e.g. "User Flows".
func (t EdgeType) PluralName() string {
	if n, ok := edgeTypeNames[t]; ok {
		return n[1]
	}
	return titleCase(string(t))
}

func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// =============================================================================
// Diagram - Snapshot Root
// =============================================================================

// Diagram is an immutable snapshot of one architecture diagram.
//
// Nodes and Edges distinguish nil from empty: a nil slice means the field
// was absent from the source document, which the export engine rejects.
// Use an empty, non-nil slice for a diagram without nodes or edges.
type Diagram struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	ProjectID   string         `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	ProjectName string         `json:"projectName,omitempty" yaml:"projectName,omitempty"`
	Nodes       []Node         `json:"nodes" yaml:"nodes"`
	Edges       []Edge         `json:"edges" yaml:"edges"`
	Viewport    *Viewport      `json:"viewport,omitempty" yaml:"viewport,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	CreatedAt   *time.Time     `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt   *time.Time     `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Owner       *Owner         `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// Viewport is the editor camera at the time the snapshot was taken.
type Viewport struct {
	X    float64 `json:"x" yaml:"x" bson:"x"`
	Y    float64 `json:"y" yaml:"y" bson:"y"`
	Zoom float64 `json:"zoom" yaml:"zoom" bson:"zoom"`
}

// Owner describes the user owning the diagram.
type Owner struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty" bson:"id,omitempty"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty" bson:"email,omitempty"`
}

// =============================================================================
// Node
// =============================================================================

// Position is a 2-D canvas coordinate.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is a typed vertex representing an architectural component.
// Optional layout fields are pointers so that absent values survive a
// round-trip without turning into zeroes.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Type     NodeType `json:"type,omitempty" yaml:"type,omitempty"`
	Position Position `json:"position" yaml:"position"`
	Data     NodeData `json:"data" yaml:"data"`
	Width    *float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height   *float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Selected *bool    `json:"selected,omitempty" yaml:"selected,omitempty"`
	ParentID string   `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	ZIndex   *int     `json:"zIndex,omitempty" yaml:"zIndex,omitempty"`
}

// NodeData is the payload carried by a node.
type NodeData struct {
	Label       string         `json:"label" yaml:"label"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Kind returns the node type, or NodeUnknown when absent.
func (n *Node) Kind() NodeType {
	if n.Type == "" {
		return NodeUnknown
	}
	return n.Type
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Data.Label != "" {
		return n.Data.Label
	}
	return n.ID
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a typed, directed connection from Source to Target.
type Edge struct {
	ID       string    `json:"id" yaml:"id"`
	Source   string    `json:"source" yaml:"source"`
	Target   string    `json:"target" yaml:"target"`
	Type     EdgeType  `json:"type,omitempty" yaml:"type,omitempty"`
	Data     *EdgeData `json:"data,omitempty" yaml:"data,omitempty"`
	Animated *bool     `json:"animated,omitempty" yaml:"animated,omitempty"`
}

// EdgeData is the optional payload carried by an edge.
type EdgeData struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Kind returns the edge type, or EdgeDefault when absent.
func (e *Edge) Kind() EdgeType {
	if e.Type == "" {
		return EdgeDefault
	}
	return e.Type
}

// Label returns the edge label, or "" when the edge carries no data.
func (e *Edge) Label() string {
	if e.Data == nil {
		return ""
	}
	return e.Data.Label
}
