package tasklist

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/archexport/pkg/analysis"
	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/render"
)

// Priority ranks a task.
type Priority string

// Priorities from most to least urgent.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Phase is the delivery stage a task belongs to.
type Phase string

// Phases in delivery order.
const (
	PhaseFoundation   Phase = "Foundation"
	PhaseCoreFeatures Phase = "Core Features"
	PhaseIntegration  Phase = "Integration"
	PhaseUIPolish     Phase = "UI & Polish"
)

const (
	minHours         = 2
	hoursPerEdge     = 0.5
	highFanOut       = 3
	fallbackFileName = "component"
)

// taskNamespace seeds the name-based UUIDs of task references.
var taskNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/archexport/tasks"))

// Link points from a task to a neighboring component.
type Link struct {
	ID    string           `json:"id"`
	Title string           `json:"title"`
	Type  diagram.EdgeType `json:"type"`
}

// Task is one synthesized implementation task.
type Task struct {
	ID                 string           `json:"id"`
	Ref                string           `json:"ref"`
	NodeID             string           `json:"nodeId"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	Type               diagram.NodeType `json:"type"`
	Priority           Priority         `json:"priority"`
	Phase              Phase            `json:"phase"`
	EstimatedHours     int              `json:"estimatedHours"`
	Dependencies       []Link           `json:"dependencies,omitempty"`
	RelatedComponents  []Link           `json:"relatedComponents,omitempty"`
	AcceptanceCriteria []string         `json:"acceptanceCriteria"`
	SuggestedFiles     []string         `json:"suggestedFiles"`
	Tags               []string         `json:"tags"`
	Hints              []string         `json:"implementationHints,omitempty"`
	Position           diagram.Position `json:"position"`
	Metadata           map[string]any   `json:"metadata,omitempty"`
}

// Synthesize derives one task per node, numbered in input order.
func Synthesize(ix *analysis.Index, opts Options) []Task {
	d := ix.Diagram()
	tasks := make([]Task, 0, len(d.Nodes))
	for i := range d.Nodes {
		tasks = append(tasks, synthesize(ix, &d.Nodes[i], i+1, opts))
	}
	return tasks
}

func synthesize(ix *analysis.Index, n *diagram.Node, seq int, opts Options) Task {
	d := ix.Diagram()
	kind := n.Kind()
	profile := ProfileFor(kind)
	label := n.DisplayLabel()

	deps := links(ix.Incoming(n.ID), ix, func(e *diagram.Edge) string { return e.Source })
	related := links(ix.Outgoing(n.ID), ix, func(e *diagram.Edge) string { return e.Target })

	t := Task{
		ID:                 fmt.Sprintf("task-%d", seq),
		Ref:                uuid.NewSHA1(taskNamespace, []byte(d.ID+"/"+n.ID)).String(),
		NodeID:             n.ID,
		Title:              expand(profile.Title, label),
		Description:        description(profile, n, label),
		Type:               kind,
		Priority:           priority(kind, len(deps), len(related), opts.DefaultPriority),
		Phase:              phase(kind, len(deps)),
		EstimatedHours:     estimate(profile, opts.DefaultEstimate, len(deps)+len(related)),
		Dependencies:       deps,
		RelatedComponents:  related,
		AcceptanceCriteria: criteria(profile, len(deps), len(related)),
		SuggestedFiles:     expandFiles(profile.Files, fileName(n)),
		Tags:               append([]string{string(kind)}, profile.Tags...),
		Position:           n.Position,
		Metadata:           n.Data.Metadata,
	}
	if opts.Hints {
		t.Hints = append([]string(nil), profile.Hints...)
	}
	return t
}

// links resolves edges to neighbor links; nil when there are none so the
// field is omitted from the output.
func links(edges []*diagram.Edge, ix *analysis.Index, other func(*diagram.Edge) string) []Link {
	if len(edges) == 0 {
		return nil
	}
	out := make([]Link, len(edges))
	for i, e := range edges {
		id := other(e)
		out[i] = Link{ID: id, Title: ix.Label(id), Type: e.Kind()}
	}
	return out
}

func description(p Profile, n *diagram.Node, label string) string {
	parts := []string{expand(p.Context, label)}
	if n.Data.Description != "" {
		parts = append(parts, n.Data.Description)
	}
	objectives := make([]string, len(p.Objectives))
	for i, o := range p.Objectives {
		objectives[i] = "- [ ] " + o
	}
	parts = append(parts, "Objectives:\n"+strings.Join(objectives, "\n"))
	return strings.Join(parts, "\n\n")
}

func priority(kind diagram.NodeType, deps, related int, fallback Priority) Priority {
	switch {
	case kind == diagram.NodeDatabase || kind == diagram.NodeInfrastructure:
		return PriorityCritical
	case related >= highFanOut:
		return PriorityHigh
	case deps > 0:
		return PriorityMedium
	case fallback != "":
		return fallback
	default:
		return PriorityMedium
	}
}

func phase(kind diagram.NodeType, deps int) Phase {
	switch {
	case kind == diagram.NodeDatabase || kind == diagram.NodeInfrastructure:
		return PhaseFoundation
	case (kind == diagram.NodeService || kind == diagram.NodeAPIEndpoint) && deps == 0:
		return PhaseCoreFeatures
	case deps > 0:
		return PhaseIntegration
	case kind == diagram.NodeUIComponent:
		return PhaseUIPolish
	default:
		return PhaseCoreFeatures
	}
}

func estimate(p Profile, override float64, degree int) int {
	base := p.BaseHours
	if override > 0 {
		base = override
	}
	return max(minHours, int(math.Round(base+hoursPerEdge*float64(degree))))
}

func criteria(p Profile, deps, related int) []string {
	out := append([]string(nil), p.Criteria...)
	if deps > 0 {
		out = append(out, fmt.Sprintf("Integrates correctly with %d upstream component(s)", deps))
	}
	if related > 0 {
		out = append(out, fmt.Sprintf("Provides required interface for %d downstream component(s)", related))
	}
	return append(out, "All tests passing")
}

// fileName is the path segment for a node: the sanitized label, then the
// sanitized id, then a fixed placeholder.
func fileName(n *diagram.Node) string {
	if s := render.Slugify(n.DisplayLabel()); s != "" {
		return s
	}
	if s := render.Slugify(n.ID); s != "" {
		return s
	}
	return fallbackFileName
}
