package tasklist

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/archexport/pkg/analysis"
	"github.com/matzehuels/archexport/pkg/buildinfo"
	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/render"
)

// Version is the schema version written to every task list.
const Version = "1.0"

// Options configures task-list generation.
type Options struct {
	// GroupByPhase turns tasks into an object keyed by phase.
	GroupByPhase bool `json:"groupByPhase" toml:"group_by_phase"`

	// Hints adds per-type implementation hints to every task.
	Hints bool `json:"hints" toml:"hints"`

	// DefaultPriority applies to tasks no priority rule matches.
	DefaultPriority Priority `json:"defaultPriority,omitempty" toml:"default_priority"`

	// DefaultEstimate, when positive, replaces the per-type base hours.
	DefaultEstimate float64 `json:"defaultEstimate,omitempty" toml:"default_estimate"`
}

// DefaultOptions returns the options used when the caller sets none.
func DefaultOptions() Options {
	return Options{DefaultPriority: PriorityMedium}
}

// Validate checks the option values.
func (o Options) Validate() error {
	if o.DefaultPriority != "" && !o.DefaultPriority.Valid() {
		return fmt.Errorf("unknown default priority %q", o.DefaultPriority)
	}
	if o.DefaultEstimate < 0 {
		return fmt.Errorf("default estimate must not be negative, got %v", o.DefaultEstimate)
	}
	return nil
}

// =============================================================================
// Document
// =============================================================================

// Document is the task-list envelope.
type Document struct {
	Version        string   `json:"version"`
	Project        Project  `json:"project"`
	Metadata       Metadata `json:"metadata"`
	Tasks          Tasks    `json:"tasks"`
	DiagramSummary *Summary `json:"diagramSummary,omitempty"`
}

// Project describes what the tasks are for.
type Project struct {
	ID            string        `json:"id,omitempty"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	SourceDiagram SourceDiagram `json:"sourceDiagram"`
}

// SourceDiagram identifies the diagram the tasks were derived from.
type SourceDiagram struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Metadata describes the generation run.
type Metadata struct {
	GeneratedAt string         `json:"generatedAt,omitempty"`
	Generator   string         `json:"generator"`
	TotalTasks  int            `json:"totalTasks"`
	Author      string         `json:"author,omitempty"`
	Owner       *diagram.Owner `json:"owner,omitempty"`
	Source      SourceCounts   `json:"source"`
}

// SourceCounts are the size of the source diagram.
type SourceCounts struct {
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
}

// Summary is the optional diagram summary block.
type Summary struct {
	NodeCount       int            `json:"nodeCount"`
	EdgeCount       int            `json:"edgeCount"`
	ComplexityScore int            `json:"complexityScore"`
	NodesByType     map[string]int `json:"nodesByType"`
}

// =============================================================================
// Tasks
// =============================================================================

// PhaseGroup is the tasks of one phase.
type PhaseGroup struct {
	Phase Phase
	Tasks []Task
}

// Tasks is the task collection. It encodes as an array, or, when ByPhase is
// set, as an object keyed by phase name in first-seen order.
type Tasks struct {
	Items   []Task
	ByPhase bool
}

// Groups partitions the tasks by phase in first-seen order.
func (ts Tasks) Groups() []PhaseGroup {
	var groups []PhaseGroup
	index := make(map[Phase]int)
	for _, t := range ts.Items {
		i, ok := index[t.Phase]
		if !ok {
			i = len(groups)
			index[t.Phase] = i
			groups = append(groups, PhaseGroup{Phase: t.Phase})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups
}

// MarshalJSON implements [json.Marshaler].
func (ts Tasks) MarshalJSON() ([]byte, error) {
	if !ts.ByPhase {
		items := ts.Items
		if items == nil {
			items = []Task{}
		}
		return marshal(items)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range ts.Groups() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(string(g.Phase))
		if err != nil {
			return nil, err
		}
		val, err := marshal(g.Tasks)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshal encodes v without HTML escaping and without the trailing newline.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON implements [json.Unmarshaler] for both shapes. Grouped
// input is flattened in key order.
func (ts *Tasks) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		ts.ByPhase = false
		return json.Unmarshal(data, &ts.Items)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	ts.ByPhase = true
	ts.Items = nil
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return err
		}
		var group []Task
		if err := dec.Decode(&group); err != nil {
			return err
		}
		ts.Items = append(ts.Items, group...)
	}
	_, err := dec.Token()
	return err
}

// =============================================================================
// Generation
// =============================================================================

// Build assembles the task-list document for in.
func Build(in render.Input, opts Options) (*Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	d := in.Diagram
	tasks := Synthesize(in.Index, opts)

	name := d.ProjectName
	if name == "" {
		name = in.Title()
	}

	doc := &Document{
		Version: Version,
		Project: Project{
			ID:            d.ProjectID,
			Name:          name,
			Description:   in.Description(),
			SourceDiagram: SourceDiagram{ID: d.ID, Name: d.Name},
		},
		Metadata: Metadata{
			Generator:  buildinfo.Generator(),
			TotalTasks: len(tasks),
			Author:     in.Common.Author,
			Owner:      d.Owner,
			Source:     SourceCounts{NodeCount: in.Index.NodeCount(), EdgeCount: in.Index.EdgeCount()},
		},
		Tasks: Tasks{Items: tasks, ByPhase: opts.GroupByPhase},
	}
	if in.Common.IncludeTimestamps {
		doc.Metadata.GeneratedAt = render.Timestamp(in.Now)
	}
	if in.Common.IncludeMetadata {
		doc.DiagramSummary = summarize(in.Index)
	}
	return doc, nil
}

// Generate encodes the task-list document for in as indented JSON.
func Generate(in render.Input, opts Options) ([]byte, error) {
	doc, err := Build(in, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode task list: %w", err)
	}
	return buf.Bytes(), nil
}

func summarize(ix *analysis.Index) *Summary {
	s := &Summary{
		NodeCount:       ix.NodeCount(),
		EdgeCount:       ix.EdgeCount(),
		ComplexityScore: analysis.Complexity(ix).Score,
		NodesByType:     make(map[string]int),
	}
	for _, t := range ix.NodeTypes() {
		s.NodesByType[string(t)] = len(ix.NodesOfType(t))
	}
	return s
}
