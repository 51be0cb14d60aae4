package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/archexport/pkg/errors"
)

// Encoding identifies the textual form of a snapshot document.
type Encoding string

// Supported snapshot encodings.
const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// EncodingForPath infers the encoding from a file extension.
// Unknown extensions are treated as JSON.
func EncodingForPath(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return EncodingYAML
	default:
		return EncodingJSON
	}
}

// =============================================================================
// Diagram Decoding API
// =============================================================================

// ReadFile reads a snapshot file, choosing the decoder from its extension.
func ReadFile(path string) (*Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, EncodingForPath(path))
}

// Read decodes a snapshot from r.
func Read(r io.Reader, enc Encoding) (*Diagram, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read diagram: %w", err)
	}
	if enc == EncodingYAML {
		return UnmarshalYAML(data)
	}
	return Unmarshal(data)
}

// Unmarshal decodes a JSON snapshot.
func Unmarshal(data []byte) (*Diagram, error) {
	var d Diagram
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode diagram JSON")
	}
	return &d, nil
}

// UnmarshalYAML decodes a YAML snapshot. Field names match the JSON form.
func UnmarshalYAML(data []byte) (*Diagram, error) {
	var d Diagram
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode diagram YAML")
	}
	normalizeYAMLMaps(&d)
	return &d, nil
}

// Marshal encodes a diagram as indented JSON.
func Marshal(d *Diagram) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Stored Records
// =============================================================================

// Record is a persisted snapshot whose node and edge collections are kept
// as JSON text, the way the diagram store saves them.
type Record struct {
	ID          string         `json:"id" bson:"_id"`
	Name        string         `json:"name" bson:"name"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	ProjectID   string         `json:"projectId,omitempty" bson:"projectId,omitempty"`
	ProjectName string         `json:"projectName,omitempty" bson:"projectName,omitempty"`
	Nodes       string         `json:"nodes" bson:"nodes"`
	Edges       string         `json:"edges" bson:"edges"`
	Viewport    *Viewport      `json:"viewport,omitempty" bson:"viewport,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   *time.Time     `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   *time.Time     `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	Owner       *Owner         `json:"owner,omitempty" bson:"owner,omitempty"`
}

// FromRecord converts a stored record into a Diagram.
// Empty payload text is read as an empty collection; malformed text is an
// INVALID_DATA error naming the offending field.
func FromRecord(r Record) (*Diagram, error) {
	d := &Diagram{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ProjectID:   r.ProjectID,
		ProjectName: r.ProjectName,
		Viewport:    r.Viewport,
		Metadata:    r.Metadata,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Owner:       r.Owner,
		Nodes:       []Node{},
		Edges:       []Edge{},
	}

	if strings.TrimSpace(r.Nodes) != "" {
		if err := json.Unmarshal([]byte(r.Nodes), &d.Nodes); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode stored nodes of diagram %s", r.ID)
		}
	}
	if strings.TrimSpace(r.Edges) != "" {
		if err := json.Unmarshal([]byte(r.Edges), &d.Edges); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode stored edges of diagram %s", r.ID)
		}
	}
	// "null" payloads decode to nil; a stored diagram always has collections.
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Edges == nil {
		d.Edges = []Edge{}
	}
	return d, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

// normalizeYAMLMaps converts nested map[any]any values, which YAML produces
// for non-string keys, into map[string]any so that metadata can be
// re-encoded as JSON.
func normalizeYAMLMaps(d *Diagram) {
	d.Metadata = normalizeMap(d.Metadata)
	for i := range d.Nodes {
		d.Nodes[i].Data.Metadata = normalizeMap(d.Nodes[i].Data.Metadata)
	}
}

func normalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeMap(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}
