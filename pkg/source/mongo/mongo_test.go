package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/archexport/pkg/diagram"
	apperrors "github.com/matzehuels/archexport/pkg/errors"
)

// fakeCollection serves documents from memory keyed by _id.
type fakeCollection struct {
	docs    map[string]bson.M
	err     error
	filters []any
}

func (f *fakeCollection) FindOne(_ context.Context, filter any, _ ...*options.FindOneOptions) *mongo.SingleResult {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return mongo.NewSingleResultFromDocument(bson.M{}, f.err, nil)
	}
	id, _ := filter.(bson.M)["_id"].(string)
	doc, ok := f.docs[id]
	if !ok {
		return mongo.NewSingleResultFromDocument(bson.M{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(doc, nil, nil)
}

func newTestProvider(coll finder) *Provider {
	return &Provider{coll: coll, timeout: time.Second}
}

func TestSnapshot(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	coll := &fakeCollection{docs: map[string]bson.M{
		"d-1": {
			"_id":         "d-1",
			"name":        "Checkout",
			"projectName": "Shop",
			"nodes":       `[{"id":"cart","type":"ui-component","data":{"label":"Cart"}}]`,
			"edges":       `[]`,
			"createdAt":   created,
		},
	}}
	p := newTestProvider(coll)

	d, err := p.Snapshot(context.Background(), "d-1")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if d.ID != "d-1" || d.Name != "Checkout" || d.ProjectName != "Shop" {
		t.Errorf("diagram = %+v", d)
	}
	if len(d.Nodes) != 1 || d.Nodes[0].Type != diagram.NodeUIComponent || d.Nodes[0].Data.Label != "Cart" {
		t.Errorf("nodes = %+v", d.Nodes)
	}
	if d.Edges == nil || len(d.Edges) != 0 {
		t.Errorf("edges = %#v", d.Edges)
	}
	if d.CreatedAt == nil || !d.CreatedAt.Equal(created) {
		t.Errorf("createdAt = %v", d.CreatedAt)
	}
	if len(coll.filters) != 1 {
		t.Errorf("FindOne called %d times", len(coll.filters))
	}
}

func TestSnapshotErrors(t *testing.T) {
	tests := []struct {
		name string
		coll *fakeCollection
		want apperrors.Code
	}{
		{
			name: "missing",
			coll: &fakeCollection{docs: map[string]bson.M{}},
			want: apperrors.ErrCodeNotFound,
		},
		{
			name: "malformed payload",
			coll: &fakeCollection{docs: map[string]bson.M{
				"d-1": {"_id": "d-1", "name": "Broken", "nodes": "{not json", "edges": "[]"},
			}},
			want: apperrors.ErrCodeInvalidData,
		},
		{
			name: "server error",
			coll: &fakeCollection{err: errors.New("connection reset")},
			want: apperrors.ErrCodeExportFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestProvider(tt.coll).Snapshot(context.Background(), "d-1")
			if !apperrors.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestOpenRequiresURI(t *testing.T) {
	_, err := Open(context.Background(), Config{Database: "db", Collection: "c"})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestCloseWithoutClient(t *testing.T) {
	if err := newTestProvider(&fakeCollection{}).Close(context.Background()); err != nil {
		t.Errorf("Close = %v", err)
	}
}
