package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/archexport/pkg/errors"
	"github.com/matzehuels/archexport/pkg/observability"
	"github.com/matzehuels/archexport/pkg/source"
)

const jsonSnapshot = `{"id":"d-1","name":"Checkout","nodes":[{"id":"a","type":"service","data":{"label":"A"}}],"edges":[]}`

const yamlSnapshot = `
id: d-2
name: Billing
nodes:
  - id: b
    type: database
    data:
      label: Ledger
edges: []
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "checkout.json"), jsonSnapshot)
	writeFile(t, filepath.Join(dir, "billing.yml"), yamlSnapshot)
	writeFile(t, filepath.Join(dir, "broken.json"), "{")

	p := New(dir)
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		wantName string
		wantCode errors.Code
	}{
		{name: "json by id", id: "checkout", wantName: "Checkout"},
		{name: "yaml by id", id: "billing", wantName: "Billing"},
		{name: "direct path", id: filepath.Join(dir, "checkout.json"), wantName: "Checkout"},
		{name: "missing", id: "nope", wantCode: errors.ErrCodeNotFound},
		{name: "malformed", id: "broken", wantCode: errors.ErrCodeInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := p.Snapshot(ctx, tt.id)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("err = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Snapshot(%q): %v", tt.id, err)
			}
			if d.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", d.Name, tt.wantName)
			}
		})
	}
}

func TestNotFoundDetails(t *testing.T) {
	dir := t.TempDir()
	_, err := New(dir).Snapshot(context.Background(), "ghost")
	e, ok := errors.As(err)
	if !ok {
		t.Fatalf("err = %v", err)
	}
	if e.Details["id"] != "ghost" || e.Details["dir"] != dir || e.Details["provider"] != "local" {
		t.Errorf("details = %v", e.Details)
	}
}

type loadRecorder struct {
	observability.NoopSourceHooks
	loads []string
	errs  []error
}

func (r *loadRecorder) OnSnapshotLoad(_ context.Context, provider, id string, _ time.Duration, err error) {
	r.loads = append(r.loads, provider+":"+id)
	r.errs = append(r.errs, err)
}

func TestLoadReportsToHooks(t *testing.T) {
	rec := &loadRecorder{}
	observability.SetSourceHooks(rec)
	t.Cleanup(observability.Reset)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "checkout.json"), jsonSnapshot)

	d, err := source.Load(context.Background(), New(dir), "checkout")
	if err != nil || d.ID != "d-1" {
		t.Fatalf("Load = %v, %v", d, err)
	}
	if _, err := source.Load(context.Background(), New(dir), "ghost"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("ghost: err = %v", err)
	}
	if len(rec.loads) != 2 || rec.loads[0] != "local:checkout" || rec.errs[0] != nil || rec.errs[1] == nil {
		t.Errorf("hook calls = %v %v", rec.loads, rec.errs)
	}
	if _, err := source.Load(context.Background(), New(dir), ""); !errors.Is(err, errors.ErrCodeInvalidData) {
		t.Errorf("empty id: err = %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(t.TempDir()).Snapshot(ctx, "x"); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestExampleSnapshots(t *testing.T) {
	p := New(filepath.Join("..", "..", "..", "examples", "diagrams"))

	for id, wantNodes := range map[string]int{"checkout": 6, "billing": 3} {
		d, err := p.Snapshot(context.Background(), id)
		if err != nil {
			t.Fatalf("%s: %v", id, err)
		}
		if len(d.Nodes) != wantNodes {
			t.Errorf("%s: %d nodes, want %d", id, len(d.Nodes), wantNodes)
		}
	}
}
