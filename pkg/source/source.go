// Package source loads diagram snapshots from persistent storage.
//
// # Providers
//
// A [Provider] returns the snapshot with a given id:
//
//   - local: JSON or YAML files in a directory (pkg/source/local)
//   - mongo: documents in a MongoDB collection whose node and edge
//     collections are stored as JSON text (pkg/source/mongo)
//
// A missing snapshot is a NOT_FOUND error; a snapshot whose payload cannot
// be decoded is INVALID_DATA.
//
// # Usage
//
//	p := local.New("./diagrams")
//	d, err := source.Load(ctx, p, "checkout")
package source

import (
	"context"
	"time"

	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/errors"
	"github.com/matzehuels/archexport/pkg/observability"
)

// Provider supplies diagram snapshots by id.
type Provider interface {
	// Name identifies the provider in logs and hooks ("local", "mongo").
	Name() string

	// Snapshot returns the snapshot with the given id.
	Snapshot(ctx context.Context, id string) (*diagram.Diagram, error)
}

// Load fetches a snapshot from p and reports the lookup to the
// observability source hooks.
func Load(ctx context.Context, p Provider, id string) (*diagram.Diagram, error) {
	if id == "" {
		return nil, errors.New(errors.ErrCodeInvalidData, "snapshot id is required")
	}
	start := time.Now()
	d, err := p.Snapshot(ctx, id)
	observability.Source().OnSnapshotLoad(ctx, p.Name(), id, time.Since(start), err)
	return d, err
}

// NotFound returns the NOT_FOUND error providers use for missing snapshots.
func NotFound(provider, id string) *errors.Error {
	return errors.New(errors.ErrCodeNotFound, "diagram %q not found", id).
		WithDetail("provider", provider).
		WithDetail("id", id)
}
