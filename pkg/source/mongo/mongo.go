// Package mongo reads diagram snapshots from a MongoDB collection.
//
// Each document follows [diagram.Record]: scalar fields are stored as BSON
// values and the node and edge collections as JSON text.
//
//	{ "_id": "d-42", "name": "Checkout", "nodes": "[...]", "edges": "[...]" }
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/archexport/pkg/diagram"
	apperrors "github.com/matzehuels/archexport/pkg/errors"
	"github.com/matzehuels/archexport/pkg/source"
)

// DefaultTimeout bounds connecting and each lookup when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config holds connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// finder is the subset of *mongo.Collection the provider needs.
type finder interface {
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// Provider looks up snapshots by document _id.
type Provider struct {
	coll    finder
	client  *mongo.Client
	timeout time.Duration
}

var _ source.Provider = (*Provider)(nil)

// Open connects to the server described by cfg and verifies the
// connection with a ping. Close the provider when done.
func Open(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.URI == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "mongo uri is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "connect to mongo")
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperrors.Wrap(apperrors.ErrCodeExportFailed, err, "ping mongo")
	}

	p := New(client.Database(cfg.Database).Collection(cfg.Collection))
	p.client = client
	p.timeout = timeout
	return p, nil
}

// New returns a provider reading from coll. The caller owns the client.
func New(coll *mongo.Collection) *Provider {
	return &Provider{coll: coll, timeout: DefaultTimeout}
}

// Name implements [source.Provider].
func (p *Provider) Name() string { return "mongo" }

// Snapshot implements [source.Provider].
func (p *Provider) Snapshot(ctx context.Context, id string) (*diagram.Diagram, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var rec diagram.Record
	err := p.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, source.NotFound(p.Name(), id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeExportFailed, err, "load diagram %s", id).
			WithDetail("provider", p.Name())
	}
	return diagram.FromRecord(rec)
}

// Close disconnects the client opened by [Open]. It is a no-op for
// providers built with [New].
func (p *Provider) Close(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	return p.client.Disconnect(ctx)
}
