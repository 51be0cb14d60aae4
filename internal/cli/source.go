package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archexport/pkg/config"
	"github.com/matzehuels/archexport/pkg/errors"
	"github.com/matzehuels/archexport/pkg/source"
	"github.com/matzehuels/archexport/pkg/source/local"
	"github.com/matzehuels/archexport/pkg/source/mongo"
)

const (
	sourceNone  = "none"
	sourceLocal = "local"
	sourceMongo = "mongo"
)

// sourceFlags selects and configures a snapshot provider. Empty values
// fall back to the config file.
type sourceFlags struct {
	kind      string
	dir       string
	mongoURI  string
	mongoDB   string
	mongoColl string
}

// addFlags registers the source flags on cmd with def as the default kind.
func (f *sourceFlags) addFlags(cmd *cobra.Command, def string, kinds ...string) {
	cmd.Flags().StringVar(&f.kind, "source", def, "snapshot source: "+strings.Join(kinds, ", "))
	cmd.Flags().StringVar(&f.dir, "dir", "", "snapshot directory for the local source (default from config)")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB connection string")
	cmd.Flags().StringVar(&f.mongoDB, "mongo-db", "", "MongoDB database")
	cmd.Flags().StringVar(&f.mongoColl, "mongo-collection", "", "MongoDB collection")

	_ = cmd.RegisterFlagCompletionFunc("source", cobra.FixedCompletions(kinds, cobra.ShellCompDirectiveNoFileComp))
}

// open builds the selected provider. The returned close function is never
// nil. A nil provider means the "none" source.
func (f *sourceFlags) open(ctx context.Context, c *CLI, cfg *config.Config) (source.Provider, func(), error) {
	noop := func() {}

	switch f.kind {
	case sourceNone, "":
		return nil, noop, nil

	case sourceLocal:
		dir := cfg.Export.SnapshotDir
		if f.dir != "" {
			dir = f.dir
		}
		c.Logger.Debug("using local snapshots", "dir", dir)
		return local.New(dir), noop, nil

	case sourceMongo:
		mcfg := f.mongoConfig(cfg)
		c.Logger.Debug("connecting to mongo", "database", mcfg.Database, "collection", mcfg.Collection)
		p, err := mongo.Open(ctx, mcfg)
		if err != nil {
			return nil, noop, err
		}
		closeFn := func() {
			if err := p.Close(context.Background()); err != nil {
				c.Logger.Warn("mongo disconnect failed", "error", err)
			}
		}
		return p, closeFn, nil

	default:
		return nil, noop, errors.New(errors.ErrCodeInvalidConfig, "unknown source %q", f.kind).
			WithDetail("source", f.kind)
	}
}

// mongoConfig merges the [mongo] config section with the flags.
func (f *sourceFlags) mongoConfig(cfg *config.Config) mongo.Config {
	m := mongo.Config{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
		Timeout:    cfg.Mongo.Timeout.Duration,
	}
	if f.mongoURI != "" {
		m.URI = f.mongoURI
	}
	if f.mongoDB != "" {
		m.Database = f.mongoDB
	}
	if f.mongoColl != "" {
		m.Collection = f.mongoColl
	}
	return m
}
