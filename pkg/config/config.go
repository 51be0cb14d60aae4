// Package config loads archexport settings from a TOML file.
//
// # Location
//
// [Path] resolves the file in this order:
//
//  1. the explicit path (the --config flag)
//  2. $ARCHEXPORT_CONFIG
//  3. $XDG_CONFIG_HOME/archexport/config.toml
//  4. ~/.config/archexport/config.toml
//
// A missing file at an implicit location yields [Default].
//
// # Format
//
//	[export]
//	include_metadata = true
//	include_timestamps = false
//	author = "Platform Team"
//	default_format = "markdown"
//	snapshot_dir = "./diagrams"
//
//	[markdown]
//	heading_level = 2
//	mermaid = true
//
//	[json]
//	indent = 4
//	computed = true
//
//	[cursor]
//	group_by_phase = true
//	default_priority = "low"
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
//	database = "archexport"
//	collection = "diagrams"
//
//	[server]
//	addr = ":8080"
//
// Omitted keys keep their defaults. Unknown keys and invalid values are
// reported as INVALID_CONFIG errors.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/archexport/pkg/errors"
	"github.com/matzehuels/archexport/pkg/export"
	"github.com/matzehuels/archexport/pkg/render"
	"github.com/matzehuels/archexport/pkg/render/datajson"
	"github.com/matzehuels/archexport/pkg/render/markdown"
	"github.com/matzehuels/archexport/pkg/render/tasklist"
)

const (
	appName = "archexport"

	// EnvPath names the environment variable holding the config path.
	EnvPath = "ARCHEXPORT_CONFIG"

	fileName = "config.toml"
)

// Config is the full configuration file.
type Config struct {
	Export   Export           `toml:"export"`
	Markdown markdown.Options `toml:"markdown"`
	JSON     datajson.Options `toml:"json"`
	Cursor   tasklist.Options `toml:"cursor"`
	Mongo    Mongo            `toml:"mongo"`
	Server   Server           `toml:"server"`
}

// Export holds the options shared by all formats.
type Export struct {
	IncludeMetadata   bool   `toml:"include_metadata"`
	IncludeTimestamps bool   `toml:"include_timestamps"`
	Author            string `toml:"author"`
	DefaultFormat     string `toml:"default_format"`
	SnapshotDir       string `toml:"snapshot_dir"`
}

// Mongo configures the MongoDB snapshot source.
type Mongo struct {
	URI        string   `toml:"uri"`
	Database   string   `toml:"database"`
	Collection string   `toml:"collection"`
	Timeout    Duration `toml:"timeout"`
}

// Server configures the HTTP server.
type Server struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Duration is a time.Duration written as a string ("10s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	opts := export.DefaultOptions()
	return &Config{
		Export: Export{
			IncludeMetadata:   opts.IncludeMetadata,
			IncludeTimestamps: opts.IncludeTimestamps,
			DefaultFormat:     string(export.DefaultFormat),
			SnapshotDir:       ".",
		},
		Markdown: opts.Markdown,
		JSON:     opts.JSON,
		Cursor:   opts.Tasks,
		Mongo: Mongo{
			Database:   appName,
			Collection: "diagrams",
			Timeout:    Duration{10 * time.Second},
		},
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: Duration{10 * time.Second},
		},
	}
}

// ExportOptions converts the file settings to export options.
func (c *Config) ExportOptions() export.Options {
	return export.Options{
		Common: render.Common{
			IncludeMetadata:   c.Export.IncludeMetadata,
			IncludeTimestamps: c.Export.IncludeTimestamps,
			Author:            c.Export.Author,
		},
		Markdown: c.Markdown,
		JSON:     c.JSON,
		Tasks:    c.Cursor,
	}
}

// DefaultFormat returns the configured default export format.
func (c *Config) DefaultFormat() export.Format {
	return export.Format(strings.ToLower(c.Export.DefaultFormat))
}

// Validate checks every value and returns an INVALID_CONFIG error for the
// first problem found.
func (c *Config) Validate() error {
	if err := c.ExportOptions().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid export settings")
	}
	if _, err := export.ParseFormat(c.Export.DefaultFormat); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid default_format %q", c.Export.DefaultFormat)
	}
	if c.Mongo.Timeout.Duration < 0 || c.Server.ShutdownTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeouts must not be negative")
	}
	return nil
}

// Path resolves the configuration file location. explicit wins when set.
func Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the configuration at Path(explicit). A missing file is an
// error only when it was named explicitly.
func Load(explicit string) (*Config, error) {
	path, err := Path(explicit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve config path")
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) && explicit == "" && os.Getenv(EnvPath) == "" {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		if e, ok := errors.As(err); ok {
			return nil, e.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Decode reads a TOML configuration from r on top of [Default] and
// validates it.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", ")).
			WithDetail("keys", keys)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
