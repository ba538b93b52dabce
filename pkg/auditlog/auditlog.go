// Package auditlog persists every frame the proxy exchanges with a
// registry. Entries are append-only and keyed by registry id; backends
// range from flat files to object storage. Append failures are reported
// to the caller for logging but must never take a session down.
package auditlog

import (
	"context"
	"fmt"
	"time"
)

// Direction marks which way a frame travelled.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// Entry is one recorded frame.
type Entry struct {
	// Registry is the owning registry id (the tenant key).
	Registry string

	// Direction is sent or received, from the proxy's point of view.
	Direction Direction

	// At is the wall-clock capture time.
	At time.Time

	// Data is the raw frame payload without the length prefix.
	Data []byte
}

// Store is an append-only audit sink.
type Store interface {
	// Append persists one entry.
	Append(ctx context.Context, entry Entry) error

	// Healthcheck verifies the sink can accept writes.
	Healthcheck(ctx context.Context) error

	// Close flushes and releases the sink.
	Close() error
}

// Config selects and parameterises a backend.
type Config struct {
	// Backend is one of: disabled, fs, badger, s3, sql.
	Backend string `mapstructure:"backend" validate:"omitempty,oneof=disabled fs badger s3 sql"`

	FS     FSConfig     `mapstructure:"fs"`
	Badger BadgerConfig `mapstructure:"badger"`
	S3     S3Config     `mapstructure:"s3"`
	SQL    SQLConfig    `mapstructure:"sql"`
}

// FSConfig configures the flat-file backend.
type FSConfig struct {
	// Directory receives one append-only log file per registry.
	Directory string `mapstructure:"directory"`
}

// BadgerConfig configures the embedded key-value backend.
type BadgerConfig struct {
	Directory string `mapstructure:"directory"`
	// InMemory runs without files; used by tests.
	InMemory bool `mapstructure:"in_memory"`
}

// S3Config configures the object-store backend.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	// PathStyle forces path-style addressing, needed by MinIO-style
	// endpoints.
	PathStyle bool `mapstructure:"path_style"`
}

// SQLConfig configures the relational backend.
type SQLConfig struct {
	// Driver is sqlite or postgres.
	Driver string `mapstructure:"driver" validate:"omitempty,oneof=sqlite postgres"`
	// DSN is the driver-specific connection string; for sqlite, a file
	// path.
	DSN string `mapstructure:"dsn"`
}

// New builds the configured backend. A disabled or empty backend yields
// a no-op store.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "disabled":
		return Nop{}, nil
	case "fs":
		return NewFS(cfg.FS)
	case "badger":
		return NewBadger(cfg.Badger)
	case "s3":
		return NewS3(cfg.S3)
	case "sql":
		return NewSQL(cfg.SQL)
	default:
		return nil, fmt.Errorf("unknown audit backend %q", cfg.Backend)
	}
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Append(context.Context, Entry) error { return nil }
func (Nop) Healthcheck(context.Context) error   { return nil }
func (Nop) Close() error                        { return nil }
