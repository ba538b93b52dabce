package auditlog

import (
	"context"
	"fmt"
	"sync/atomic"

	badger "github.com/dgraph-io/badger/v4"
)

// Badger persists entries in an embedded BadgerDB. Keys are
// audit/<registry>/<unix-nanos>/<seq> so a prefix scan replays one
// registry's traffic in capture order; the sequence breaks ties when
// two frames land in the same nanosecond.
type Badger struct {
	db  *badger.DB
	seq atomic.Uint64
}

// NewBadger opens (or creates) the database directory.
func NewBadger(cfg BadgerConfig) (*Badger, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Directory == "" {
			return nil, fmt.Errorf("audit badger backend needs a directory")
		}
		opts = badger.DefaultOptions(cfg.Directory)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open audit badger db: %w", err)
	}
	return &Badger{db: db}, nil
}

func (s *Badger) Append(_ context.Context, entry Entry) error {
	key := fmt.Sprintf("audit/%s/%d/%d", entry.Registry, entry.At.UnixNano(), s.seq.Add(1))
	value := make([]byte, 0, len(entry.Direction)+1+len(entry.Data))
	value = append(value, entry.Direction...)
	value = append(value, '\n')
	value = append(value, entry.Data...)

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (s *Badger) Healthcheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.View(func(*badger.Txn) error { return nil })
	if err != nil {
		return fmt.Errorf("audit badger db: %w", err)
	}
	return nil
}

func (s *Badger) Close() error {
	return s.db.Close()
}
