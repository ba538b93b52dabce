package auditlog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FS appends entries to one log file per registry. Each record is a
// header line (timestamp, direction, payload length) followed by the raw
// frame and a trailing newline, so files stay greppable and replayable.
type FS struct {
	dir string

	mu    sync.Mutex
	files map[string]*os.File
}

// NewFS creates the directory if needed and verifies it is writable.
func NewFS(cfg FSConfig) (*FS, error) {
	if cfg.Directory == "" {
		return nil, fmt.Errorf("audit fs backend needs a directory")
	}
	if err := os.MkdirAll(cfg.Directory, 0o750); err != nil {
		return nil, fmt.Errorf("create audit directory: %w", err)
	}
	return &FS{dir: cfg.Directory, files: make(map[string]*os.File)}, nil
}

func (s *FS) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.fileLocked(entry.Registry)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %d\n", entry.At.UTC().Format("2006-01-02T15:04:05.000000Z"), entry.Direction, len(entry.Data))
	b.Write(entry.Data)
	b.WriteByte('\n')

	if _, err := f.WriteString(b.String()); err != nil {
		// Drop the handle so the next append reopens the file.
		f.Close()
		delete(s.files, entry.Registry)
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (s *FS) Healthcheck(context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("audit directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("audit path %s is not a directory", s.dir)
	}
	return nil
}

func (s *FS) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for registry, f := range s.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.files, registry)
	}
	return firstErr
}

func (s *FS) fileLocked(registry string) (*os.File, error) {
	if f, ok := s.files[registry]; ok {
		return f, nil
	}
	name := sanitizeRegistry(registry) + ".log"
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open audit log for %s: %w", registry, err)
	}
	s.files[registry] = f
	return f, nil
}

// sanitizeRegistry keeps registry ids safe as file name components.
func sanitizeRegistry(registry string) string {
	if registry == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, registry)
}
