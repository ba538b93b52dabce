//go:build integration

package auditlog_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/registryops/eppproxy/pkg/auditlog"
)

// newPostgresDSN starts a PostgreSQL container, or uses an external one
// configured via AUDIT_POSTGRES_DSN.
func newPostgresDSN(t *testing.T) string {
	t.Helper()

	if dsn := os.Getenv("AUDIT_POSTGRES_DSN"); dsn != "" {
		return dsn
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("eppproxy_audit"),
		postgres.WithUsername("eppproxy"),
		postgres.WithPassword("eppproxy"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	return dsn
}

func TestPostgresAuditStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dsn := newPostgresDSN(t)
	ctx := context.Background()

	store, err := auditlog.New(auditlog.Config{
		Backend: "sql",
		SQL:     auditlog.SQLConfig{Driver: "postgres", DSN: dsn},
	})
	if err != nil {
		t.Fatalf("failed to open postgres audit store: %v", err)
	}

	if err := store.Healthcheck(ctx); err != nil {
		t.Fatalf("healthcheck failed: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	entries := []auditlog.Entry{
		{Registry: "verisign-com", Direction: auditlog.DirectionSent, At: now, Data: []byte("<epp><command/></epp>")},
		{Registry: "verisign-com", Direction: auditlog.DirectionReceived, At: now.Add(time.Second), Data: []byte("<epp><response/></epp>")},
		{Registry: "nominet", Direction: auditlog.DirectionSent, At: now.Add(2 * time.Second), Data: []byte("<epp><hello/></epp>")},
	}
	for _, entry := range entries {
		if err := store.Append(ctx, entry); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// Verify the rows landed, through a plain connection rather than the
	// store's own machinery.
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("failed to open verification connection: %v", err)
	}
	defer db.Close()

	var total int
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM audit_entries").Scan(&total); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if total != len(entries) {
		t.Errorf("expected %d entries, got %d", len(entries), total)
	}

	var perRegistry int
	if err := db.QueryRowContext(ctx,
		"SELECT count(*) FROM audit_entries WHERE registry = $1", "verisign-com").Scan(&perRegistry); err != nil {
		t.Fatalf("registry query failed: %v", err)
	}
	if perRegistry != 2 {
		t.Errorf("expected 2 verisign-com entries, got %d", perRegistry)
	}

	var data []byte
	var direction string
	err = db.QueryRowContext(ctx,
		"SELECT direction, data FROM audit_entries WHERE registry = $1 ORDER BY at LIMIT 1", "nominet").
		Scan(&direction, &data)
	if err != nil {
		t.Fatalf("payload query failed: %v", err)
	}
	if direction != string(auditlog.DirectionSent) {
		t.Errorf("expected direction %q, got %q", auditlog.DirectionSent, direction)
	}
	if string(data) != "<epp><hello/></epp>" {
		t.Errorf("payload round-trip mismatch: %q", data)
	}
}

// TestPostgresMigrationsIdempotent reopens the store against the same
// database; the embedded migrations must be a no-op the second time.
func TestPostgresMigrationsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dsn := newPostgresDSN(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		store, err := auditlog.NewSQL(auditlog.SQLConfig{Driver: "postgres", DSN: dsn})
		if err != nil {
			t.Fatalf("open %d failed: %v", i+1, err)
		}
		if err := store.Append(ctx, auditlog.Entry{
			Registry:  "verisign-com",
			Direction: auditlog.DirectionSent,
			At:        time.Now().UTC(),
			Data:      []byte("frame"),
		}); err != nil {
			t.Fatalf("append after open %d failed: %v", i+1, err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("close %d failed: %v", i+1, err)
		}
	}
}
