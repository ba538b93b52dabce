package auditlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/registryops/eppproxy/pkg/auditlog/migrations"
)

// auditRecord is the relational shape of one entry.
type auditRecord struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Registry  string    `gorm:"index:idx_audit_entries_registry_at,priority:1;not null"`
	Direction string    `gorm:"not null"`
	At        time.Time `gorm:"index:idx_audit_entries_registry_at,priority:2;not null"`
	Data      []byte    `gorm:"not null"`
}

func (auditRecord) TableName() string { return "audit_entries" }

// SQL stores entries in SQLite or PostgreSQL. SQLite migrates its schema
// in place; PostgreSQL runs the embedded migrations first so several
// proxy instances can share one database (golang-migrate serialises them
// with advisory locks).
type SQL struct {
	db *gorm.DB
}

// NewSQL opens the configured database and brings the schema up to date.
func NewSQL(cfg SQLConfig) (*SQL, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("audit sql backend needs a dsn")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o750); err != nil {
			return nil, fmt.Errorf("create audit db directory: %w", err)
		}
		// WAL keeps concurrent session writers from tripping over the
		// API's health reads.
		dsn := cfg.DSN + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		dialector = sqlite.Open(dsn)

	case "postgres":
		if err := runPostgresMigrations(cfg.DSN); err != nil {
			return nil, err
		}
		dialector = postgres.Open(cfg.DSN)

	default:
		return nil, fmt.Errorf("unknown audit sql driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	if cfg.Driver == "" || cfg.Driver == "sqlite" {
		if err := db.AutoMigrate(&auditRecord{}); err != nil {
			return nil, fmt.Errorf("migrate audit schema: %w", err)
		}
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Append(ctx context.Context, entry Entry) error {
	rec := auditRecord{
		Registry:  entry.Registry,
		Direction: string(entry.Direction),
		At:        entry.At,
		Data:      entry.Data,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (s *SQL) Healthcheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("audit db: %w", err)
	}
	return nil
}

func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func runPostgresMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open audit db for migrations: %w", err)
	}
	defer db.Close()

	driver, err := migratepg.WithInstance(db, &migratepg.Config{
		MigrationsTable: "audit_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate audit schema: %w", err)
	}
	return nil
}
