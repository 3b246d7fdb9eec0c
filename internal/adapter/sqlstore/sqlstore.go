// Package sqlstore implements the record store on SQLite (embedded, the
// default) or PostgreSQL.
package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"lightweight/internal/domain"
)

// Driver selects the SQL engine.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

//go:embed migrations
var migrations embed.FS

func init() {
	sqlx.BindDriver(string(DriverSQLite), sqlx.QUESTION)
}

// Store wraps a *sqlx.DB and implements domain.RecordStore.
type Store struct {
	db     *sqlx.DB
	driver Driver
	log    *zap.Logger
}

var _ domain.RecordStore = (*Store)(nil)

// Open connects, pings and migrates the schema.
//
// SQLite is opened with a single connection so every write goes through one
// writer, and with foreign keys enforced so deletes cascade.
func Open(driver Driver, dsn string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}

	db, err := sqlx.Open(string(driver), dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverPostgres {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, driver: driver, log: log.Named("sqlstore")}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if driver == DriverSQLite {
		// Set after migrating: goose keeps a connection of its own open.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}
	s.log.Info("record store ready", zap.String("driver", string(driver)))
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations/"+string(s.driver))
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	dialect := goose.DialectPostgres
	if s.driver == DriverSQLite {
		dialect = goose.DialectSQLite3
	}

	p, err := goose.NewProvider(dialect, s.db.DB, fsys)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, r := range results {
		s.log.Info("applied migration", zap.String("source", r.Source.Path), zap.Duration("took", r.Duration))
	}
	return nil
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "lightweight.db"
	}
	for _, pragma := range []string{"foreign_keys(1)", "busy_timeout(5000)"} {
		if strings.Contains(dsn, pragma) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=" + pragma
	}
	return dsn
}
