// Package storage opens the offline store, applies the embedded goose
// migrations for its dialect, and vends repositories bound to either the
// database handle or a transaction.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mcoffline/internal/client/migrations"
	"github.com/dmitrijs2005/mcoffline/internal/client/repositories/entities"
	"github.com/dmitrijs2005/mcoffline/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mcoffline/internal/client/repositories/requests"
	"github.com/dmitrijs2005/mcoffline/internal/dbx"
	"github.com/dmitrijs2005/mcoffline/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Store owns the database handle of the offline layer.
type Store struct {
	db      *sql.DB
	dialect dbx.Dialect
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Open connects to the store named by driver ("sqlite" or "pgx") and dsn and
// migrates it. SQLite is limited to a single connection so that statements
// and transactions run one at a time.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	dialect, err := dbx.ParseDialect(driver)
	if err != nil {
		return nil, err
	}

	if dialect == dbx.DialectSQLite {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if dialect == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, dialect: dialect}
	if err := s.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	return s, nil
}

// RunMigrations applies the embedded migrations of the store's dialect.
func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	dir := migrations.SQLiteDir
	gooseDialect := "sqlite3"
	if s.dialect == dbx.DialectPostgres {
		dir = migrations.PostgresDir
		gooseDialect = "postgres"
	}

	if err := goose.SetDialect(gooseDialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, s.db, dir)
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Dialect() dbx.Dialect { return s.dialect }

func (s *Store) Close() error { return s.db.Close() }

// Entities returns the entity repository bound to db (the store or a tx).
func (s *Store) Entities(db dbx.DBTX) entities.Repository {
	return entities.NewSQLRepository(db, s.dialect)
}

func (s *Store) Requests(db dbx.DBTX) requests.Repository {
	return requests.NewSQLRepository(db, s.dialect)
}

func (s *Store) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLRepository(db, s.dialect)
}

// WithTx runs fn in a transaction on the store.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, s.db, nil, fn)
}
