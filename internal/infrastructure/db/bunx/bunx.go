// Package bunx implements the relational storage backend on top of bun. The
// same repositories run against PostgreSQL and SQLite; the DSN picks the
// dialect.
package bunx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"modernc.org/sqlite"
)

const (
	defaultTimeout = 10 * time.Second
	// foldFunc is registered on every SQLite connection. The built-in
	// lower() only folds ASCII.
	foldFunc = "fold_lower"
)

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, foldLower)
}

func foldLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	}
	return args[0], nil
}

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server. Anything
// else is treated as a SQLite file or memory DSN.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to the database addressed by dsn and verifies it with a ping.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	var db *bun.DB
	if IsPostgresDSN(dsn) {
		db = openPostgres(dsn)
	} else {
		var err error
		if db, err = openSQLite(ctx, dsn); err != nil {
			return nil, err
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bun ping: %w", err)
	}
	return db, nil
}

func openPostgres(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	sqldb.SetMaxOpenConns(25)
	sqldb.SetMaxIdleConns(25)
	return bun.NewDB(sqldb, pgdialect.New())
}

func openSQLite(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer; also keeps a :memory: database alive on one connection
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

// CreateTables creates the users, customers and tasks tables when missing.
func CreateTables(ctx context.Context, db *bun.DB) error {
	steps := []*bun.CreateTableQuery{
		db.NewCreateTable().Model((*userModel)(nil)).IfNotExists(),
		db.NewCreateTable().Model((*customerModel)(nil)).IfNotExists(),
		db.NewCreateTable().Model((*taskModel)(nil)).IfNotExists().
			ForeignKey(`("assigned_to_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
			ForeignKey(`("customer_id") REFERENCES "customers" ("id") ON DELETE SET NULL`),
	}
	for _, q := range steps {
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	if _, err := db.NewCreateIndex().Model((*taskModel)(nil)).Index("tasks_assigned_to_id_idx").
		IfNotExists().Column("assigned_to_id").Exec(ctx); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// containsExpr returns a case-sensitive "column contains ?" predicate for
// the connected dialect.
func containsExpr(db bun.IDB, column string) string {
	if db.Dialect().Name() == dialect.PG {
		return "strpos(" + column + ", ?) > 0"
	}
	return "instr(" + column + ", ?) > 0"
}

// lowerExpr folds column to lower case with Unicode rules on both dialects.
func lowerExpr(db bun.IDB, column string) string {
	if db.Dialect().Name() == dialect.PG {
		return "lower(" + column + ")"
	}
	return foldFunc + "(" + column + ")"
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "23505")
}
