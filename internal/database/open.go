package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

var ErrUnsupported = errors.New("database: no driver for vendor")

var drivers = map[Type]string{
	PostgreSql: "pgx",
	SQLite:     "sqlite",
}

// Handle is an open pool that remembers how it was opened. It satisfies Conn.
type Handle struct {
	*sql.DB
	dsn  string
	name string
}

func (h *Handle) ConnectionString() string { return h.dsn }

func (h *Handle) Database() string { return h.name }

// Open opens and pings a pool for t, then reads the current database name
// once so later descriptors need no round trip.
func Open(ctx context.Context, t Type, dsn string) (*Handle, error) {
	driver, ok := drivers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, t)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", t, err)
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", t, err)
	}

	name, err := currentDatabase(ctx, db, t)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("resolve database name: %w", err)
	}
	return &Handle{DB: db, dsn: dsn, name: name}, nil
}

func currentDatabase(ctx context.Context, db *sql.DB, t Type) (string, error) {
	switch t {
	case PostgreSql:
		var name string
		err := db.QueryRowContext(ctx, "select current_database()").Scan(&name)
		return name, err
	case SQLite:
		var file string
		err := db.QueryRowContext(ctx, "select file from pragma_database_list where name = 'main'").Scan(&file)
		if err != nil {
			return "", err
		}
		if file == "" {
			return "main", nil
		}
		base := filepath.Base(file)
		return strings.TrimSuffix(base, filepath.Ext(base)), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, t)
}
