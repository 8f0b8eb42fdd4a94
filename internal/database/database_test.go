package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	dsn, name string
	reads     int
}

func (f *fakeConn) ConnectionString() string { f.reads++; return f.dsn }

func (f *fakeConn) Database() string { f.reads++; return f.name }

func TestNew(t *testing.T) {
	conn := &fakeConn{
		dsn:  "Server=db.local;Database=cms;Uid=siteowner;Pwd=secret;",
		name: "cms",
	}

	db := New(MySql, conn)

	assert.Equal(t, MySql, db.Type)
	assert.Equal(t, conn.dsn, db.ConnectionString)
	assert.Equal(t, "cms", db.Name)
	assert.Equal(t, "siteowner", db.Owner)
	assert.Same(t, conn, db.Conn)
	assert.Equal(t, 2, conn.reads)
}

func TestOwner(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		dsn  string
		want string
	}{
		{"mysql uid", MySql, "Server=h;Database=d;Uid=alice;Pwd=p", "alice"},
		{"sqlserver user id", SqlServer, "Data Source=h;Initial Catalog=d;User ID=sa;Password=p", "sa"},
		{"windows account", SqlServer, `Server=h;User Id=CORP\svc;Password=p`, `CORP\svc`},
		{"case and spaces", Oracle, "data source=h; USER ID = scott ;password=tiger", "scott"},
		{"uid before user", MySql, "User=second;Uid=first", "first"},
		{"postgres ado", PostgreSql, "Host=h;Database=d;Username=pgadmin;Password=p", "pgadmin"},
		{"postgres libpq", PostgreSql, "host=h dbname=d user=bob password='a b'", "bob"},
		{"postgres libpq quoted", PostgreSql, "host=h user = 'bo b' dbname=d", "bo b"},
		{"postgres url", PostgreSql, "postgres://carol:pw@localhost:5432/site?sslmode=disable", "carol"},
		{"postgres url escaped", PostgreSql, "postgresql://o%27neil:pw@localhost/site", "o'neil"},
		{"postgres bad url", PostgreSql, "postgres://%zz", ""},
		{"no user", MySql, "Server=h;Database=d", ""},
		{"sqlite path", SQLite, "file:site.db?cache=shared", ""},
		{"empty", MySql, "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Owner(tt.typ, tt.dsn))
		})
	}
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{
		"postgres":   PostgreSql,
		"PostgreSql": PostgreSql,
		"mysql":      MySql,
		"SQLSERVER":  SqlServer,
		"oracle":     Oracle,
		"sqlite3":    SQLite,
	} {
		got, err := ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseType("db2")
	assert.Error(t, err)
	assert.Equal(t, "Type(9)", Type(9).String())
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")

	h, err := Open(context.Background(), SQLite, path)
	require.NoError(t, err)
	defer h.Close()

	db := New(SQLite, h)
	assert.Equal(t, "site", db.Name)
	assert.Equal(t, path, db.ConnectionString)
	assert.Equal(t, "", db.Owner)
}

func TestOpen_SQLiteMemory(t *testing.T) {
	h, err := Open(context.Background(), SQLite, ":memory:")
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, "main", h.Database())
}

func TestOpen_Unsupported(t *testing.T) {
	_, err := Open(context.Background(), Oracle, "user id=scott")
	assert.True(t, errors.Is(err, ErrUnsupported))
}
