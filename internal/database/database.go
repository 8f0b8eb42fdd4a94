// Package database describes a live storage connection: vendor, database
// name, connection string and owning user.
package database

import (
	"fmt"
	"strings"
)

// Type identifies the storage vendor.
type Type int

const (
	MySql Type = iota
	SqlServer
	PostgreSql
	Oracle
	SQLite
)

var typeNames = [...]string{
	MySql:      "MySql",
	SqlServer:  "SqlServer",
	PostgreSql: "PostgreSql",
	Oracle:     "Oracle",
	SQLite:     "SQLite",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseType accepts vendor names case-insensitively, plus a few common aliases.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "postgres", "postgresql", "pg", "pgx":
		return PostgreSql, nil
	case "mssql", "sqlserver":
		return SqlServer, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	for i, name := range typeNames {
		if strings.ToLower(name) == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown database type: %q", s)
}

// Conn is the part of a live connection the descriptor reads.
type Conn interface {
	ConnectionString() string
	Database() string
}

// Database is an immutable description of a connection. It does not own
// Conn and never closes it.
type Database struct {
	Type             Type
	ConnectionString string
	Name             string
	Owner            string
	Conn             Conn
}

func New(t Type, conn Conn) *Database {
	connStr := conn.ConnectionString()
	return &Database{
		Type:             t,
		ConnectionString: connStr,
		Name:             conn.Database(),
		Owner:            Owner(t, connStr),
		Conn:             conn,
	}
}
