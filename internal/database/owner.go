package database

import (
	"strings"

	"github.com/lib/pq"
)

// Keys that carry the user in a connection string, compared without case.
var userKeys = []string{"uid", "user id", "userid", "username", "user name", "user"}

// Owner extracts the user from connStr, or "" when there is none.
// Connection strings are "k=v;k=v" pairs, except for PostgreSql which may
// also use libpq "k=v k='v v'" pairs or a postgres:// URL.
func Owner(t Type, connStr string) string {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return ""
	}

	var pairs []string
	libpq := true
	switch {
	case t == PostgreSql && (strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")):
		kv, err := pq.ParseURL(connStr)
		if err != nil {
			return ""
		}
		pairs = splitTokens(kv)
	case t == PostgreSql && !strings.Contains(connStr, ";"):
		pairs = splitTokens(connStr)
	default:
		pairs = strings.Split(connStr, ";")
		libpq = false
	}

	for _, key := range userKeys {
		for _, pair := range pairs {
			k, v, ok := strings.Cut(pair, "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(k), key) {
				continue
			}
			v = strings.TrimSpace(v)
			if libpq {
				return unescape(v)
			}
			return v
		}
	}
	return ""
}

// unescape strips libpq quoting: 'a b' -> a b, a\ b -> a b.
func unescape(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = s[1 : len(s)-1]
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// splitTokens splits on blanks outside quotes and drops blanks around "=".
func splitTokens(s string) []string {
	var out []string
	var buf []rune
	inSingle, inDouble := false, false

	flush := func() {
		if len(buf) > 0 {
			out = append(out, string(buf))
			buf = buf[:0]
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\\':
			buf = append(buf, r)
			if i+1 < len(runes) {
				i++
				buf = append(buf, runes[i])
			}
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
			buf = append(buf, r)
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
			buf = append(buf, r)
		case ' ', '\t', '\n':
			if inSingle || inDouble {
				buf = append(buf, r)
				continue
			}
			// "user = bob" is one pair in libpq
			next := nextNonBlank(runes, i)
			if (len(buf) > 0 && buf[len(buf)-1] == '=') || (next < len(runes) && runes[next] == '=') {
				continue
			}
			flush()
		default:
			buf = append(buf, r)
		}
	}
	flush()
	return out
}

func nextNonBlank(runes []rune, i int) int {
	for i < len(runes) && (runes[i] == ' ' || runes[i] == '\t' || runes[i] == '\n') {
		i++
	}
	return i
}
