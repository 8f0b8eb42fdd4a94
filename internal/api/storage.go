package api

import (
	"errors"
	"io"
	"math/rand"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"schemata/internal/database"
	"schemata/internal/meta"

	"github.com/oklog/ulid/v2"
)

var ErrUnknownTable = errors.New("unknown table")

// Storage keeps hydrated records in memory, keyed by table name.
type Storage struct {
	mu      sync.RWMutex
	Meta    *meta.Cache
	DB      *database.Database // nil when no database is configured
	types   map[string]reflect.Type
	records map[string][]any
	lastID  map[string]int
	entropy io.Reader
	now     func() time.Time
}

func NewStorage(cache *meta.Cache, types []reflect.Type, db *database.Database) *Storage {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	s := &Storage{
		Meta:    cache,
		DB:      db,
		types:   make(map[string]reflect.Type),
		records: make(map[string][]any),
		lastID:  make(map[string]int),
		entropy: ulid.Monotonic(src, 0),
		now:     time.Now,
	}
	for _, t := range types {
		if name := cache.TableName(t); name != "" {
			s.types[name] = t
		}
	}
	return s
}

func (s *Storage) newGuid() string {
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}

// Tables returns the registered table names, sorted.
func (s *Storage) Tables() []string {
	out := make([]string, 0, len(s.types))
	for name := range s.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NormalizeTable resolves a table name case-insensitively.
func (s *Storage) NormalizeTable(name string) (string, reflect.Type, bool) {
	if t, ok := s.types[name]; ok {
		return name, t, true
	}
	for tn, t := range s.types {
		if strings.EqualFold(tn, name) {
			return tn, t, true
		}
	}
	return "", nil, false
}

// Create hydrates a new record of table from body. Keys match column names
// without case; values are coerced to the field types, so bad input ends
// up as zero values rather than errors. Identity and audit columns are
// always stamped by the store.
func (s *Storage) Create(table string, body map[string]any) (any, error) {
	name, t, ok := s.NormalizeTable(table)
	if !ok {
		return nil, ErrUnknownTable
	}

	rec := reflect.New(t).Interface()
	ignored := toSet(s.Meta.StorageIgnoreNames(t))
	for _, col := range s.Meta.ColumnNames(t) {
		if _, skip := ignored[col]; skip || meta.IsReserved(col) {
			continue
		}
		if v, ok := lookupKey(body, col); ok {
			s.Meta.SetValue(rec, col, v)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID[name]++
	now := s.now().UTC()
	s.Meta.SetValue(rec, "ID", s.lastID[name])
	s.Meta.SetValue(rec, "Guid", s.newGuid())
	s.Meta.SetValue(rec, "CreatedDate", &now)
	s.Meta.SetValue(rec, "LastModifiedDate", &now)

	s.records[name] = append(s.records[name], rec)
	return rec, nil
}

func (s *Storage) List(table string) ([]any, error) {
	name, _, ok := s.NormalizeTable(table)
	if !ok {
		return nil, ErrUnknownTable
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]any(nil), s.records[name]...), nil
}

// Get finds a record by its Guid column.
func (s *Storage) Get(table, guid string) (any, bool, error) {
	recs, err := s.List(table)
	if err != nil {
		return nil, false, err
	}
	for _, rec := range recs {
		if v, ok := s.Meta.GetValue(rec, "Guid"); ok && v == guid {
			return rec, true, nil
		}
	}
	return nil, false, nil
}
