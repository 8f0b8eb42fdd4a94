// Package meta derives storage metadata from decorated record types and
// reads or writes record fields by name.
package meta

import (
	"io"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
)

// typeInfo is everything derived for one record type. It is immutable
// once published.
type typeInfo struct {
	tableName       string
	props           []Property
	columns         []TableColumn
	propertyNames   []string
	columnNames     []string
	extendColumn    string
	storageIgnore   []string
	serializeIgnore []string
}

// Cache memoizes typeInfo per type. It is safe for concurrent use; two
// goroutines racing on a new type may both derive it, but only the first
// stored entry is ever returned.
type Cache struct {
	logger  *slog.Logger
	entries sync.Map // reflect.Type -> *typeInfo
	derived atomic.Int64
}

type Option func(*Cache)

func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) info(t reflect.Type) *typeInfo {
	key := t
	if st, ok := recordType(t); ok {
		key = st
	}
	if key == nil {
		return &typeInfo{}
	}
	if v, ok := c.entries.Load(key); ok {
		return v.(*typeInfo)
	}
	v, loaded := c.entries.LoadOrStore(key, c.derive(key))
	if !loaded {
		ti := v.(*typeInfo)
		c.logger.Debug("derived type metadata",
			"type", key.String(),
			"table", ti.tableName,
			"columns", len(ti.columns))
	}
	return v.(*typeInfo)
}

func (c *Cache) derive(t reflect.Type) *typeInfo {
	c.derived.Add(1)

	props := Describe(t)
	ti := &typeInfo{
		tableName: tableName(t),
		props:     props,
		columns:   classifyProperties(props),
	}
	for _, p := range props {
		ti.propertyNames = append(ti.propertyNames, p.Name)
		if p.StorageIgnored() {
			ti.storageIgnore = append(ti.storageIgnore, p.Name)
		}
		if p.SerializationIgnored() {
			ti.serializeIgnore = append(ti.serializeIgnore, p.Name)
		}
	}
	for _, col := range ti.columns {
		ti.columnNames = append(ti.columnNames, col.AttributeName)
		// first match wins when several columns are marked extend
		if col.IsExtend && ti.extendColumn == "" {
			ti.extendColumn = col.AttributeName
		}
	}
	return ti
}

// TableName returns the table decoration of t, or "" if it has none.
func (c *Cache) TableName(t reflect.Type) string {
	return c.info(t).tableName
}

// TableColumns returns a copy of t's ordered column list.
func (c *Cache) TableColumns(t reflect.Type) []TableColumn {
	return clone(c.info(t).columns)
}

// PropertyNames returns every declared field name of t, mapped or not.
func (c *Cache) PropertyNames(t reflect.Type) []string {
	return clone(c.info(t).propertyNames)
}

func (c *Cache) ColumnNames(t reflect.Type) []string {
	return clone(c.info(t).columnNames)
}

// ExtendColumnName returns the column marked extend, or "".
func (c *Cache) ExtendColumnName(t reflect.Type) string {
	return c.info(t).extendColumn
}

// StorageIgnoreNames lists the fields tagged `db:"-"`.
func (c *Cache) StorageIgnoreNames(t reflect.Type) []string {
	return clone(c.info(t).storageIgnore)
}

// SerializationIgnoreNames lists the fields tagged `json:"-"`.
func (c *Cache) SerializationIgnoreNames(t reflect.Type) []string {
	return clone(c.info(t).serializeIgnore)
}

func (c *Cache) property(t reflect.Type, name string) (Property, bool) {
	return lookup(c.info(t).props, name)
}

func clone[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return append(make([]T, 0, len(s)), s...)
}

// TableNameOf is TableName for a static type.
func TableNameOf[T any](c *Cache) string {
	return c.TableName(reflect.TypeFor[T]())
}

func TableColumnsOf[T any](c *Cache) []TableColumn {
	return c.TableColumns(reflect.TypeFor[T]())
}

func ColumnNamesOf[T any](c *Cache) []string {
	return c.ColumnNames(reflect.TypeFor[T]())
}

func ExtendColumnNameOf[T any](c *Cache) string {
	return c.ExtendColumnName(reflect.TypeFor[T]())
}
