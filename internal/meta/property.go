package meta

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Struct tag keys read by the describer.
const (
	TagTable  = "table"
	TagColumn = "column"
	TagStore  = "db"
	TagJSON   = "json"
)

// Table is embedded in a record to carry its table decoration:
//
//	type Site struct {
//		meta.Table `table:"siteserver_site"`
//		...
//	}
type Table struct{}

// Tabler is the method form of the table decoration.
type Tabler interface {
	TableName() string
}

var (
	timeType   = reflect.TypeOf(time.Time{})
	markerType = reflect.TypeOf(Table{})
	tablerType = reflect.TypeOf((*Tabler)(nil)).Elem()
)

// Property is one declared field of a record type, in declaration order,
// with embedded structs flattened at their position.
type Property struct {
	Name     string
	Type     reflect.Type
	Index    []int
	Tag      reflect.StructTag
	Exported bool
}

// ColumnTag is the parsed column decoration.
type ColumnTag struct {
	Mapped bool
	Text   bool
	Extend bool
	Length int
}

// Column parses the column decoration of p.
func (p Property) Column() ColumnTag {
	raw, ok := p.Tag.Lookup(TagColumn)
	if !ok {
		return ColumnTag{}
	}
	ct := ColumnTag{Mapped: true}
	for _, opt := range strings.Split(raw, ",") {
		opt = strings.TrimSpace(opt)
		key, val, _ := strings.Cut(opt, "=")
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "text":
			ct.Text = true
		case "extend":
			ct.Extend = true
		case "length":
			if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
				ct.Length = n
			}
		}
	}
	return ct
}

// StorageIgnored reports a `db:"-"` decoration.
func (p Property) StorageIgnored() bool {
	return p.Tag.Get(TagStore) == "-"
}

// SerializationIgnored reports a `json:"-"` decoration.
func (p Property) SerializationIgnored() bool {
	return p.Tag.Get(TagJSON) == "-"
}

// recordType strips pointers; ok is false for anything but a struct.
func recordType(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t, t.Kind() == reflect.Struct
}

// Describe lists the properties of t. Non-struct types have none.
func Describe(t reflect.Type) []Property {
	st, ok := recordType(t)
	if !ok {
		return nil
	}

	type candidate struct {
		prop  Property
		depth int
	}
	var all []candidate
	var walk func(st reflect.Type, index []int, depth int, seen map[reflect.Type]bool)
	walk = func(st reflect.Type, index []int, depth int, seen map[reflect.Type]bool) {
		for i := 0; i < st.NumField(); i++ {
			f := st.Field(i)
			idx := append(append([]int(nil), index...), i)
			if f.Anonymous {
				ft := f.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft == markerType {
					continue
				}
				if ft.Kind() == reflect.Struct && ft != timeType {
					if seen[ft] {
						continue
					}
					seen[ft] = true
					walk(ft, idx, depth+1, seen)
					delete(seen, ft)
					continue
				}
			}
			all = append(all, candidate{
				prop: Property{
					Name:     f.Name,
					Type:     f.Type,
					Index:    idx,
					Tag:      f.Tag,
					Exported: f.IsExported(),
				},
				depth: depth,
			})
		}
	}
	walk(st, nil, 0, map[reflect.Type]bool{st: true})

	// Go promotion: the shallowest name wins, a tie at that depth hides all.
	shallowest := make(map[string]int, len(all))
	count := make(map[string]int, len(all))
	for _, c := range all {
		d, ok := shallowest[c.prop.Name]
		switch {
		case !ok || c.depth < d:
			shallowest[c.prop.Name] = c.depth
			count[c.prop.Name] = 1
		case c.depth == d:
			count[c.prop.Name]++
		}
	}
	props := make([]Property, 0, len(all))
	for _, c := range all {
		if c.depth == shallowest[c.prop.Name] && count[c.prop.Name] == 1 {
			props = append(props, c.prop)
		}
	}
	return props
}

// lookup finds a property by exact name.
func lookup(props []Property, name string) (Property, bool) {
	for _, p := range props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// tableName resolves the table decoration of t, or "".
func tableName(t reflect.Type) string {
	st, ok := recordType(t)
	if !ok {
		return ""
	}
	if st.Implements(tablerType) {
		return reflect.Zero(st).Interface().(Tabler).TableName()
	}
	if reflect.PointerTo(st).Implements(tablerType) {
		return reflect.New(st).Interface().(Tabler).TableName()
	}
	return markerTable(st, map[reflect.Type]bool{st: true})
}

func markerTable(st reflect.Type, seen map[reflect.Type]bool) string {
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft == markerType {
			return f.Tag.Get(TagTable)
		}
		if ft.Kind() == reflect.Struct && ft != timeType && !seen[ft] {
			seen[ft] = true
			if name := markerTable(ft, seen); name != "" {
				return name
			}
		}
	}
	return ""
}
