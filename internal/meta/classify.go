package meta

import (
	"reflect"
	"strings"
)

// Reserved identity/audit columns, in the order they lead a column list.
var reservedColumns = []string{"Id", "Guid", "CreatedDate", "LastModifiedDate"}

// IsReserved reports whether name is one of the system columns every
// record carries. Case is ignored.
func IsReserved(name string) bool {
	for _, r := range reservedColumns {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

// underlying unwraps *T and the database/sql Null wrappers.
func underlying(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct && t.PkgPath() == "database/sql" &&
		t.NumField() == 2 && t.Field(1).Name == "Valid" {
		return underlying(t.Field(0).Type)
	}
	return t
}

func classify(p Property) TableColumn {
	ct := p.Column()
	col := TableColumn{AttributeName: p.Name, DataType: VarChar}

	t := underlying(p.Type)
	switch {
	case isEnum(t) || t.Kind() == reflect.String:
		if ct.Text {
			col.DataType = Text
			col.IsExtend = ct.Extend
			return col
		}
		col.DataLength = ct.Length
		if col.DataLength <= 0 {
			col.DataLength = DefaultVarCharLength
		}
	case t == timeType:
		col.DataType = DateTime
	default:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			col.DataType = Integer
		case reflect.Bool:
			col.DataType = Boolean
		case reflect.Float32, reflect.Float64:
			col.DataType = Decimal
		}
	}
	return col
}

// ClassifyColumns builds the ordered column list of t: mapped properties
// only, reserved columns first in their fixed order, then the rest in
// declaration order.
func ClassifyColumns(t reflect.Type) []TableColumn {
	return classifyProperties(Describe(t))
}

// classifyProperties puts reserved columns first in the reservedColumns
// order whatever their declaration order, unlike the reflection-based
// layout that keeps declaration order inside the reserved group. The
// remaining columns keep declaration order.
func classifyProperties(props []Property) []TableColumn {
	var reserved, rest []TableColumn
	for _, p := range props {
		if !p.Column().Mapped {
			continue
		}
		col := classify(p)
		if IsReserved(col.AttributeName) {
			reserved = append(reserved, col)
		} else {
			rest = append(rest, col)
		}
	}

	columns := make([]TableColumn, 0, len(reserved)+len(rest))
	for _, name := range reservedColumns {
		for _, col := range reserved {
			if strings.EqualFold(col.AttributeName, name) {
				columns = append(columns, col)
			}
		}
	}
	return append(columns, rest...)
}
