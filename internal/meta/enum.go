package meta

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Enum is implemented by named types with a closed set of named values.
// Values must be declared on the value receiver.
//
//	type Status int
//
//	func (s Status) String() string { ... }
//	func (Status) Values() []meta.Enum { return []meta.Enum{Draft, Published} }
type Enum interface {
	fmt.Stringer
	Values() []Enum
}

var enumType = reflect.TypeOf((*Enum)(nil)).Elem()

// isEnum excludes pointers and interfaces: their zero value is nil, so
// there is nothing to ask for Values.
func isEnum(t reflect.Type) bool {
	if t == nil || t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return false
	}
	return t.Implements(enumType)
}

// ParseEnum matches text against the names of t's values, ignoring case.
// Integer-kinded enums also accept a numeric text. ok is false when
// nothing matched.
func ParseEnum(t reflect.Type, text string) (reflect.Value, bool) {
	if !isEnum(t) {
		return reflect.Value{}, false
	}
	zero, ok := reflect.Zero(t).Interface().(Enum)
	if !ok {
		return reflect.Value{}, false
	}
	text = strings.TrimSpace(text)
	for _, e := range zero.Values() {
		if e == nil || !strings.EqualFold(e.String(), text) {
			continue
		}
		v := reflect.ValueOf(e)
		if v.Type().ConvertibleTo(t) {
			return v.Convert(t), true
		}
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(text, 10, t.Bits()); err == nil {
			return reflect.ValueOf(n).Convert(t), true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseUint(text, 10, t.Bits()); err == nil {
			return reflect.ValueOf(n).Convert(t), true
		}
	}
	return reflect.Value{}, false
}
