package meta

import (
	"fmt"
	"reflect"
)

// GetValue reads the field called name from obj's dynamic type. ok is
// false when the field does not exist or cannot be read (unexported, or
// reached through a nil embedded pointer). Enum fields are re-parsed from
// their text form; a failed parse returns the raw value.
func (c *Cache) GetValue(obj any, name string) (any, bool) {
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() {
		return nil, false
	}
	p, ok := c.property(rv.Type(), name)
	if !ok {
		return nil, false
	}
	fv, ok := field(rv, p)
	if !ok || !fv.CanInterface() {
		return nil, false
	}

	val := fv.Interface()
	if isEnum(p.Type) {
		if parsed, ok := ParseEnum(p.Type, fmt.Sprint(val)); ok {
			return parsed.Interface(), true
		}
	}
	return val, true
}

// SetValue assigns value to the field called name. obj must be a pointer
// for anything to happen; a missing or unwritable field is a no-op. A nil
// value stores the zero value. Enum fields are parsed from value's text
// form first; every other case goes through ChangeOrDefault, so a value
// that cannot be converted leaves the zero value behind.
func (c *Cache) SetValue(obj any, name string, value any) {
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() {
		return
	}
	p, ok := c.property(rv.Type(), name)
	if !ok {
		return
	}
	fv, ok := field(rv, p)
	if !ok || !fv.CanSet() {
		return
	}

	switch {
	case value == nil:
		fv.Set(reflect.Zero(p.Type))
	case isEnum(p.Type):
		if parsed, ok := ParseEnum(p.Type, fmt.Sprint(value)); ok {
			fv.Set(parsed)
			return
		}
		fv.Set(ChangeOrDefault(value, p.Type))
	default:
		fv.Set(ChangeOrDefault(value, p.Type))
	}
}

func field(rv reflect.Value, p Property) (reflect.Value, bool) {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	fv, err := rv.FieldByIndexErr(p.Index)
	if err != nil {
		return reflect.Value{}, false
	}
	return fv, true
}
