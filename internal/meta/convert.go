package meta

import (
	"encoding/json"
	"math"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// stringToTime accepts the layouts stored rows usually carry.
func stringToTime(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != timeType {
		return data, nil
	}
	text := reflect.ValueOf(data).String()
	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return nil, err
}

// Change converts value to t the way a loosely typed row would need:
// numbers, bools and their text forms convert into each other, text
// becomes time.Time, pointers are allocated. ok is false on failure.
func Change(value any, t reflect.Type) (reflect.Value, bool) {
	if value == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(t) {
		return rv, true
	}

	if n, ok := value.(json.Number); ok {
		value = n.String()
	}
	if !fits(reflect.ValueOf(value), t) {
		return reflect.Value{}, false
	}

	out := reflect.New(t)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToTime,
		WeaklyTypedInput: true,
		Result:           out.Interface(),
	})
	if err != nil {
		return reflect.Value{}, false
	}
	if err := dec.Decode(value); err != nil {
		return reflect.Value{}, false
	}
	return out.Elem(), true
}

// fits reports whether a numeric source survives conversion to t without
// wrapping. Text is range checked by the decoder's own parsing.
func fits(src reflect.Value, t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	src = reflect.Indirect(src)
	if !src.IsValid() {
		return true
	}
	dst := reflect.New(t).Elem()

	switch {
	case isInt(t.Kind()):
		switch {
		case isInt(src.Kind()):
			return !dst.OverflowInt(src.Int())
		case isUint(src.Kind()):
			u := src.Uint()
			return u <= math.MaxInt64 && !dst.OverflowInt(int64(u))
		case isFloat(src.Kind()):
			f := math.Trunc(src.Float())
			return f >= -(1<<63) && f < 1<<63 && !dst.OverflowInt(int64(f))
		}
	case isUint(t.Kind()):
		switch {
		case isInt(src.Kind()):
			n := src.Int()
			return n >= 0 && !dst.OverflowUint(uint64(n))
		case isUint(src.Kind()):
			return !dst.OverflowUint(src.Uint())
		case isFloat(src.Kind()):
			f := math.Trunc(src.Float())
			return f >= 0 && f < 1<<64 && !dst.OverflowUint(uint64(f))
		}
	case isFloat(t.Kind()):
		if isFloat(src.Kind()) {
			return !dst.OverflowFloat(src.Float())
		}
	}
	return true
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// ChangeOrDefault is Change with the zero value of t as the fallback.
func ChangeOrDefault(value any, t reflect.Type) reflect.Value {
	if v, ok := Change(value, t); ok {
		return v
	}
	return reflect.Zero(t)
}
