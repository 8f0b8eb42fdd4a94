package api

import (
	"reflect"
	"strings"
)

func toSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func lookupKey(body map[string]any, key string) (any, bool) {
	if v, ok := body[key]; ok {
		return v, true
	}
	for k, v := range body {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// flatten dehydrates rec into readable fields, skipping those that must
// not be serialized.
func (s *Storage) flatten(rec any) map[string]any {
	t := reflect.TypeOf(rec)
	skip := toSet(s.Meta.SerializationIgnoreNames(t))

	out := map[string]any{}
	for _, name := range s.Meta.PropertyNames(t) {
		if _, ok := skip[name]; ok {
			continue
		}
		if v, ok := s.Meta.GetValue(rec, name); ok {
			out[name] = v
		}
	}
	return out
}
