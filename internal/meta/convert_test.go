package meta

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChange(t *testing.T) {
	tests := []struct {
		name  string
		value any
		to    reflect.Type
		want  any
		ok    bool
	}{
		{"same type", 5, reflect.TypeOf(0), 5, true},
		{"int to int64", 5, reflect.TypeOf(int64(0)), int64(5), true},
		{"text to uint", "8", reflect.TypeOf(uint(0)), uint(8), true},
		{"empty text to int", "", reflect.TypeOf(0), 0, true},
		{"bool to string", true, reflect.TypeOf(""), "1", true},
		{"float to string", 2.5, reflect.TypeOf(""), "2.5", true},
		{"bytes to string", []byte("raw"), reflect.TypeOf(""), "raw", true},
		{"bad text to float", "x", reflect.TypeOf(0.0), nil, false},
		{"nil", nil, reflect.TypeOf(0), nil, false},
		{"int8 from 300", 300, reflect.TypeOf(int8(0)), nil, false},
		{"int8 from 127", 127, reflect.TypeOf(int8(0)), int8(127), true},
		{"int8 from text 300", "300", reflect.TypeOf(int8(0)), nil, false},
		{"uint from -1", -1, reflect.TypeOf(uint(0)), nil, false},
		{"uint8 from 255", uint64(255), reflect.TypeOf(uint8(0)), uint8(255), true},
		{"int from 1e30", 1e30, reflect.TypeOf(0), nil, false},
		{"int from NaN", math.NaN(), reflect.TypeOf(0), nil, false},
		{"int from -1.9", -1.9, reflect.TypeOf(0), -1, true},
		{"int from max uint64", uint64(math.MaxUint64), reflect.TypeOf(int64(0)), nil, false},
		{"float32 from 1e300", 1e300, reflect.TypeOf(float32(0)), nil, false},
		{"json number into int8", json.Number("300"), reflect.TypeOf(int8(0)), nil, false},
		{"json number into int", json.Number("300"), reflect.TypeOf(0), 300, true},
		{"pointer target", 300, reflect.TypeOf((*int8)(nil)), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Change(tt.value, tt.to)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Interface())
			}
		})
	}
}

func TestChangeOrDefault(t *testing.T) {
	assert.Equal(t, 0, ChangeOrDefault("x", reflect.TypeOf(0)).Interface())
	assert.Equal(t, "", ChangeOrDefault(struct{}{}, reflect.TypeOf("")).Interface())
	assert.Equal(t, record{}, ChangeOrDefault("x", reflect.TypeOf(record{})).Interface())
	assert.Nil(t, ChangeOrDefault("x", reflect.TypeOf(&record{})).Interface())
}

func TestParseEnum(t *testing.T) {
	v, ok := ParseEnum(reflect.TypeOf(Draft), " ARCHIVED ")
	assert.True(t, ok)
	assert.Equal(t, Archived, v.Interface())

	_, ok = ParseEnum(reflect.TypeOf(Draft), "")
	assert.False(t, ok)

	_, ok = ParseEnum(reflect.TypeOf(0), "1")
	assert.False(t, ok)

	_, ok = ParseEnum(reflect.TypeOf((*Enum)(nil)).Elem(), "Draft")
	assert.False(t, ok)
}
