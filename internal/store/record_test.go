package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Int64Coercion(t *testing.T) {
	rec := Record{Fields: map[string]any{
		"int":      4,
		"float":    float64(1760000000123),
		"number":   json.Number("2"),
		"fraction": json.Number("2.9"),
		"string":   " 5 ",
		"garbage":  "five",
		"null":     nil,
		"boolean":  true,
	}}

	cases := []struct {
		field string
		want  int64
		ok    bool
	}{
		{"int", 4, true},
		{"float", 1760000000123, true},
		{"number", 2, true},
		{"fraction", 2, true},
		{"string", 5, true},
		{"garbage", 0, false},
		{"null", 0, false},
		{"boolean", 0, false},
		{"absent", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			got, ok := rec.Int64(tc.field)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRecord_StringRejectsNonStrings(t *testing.T) {
	rec := Record{Fields: map[string]any{"name": "Wendy", "rating": 4}}

	name, ok := rec.String("name")
	assert.True(t, ok)
	assert.Equal(t, "Wendy", name)

	_, ok = rec.String("rating")
	assert.False(t, ok)

	_, ok = rec.String("missing")
	assert.False(t, ok)
}
