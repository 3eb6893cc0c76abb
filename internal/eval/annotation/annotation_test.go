package annotation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	doc := `{"circle": [[[0, 0], [10, 10]], [[5, 5], [6, 6]]], "triangle": []}`

	record, err := Decode(strings.NewReader(doc))
	require.NoError(t, err, "Decode failed")

	assert.Len(t, record[CategoryCircle], 2, "Expected 2 circles")
	assert.Empty(t, record[CategoryTriangle], "Expected 0 triangles")
	assert.Equal(t, 2, record.Count())
	assert.True(t, record[CategoryCircle][0].Equal(Polygon{{0, 0}, {10, 10}}),
		"Expected first circle (0,0)-(10,10), got %v", record[CategoryCircle][0])
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `{"circle": [`},
		{name: "list instead of object", doc: `[]`},
		{name: "three value point", doc: `{"circle": [[[0, 0, 0], [1, 1]]]}`},
		{name: "one value point", doc: `{"circle": [[[0], [1, 1]]]}`},
		{name: "string coordinate", doc: `{"circle": [[["a", 0], [1, 1]]]}`},
		{name: "trailing document", doc: `{"circle": []} {"oops"`},
		{name: "trailing object", doc: `{"circle": []}{}`},
		{name: "trailing garbage", doc: `{"circle": []} x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.Error(t, err, "Expected error for %s", tt.doc)
		})
	}
}

func TestDecodeTrailingWhitespace(t *testing.T) {
	record, err := Decode(strings.NewReader("{\"circle\": [[[0, 0], [1, 1]]]}\n\n  "))
	require.NoError(t, err, "Decode failed")
	assert.Equal(t, 1, record.Count())
}

func TestDecodeNull(t *testing.T) {
	record, err := Decode(strings.NewReader("null"))
	require.NoError(t, err, "Decode failed")
	require.NotNil(t, record, "Expected empty record, got nil")
	assert.Equal(t, 0, record.Count())
}

func TestPolygonEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Polygon
		expected bool
	}{
		{name: "identical", a: Polygon{{0, 0}, {10, 10}}, b: Polygon{{0, 0}, {10, 10}}, expected: true},
		{name: "reversed order", a: Polygon{{0, 0}, {10, 10}}, b: Polygon{{10, 10}, {0, 0}}, expected: false},
		{name: "different length", a: Polygon{{0, 0}, {10, 10}}, b: Polygon{{0, 0}}, expected: false},
		{name: "off by a fraction", a: Polygon{{0, 0}, {10, 10}}, b: Polygon{{0, 0}, {10, 10.0001}}, expected: false},
		{name: "both empty", a: Polygon{}, b: nil, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b), "Equal(%v, %v)", tt.a, tt.b)
		})
	}
}

func TestPolygonBounds(t *testing.T) {
	minX, minY, maxX, maxY, ok := Polygon{{10, 2}, {3, 8}, {6, 1}}.Bounds()
	require.True(t, ok, "Expected ok for a three point polygon")
	assert.Equal(t, []float64{3, 1, 10, 8}, []float64{minX, minY, maxX, maxY})

	_, _, _, _, ok = Polygon{{1, 1}}.Bounds()
	assert.False(t, ok, "Expected single point polygon to have no bounds")
}

func TestRecordContains(t *testing.T) {
	record := Record{
		CategoryCircle: {{{0, 0}, {10, 10}}},
	}

	assert.True(t, record.Contains(CategoryCircle, Polygon{{0, 0}, {10, 10}}), "Expected circle to be found")
	assert.False(t, record.Contains(CategoryCircle, Polygon{{1, 1}, {10, 10}}), "Expected different circle to be missing")
	assert.False(t, record.Contains(CategoryTriangle, Polygon{{0, 0}, {10, 10}}), "Expected missing category to be treated as empty")
}

func TestRecordCategories(t *testing.T) {
	record := Record{"triangle": nil, "circle": nil, "square": nil}
	assert.Equal(t, []string{"circle", "square", "triangle"}, record.Categories())
}

func TestRecordMissing(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected []string
	}{
		{name: "both present", record: Record{"circle": nil, "triangle": {}}, expected: nil},
		{name: "triangle absent", record: Record{"circle": {{{0, 0}, {1, 1}}}}, expected: []string{"triangle"}},
		{name: "empty record", record: Record{}, expected: []string{"circle", "triangle"}},
		{name: "extra category only", record: Record{"square": nil}, expected: []string{"circle", "triangle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.Missing(DefaultCategories))
		})
	}
}
