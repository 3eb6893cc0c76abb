package annotation

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Standard shape categories found in inspection annotation files
const (
	CategoryCircle   = "circle"
	CategoryTriangle = "triangle"
)

// DefaultCategories are the keys every annotation file is expected to carry
var DefaultCategories = []string{CategoryCircle, CategoryTriangle}

// Point is a single [x, y] coordinate pair
type Point [2]float64

// X returns the horizontal coordinate
func (p Point) X() float64 { return p[0] }

// Y returns the vertical coordinate
func (p Point) Y() float64 { return p[1] }

// UnmarshalJSON decodes a point and rejects anything that is not exactly two numbers
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid coordinate pair %s: %w", string(data), err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("invalid coordinate pair %s: expected 2 values, got %d", string(data), len(raw))
	}
	p[0], p[1] = raw[0], raw[1]
	return nil
}

// Polygon is an ordered list of coordinate pairs.
// In the inspection datasets each polygon is a pair of opposite box corners.
type Polygon []Point

// Equal reports whether two polygons hold exactly the same points in the same order
func (p Polygon) Equal(other Polygon) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding box of the polygon as (minX, minY, maxX, maxY).
// ok is false when the polygon has fewer than two points.
func (p Polygon) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(p) < 2 {
		return 0, 0, 0, 0, false
	}
	minX, minY = p[0].X(), p[0].Y()
	maxX, maxY = minX, minY
	for _, pt := range p[1:] {
		minX = min(minX, pt.X())
		minY = min(minY, pt.Y())
		maxX = max(maxX, pt.X())
		maxY = max(maxY, pt.Y())
	}
	return minX, minY, maxX, maxY, true
}

// Record maps a shape category to the polygons annotated for one image
type Record map[string][]Polygon

// Categories returns the category keys in sorted order
func (r Record) Categories() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the total number of polygons across all categories
func (r Record) Count() int {
	total := 0
	for _, polys := range r {
		total += len(polys)
	}
	return total
}

// Contains reports whether category holds a polygon structurally equal to poly.
// A missing category is treated as empty.
func (r Record) Contains(category string, poly Polygon) bool {
	for _, candidate := range r[category] {
		if candidate.Equal(poly) {
			return true
		}
	}
	return false
}

// Missing returns the categories from expected that the record has no key for, in
// the order given. A key with an empty list is present, not missing.
func (r Record) Missing(expected []string) []string {
	var missing []string
	for _, category := range expected {
		if _, ok := r[category]; !ok {
			missing = append(missing, category)
		}
	}
	return missing
}

// Sample pairs an annotation record with the identifier of the file it came from
type Sample struct {
	ID     string
	Record Record
}

// Decode parses a single annotation document. Anything but whitespace after the
// document is an error.
func Decode(r io.Reader) (Record, error) {
	dec := json.NewDecoder(r)

	var record Record
	if err := dec.Decode(&record); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after annotation document (offset %d)", dec.InputOffset())
	}
	if record == nil {
		record = Record{}
	}
	return record, nil
}
