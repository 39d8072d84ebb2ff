/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package docvalues aggregates a document's shape contributions for one
// field into a single column value: the ordered triangle primitives plus a
// running centroid. The aggregate is owned by the parsing context of one
// document and is never shared across documents or goroutines.
package docvalues

import (
	"github.com/shamogulang/elasticsearch/centroid"
	"github.com/shamogulang/elasticsearch/shape"
)

// Field is the in-flight aggregate for one (document, field) pair. It is
// created by the first shape value parsed for the field and grown by every
// further value; order is insertion order and duplicates are kept, matching
// multi-valued field semantics.
type Field struct {
	name  string
	codec shape.Codec

	triangles []shape.Triangle
	calc      *centroid.Calculator
}

// NewField starts an aggregate from the first shape value's triangles and
// centroid calculator. The codec records the primitive width the field was
// indexed with.
func NewField(name string, codec shape.Codec, triangles []shape.Triangle, calc *centroid.Calculator) *Field {
	return &Field{
		name:      name,
		codec:     codec,
		triangles: triangles,
		calc:      calc,
	}
}

// Add appends another shape value's triangles and merges its calculator.
// No deduplication happens; adding the same value twice doubles it.
func (f *Field) Add(triangles []shape.Triangle, calc *centroid.Calculator) {
	f.triangles = append(f.triangles, triangles...)
	f.calc.Merge(calc)
}

// Name returns the field name the aggregate is scoped to.
func (f *Field) Name() string { return f.name }

// Len returns the number of accumulated triangles.
func (f *Field) Len() int { return len(f.triangles) }

// Finalize freezes the aggregate into the payload handed to the storage
// layer. The triangle sequence is copied, so later mutation of the field
// cannot leak into an already-finalized payload.
func (f *Field) Finalize() *Payload {
	lon, lat := f.calc.Centroid()
	p := &Payload{
		Codec:     f.codec,
		Triangles: make([]shape.Triangle, len(f.triangles)),
		Lon:       lon,
		Lat:       lat,
	}
	copy(p.Triangles, f.triangles)
	return p
}
