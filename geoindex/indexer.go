/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package geoindex bridges primitive generation and doc-value aggregation
// for geo-shape fields. A ShapeIndexer is configured once per field and is
// read-only afterwards, so concurrent document workers can share it; each
// document brings its own ParseContext.
package geoindex

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"

	"github.com/shamogulang/elasticsearch/centroid"
	"github.com/shamogulang/elasticsearch/docvalues"
	"github.com/shamogulang/elasticsearch/shape"
)

// PrimitiveIndexer turns a parsed geometry into an ordered sequence of
// encoded triangle primitives for the search index. Implementations must
// be total: every geometry they accept yields primitives of exactly the
// codec's fixed width.
type PrimitiveIndexer interface {
	Index(g geom.T) ([][]byte, error)
}

// Tessellating is the default PrimitiveIndexer, backed by shape.Tessellate.
func Tessellating(threeDim bool) PrimitiveIndexer {
	return tessellating{codec: shape.NewCodec(threeDim)}
}

type tessellating struct {
	codec shape.Codec
}

func (t tessellating) Index(g geom.T) ([][]byte, error) {
	tris, err := shape.Tessellate(g, t.codec.ThreeDim())
	if err != nil {
		return nil, err
	}
	prims := make([][]byte, len(tris))
	for i, tr := range tris {
		prims[i] = t.codec.Encode(tr)
	}
	return prims, nil
}

// Options configures a ShapeIndexer for one field.
type Options struct {
	// Field is the field name the doc-value aggregates are scoped to.
	Field string
	// DocValues enables the secondary per-document aggregate. When false,
	// IndexShape only passes primitives through.
	DocValues bool
	// ThreeDim selects the 40-byte primitive layout with a z per vertex.
	ThreeDim bool
	// Primitives overrides the primitive indexer. Defaults to
	// Tessellating(ThreeDim).
	Primitives PrimitiveIndexer
}

// ShapeIndexer indexes geo-shape values for a single field.
type ShapeIndexer struct {
	field     string
	docValues bool
	codec     shape.Codec
	inner     PrimitiveIndexer
}

// NewShapeIndexer builds the per-field indexer. Safe for concurrent use
// once constructed.
func NewShapeIndexer(opts Options) *ShapeIndexer {
	inner := opts.Primitives
	if inner == nil {
		inner = Tessellating(opts.ThreeDim)
	}
	return &ShapeIndexer{
		field:     opts.Field,
		docValues: opts.DocValues,
		codec:     shape.NewCodec(opts.ThreeDim),
		inner:     inner,
	}
}

// Field returns the configured field name.
func (ix *ShapeIndexer) Field() string { return ix.field }

// IndexShape obtains the encoded primitives for g and returns them
// unchanged for the search index. When doc values are enabled it also
// decodes every primitive, builds a centroid calculator from g, and merges
// both into the document's aggregate for this field, creating it on the
// first value. A primitive that is not exactly the codec width fails the
// document with shape.ErrMalformed.
func (ix *ShapeIndexer) IndexShape(pc *docvalues.ParseContext, g geom.T) ([][]byte, error) {
	prims, err := ix.inner.Index(g)
	if err != nil {
		return nil, errors.Wrapf(err, "indexing primitives for field %q", ix.field)
	}
	if !ix.docValues {
		return prims, nil
	}

	triangles := make([]shape.Triangle, len(prims))
	for i, p := range prims {
		t, err := ix.codec.Decode(p)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q primitive %d", ix.field, i)
		}
		triangles[i] = t
	}
	calc := centroid.New(g)

	if f := pc.Existing(ix.field); f != nil {
		f.Add(triangles, calc)
	} else {
		pc.Register(docvalues.NewField(ix.field, ix.codec, triangles, calc))
	}
	if glog.V(2) {
		lon, lat := calc.Centroid()
		glog.Infof("field %q: %d triangles, value centroid (%.6f, %.6f)",
			ix.field, len(triangles), lon, lat)
	}
	return prims, nil
}
