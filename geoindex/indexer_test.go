/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package geoindex

import (
	"testing"

	"github.com/stretchr/testify/require"
	geom "github.com/twpayne/go-geom"

	"github.com/shamogulang/elasticsearch/docvalues"
	"github.com/shamogulang/elasticsearch/shape"
)

func point(x, y float64) *geom.Point {
	return geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{x, y})
}

func TestIndexSinglePoint(t *testing.T) {
	ix := NewShapeIndexer(Options{Field: "location", DocValues: true})
	pc := docvalues.NewParseContext()

	prims, err := ix.IndexShape(pc, point(10, 20))
	require.NoError(t, err)
	require.Len(t, prims, 1)
	require.Len(t, prims[0], shape.SizeXY)

	f := pc.Existing("location")
	require.NotNil(t, f)
	require.Equal(t, 1, f.Len())

	p := f.Finalize()
	require.Equal(t, 10.0, p.Lon)
	require.Equal(t, 20.0, p.Lat)
	require.Equal(t, shape.KindPoint, p.Triangles[0].Kind)
}

func TestIndexTwoValuesSameField(t *testing.T) {
	ix := NewShapeIndexer(Options{Field: "location", DocValues: true})
	pc := docvalues.NewParseContext()

	_, err := ix.IndexShape(pc, point(0, 0))
	require.NoError(t, err)
	_, err = ix.IndexShape(pc, point(10, 0))
	require.NoError(t, err)

	// The second value merges into the first aggregate instead of
	// creating another one.
	require.Len(t, pc.Fields(), 1)
	f := pc.Existing("location")
	require.Equal(t, 2, f.Len())

	p := f.Finalize()
	require.InDelta(t, 5.0, p.Lon, 1e-9)
	require.InDelta(t, 0.0, p.Lat, 1e-9)
}

func TestIndexPolygon(t *testing.T) {
	square := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0},
	}})
	ix := NewShapeIndexer(Options{Field: "location", DocValues: true})
	pc := docvalues.NewParseContext()

	prims, err := ix.IndexShape(pc, square)
	require.NoError(t, err)
	require.Len(t, prims, 2)

	p := pc.Existing("location").Finalize()
	require.InDelta(t, 1.0, p.Lon, 1e-9)
	require.InDelta(t, 1.0, p.Lat, 1e-9)
}

func TestIndexDocValuesDisabled(t *testing.T) {
	ix := NewShapeIndexer(Options{Field: "location"})
	pc := docvalues.NewParseContext()

	prims, err := ix.IndexShape(pc, point(10, 20))
	require.NoError(t, err)
	require.Len(t, prims, 1, "primitives pass through unchanged")
	require.Empty(t, pc.Fields(), "no aggregate is created")
}

type fixedPrimitives [][]byte

func (f fixedPrimitives) Index(geom.T) ([][]byte, error) { return f, nil }

func TestIndexMalformedPrimitive(t *testing.T) {
	// An inner indexer that drifted from the codec width fails the whole
	// operation with the malformed sentinel.
	ix := NewShapeIndexer(Options{
		Field:      "location",
		DocValues:  true,
		Primitives: fixedPrimitives{make([]byte, 20)},
	})
	pc := docvalues.NewParseContext()

	_, err := ix.IndexShape(pc, point(0, 0))
	require.ErrorIs(t, err, shape.ErrMalformed)
	require.Empty(t, pc.Fields(), "a failed value must not register an aggregate")
}

func TestIndexPrimitivesUnaltered(t *testing.T) {
	codec := shape.NewCodec(false)
	want := codec.Encode(shape.Triangle{AX: 1, AY: 2, BX: 3, BY: 4, CX: 5, CY: 6, Kind: shape.KindTriangle})
	ix := NewShapeIndexer(Options{
		Field:      "location",
		DocValues:  true,
		Primitives: fixedPrimitives{want},
	})
	pc := docvalues.NewParseContext()

	prims, err := ix.IndexShape(pc, point(0, 0))
	require.NoError(t, err)
	require.Len(t, prims, 1)
	require.Equal(t, want, prims[0], "the search index bytes are not rewritten")
}

func TestIndexThreeDim(t *testing.T) {
	ix := NewShapeIndexer(Options{Field: "location", DocValues: true, ThreeDim: true})
	pc := docvalues.NewParseContext()

	p := geom.NewPoint(geom.XYZ).MustSetCoords(geom.Coord{10, 20, 99})
	prims, err := ix.IndexShape(pc, p)
	require.NoError(t, err)
	require.Len(t, prims, 1)
	require.Len(t, prims[0], shape.SizeXYZ)

	f := pc.Existing("location")
	require.Equal(t, shape.EncodeAltitude(99), f.Finalize().Triangles[0].AZ)
}
