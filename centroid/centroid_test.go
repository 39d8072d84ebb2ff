/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package centroid

import (
	"testing"

	"github.com/stretchr/testify/require"
	geom "github.com/twpayne/go-geom"
)

func point(x, y float64) *geom.Point {
	return geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{x, y})
}

func square(x, y, side float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side}, {x, y},
	}})
}

func requireCentroid(t *testing.T, c *Calculator, wantX, wantY float64) {
	t.Helper()
	x, y := c.Centroid()
	require.InDelta(t, wantX, x, 1e-9)
	require.InDelta(t, wantY, y, 1e-9)
}

func TestPointCentroid(t *testing.T) {
	c := New(point(10, 20))
	requireCentroid(t, c, 10, 20)
	require.Equal(t, 1.0, c.Weight())
	require.Equal(t, DimensionPoint, c.Dimension())
}

func TestTwoPointsMerge(t *testing.T) {
	a := New(point(0, 0))
	b := New(point(10, 0))
	a.Merge(b)
	requireCentroid(t, a, 5, 0)
	require.Equal(t, 2.0, a.Weight())
}

func TestLineCentroid(t *testing.T) {
	// Two segments of length 1 and 3; midpoints (0.5, 0) and (2.5, 0).
	l := geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{
		{0, 0}, {1, 0}, {4, 0},
	})
	c := New(l)
	require.Equal(t, 4.0, c.Weight())
	requireCentroid(t, c, (0.5*1+2.5*3)/4, 0)
	require.Equal(t, DimensionLine, c.Dimension())
}

func TestPolygonCentroid(t *testing.T) {
	c := New(square(0, 0, 1))
	require.Equal(t, 1.0, c.Weight())
	requireCentroid(t, c, 0.5, 0.5)
	require.Equal(t, DimensionPolygon, c.Dimension())

	// Orientation must not matter: the weight is unsigned area.
	cw := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0},
	}})
	requireCentroid(t, New(cw), 0.5, 0.5)
	require.Equal(t, 1.0, New(cw).Weight())
}

func TestPolygonWithHole(t *testing.T) {
	p := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{
		{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
		{{1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 1}},
	})
	c := New(p)
	require.InDelta(t, 15.0, c.Weight(), 1e-9)
	// Outer centroid (2,2) weighted 16 minus hole centroid (1.5,1.5) weighted 1.
	requireCentroid(t, c, (2*16-1.5)/15, (2*16-1.5)/15)
}

func TestMergeCommutative(t *testing.T) {
	mk := func() (*Calculator, *Calculator) {
		return New(point(3, 4)), New(square(10, 10, 2))
	}
	a1, b1 := mk()
	a1.Merge(b1)
	a2, b2 := mk()
	b2.Merge(a2)

	x1, y1 := a1.Centroid()
	x2, y2 := b2.Centroid()
	require.InDelta(t, x1, x2, 1e-12)
	require.InDelta(t, y1, y2, 1e-12)
}

func TestMergeAssociative(t *testing.T) {
	line := geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{0, 0}, {0, 8}})
	mk := func() (a, b, c *Calculator) {
		return New(point(1, 1)), New(line), New(square(2, 2, 3))
	}

	a, b, c := mk()
	a.Merge(b)
	a.Merge(c)

	a2, b2, c2 := mk()
	b2.Merge(c2)
	a2.Merge(b2)

	x1, y1 := a.Centroid()
	x2, y2 := a2.Centroid()
	require.InDelta(t, x1, x2, 1e-12)
	require.InDelta(t, y1, y2, 1e-12)
}

func TestDimensionPrecedence(t *testing.T) {
	// A polygon dominates a point regardless of merge order.
	c := New(point(100, -100))
	c.Merge(New(square(0, 0, 2)))
	requireCentroid(t, c, 1, 1)

	c = New(square(0, 0, 2))
	c.Merge(New(point(100, -100)))
	requireCentroid(t, c, 1, 1)
	require.Equal(t, DimensionPolygon, c.Dimension())
}

func TestZeroWeightFallback(t *testing.T) {
	// A zero-length line has weight zero; the centroid falls back to the
	// unweighted mean of its vertices.
	l := geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{5, 5}, {5, 5}})
	c := New(l)
	require.Equal(t, 0.0, c.Weight())
	requireCentroid(t, c, 5, 5)

	// Two distinct zero-measure contributions average their vertices.
	c.Merge(New(geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{1, 1}, {1, 1}})))
	requireCentroid(t, c, (5+5+1+1)/4.0, (5+5+1+1)/4.0)
}

func TestDegeneratePolygonFallback(t *testing.T) {
	// A bowtie ring with cancelling signed areas must not divide by zero.
	bowtie := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{0, 0}, {10, 10}, {10, 0}, {0, 10}, {0, 0},
	}})
	c := New(bowtie)
	require.Equal(t, 0.0, c.Weight())
	requireCentroid(t, c, 5, 5)
}

func TestZeroWeightDoesNotPolluteWeighted(t *testing.T) {
	c := New(point(10, 20))
	c.Merge(New(geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{0, 0}, {0, 0}})))
	// The zero-weight line only feeds the fallback sums, which are unused
	// while the weight is positive.
	requireCentroid(t, c, 10, 20)
}

func TestUnsupportedGeometry(t *testing.T) {
	// Empty and unsupported geometries are zero-weight contributions, not
	// errors; a later valid value still produces a correct centroid.
	c := New(geom.NewPoint(geom.XY))
	require.Equal(t, 0.0, c.Weight())

	c.Merge(New(point(7, 7)))
	requireCentroid(t, c, 7, 7)
}

func TestEmptyCalculator(t *testing.T) {
	var c Calculator
	x, y := c.Centroid()
	require.Equal(t, 0.0, x)
	require.Equal(t, 0.0, y)
}
