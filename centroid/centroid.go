/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package centroid computes incremental weighted centroids over parsed
// geometries. Points carry unit weight, lines their planar length and
// polygons their unsigned planar area, all in degree space. Calculators
// merge commutatively, so a document's shape values can be combined in any
// order.
package centroid

import (
	"math"

	geom "github.com/twpayne/go-geom"
)

// Dimension classes a geometry's measure. When geometries of different
// dimensionality feed one calculator, the highest dimension with positive
// weight dominates the centroid.
type Dimension int

const (
	DimensionPoint Dimension = iota
	DimensionLine
	DimensionPolygon
)

// Calculator accumulates a weighted coordinate sum over one or more
// geometries. Besides the weighted sums it tracks a plain per-vertex sum,
// which is the fallback when every contribution has zero measure
// (coincident points, zero-length lines, degenerate polygons).
type Calculator struct {
	sumX, sumY float64
	weight     float64
	dim        Dimension

	vertX, vertY float64
	verts        int
}

// New builds a calculator seeded with g. Unsupported or empty geometries
// contribute zero weight rather than failing, so one bad value among many
// still leaves the document with a correct centroid.
func New(g geom.T) *Calculator {
	c := &Calculator{}
	c.Add(g)
	return c
}

// Add folds one geometry into the calculator.
func (c *Calculator) Add(g geom.T) {
	switch v := g.(type) {
	case *geom.Point:
		if !v.Empty() {
			c.Merge(pointCalc(v.Coords()))
		}
	case *geom.MultiPoint:
		for i := 0; i < v.NumPoints(); i++ {
			c.Add(v.Point(i))
		}
	case *geom.LineString:
		c.Merge(lineCalc(v.Coords()))
	case *geom.LinearRing:
		c.Merge(lineCalc(v.Coords()))
	case *geom.MultiLineString:
		for i := 0; i < v.NumLineStrings(); i++ {
			c.Add(v.LineString(i))
		}
	case *geom.Polygon:
		c.Merge(polygonCalc(v))
	case *geom.MultiPolygon:
		for i := 0; i < v.NumPolygons(); i++ {
			c.Add(v.Polygon(i))
		}
	case *geom.GeometryCollection:
		for _, sub := range v.Geoms() {
			c.Add(sub)
		}
	default:
		// Zero-weight contribution. The geometry still reached us via a
		// parser that accepted it, so dropping it from the centroid is the
		// whole policy.
	}
}

// Merge combines other into c. Weighted sums obey dimension precedence:
// a higher dimension with positive weight replaces lower-dimension sums,
// equal dimensions add, and zero-weight contributions only feed the
// fallback vertex sums. The normalized centroid is independent of merge
// order up to floating-point rounding.
func (c *Calculator) Merge(other *Calculator) {
	c.vertX += other.vertX
	c.vertY += other.vertY
	c.verts += other.verts

	switch {
	case other.weight == 0:
	case c.weight == 0 || other.dim > c.dim:
		c.sumX, c.sumY = other.sumX, other.sumY
		c.weight = other.weight
		c.dim = other.dim
	case other.dim == c.dim:
		c.sumX += other.sumX
		c.sumY += other.sumY
		c.weight += other.weight
	default:
		// Lower dimension with weight: dominated, fallback sums only.
	}
}

// Centroid returns the weight-normalized mean position. With zero total
// weight it falls back to the unweighted mean of every vertex seen, and to
// the origin only if nothing was ever added.
func (c *Calculator) Centroid() (x, y float64) {
	if c.weight > 0 {
		return c.sumX / c.weight, c.sumY / c.weight
	}
	if c.verts > 0 {
		return c.vertX / float64(c.verts), c.vertY / float64(c.verts)
	}
	return 0, 0
}

// Weight returns the accumulated total weight.
func (c *Calculator) Weight() float64 { return c.weight }

// Dimension returns the highest dimension class merged so far.
func (c *Calculator) Dimension() Dimension { return c.dim }

func pointCalc(p geom.Coord) *Calculator {
	return &Calculator{
		sumX: p.X(), sumY: p.Y(), weight: 1, dim: DimensionPoint,
		vertX: p.X(), vertY: p.Y(), verts: 1,
	}
}

// lineCalc averages segment midpoints weighted by segment length.
func lineCalc(coords []geom.Coord) *Calculator {
	c := &Calculator{dim: DimensionLine}
	for i, p := range coords {
		c.vertX += p.X()
		c.vertY += p.Y()
		c.verts++
		if i == 0 {
			continue
		}
		q := coords[i-1]
		d := math.Hypot(p.X()-q.X(), p.Y()-q.Y())
		c.sumX += (p.X() + q.X()) / 2 * d
		c.sumY += (p.Y() + q.Y()) / 2 * d
		c.weight += d
	}
	return c
}

// polygonCalc computes the area-weighted centroid of a polygon via the
// shoelace moments of its rings. The outer ring adds, holes subtract. A
// net-zero area (self-intersecting or collapsed ring) leaves the weight at
// zero, which routes the polygon through the fallback path.
func polygonCalc(p *geom.Polygon) *Calculator {
	c := &Calculator{dim: DimensionPolygon}
	for i := 0; i < p.NumLinearRings(); i++ {
		coords := p.LinearRing(i).Coords()
		if n := len(coords); n > 1 && coords[0].Equal(p.Layout(), coords[n-1]) {
			coords = coords[:n-1]
		}
		a2, sx6, sy6 := ringMoments(coords)
		if a2 < 0 {
			a2, sx6, sy6 = -a2, -sx6, -sy6
		}
		if i > 0 {
			// Hole.
			a2, sx6, sy6 = -a2, -sx6, -sy6
		}
		c.weight += a2 / 2
		c.sumX += sx6 / 6
		c.sumY += sy6 / 6
		for _, p := range coords {
			c.vertX += p.X()
			c.vertY += p.Y()
			c.verts++
		}
	}
	if c.weight <= 0 {
		c.weight, c.sumX, c.sumY = 0, 0, 0
	}
	return c
}

// ringMoments returns twice the signed area and six times the signed
// centroid-by-area moments of a ring, translated to its first vertex for
// numerical stability.
func ringMoments(coords []geom.Coord) (a2, sx6, sy6 float64) {
	if len(coords) < 3 {
		return 0, 0, 0
	}
	ox, oy := coords[0].X(), coords[0].Y()
	n := len(coords)
	for i := 0; i < n; i++ {
		p1, p2 := coords[i], coords[(i+1)%n]
		x1, y1 := p1.X()-ox, p1.Y()-oy
		x2, y2 := p2.X()-ox, p2.Y()-oy
		cr := x1*y2 - x2*y1
		a2 += cr
		sx6 += (x1 + x2) * cr
		sy6 += (y1 + y2) * cr
	}
	// Undo the translation: centroid moments shift by the origin times the
	// area terms.
	sx6 += 3 * ox * a2
	sy6 += 3 * oy * a2
	return a2, sx6, sy6
}
