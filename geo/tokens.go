/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package geo produces the searchable side of a geo-shape field: s2 cell
// tokens covering the geometry. Parents and cover carry different prefixes
// so queries can read only the granularity they need.
package geo

import (
	"sort"

	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"

	"github.com/shamogulang/elasticsearch/types"
)

const (
	parentPrefix = "p/"
	coverPrefix  = "c/"

	// MinCellLevel is the smallest cell level (largest cell size) used by indexing.
	MinCellLevel = 5 // Approx 250km x 380km
	// MaxCellLevel is the largest cell level (smallest cell size) used by indexing.
	MaxCellLevel = 16 // Approx 120m x 180m
	// MaxCells is the maximum number of cells to use when covering regions.
	MaxCells = 18
)

// IndexTokens returns the cell tokens for g: all parent cells up to the min
// level plus the smallest cover of the region. Points, lines and polygons
// are supported; for multi geometries the parts' tokens are combined.
func IndexTokens(g types.Geo) ([]string, error) {
	parents, cover, err := indexCells(g.T)
	if err != nil {
		return nil, err
	}
	toks := make([]string, 0, len(parents)+len(cover))
	toks = append(toks, toTokens(parents, parentPrefix)...)
	toks = append(toks, toTokens(cover, coverPrefix)...)
	return toks, nil
}

func indexCells(g geom.T) (parents, cover s2.CellUnion, err error) {
	if g == nil {
		return nil, nil, errors.New("cannot cover empty geometry")
	}
	if g.Stride() < 2 {
		return nil, nil, errors.Errorf("covering needs 2D co-ordinates, got stride %d", g.Stride())
	}
	switch v := g.(type) {
	case *geom.Point:
		p, c := cellsForPoint(v.Coords())
		return p, c, nil
	case *geom.MultiPoint:
		for i := 0; i < v.NumPoints(); i++ {
			p, c := cellsForPoint(v.Point(i).Coords())
			parents = append(parents, p...)
			cover = append(cover, c...)
		}
		return dedup(parents), dedup(cover), nil
	case *geom.LineString:
		cover := coverRegion(polylineFromCoords(v.Coords()))
		return parentCells(cover), cover, nil
	case *geom.MultiLineString:
		for i := 0; i < v.NumLineStrings(); i++ {
			cover = append(cover, coverRegion(polylineFromCoords(v.LineString(i).Coords()))...)
		}
		return parentCells(cover), dedup(cover), nil
	case *geom.Polygon:
		l, err := loopFromPolygon(v)
		if err != nil {
			return nil, nil, err
		}
		cover := coverRegion(l)
		return parentCells(cover), cover, nil
	case *geom.MultiPolygon:
		for i := 0; i < v.NumPolygons(); i++ {
			l, err := loopFromPolygon(v.Polygon(i))
			if err != nil {
				return nil, nil, err
			}
			cover = append(cover, coverRegion(l)...)
		}
		return parentCells(cover), dedup(cover), nil
	default:
		return nil, nil, errors.Errorf("cannot index geometry of type %T", v)
	}
}

func pointFromCoord(r geom.Coord) s2.Point {
	// The geojson spec says that coordinates are specified as [long, lat].
	// We assume that any data reaching us follows that format.
	ll := s2.LatLngFromDegrees(r.Y(), r.X())
	return s2.PointFromLatLng(ll)
}

// cellsForPoint creates cells from the min level to the max level, both
// inclusive. The parents are every level, the cover just the leaf-most one.
func cellsForPoint(r geom.Coord) (s2.CellUnion, s2.CellUnion) {
	c := s2.CellIDFromLatLng(s2.LatLngFromDegrees(r.Y(), r.X()))
	cells := make([]s2.CellID, MaxCellLevel-MinCellLevel+1)
	for l := MinCellLevel; l <= MaxCellLevel; l++ {
		cells[l-MinCellLevel] = c.Parent(l)
	}
	return cells, []s2.CellID{c.Parent(MaxCellLevel)}
}

func polylineFromCoords(coords []geom.Coord) *s2.Polyline {
	pts := make(s2.Polyline, len(coords))
	for i, c := range coords {
		pts[i] = pointFromCoord(c)
	}
	return &pts
}

// loopFromPolygon converts the polygon's outer ring to an s2.Loop. The Go
// s2 library's polygon support is incomplete, so holes are skipped and only
// the outer loop is covered.
func loopFromPolygon(p *geom.Polygon) (*s2.Loop, error) {
	r := p.LinearRing(0)
	n := r.NumCoords()
	if n < 4 {
		return nil, errors.Errorf("can't convert ring with less than 4 pts")
	}
	// s2 wants CCW loops, but neither WKB nor geojson restrict orientation.
	// We assume polygons span less than one hemisphere and flip the ones
	// that look clockwise under the planar shoelace approximation.
	reverse := isClockwise(r)
	l := loopFromRing(r, reverse)

	// The clockwise check was approximate; check the cap and reverse if needed.
	if l.CapBound().Radius().Degrees() > 90 {
		l = loopFromRing(r, !reverse)
	}
	return l, nil
}

// isClockwise uses the planar shoelace formula as a fast approximation. It
// is wrong for spherical polygons containing a pole or crossing the
// antimeridian; the cap check above catches those.
func isClockwise(r *geom.LinearRing) bool {
	var a float64
	n := r.NumCoords()
	for i := 0; i < n; i++ {
		p1 := r.Coord(i)
		p2 := r.Coord((i + 1) % n)
		a += (p2.X() - p1.X()) * (p1.Y() + p2.Y())
	}
	return a > 0
}

func loopFromRing(r *geom.LinearRing, reverse bool) *s2.Loop {
	// The ring repeats its first coordinate to close; s2 assumes closed
	// loops without repetition, so the last point is skipped.
	n := r.NumCoords()
	pts := make([]s2.Point, n-1)
	for i := 0; i < n-1; i++ {
		var c geom.Coord
		if reverse {
			c = r.Coord(n - 1 - i)
		} else {
			c = r.Coord(i)
		}
		pts[i] = pointFromCoord(c)
	}
	return s2.LoopFromPoints(pts)
}

func coverRegion(r s2.Region) s2.CellUnion {
	rc := &s2.RegionCoverer{
		MinLevel: MinCellLevel,
		MaxLevel: MaxCellLevel,
		LevelMod: 0,
		MaxCells: MaxCells,
	}
	return rc.Covering(r)
}

// parentCells returns all cells from each cover cell's level up to the min
// level. Queries for containment walk the parents instead of expanding the
// cover.
func parentCells(cu s2.CellUnion) s2.CellUnion {
	parents := make(map[s2.CellID]bool)
	for _, c := range cu {
		for l := c.Level(); l >= MinCellLevel; l-- {
			parents[c.Parent(l)] = true
		}
	}
	cells := make(s2.CellUnion, 0, len(parents))
	for k := range parents {
		cells = append(cells, k)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i] < cells[j] })
	return cells
}

func dedup(cu s2.CellUnion) s2.CellUnion {
	seen := make(map[s2.CellID]bool, len(cu))
	out := cu[:0]
	for _, c := range cu {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func toTokens(cu s2.CellUnion, prefix string) []string {
	toks := make([]string, len(cu))
	for i, c := range cu {
		toks[i] = prefix + c.ToToken()
	}
	return toks
}
