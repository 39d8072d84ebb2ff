/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package shape

import (
	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"
)

// Tessellate decomposes an already-parsed geometry into triangle
// primitives in the quantized coordinate space. Points become one
// degenerate triangle each, a line becomes one degenerate triangle per
// segment, and a polygon's outer ring is ear-clipped. Polygon holes are
// skipped, matching the covering index. Multi geometries concatenate the
// primitives of their parts in order; empty geometries yield nothing.
func Tessellate(g geom.T, threeDim bool) ([]Triangle, error) {
	switch v := g.(type) {
	case *geom.Point:
		if v.Empty() {
			return nil, nil
		}
		return []Triangle{pointTriangle(vertexOf(v.Coords(), threeDim))}, nil
	case *geom.MultiPoint:
		tris := make([]Triangle, 0, v.NumPoints())
		for i := range v.NumPoints() {
			tris = append(tris, pointTriangle(vertexOf(v.Point(i).Coords(), threeDim)))
		}
		return tris, nil
	case *geom.LineString:
		return lineTriangles(nil, v.Coords(), threeDim), nil
	case *geom.MultiLineString:
		var tris []Triangle
		for i := range v.NumLineStrings() {
			tris = lineTriangles(tris, v.LineString(i).Coords(), threeDim)
		}
		return tris, nil
	case *geom.Polygon:
		return polygonTriangles(nil, v, threeDim), nil
	case *geom.MultiPolygon:
		var tris []Triangle
		for i := range v.NumPolygons() {
			tris = polygonTriangles(tris, v.Polygon(i), threeDim)
		}
		return tris, nil
	case *geom.GeometryCollection:
		var tris []Triangle
		for _, sub := range v.Geoms() {
			sp, err := Tessellate(sub, threeDim)
			if err != nil {
				return nil, err
			}
			tris = append(tris, sp...)
		}
		return tris, nil
	case nil:
		return nil, nil
	default:
		return nil, errors.Errorf("cannot tessellate geometry of type %T", v)
	}
}

type vertex struct {
	x, y, z int32
}

func vertexOf(c geom.Coord, threeDim bool) vertex {
	v := vertex{x: EncodeLongitude(c.X()), y: EncodeLatitude(c.Y())}
	if threeDim && len(c) > 2 {
		v.z = EncodeAltitude(c[2])
	}
	return v
}

func pointTriangle(v vertex) Triangle {
	return Triangle{
		AX: v.x, AY: v.y, AZ: v.z,
		BX: v.x, BY: v.y, BZ: v.z,
		CX: v.x, CY: v.y, CZ: v.z,
		Kind: KindPoint,
	}
}

func lineTriangles(tris []Triangle, coords []geom.Coord, threeDim bool) []Triangle {
	for i := 0; i+1 < len(coords); i++ {
		a := vertexOf(coords[i], threeDim)
		b := vertexOf(coords[i+1], threeDim)
		tris = append(tris, Triangle{
			AX: a.x, AY: a.y, AZ: a.z,
			BX: b.x, BY: b.y, BZ: b.z,
			CX: a.x, CY: a.y, CZ: a.z,
			BoundaryAB: true,
			Kind:       KindLine,
		})
	}
	return tris
}

func polygonTriangles(tris []Triangle, p *geom.Polygon, threeDim bool) []Triangle {
	if p.NumLinearRings() == 0 {
		return tris
	}
	coords := p.LinearRing(0).Coords()
	// The ring repeats its first coordinate to close the loop; drop it.
	if n := len(coords); n > 1 && coords[0].Equal(p.Layout(), coords[n-1]) {
		coords = coords[:n-1]
	}
	if len(coords) < 3 {
		return tris
	}
	verts := make([]vertex, len(coords))
	for i, c := range coords {
		verts[i] = vertexOf(c, threeDim)
	}
	// Normalize to counter-clockwise. Shoelace on the quantized
	// coordinates, same planar approximation the covering index uses.
	if signedArea2(verts) < 0 {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}
	return earClip(tris, verts)
}

// signedArea2 is twice the shoelace area of the ring. Coordinates are
// translated to the first vertex before multiplying, which keeps the terms
// within int64 for any ring smaller than a hemisphere. Rings larger than
// that are not supported, same as the covering index.
func signedArea2(verts []vertex) int64 {
	var a int64
	o := verts[0]
	n := len(verts)
	for i := range n {
		p1, p2 := verts[i], verts[(i+1)%n]
		x1, y1 := int64(p1.x)-int64(o.x), int64(p1.y)-int64(o.y)
		x2, y2 := int64(p2.x)-int64(o.x), int64(p2.y)-int64(o.y)
		a += x1*y2 - x2*y1
	}
	return a
}

// earClip triangulates a simple CCW ring by repeatedly cutting ears. If no
// ear can be found (a degenerate or self-touching ring) it cuts the current
// corner anyway so the operation stays total; the resulting zero-area
// triangles are harmless to the consumers of the primitives.
func earClip(tris []Triangle, verts []vertex) []Triangle {
	n := len(verts)
	// idx maps the working ring back to positions in the original ring, so
	// boundary flags survive clipping.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	for len(idx) > 3 {
		cut := -1
		for i := range idx {
			if isEar(verts, idx, i) {
				cut = i
				break
			}
		}
		if cut == -1 {
			cut = 0
		}
		prev := idx[(cut-1+len(idx))%len(idx)]
		cur := idx[cut]
		next := idx[(cut+1)%len(idx)]
		tris = append(tris, ringTriangle(verts, prev, cur, next, n))
		idx = append(idx[:cut], idx[cut+1:]...)
	}
	return append(tris, ringTriangle(verts, idx[0], idx[1], idx[2], n))
}

func ringTriangle(verts []vertex, i, j, k, ringLen int) Triangle {
	a, b, c := verts[i], verts[j], verts[k]
	return Triangle{
		AX: a.x, AY: a.y, AZ: a.z,
		BX: b.x, BY: b.y, BZ: b.z,
		CX: c.x, CY: c.y, CZ: c.z,
		BoundaryAB: adjacent(i, j, ringLen),
		BoundaryBC: adjacent(j, k, ringLen),
		BoundaryCA: adjacent(k, i, ringLen),
		Kind:       KindTriangle,
	}
}

// adjacent reports whether two original ring positions form a ring edge.
func adjacent(i, j, ringLen int) bool {
	d := i - j
	if d < 0 {
		d = -d
	}
	return d == 1 || d == ringLen-1
}

func isEar(verts []vertex, idx []int, i int) bool {
	m := len(idx)
	a := verts[idx[(i-1+m)%m]]
	b := verts[idx[i]]
	c := verts[idx[(i+1)%m]]
	if cross(a, b, c) <= 0 {
		// Reflex or collinear corner.
		return false
	}
	for j := range m {
		if j == (i-1+m)%m || j == i || j == (i+1)%m {
			continue
		}
		if inTriangle(verts[idx[j]], a, b, c) {
			return false
		}
	}
	return true
}

func cross(o, a, b vertex) int64 {
	ax, ay := int64(a.x)-int64(o.x), int64(a.y)-int64(o.y)
	bx, by := int64(b.x)-int64(o.x), int64(b.y)-int64(o.y)
	return ax*by - ay*bx
}

func inTriangle(p, a, b, c vertex) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}
