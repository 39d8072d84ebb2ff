/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package shape

// Kind tags what a triangle primitive stands for. Points and lines are
// stored as degenerate triangles.
type Kind byte

const (
	KindPoint Kind = iota
	KindLine
	KindTriangle
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindTriangle:
		return "triangle"
	}
	return "unknown"
}

// Triangle is one decoded primitive. Vertex coordinates are in the
// quantized int32 space. The Z components are meaningful only for a 3D
// codec and stay zero otherwise. Each boundary flag marks whether the
// corresponding edge lies on the original geometry's boundary.
type Triangle struct {
	AX, AY, AZ int32
	BX, BY, BZ int32
	CX, CY, CZ int32

	BoundaryAB bool
	BoundaryBC bool
	BoundaryCA bool

	Kind Kind
}
