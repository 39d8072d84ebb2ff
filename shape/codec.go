/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package shape

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Primitive sizes in bytes. A 2D primitive is three (x, y) int32 pairs plus
// one word packing the boundary flags and the kind tag. A 3D primitive adds
// an int32 z per vertex. The size is fixed for the life of an index.
const (
	SizeXY  = 7 * 4
	SizeXYZ = 10 * 4
)

// ErrMalformed is returned when a primitive byte sequence is not exactly
// the fixed width the codec expects. It means the primitive producer and
// this codec have drifted out of sync, which is fatal for the document
// being indexed.
var ErrMalformed = errors.New("malformed triangle primitive")

// Codec encodes and decodes triangle primitives at a fixed width. The zero
// value is the 2D codec.
type Codec struct {
	threeDim bool
}

// NewCodec returns a codec for 2D or 3D primitives.
func NewCodec(threeDim bool) Codec {
	return Codec{threeDim: threeDim}
}

// ThreeDim reports whether the codec carries a z component per vertex.
func (c Codec) ThreeDim() bool { return c.threeDim }

// Size returns the fixed primitive width in bytes.
func (c Codec) Size() int {
	if c.threeDim {
		return SizeXYZ
	}
	return SizeXY
}

const (
	flagAB = 1 << 0
	flagBC = 1 << 1
	flagCA = 1 << 2

	kindShift = 3
	kindMask  = 0x3
)

// Encode serializes t into its fixed-width form. All integers are
// big-endian.
func (c Codec) Encode(t Triangle) []byte {
	return c.AppendEncode(nil, t)
}

// AppendEncode appends the encoded form of t to dst and returns the
// extended slice. Callers batching many triangles can reuse one buffer.
func (c Codec) AppendEncode(dst []byte, t Triangle) []byte {
	dst = appendVertex(dst, t.AX, t.AY, t.AZ, c.threeDim)
	dst = appendVertex(dst, t.BX, t.BY, t.BZ, c.threeDim)
	dst = appendVertex(dst, t.CX, t.CY, t.CZ, c.threeDim)

	var w uint32
	if t.BoundaryAB {
		w |= flagAB
	}
	if t.BoundaryBC {
		w |= flagBC
	}
	if t.BoundaryCA {
		w |= flagCA
	}
	w |= uint32(t.Kind) << kindShift
	return binary.BigEndian.AppendUint32(dst, w)
}

func appendVertex(dst []byte, x, y, z int32, threeDim bool) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(x))
	dst = binary.BigEndian.AppendUint32(dst, uint32(y))
	if threeDim {
		dst = binary.BigEndian.AppendUint32(dst, uint32(z))
	}
	return dst
}

// Decode parses one fixed-width primitive. It fails with ErrMalformed if b
// is not exactly Size() bytes or carries an unknown kind tag.
func (c Codec) Decode(b []byte) (Triangle, error) {
	if len(b) != c.Size() {
		return Triangle{}, errors.Wrapf(ErrMalformed, "got %d bytes, want %d", len(b), c.Size())
	}

	var t Triangle
	b = readVertex(b, &t.AX, &t.AY, &t.AZ, c.threeDim)
	b = readVertex(b, &t.BX, &t.BY, &t.BZ, c.threeDim)
	b = readVertex(b, &t.CX, &t.CY, &t.CZ, c.threeDim)

	w := binary.BigEndian.Uint32(b)
	t.BoundaryAB = w&flagAB != 0
	t.BoundaryBC = w&flagBC != 0
	t.BoundaryCA = w&flagCA != 0
	t.Kind = Kind(w >> kindShift & kindMask)
	if t.Kind > KindTriangle {
		return Triangle{}, errors.Wrapf(ErrMalformed, "unknown kind tag %d", t.Kind)
	}
	return t, nil
}

func readVertex(b []byte, x, y, z *int32, threeDim bool) []byte {
	*x = int32(binary.BigEndian.Uint32(b))
	*y = int32(binary.BigEndian.Uint32(b[4:]))
	b = b[8:]
	if threeDim {
		*z = int32(binary.BigEndian.Uint32(b))
		b = b[4:]
	}
	return b
}
