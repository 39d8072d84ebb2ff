/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package docvalues

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/shamogulang/elasticsearch/shape"
)

// payloadVersion guards the serialized layout. Bump on any change.
const payloadVersion = 1

// Payload is the immutable finalized column value for one (document,
// field) pair: the ordered triangle primitives and the normalized centroid
// in degrees.
type Payload struct {
	Codec     shape.Codec
	Triangles []shape.Triangle
	Lon, Lat  float64
}

// Marshal serializes the payload: version byte, dimension byte, uvarint
// triangle count, the fixed-width primitives, then the centroid as two
// big-endian float64s.
func (p *Payload) Marshal() ([]byte, error) {
	size := 2 + binary.MaxVarintLen64 + len(p.Triangles)*p.Codec.Size() + 16
	buf := make([]byte, 0, size)

	buf = append(buf, payloadVersion)
	dims := byte(2)
	if p.Codec.ThreeDim() {
		dims = 3
	}
	buf = append(buf, dims)
	buf = binary.AppendUvarint(buf, uint64(len(p.Triangles)))
	for _, t := range p.Triangles {
		buf = p.Codec.AppendEncode(buf, t)
	}
	buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(p.Lon))
	buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(p.Lat))
	return buf, nil
}

// UnmarshalPayload parses a payload serialized by Marshal.
func UnmarshalPayload(b []byte) (*Payload, error) {
	if len(b) < 2 {
		return nil, errors.Errorf("payload truncated at %d bytes", len(b))
	}
	if b[0] != payloadVersion {
		return nil, errors.Errorf("unknown payload version %d", b[0])
	}
	if b[1] != 2 && b[1] != 3 {
		return nil, errors.Errorf("unknown payload dimensions %d", b[1])
	}
	codec := shape.NewCodec(b[1] == 3)
	b = b[2:]

	n, read := binary.Uvarint(b)
	if read <= 0 {
		return nil, errors.New("payload triangle count unreadable")
	}
	b = b[read:]

	want := int(n)*codec.Size() + 16
	if len(b) != want {
		return nil, errors.Errorf("payload body is %d bytes, want %d", len(b), want)
	}
	p := &Payload{
		Codec:     codec,
		Triangles: make([]shape.Triangle, n),
	}
	for i := range p.Triangles {
		t, err := codec.Decode(b[:codec.Size()])
		if err != nil {
			return nil, errors.Wrapf(err, "triangle %d", i)
		}
		p.Triangles[i] = t
		b = b[codec.Size():]
	}
	p.Lon = math.Float64frombits(binary.BigEndian.Uint64(b))
	p.Lat = math.Float64frombits(binary.BigEndian.Uint64(b[8:]))
	return p, nil
}
