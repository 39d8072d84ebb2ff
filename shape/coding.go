/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package shape decomposes parsed geometries into fixed-width triangle
// primitives for spatial indexing. Points and lines are represented by
// degenerate triangles. All stored coordinates live in a quantized int32
// space; conversion to and from geodetic degrees happens only here, at the
// codec boundary.
package shape

import "math"

// Quantization scales. Latitude [-90, 90] and longitude [-180, 180] each
// map onto the full int32 range.
const (
	latScale = float64(1<<31) / 90.0
	lonScale = float64(1<<31) / 180.0

	// Altitude is kept in centimeters, which is as much vertical
	// resolution as any of our sources provide.
	altScale = 100.0
)

func quantize(v, scale float64) int32 {
	f := math.Floor(v * scale)
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	if f <= math.MinInt32 {
		return math.MinInt32
	}
	return int32(f)
}

// EncodeLatitude quantizes a latitude in degrees into the int32 coordinate space.
func EncodeLatitude(lat float64) int32 {
	return quantize(lat, latScale)
}

// DecodeLatitude is the inverse of EncodeLatitude, up to quantization error.
func DecodeLatitude(v int32) float64 {
	return float64(v) / latScale
}

// EncodeLongitude quantizes a longitude in degrees into the int32 coordinate space.
func EncodeLongitude(lon float64) int32 {
	return quantize(lon, lonScale)
}

// DecodeLongitude is the inverse of EncodeLongitude, up to quantization error.
func DecodeLongitude(v int32) float64 {
	return float64(v) / lonScale
}

// EncodeAltitude quantizes an altitude in meters to centimeters.
func EncodeAltitude(alt float64) int32 {
	return quantize(alt, altScale)
}

// DecodeAltitude is the inverse of EncodeAltitude.
func DecodeAltitude(v int32) float64 {
	return float64(v) / altScale
}
