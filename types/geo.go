/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package types

import (
	"encoding/binary"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// Geo represents geo-spatial data.
type Geo struct {
	geom.T
}

// MarshalBinary marshals to WKB.
func (v Geo) MarshalBinary() ([]byte, error) {
	return wkb.Marshal(v.T, binary.LittleEndian)
}

// MarshalText marshals to GeoJSON.
func (v Geo) MarshalText() ([]byte, error) {
	return geojson.Marshal(v.T)
}

// UnmarshalBinary unmarshals the data from WKB.
func (v *Geo) UnmarshalBinary(data []byte) error {
	w, err := wkb.Unmarshal(data)
	if err != nil {
		return err
	}
	v.T = w
	return nil
}

// UnmarshalText parses the data from GeoJSON.
func (v *Geo) UnmarshalText(text []byte) error {
	var g geom.T
	if err := geojson.Unmarshal(text, &g); err != nil {
		return err
	}
	v.T = g
	return nil
}

func (v Geo) String() string {
	return "<geodata>"
}
