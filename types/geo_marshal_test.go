/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package types

import (
	"reflect"
	"testing"
)

func TestGeoRoundTrip(t *testing.T) {
	array := []string{
		`{"type":"Point","coordinates":[1,2]}`,
		`{"type":"MultiLineString","coordinates":[[[1,2],[4,5],[7,8],[1,2]]]}`,
		`{"type":"Polygon","coordinates":[[[0,0],[2,0],[2,2],[0,2],[0,0]]]}`,
	}
	for _, v := range array {
		var g Geo
		if err := g.UnmarshalText([]byte(v)); err != nil {
			t.Errorf("Error parsing %s: %v", v, err)
			continue
		}
		// Marshal it back to text.
		if got, err := g.MarshalText(); err != nil || string(got) != v {
			t.Errorf("Marshal error expected %s, got %s. error %v", v, string(got), err)
		}

		// Marshal and unmarshal to WKB.
		wkb, err := g.MarshalBinary()
		if err != nil {
			t.Errorf("Error marshaling to WKB: %v", err)
			continue
		}
		var bg Geo
		if err := bg.UnmarshalBinary(wkb); err != nil {
			t.Errorf("Error unmarshaling WKB: %v", err)
		} else if !reflect.DeepEqual(g.T.FlatCoords(), bg.T.FlatCoords()) {
			t.Errorf("Expected %#v, got %#v", g.T, bg.T)
		}
	}
}

func TestGeoParseErrors(t *testing.T) {
	array := []string{
		`{"type":"Curve","coordinates":[1,2]}`,
		`{}`,
		`thisisntjson`,
	}
	for _, v := range array {
		var g Geo
		if err := g.UnmarshalText([]byte(v)); err == nil {
			t.Errorf("Expected error parsing %s", v)
		}
	}
}
