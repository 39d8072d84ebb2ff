/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/glog"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	geom "github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/shamogulang/elasticsearch/docvalues"
	"github.com/shamogulang/elasticsearch/geo"
	"github.com/shamogulang/elasticsearch/geoindex"
	"github.com/shamogulang/elasticsearch/store"
	"github.com/shamogulang/elasticsearch/types"
	"github.com/shamogulang/elasticsearch/x"
)

// Index is the sub-command invoked when running "spatial index".
var Index x.SubCommand

func init() {
	Index.Cmd = &cobra.Command{
		Use:   "index [flags] file.geojson",
		Short: "Index a GeoJSON feature collection",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runIndex(args[0]); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
	}
	Index.EnvPrefix = "SPATIAL_INDEX"

	flag := Index.Cmd.Flags()
	flag.String("store", "s", "Directory of the doc-values store.")
	flag.String("field", "location", "Field name the shapes are indexed under.")
	flag.Bool("docvalues", true, "Store the per-document triangle and centroid aggregate.")
	flag.Bool("threedim", false, "Use the 40-byte primitive layout with altitudes.")
}

func runIndex(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "reading %q", file)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return errors.Wrapf(err, "parsing %q", file)
	}

	field := Index.GetString("field")
	ix := geoindex.NewShapeIndexer(geoindex.Options{
		Field:     field,
		DocValues: Index.GetBool("docvalues"),
		ThreeDim:  Index.GetBool("threedim"),
	})

	st, err := store.Open(Index.GetString("store"))
	if err != nil {
		return err
	}
	defer func() { x.Check(st.Close()) }()

	for i, f := range fc.Features {
		docID := featureID(f, i)
		g, err := featureGeometry(f)
		if err != nil {
			return errors.Wrapf(err, "doc %q", docID)
		}

		pc := docvalues.NewParseContext()
		if _, err := ix.IndexShape(pc, g); err != nil {
			return errors.Wrapf(err, "doc %q", docID)
		}
		toks, err := geo.IndexTokens(types.Geo{T: g})
		if err != nil {
			return errors.Wrapf(err, "covering doc %q", docID)
		}
		glog.V(1).Infof("doc %q: %d tokens", docID, len(toks))

		if err := st.WriteDoc(docID, pc, map[string][]string{field: toks}); err != nil {
			return err
		}
	}
	fmt.Printf("Indexed %d documents into field %q\n", len(fc.Features), field)
	return nil
}

func featureID(f *geojson.Feature, i int) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	if id, ok := f.Properties["id"]; ok {
		return fmt.Sprint(id)
	}
	return fmt.Sprintf("doc-%d", i)
}

// featureGeometry converts the feature's geometry into the go-geom model
// the indexing pipeline works with.
func featureGeometry(f *geojson.Feature) (geom.T, error) {
	if f.Geometry == nil {
		return nil, errors.New("feature has no geometry")
	}
	raw, err := json.Marshal(f.Geometry)
	if err != nil {
		return nil, errors.Wrap(err, "re-encoding geometry")
	}
	var g geom.T
	if err := geomjson.Unmarshal(raw, &g); err != nil {
		return nil, errors.Wrap(err, "decoding geometry")
	}
	return g, nil
}
