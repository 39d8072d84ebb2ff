/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shamogulang/elasticsearch/store"
	"github.com/shamogulang/elasticsearch/x"
)

// Get is the sub-command invoked when running "spatial get".
var Get x.SubCommand

func init() {
	Get.Cmd = &cobra.Command{
		Use:   "get [flags] docID",
		Short: "Print a document's stored geo-shape doc value",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runGet(args[0]); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
	}
	Get.EnvPrefix = "SPATIAL_GET"

	flag := Get.Cmd.Flags()
	flag.String("store", "s", "Directory of the doc-values store.")
	flag.String("field", "location", "Field name to read.")
}

func runGet(docID string) error {
	st, err := store.Open(Get.GetString("store"))
	if err != nil {
		return err
	}
	defer func() { x.Check(st.Close()) }()

	field := Get.GetString("field")
	p, err := st.Payload(field, docID)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Printf("doc %q has no value for field %q\n", docID, field)
		return nil
	}
	fmt.Printf("doc %q field %q: %d triangles, centroid (%.7f, %.7f)\n",
		docID, field, len(p.Triangles), p.Lon, p.Lat)
	return nil
}
