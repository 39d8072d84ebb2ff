/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

// Command spatial indexes GeoJSON documents into a geo-shape doc-values
// store and reads the stored column values back.
package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shamogulang/elasticsearch/x"
)

var rootCmd = &cobra.Command{
	Use:   "spatial",
	Short: "Geo-shape indexing tool",
	Long: `
Spatial ingests GeoJSON feature collections, tessellates each geometry into
triangle primitives, and stores the per-document doc values (triangles plus
centroid) alongside s2 covering tokens.
`,
}

func main() {
	goflag.Parse()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	subcommands := []*x.SubCommand{&Index, &Get}
	for _, sc := range subcommands {
		rootCmd.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		x.Check(sc.Conf.BindPFlags(sc.Cmd.Flags()))
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	}
}
