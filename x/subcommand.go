/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubCommand ties a cobra command to its viper configuration, so flags can
// also be supplied through the environment with EnvPrefix.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

func (s SubCommand) GetString(name string) string {
	return s.Conf.GetString(name)
}

func (s SubCommand) GetBool(name string) bool {
	return s.Conf.GetBool(name)
}

func (s SubCommand) GetInt(name string) int {
	return s.Conf.GetInt(name)
}
