// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datawire/chlog/pkg/cliutil"
)

func init() {
	cmd := &cobra.Command{
		Use:   "latest IN_CHANGELOG",
		Short: "Print the newest released version",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, _, err := OpenChangelog(args[0])
			if err != nil {
				return err
			}
			latest := cl.Latest()
			if latest == nil {
				return fmt.Errorf("%s has no released versions", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), latest.RawVersion)
			return nil
		},
	}
	argparser.AddCommand(cmd)
}
