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
		Use:   "versions IN_CHANGELOG",
		Short: "List versions, one per line, newest first",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, _, err := OpenChangelog(args[0])
			if err != nil {
				return err
			}
			for _, rel := range cl.Releases {
				fmt.Fprintln(cmd.OutOrStdout(), rel.RawVersion)
			}
			return nil
		},
	}
	argparser.AddCommand(cmd)
}
