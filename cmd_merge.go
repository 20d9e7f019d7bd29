// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/datawire/chlog/pkg/cliutil"
)

func init() {
	cmd := &cobra.Command{
		Use:   "merge IN_CHANGELOGS... >OUT_CHANGELOG",
		Short: "Merge several changelogs in to one",
		Long: "Merge changelogs, writing the result to stdout.  Sections present in " +
			"several inputs must have identical entries; sections unique to one input " +
			"are inserted in version order.",
		Args: cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, _, err := OpenChangelog(args[0])
			if err != nil {
				return err
			}
			for _, filename := range args[1:] {
				cl, _, err := OpenChangelog(filename)
				if err != nil {
					return err
				}
				if err := merged.Merge(cl); err != nil {
					return err
				}
			}
			if _, err := cmd.OutOrStdout().Write(merged.Bytes()); err != nil {
				return err
			}
			return nil
		},
	}
	argparser.AddCommand(cmd)
}
