// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/datawire/chlog/pkg/cliutil"
)

func init() {
	cmd := &cobra.Command{
		Use:   "diff IN_CHANGELOG_A IN_CHANGELOG_B",
		Short: "Diff two changelogs",
		Long: "Print a unified diff of two changelogs' canonical forms, so that " +
			"wrapping and whitespace differences don't drown out content differences.  " +
			"Exits nonzero if they differ.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			clA, _, err := OpenChangelog(args[0])
			if err != nil {
				return err
			}
			clB, _, err := OpenChangelog(args[1])
			if err != nil {
				return err
			}

			diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(string(clA.Bytes())),
				B:        difflib.SplitLines(string(clB.Bytes())),
				FromFile: args[0],
				ToFile:   args[1],
				Context:  3,
			})
			if err != nil {
				return err
			}
			if diff == "" {
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			return fmt.Errorf("%s and %s differ", args[0], args[1])
		},
	}
	argparser.AddCommand(cmd)
}
