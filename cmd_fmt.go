// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/datawire/chlog/pkg/cliutil"
)

func init() {
	var flags struct {
		Width int
		Check bool
	}
	cmd := &cobra.Command{
		Use:   "fmt [flags] IN_CHANGELOG",
		Short: "Rewrite a changelog in canonical form",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cl, data, err := OpenChangelog(args[0])
			if err != nil {
				return err
			}
			width := flags.Width
			if width == 0 {
				cfg, err := OpenConfig(ctx, "", args[0])
				if err != nil {
					return err
				}
				width = cfg.Width
			}

			formatted := cl.Format(width)
			if bytes.Equal(data, formatted) {
				dlog.Debugf(ctx, "%s is already formatted", args[0])
				return nil
			}

			if flags.Check {
				diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
					A:        difflib.SplitLines(string(data)),
					B:        difflib.SplitLines(string(formatted)),
					FromFile: args[0],
					ToFile:   args[0] + " (formatted)",
					Context:  3,
				})
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), diff)
				return fmt.Errorf("%s is not formatted", args[0])
			}

			return WriteChangelog(cl, args[0], width)
		},
	}
	cmd.Flags().IntVar(&flags.Width, "width", 0,
		"Wrap entry text at column `N` (default: the config file's width, or 79)")
	cmd.Flags().BoolVar(&flags.Check, "check", false,
		"Don't rewrite the file; print a diff and exit nonzero if it isn't formatted")
	argparser.AddCommand(cmd)
}
