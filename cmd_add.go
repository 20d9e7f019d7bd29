// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/datawire/chlog/pkg/cliutil"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add IN_CHANGELOG ENTRY_TEXT...",
		Short: "Add an entry to the unreleased section",
		Long: "Add an entry to the unreleased section, creating that section if the " +
			"changelog doesn't have one yet.  The entry text may be given as a single " +
			"argument or as several words; it is wrapped on write-out either way.",
		Args: cliutil.WrapPositionalArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cl, _, err := OpenChangelog(args[0])
			if err != nil {
				return err
			}
			cfg, err := OpenConfig(ctx, "", args[0])
			if err != nil {
				return err
			}

			cl.Add(strings.Join(args[1:], " "))
			dlog.Debugf(ctx, "adding entry to section %q", cl.Unreleased().Header())

			return WriteChangelog(cl, args[0], cfg.Width)
		},
	}
	argparser.AddCommand(cmd)
}
