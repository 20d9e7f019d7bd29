// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/datawire/chlog/pkg/cliutil"
	"github.com/datawire/chlog/pkg/version"
)

// defaultDate is today, or SOURCE_DATE_EPOCH if set, so that release notes built in a
// reproducible-build environment get a deterministic date.
func defaultDate() string {
	now := time.Now()
	if secs, err := strconv.ParseInt(os.Getenv("SOURCE_DATE_EPOCH"), 10, 64); err == nil {
		now = time.Unix(secs, 0).UTC()
	}
	return now.Format("2006-01-02")
}

func init() {
	var flagDate string
	cmd := &cobra.Command{
		Use:   "release [flags] VERSION IN_CHANGELOG",
		Short: "Cut the unreleased section as a release",
		Long: "Turn the unreleased section in to a released one: the given version " +
			"replaces the placeholder version, and \"(unreleased)\" becomes the " +
			"release date.  The version must sort above every existing release.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ver, err := version.Parse(args[0])
			if err != nil {
				return err
			}
			cl, _, err := OpenChangelog(args[1])
			if err != nil {
				return err
			}
			cfg, err := OpenConfig(ctx, "", args[1])
			if err != nil {
				return err
			}

			if err := cl.Cut(*ver, flagDate); err != nil {
				return err
			}

			return WriteChangelog(cl, args[1], cfg.Width)
		},
	}
	cmd.Flags().StringVar(&flagDate, "date", defaultDate(),
		"Use `DATE` as the release date instead of today")
	argparser.AddCommand(cmd)
}
