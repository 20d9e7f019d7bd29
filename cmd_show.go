// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/datawire/chlog/pkg/changelog"
	"github.com/datawire/chlog/pkg/cliutil"
	"github.com/datawire/chlog/pkg/version"
)

func init() {
	var flagMatch string
	cmd := &cobra.Command{
		Use:   "show [flags] IN_CHANGELOG",
		Short: "Print release sections",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, _, err := OpenChangelog(args[0])
			if err != nil {
				return err
			}

			var spec version.Specifier
			if flagMatch != "" {
				spec, err = version.ParseSpecifier(flagMatch)
				if err != nil {
					return err
				}
			}

			out := &changelog.Changelog{
				Title:     cl.Title,
				Adornment: cl.Adornment,
				Preamble:  cl.Preamble,
			}
			for _, rel := range cl.Releases {
				if spec != nil && (rel.Version == nil || !spec.Match(*rel.Version)) {
					continue
				}
				out.Releases = append(out.Releases, rel)
			}
			out.Links = usedLinks(cl.Links, out.Releases)

			if _, err := cmd.OutOrStdout().Write(out.Bytes()); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagMatch, "match", "",
		`Only show sections whose version matches `+"`SPEC`"+`, such as ">=0.4,<1.0"`)
	argparser.AddCommand(cmd)
}
