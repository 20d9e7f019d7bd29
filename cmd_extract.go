// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datawire/chlog/pkg/changelog"
	"github.com/datawire/chlog/pkg/cliutil"
	"github.com/datawire/chlog/pkg/rst"
	"github.com/datawire/chlog/pkg/version"
)

func init() {
	cmd := &cobra.Command{
		Use:   "extract VERSION IN_CHANGELOG",
		Short: "Print one release's entries",
		Long: "Print the entries of a single release, without the section header, " +
			"for use as release notes when tagging that version.  Link targets that " +
			"the entries reference are included.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ver, err := version.Parse(args[0])
			if err != nil {
				return err
			}
			cl, _, err := OpenChangelog(args[1])
			if err != nil {
				return err
			}
			rel := cl.Find(*ver)
			if rel == nil {
				return fmt.Errorf("%s has no section for version %s", args[1], args[0])
			}

			doc := new(rst.Document)
			for _, entry := range rel.Entries {
				doc.Blocks = append(doc.Blocks, rst.BulletBlock(entry.Text, changelog.DefaultWidth))
			}
			for _, link := range usedLinks(cl.Links, []changelog.Release{*rel}) {
				doc.Blocks = append(doc.Blocks, rst.LinkTargetBlock(link.Name, link.URL))
			}

			if _, err := cmd.OutOrStdout().Write(doc.Bytes()); err != nil {
				return err
			}
			return nil
		},
	}
	argparser.AddCommand(cmd)
}
