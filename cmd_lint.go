// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/datawire/chlog/pkg/changelog"
	"github.com/datawire/chlog/pkg/cliutil"
	"github.com/datawire/chlog/pkg/fsutil"
)

func init() {
	var flagConfig string
	cmd := &cobra.Command{
		Use:   "lint [flags] IN_CHANGELOG",
		Short: "Check a changelog for problems",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := OpenConfig(ctx, flagConfig, args[0])
			if err != nil {
				return err
			}
			data, err := fsutil.ReadFile(args[0])
			if err != nil {
				return err
			}

			err = changelog.Lint(data, cfg)
			if err == nil {
				dlog.Debugf(ctx, "%s: no problems found", args[0])
				return nil
			}
			errs := []error{err}
			if agg, ok := err.(utilerrors.Aggregate); ok {
				errs = agg.Errors()
			}
			for _, problem := range errs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", args[0], problem)
			}
			return fmt.Errorf("found %d problem(s)", len(errs))
		},
	}
	cmd.Flags().StringVar(&flagConfig, "config", "",
		"Read configuration from `FILE` instead of looking for a "+configFilename+" next to the changelog")
	argparser.AddCommand(cmd)
}
