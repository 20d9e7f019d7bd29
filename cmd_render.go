// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/datawire/chlog/pkg/cliutil"
	"github.com/datawire/chlog/pkg/render"
)

// formatFlag is a pflag.Value that only accepts the formats pkg/render knows.
type formatFlag render.Format

var _ pflag.Value = (*formatFlag)(nil)

func (f *formatFlag) String() string { return string(*f) }
func (f *formatFlag) Type() string   { return "FORMAT" }
func (f *formatFlag) Set(val string) error {
	for _, known := range render.Formats {
		if val == string(known) {
			*f = formatFlag(val)
			return nil
		}
	}
	return fmt.Errorf("invalid format %q (choose from %v)", val, render.Formats)
}

func init() {
	flagFormat := formatFlag(render.FormatMarkdown)
	var flagWidth int
	cmd := &cobra.Command{
		Use:   "render [flags] IN_CHANGELOG",
		Short: "Render a changelog to another format",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, _, err := OpenChangelog(args[0])
			if err != nil {
				return err
			}
			out, err := render.Render(cl, render.Format(flagFormat), renderWidth(flagWidth))
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().Var(&flagFormat, "format",
		fmt.Sprintf("Output format, one of %v", render.Formats))
	cmd.Flags().IntVar(&flagWidth, "width", 0,
		"Wrap at column `N` for formats that wrap (default: the terminal width, or 79)")
	argparser.AddCommand(cmd)
}

// renderWidth resolves the wrapping width: the --width flag if given, then the terminal
// width (COLUMNS or the stdout size); 0 lets pkg/render fall back to its default.
func renderWidth(flag int) int {
	if flag != 0 {
		return flag
	}
	return cliutil.GetTerminalWidth()
}
