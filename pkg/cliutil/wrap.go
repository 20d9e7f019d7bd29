// Copyright (C) 2020  Ambassador Labs (for Telepresence)
// Copyright (C) 2021-2022  Ambassador Labs (for ocibuild)
//
// SPDX-License-Identifier: Apache-2.0
//
// GetTerminalWidth is based on
// https://github.com/telepresenceio/telepresence/blob/b6dfa04ff014915b47386191cc3d8b1352522fea/pkg/client/cli/command_group.go#L35-L63

package cliutil

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// GetTerminalWidth returns the width of the terminal that you should wrap text to.
func GetTerminalWidth() int {
	// Copyright note: This code was originally written by LukeShu for Telepresence.

	// This is based off of what Docker does (github.com/docker/cli/cli/cobra.go), but is
	// adjusted to correct for the ways that Docker upsets me.

	// Obey COLUMNS if the shell or user sets it.  (Docker doesn't do this.)
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil {
		return cols
	}

	// Try to detect the size of the stdout file descriptor.  (Docker checks stdin, not stdout.)
	if cols, _, err := term.GetSize(1); err == nil {
		return cols
	}

	// If stdout is a terminal but we were unable to get its size (I'm not sure how that can
	// happen), then fall back to assuming 80.
	if term.IsTerminal(1) {
		return 80
	}

	// If stdout isn't a terminal, then we leave cols as 0, meaning "don't wrap it".  (Docker
	// wraps it even if stdout isn't a terminal.)
	return 0
}

// Wrap wraps the string `s` to a maximum width `w`.  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line
// by itself, most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// WrapIndent wraps the string `s` to a maximum width `w` with leading indent `i`.  The
// first line is not indented (this is assumed to be done by the caller).  Pass `w` == 0
// to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line
// by itself, most lines are actually wrapped to `w - 5`.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

func wrap(indent, width int, s string) string {
	if width == 0 {
		return s
	}
	max := width - indent - 5
	if max < 1 {
		return s
	}
	indentStr := strings.Repeat(" ", indent)

	var ret strings.Builder
	first := true
	for _, line := range strings.Split(s, "\n") {
		for {
			var rest string
			line, rest = splitLine(line, max)
			if !first {
				ret.WriteString("\n")
				ret.WriteString(indentStr)
			}
			ret.WriteString(line)
			first = false
			if rest == "" {
				break
			}
			line = rest
		}
	}
	return ret.String()
}

// splitLine splits off the longest prefix of line that is shorter than max columns,
// breaking at a space; inter-word spacing in the prefix is kept as-is.  A first word
// too long to fit gets a line of its own rather than being split.
func splitLine(line string, max int) (prefix, rest string) {
	if len(line) < max {
		return line, ""
	}
	cut := strings.LastIndexByte(line[:max], ' ')
	if cut <= 0 {
		over := strings.IndexByte(line[max:], ' ')
		if over < 0 {
			return line, ""
		}
		cut = max + over
	}
	return strings.TrimRight(line[:cut], " "), strings.TrimLeft(line[cut:], " ")
}
