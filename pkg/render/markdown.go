// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/datawire/chlog/pkg/changelog"
)

func renderMarkdown(cl *changelog.Changelog) []byte {
	var ret strings.Builder
	fmt.Fprintf(&ret, "# %s\n", cl.Title)
	for _, para := range cl.Preamble {
		fmt.Fprintf(&ret, "\n%s\n", markdownInline(cl, para))
	}
	for _, rel := range cl.Releases {
		fmt.Fprintf(&ret, "\n## %s\n", rel.Header())
		if len(rel.Entries) > 0 {
			ret.WriteString("\n")
		}
		for _, entry := range rel.Entries {
			fmt.Fprintf(&ret, "- %s\n", markdownInline(cl, entry.Text))
		}
	}
	return []byte(ret.String())
}

func markdownInline(cl *changelog.Changelog, text string) string {
	var ret strings.Builder
	for _, span := range scanSpans(text) {
		switch {
		case span.Ref != "":
			if link := cl.FindLink(span.Ref); link != nil {
				fmt.Fprintf(&ret, "[%s](%s)", span.Text, link.URL)
			} else {
				ret.WriteString(span.Text)
			}
		case span.Literal:
			fmt.Fprintf(&ret, "`%s`", span.Text)
		default:
			ret.WriteString(span.Text)
		}
	}
	return ret.String()
}
