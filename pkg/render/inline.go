// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strings"
)

// span is a piece of entry text with its inline markup resolved.
type span struct {
	Text string
	// Ref is the link-target name for a "`name`_" reference span.
	Ref string
	// Literal is whether the span was a "``code``" inline literal.
	Literal bool
}

// scanSpans splits entry text on the two pieces of inline markup changelog entries use:
// "``literal``" and "`name`_".
func scanSpans(text string) []span {
	var spans []span
	plain := func(s string) {
		if s != "" {
			spans = append(spans, span{Text: s})
		}
	}
	for text != "" {
		tick := strings.IndexByte(text, '`')
		if tick < 0 {
			plain(text)
			break
		}
		if strings.HasPrefix(text[tick:], "``") {
			end := strings.Index(text[tick+2:], "``")
			if end < 0 {
				plain(text)
				break
			}
			plain(text[:tick])
			spans = append(spans, span{Text: text[tick+2 : tick+2+end], Literal: true})
			text = text[tick+2+end+2:]
			continue
		}
		end := strings.IndexByte(text[tick+1:], '`')
		if end < 0 {
			plain(text)
			break
		}
		name := text[tick+1 : tick+1+end]
		rest := text[tick+1+end+1:]
		if strings.HasPrefix(rest, "_") && !strings.HasPrefix(rest, "__") {
			plain(text[:tick])
			spans = append(spans, span{Text: name, Ref: name})
			text = rest[1:]
			continue
		}
		// a lone `foo` with no trailing underscore renders as emphasis-ish
		// literal text; pass it through as a literal
		plain(text[:tick])
		spans = append(spans, span{Text: name, Literal: true})
		text = rest
	}
	return spans
}
