// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package changelog

import (
	"github.com/datawire/chlog/pkg/rst"
)

// DefaultWidth is the column that Format wraps entry text to when the caller doesn't
// say otherwise.
const DefaultWidth = 79

// Bytes emits the changelog in canonical form at DefaultWidth.
func (cl *Changelog) Bytes() []byte {
	return cl.Format(DefaultWidth)
}

// Format emits the changelog in canonical form: exact-width underlines, "- " bullets
// with two-column hanging indents wrapped at width, one blank line between blocks, and
// comment and link-target blocks at the end of the document.  Formatting is
// idempotent: parsing the result and formatting it again is a fixed point.
func (cl *Changelog) Format(width int) []byte {
	doc := new(rst.Document)
	doc.Blocks = append(doc.Blocks, rst.SectionBlock(cl.Title, cl.Adornment))
	for _, para := range cl.Preamble {
		doc.Blocks = append(doc.Blocks, rst.ParagraphBlock(para, width))
	}
	for _, rel := range cl.Releases {
		adornment := rel.Adornment
		if adornment == 0 {
			adornment = '='
		}
		doc.Blocks = append(doc.Blocks, rst.SectionBlock(rel.Header(), adornment))
		for _, entry := range rel.Entries {
			doc.Blocks = append(doc.Blocks, rst.BulletBlock(entry.Text, width))
		}
	}
	doc.Blocks = append(doc.Blocks, cl.Comments...)
	for _, link := range cl.Links {
		doc.Blocks = append(doc.Blocks, rst.LinkTargetBlock(link.Name, link.URL))
	}
	return doc.Bytes()
}
