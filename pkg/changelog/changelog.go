// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package changelog implements parsing, formatting, editing, and linting of changelog
// files in the CHANGES.txt convention: a reStructuredText document with a title, one
// section per release headed by "VERSION (DATE)" or "VERSION (unreleased)", bullet
// entries, and reference-style link targets.
package changelog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/datawire/chlog/pkg/rst"
	"github.com/datawire/chlog/pkg/version"
)

// Changelog is a parsed changelog document.  Releases are ordered as they appear in the
// file, newest first.
type Changelog struct {
	Title     string
	Adornment rune
	Preamble  []string
	Releases  []Release
	Links     []Link
	Comments  []rst.Block
}

// Release is one release section.
type Release struct {
	// RawVersion is the version part of the section header, exactly as written.
	RawVersion string
	// Version is the parsed RawVersion, or nil if it does not parse under the
	// default scheme; lint reports that, parsing does not.
	Version *version.Version
	// Date is the "(...)" part of the section header for released sections,
	// conventionally "YYYY-MM-DD".
	Date string
	// Unreleased is whether the header's date part is the word "unreleased".
	Unreleased bool

	Adornment    rune
	AdornmentLen int
	TitleLen     int
	Line         int

	Entries []Entry
}

// Entry is a single bullet entry.
type Entry struct {
	Text string
	Line int
	// Refs are the names of inline "`name`_" references in Text.
	Refs []string
	// Credits are contributor names recognized from attribution phrasing such as
	// "Thanks to NAME" in Text.
	Credits []string
}

// Link is an explicit link target.
type Link struct {
	Name string
	URL  string
	Line int
}

// Header returns the canonical section header text for the release.
func (rel Release) Header() string {
	date := rel.Date
	if rel.Unreleased {
		date = "unreleased"
	}
	if date == "" {
		return rel.RawVersion
	}
	return fmt.Sprintf("%s (%s)", rel.RawVersion, date)
}

var reHeader = regexp.MustCompile(`^(.*?)\s+\((.+)\)$`)

// Parse parses a changelog document.
//
// Parsing is deliberately lenient about the things Lint checks: versions that don't
// parse, mismatched underlines, and misplaced unreleased sections all survive with the
// raw text retained, so that "chlog lint" can report them with line numbers rather than
// the parser hard-failing on the first one.
func Parse(data []byte) (*Changelog, error) {
	doc, err := rst.Scan(data)
	if err != nil {
		return nil, err
	}

	cl := &Changelog{Adornment: '*'}
	sawTitle := false
	for _, block := range doc.Blocks {
		switch block.Kind {
		case rst.KindSection:
			if !sawTitle {
				cl.Title = block.Title
				cl.Adornment = block.Adornment
				sawTitle = true
				continue
			}
			cl.Releases = append(cl.Releases, scanRelease(block))
		case rst.KindBullet:
			if len(cl.Releases) == 0 {
				return nil, fmt.Errorf("changelog: line %d: entry before any release section", block.Line)
			}
			rel := &cl.Releases[len(cl.Releases)-1]
			rel.Entries = append(rel.Entries, Entry{
				Text:    block.Text,
				Line:    block.Line,
				Refs:    scanRefs(block.Text),
				Credits: scanCredits(block.Text),
			})
		case rst.KindParagraph:
			if len(cl.Releases) == 0 {
				cl.Preamble = append(cl.Preamble, block.Text)
			} else {
				return nil, fmt.Errorf("changelog: line %d: stray paragraph inside release section", block.Line)
			}
		case rst.KindLinkTarget:
			cl.Links = append(cl.Links, Link{Name: block.Name, URL: block.URL, Line: block.Line})
		case rst.KindComment:
			cl.Comments = append(cl.Comments, block)
		}
	}
	if !sawTitle {
		return nil, fmt.Errorf("changelog: missing title section")
	}
	return cl, nil
}

func scanRelease(block rst.Block) Release {
	rel := Release{
		RawVersion:   block.Title,
		Adornment:    block.Adornment,
		AdornmentLen: block.AdornmentLen,
		TitleLen:     len(block.Title),
		Line:         block.Line,
	}
	if match := reHeader.FindStringSubmatch(block.Title); match != nil {
		rel.RawVersion = match[1]
		switch {
		case strings.EqualFold(match[2], "unreleased"):
			rel.Unreleased = true
		case len(match[2]) > len("unreleased") &&
			strings.EqualFold(match[2][:len("unreleased")], "unreleased") &&
			strings.ContainsRune(" ()", rune(match[2][len("unreleased")])):
			// "unreleased" with extra text riding along, such as
			// "0.3 (unreleased 2014-01-01)"; keep the extra text as the date so
			// lint can flag it
			rel.Unreleased = true
			rel.Date = strings.Trim(strings.TrimSpace(match[2][len("unreleased"):]), "() ")
		default:
			rel.Date = match[2]
		}
	}
	if ver, err := version.Parse(rel.RawVersion); err == nil {
		rel.Version = ver
	}
	return rel
}

var reRef = regexp.MustCompile("`([^`]+)`_(?:[^_]|$)")

func scanRefs(text string) []string {
	var refs []string
	for _, match := range reRef.FindAllStringSubmatch(text, -1) {
		refs = append(refs, match[1])
	}
	return refs
}

var reCredit = regexp.MustCompile(
	`(?:[Tt]hanks to|[Ww]ith thanks to|[Ss]ubmitted by|[Cc]ontributed by|[Rr]eported by) ` +
		`([A-Z][A-Za-z'-]*(?: [A-Z][A-Za-z'-]*)*)`)

func scanCredits(text string) []string {
	var credits []string
	for _, match := range reCredit.FindAllStringSubmatch(text, -1) {
		credits = append(credits, match[1])
	}
	return credits
}

// Find returns the release section whose version compares equal to ver, or nil.
func (cl *Changelog) Find(ver version.Version) *Release {
	for i := range cl.Releases {
		rel := &cl.Releases[i]
		if rel.Version != nil && rel.Version.Cmp(ver) == 0 {
			return rel
		}
	}
	return nil
}

// Latest returns the newest released (non-unreleased) section, or nil.
func (cl *Changelog) Latest() *Release {
	for i := range cl.Releases {
		if !cl.Releases[i].Unreleased {
			return &cl.Releases[i]
		}
	}
	return nil
}

// Unreleased returns the unreleased section, or nil.
func (cl *Changelog) Unreleased() *Release {
	for i := range cl.Releases {
		if cl.Releases[i].Unreleased {
			return &cl.Releases[i]
		}
	}
	return nil
}

// FindLink returns the link target with the given name (case-insensitively, per rST
// reference resolution), or nil.
func (cl *Changelog) FindLink(name string) *Link {
	for i := range cl.Links {
		if strings.EqualFold(cl.Links[i].Name, name) {
			return &cl.Links[i]
		}
	}
	return nil
}
