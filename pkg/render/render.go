// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package render converts parsed changelogs to other formats.
package render

import (
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/datawire/chlog/pkg/changelog"
)

type Format string

const (
	FormatRST      Format = "rst"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported output format.
var Formats = []Format{FormatRST, FormatMarkdown, FormatHTML, FormatJSON, FormatYAML}

// Render converts the changelog to the given format.  width controls line wrapping for
// the formats that wrap (0 means changelog.DefaultWidth).
func Render(cl *changelog.Changelog, format Format, width int) ([]byte, error) {
	if width == 0 {
		width = changelog.DefaultWidth
	}
	switch format {
	case FormatRST:
		return cl.Format(width), nil
	case FormatMarkdown:
		return renderMarkdown(cl), nil
	case FormatHTML:
		return renderHTML(cl)
	case FormatJSON:
		data, err := json.MarshalIndent(toDocument(cl), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(toDocument(cl))
	default:
		return nil, fmt.Errorf("render: unknown format: %q (choose from %v)", format, Formats)
	}
}

// document is the structured shape shared by the JSON and YAML formats.
type document struct {
	Title    string    `json:"title"`
	Preamble []string  `json:"preamble,omitempty"`
	Releases []release `json:"releases"`
	Links    []link    `json:"links,omitempty"`
}

type release struct {
	Version    string  `json:"version"`
	Date       string  `json:"date,omitempty"`
	Unreleased bool    `json:"unreleased,omitempty"`
	Entries    []entry `json:"entries"`
}

type entry struct {
	Text    string   `json:"text"`
	Refs    []string `json:"refs,omitempty"`
	Credits []string `json:"credits,omitempty"`
}

type link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func toDocument(cl *changelog.Changelog) document {
	doc := document{
		Title:    cl.Title,
		Preamble: cl.Preamble,
		Releases: make([]release, 0, len(cl.Releases)),
	}
	for _, rel := range cl.Releases {
		outRel := release{
			Version:    rel.RawVersion,
			Date:       rel.Date,
			Unreleased: rel.Unreleased,
			Entries:    make([]entry, 0, len(rel.Entries)),
		}
		for _, e := range rel.Entries {
			outRel.Entries = append(outRel.Entries, entry{
				Text:    e.Text,
				Refs:    e.Refs,
				Credits: e.Credits,
			})
		}
		doc.Releases = append(doc.Releases, outRel)
	}
	for _, l := range cl.Links {
		doc.Links = append(doc.Links, link{Name: l.Name, URL: l.URL})
	}
	return doc
}
