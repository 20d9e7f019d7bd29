// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/datawire/chlog/pkg/changelog"
)

// renderHTML builds the document as an x/net/html node tree and serializes it, rather
// than going through text templates; this way escaping can't be gotten wrong.
func renderHTML(cl *changelog.Changelog) ([]byte, error) {
	doc := element(atom.Html)
	head := element(atom.Head)
	title := element(atom.Title)
	title.AppendChild(text(cl.Title))
	head.AppendChild(title)
	doc.AppendChild(head)

	body := element(atom.Body)
	h1 := element(atom.H1)
	h1.AppendChild(text(cl.Title))
	body.AppendChild(h1)
	for _, para := range cl.Preamble {
		p := element(atom.P)
		appendInline(cl, p, para)
		body.AppendChild(p)
	}
	for _, rel := range cl.Releases {
		h2 := element(atom.H2)
		h2.AppendChild(text(rel.Header()))
		body.AppendChild(h2)
		if len(rel.Entries) == 0 {
			continue
		}
		ul := element(atom.Ul)
		for _, entry := range rel.Entries {
			li := element(atom.Li)
			appendInline(cl, li, entry.Text)
			ul.AppendChild(li)
		}
		body.AppendChild(ul)
	}
	doc.AppendChild(body)

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n")
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func appendInline(cl *changelog.Changelog, parent *html.Node, str string) {
	for _, span := range scanSpans(str) {
		switch {
		case span.Ref != "":
			if link := cl.FindLink(span.Ref); link != nil {
				a := element(atom.A)
				a.Attr = []html.Attribute{{Key: "href", Val: link.URL}}
				a.AppendChild(text(span.Text))
				parent.AppendChild(a)
			} else {
				parent.AppendChild(text(span.Text))
			}
		case span.Literal:
			code := element(atom.Code)
			code.AppendChild(text(span.Text))
			parent.AppendChild(code)
		default:
			parent.AppendChild(text(span.Text))
		}
	}
}

func element(a atom.Atom) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
}

func text(str string) *html.Node {
	return &html.Node{
		Type: html.TextNode,
		Data: str,
	}
}
