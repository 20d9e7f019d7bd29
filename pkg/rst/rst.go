// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package rst implements a line-oriented scanner and emitter for the small subset of
// reStructuredText that changelog files in the CHANGES.txt convention actually use:
// section titles with adornment underlines, bullet lists with hanging-indent
// continuation lines, paragraphs, explicit link targets, and comments.
//
// The scanner is faithful rather than canonicalizing: each Block keeps the raw lines it
// was read from, and Bytes emits those lines back out, so a scan/emit cycle changes at
// most inter-block blank-line runs.  Canonical formatting is a higher-level concern.
package rst

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindSection Kind = iota
	KindBullet
	KindParagraph
	KindLinkTarget
	KindComment
)

func (k Kind) String() string {
	str, ok := map[Kind]string{
		KindSection:    "section",
		KindBullet:     "bullet",
		KindParagraph:  "paragraph",
		KindLinkTarget: "link-target",
		KindComment:    "comment",
	}[k]
	if !ok {
		panic(fmt.Errorf("invalid Kind: %d", k))
	}
	return str
}

// Block is one logical block of the document.
type Block struct {
	Kind Kind
	// Line is the 1-based line number of the block's first line in the scanned input.
	Line int
	// Lines are the raw input lines (no trailing newline, no "\r").
	Lines []string

	// Title, Adornment, and AdornmentLen are set for KindSection.
	Title        string
	Adornment    rune
	AdornmentLen int

	// Text is the logical text for KindBullet and KindParagraph: the lines with
	// markers and indentation stripped, joined by single spaces.
	Text string

	// Name and URL are set for KindLinkTarget.
	Name string
	URL  string
}

// Document is a scanned document.
type Document struct {
	Blocks []Block
}

// adornmentRunes is the set of characters accepted as a section underline.
const adornmentRunes = `=-*^~"'+#.:_`

func isAdornmentLine(line string) bool {
	if len(line) < 2 {
		return false
	}
	r := line[0]
	if !strings.ContainsRune(adornmentRunes, rune(r)) {
		return false
	}
	for i := 1; i < len(line); i++ {
		if line[i] != r {
			return false
		}
	}
	return true
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// Scan parses data into a Document.
func Scan(data []byte) (*Document, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	// trailing newline produces one empty trailing element; drop it
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	doc := new(Document)
	for i := 0; i < len(lines); {
		line := lines[i]
		switch {
		case isBlank(line):
			i++
		case strings.HasPrefix(line, ".. _"):
			block, err := scanLinkTarget(i+1, line)
			if err != nil {
				return nil, err
			}
			doc.Blocks = append(doc.Blocks, block)
			i++
		case strings.HasPrefix(line, ".."):
			// comment; swallow indented continuation lines
			block := Block{Kind: KindComment, Line: i + 1, Lines: []string{line}}
			i++
			for i < len(lines) && !isBlank(lines[i]) && indentWidth(lines[i]) > 0 {
				block.Lines = append(block.Lines, lines[i])
				i++
			}
			doc.Blocks = append(doc.Blocks, block)
		case strings.HasPrefix(line, "- ") || line == "-":
			block := Block{Kind: KindBullet, Line: i + 1, Lines: []string{line}}
			texts := []string{strings.TrimSpace(strings.TrimPrefix(line, "-"))}
			i++
			for i < len(lines) && !isBlank(lines[i]) && indentWidth(lines[i]) >= 2 {
				block.Lines = append(block.Lines, lines[i])
				texts = append(texts, strings.TrimSpace(lines[i]))
				i++
			}
			block.Text = strings.Join(texts, " ")
			doc.Blocks = append(doc.Blocks, block)
		case i+1 < len(lines) && isAdornmentLine(lines[i+1]) && indentWidth(line) == 0:
			doc.Blocks = append(doc.Blocks, Block{
				Kind:         KindSection,
				Line:         i + 1,
				Lines:        []string{line, lines[i+1]},
				Title:        strings.TrimRight(line, " \t"),
				Adornment:    rune(lines[i+1][0]),
				AdornmentLen: len(lines[i+1]),
			})
			i += 2
		default:
			block := Block{Kind: KindParagraph, Line: i + 1, Lines: []string{line}}
			texts := []string{strings.TrimSpace(line)}
			i++
			for i < len(lines) && !isBlank(lines[i]) &&
				!strings.HasPrefix(lines[i], "- ") &&
				!strings.HasPrefix(lines[i], "..") &&
				!(i+1 < len(lines) && isAdornmentLine(lines[i+1])) &&
				!isAdornmentLine(lines[i]) {
				block.Lines = append(block.Lines, lines[i])
				texts = append(texts, strings.TrimSpace(lines[i]))
				i++
			}
			block.Text = strings.Join(texts, " ")
			doc.Blocks = append(doc.Blocks, block)
		}
	}
	return doc, nil
}

func scanLinkTarget(lineNo int, line string) (Block, error) {
	block := Block{Kind: KindLinkTarget, Line: lineNo, Lines: []string{line}}
	rest := strings.TrimPrefix(line, ".. _")
	switch {
	case strings.HasPrefix(rest, "`"):
		end := strings.Index(rest[1:], "`")
		if end < 0 {
			return block, fmt.Errorf("rst: line %d: unterminated link target name: %q", lineNo, line)
		}
		block.Name = rest[1 : 1+end]
		rest = rest[2+end:]
	default:
		colon := strings.Index(rest, ": ")
		if colon < 0 {
			colon = strings.IndexByte(rest, ':')
			if colon < 0 || colon != len(rest)-1 {
				return block, fmt.Errorf("rst: line %d: malformed link target: %q", lineNo, line)
			}
		}
		block.Name = rest[:colon]
		rest = rest[colon:]
	}
	if !strings.HasPrefix(rest, ":") {
		return block, fmt.Errorf("rst: line %d: malformed link target: %q", lineNo, line)
	}
	block.URL = strings.TrimSpace(rest[1:])
	if block.Name == "" {
		return block, fmt.Errorf("rst: line %d: empty link target name: %q", lineNo, line)
	}
	return block, nil
}

// Bytes emits the document, with blocks separated by single blank lines.  Section blocks
// are not separated from the blocks that follow them by anything less than a blank line;
// this matches the canonical changelog layout.
func (doc *Document) Bytes() []byte {
	var ret strings.Builder
	for i, block := range doc.Blocks {
		if i > 0 {
			ret.WriteString("\n")
		}
		for _, line := range block.Lines {
			ret.WriteString(line)
			ret.WriteString("\n")
		}
	}
	return []byte(ret.String())
}

// SectionBlock builds a canonical section block: the title underlined to its exact
// width.
func SectionBlock(title string, adornment rune) Block {
	return Block{
		Kind:         KindSection,
		Lines:        []string{title, strings.Repeat(string(adornment), len(title))},
		Title:        title,
		Adornment:    adornment,
		AdornmentLen: len(title),
	}
}

// BulletBlock builds a canonical bullet block, wrapping text to width columns (0 means
// no wrapping) with a two-column hanging indent.
func BulletBlock(text string, width int) Block {
	block := Block{Kind: KindBullet, Text: text}
	for i, line := range wrapText(text, width-2) {
		if i == 0 {
			block.Lines = append(block.Lines, "- "+line)
		} else {
			block.Lines = append(block.Lines, "  "+line)
		}
	}
	return block
}

// ParagraphBlock builds a canonical paragraph block.
func ParagraphBlock(text string, width int) Block {
	block := Block{Kind: KindParagraph, Text: text}
	block.Lines = wrapText(text, width)
	return block
}

// LinkTargetBlock builds a canonical link target block.  Names containing spaces are
// backquoted.
func LinkTargetBlock(name, url string) Block {
	quoted := name
	if strings.ContainsAny(name, " :") {
		quoted = "`" + name + "`"
	}
	return Block{
		Kind:  KindLinkTarget,
		Lines: []string{fmt.Sprintf(".. _%s: %s", quoted, url)},
		Name:  name,
		URL:   url,
	}
}

// wrapText greedily wraps text to width columns; width <= 0 means one line.  Words
// longer than the width get lines of their own rather than being split.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}
	var lines []string
	cur := words[0]
	for _, word := range words[1:] {
		if len(cur)+1+len(word) > width {
			lines = append(lines, cur)
			cur = word
		} else {
			cur += " " + word
		}
	}
	return append(lines, cur)
}
