package richtext

import (
	"regexp"
	"strings"
)

// Style is the paragraph style of a document block
type Style string

const (
	StyleNormal     Style = "Normal"
	StyleHeading1   Style = "Heading1"
	StyleHeading2   Style = "Heading2"
	StyleHeading3   Style = "Heading3"
	StyleListBullet Style = "ListBullet"
	StyleListNumber Style = "ListNumber"
)

// Paragraph is one block of plain text with a style
type Paragraph struct {
	Style Style
	Text  string
}

// Document is an ordered list of paragraphs
type Document struct {
	Paragraphs []Paragraph
}

var numberedItem = regexp.MustCompile(`^\d+\.\s+`)

// FromMarkdown maps markdown text line by line onto paragraphs. Inline
// markup and tables are not interpreted: they become plain paragraphs.
func FromMarkdown(text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	doc := &Document{Paragraphs: make([]Paragraph, 0, len(lines))}
	for _, raw := range lines {
		doc.Paragraphs = append(doc.Paragraphs, parseLine(strings.TrimRight(raw, " \t\r")))
	}
	return doc
}

func parseLine(line string) Paragraph {
	switch {
	case line == "":
		return Paragraph{Style: StyleNormal}
	case strings.HasPrefix(line, "### "):
		return Paragraph{Style: StyleHeading3, Text: strings.TrimSpace(line[4:])}
	case strings.HasPrefix(line, "## "):
		return Paragraph{Style: StyleHeading2, Text: strings.TrimSpace(line[3:])}
	case strings.HasPrefix(line, "# "):
		return Paragraph{Style: StyleHeading1, Text: strings.TrimSpace(line[2:])}
	case strings.HasPrefix(line, "- "):
		return Paragraph{Style: StyleListBullet, Text: strings.TrimSpace(line[2:])}
	case numberedItem.MatchString(line):
		return Paragraph{Style: StyleListNumber, Text: strings.TrimSpace(numberedItem.ReplaceAllString(line, ""))}
	default:
		return Paragraph{Style: StyleNormal, Text: line}
	}
}
