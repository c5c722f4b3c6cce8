// Package parser splits a Markdown article into its heading fields and body text.
package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// TagMarker introduces a tag token in the heading line.
const TagMarker = "#"

// spaceClass matches the same characters as isSpace. Go's \s is ASCII only,
// while headings routinely separate tags with U+3000.
const spaceClass = `\t\n\v\f\r\x{1c}-\x{1f}\x{85}\p{Z}`

var (
	// tagBoundaryRegex finds where the tag region starts: whitespace, marker, non-whitespace.
	tagBoundaryRegex = regexp.MustCompile(`[` + spaceClass + `]#[^` + spaceClass + `]`)
	// tagRegex captures every marker-prefixed token inside the tag region.
	tagRegex = regexp.MustCompile(`#([^` + spaceClass + `]+)`)
)

// ParseHeading splits a heading line like "# Title #tag1 #tag2" into its
// title and tags. Tags is never nil.
//
// Only the first boundary separates the title from the tag region; the whole
// region is then scanned again, so plain words between tags are skipped.
func ParseHeading(line string) (string, []string) {
	text := trimSpace(strings.TrimLeft(line, "# "))

	loc := tagBoundaryRegex.FindStringIndex(text)
	if loc == nil {
		return text, []string{}
	}

	title := trimSpace(text[:loc[0]])

	matches := tagRegex.FindAllStringSubmatch(text[loc[0]:], -1)

	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}

	return title, tags
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', 0x1c, 0x1d, 0x1e, 0x1f, 0x85:
		return true
	}

	return unicode.In(r, unicode.Z)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
