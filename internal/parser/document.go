package parser

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"notecorpus/internal/models"
)

// ErrInvalidEncoding is returned when a file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Decode validates raw file bytes as UTF-8 and normalizes CRLF and lone CR
// line endings to LF.
func Decode(raw []byte) (string, error) {
	valid, _, err := transform.Bytes(encoding.UTF8Validator, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}

	return newlineReplacer.Replace(string(valid)), nil
}

// ParseDocument builds an article from decoded file content. The first line
// is the heading; the rest feeds ExtractBody.
func ParseDocument(filename, content string) models.Article {
	lines := strings.Split(content, "\n")

	title, tags := ParseHeading(lines[0])

	return models.Article{
		Filename: filename,
		Title:    title,
		Tags:     tags,
		Body:     ExtractBody(lines[1:]),
	}
}

// ParseFile decodes raw bytes and parses them into an article.
func ParseFile(filename string, raw []byte) (models.Article, error) {
	content, err := Decode(raw)
	if err != nil {
		return models.Article{}, fmt.Errorf("%s: %w", filename, err)
	}

	return ParseDocument(filename, content), nil
}
