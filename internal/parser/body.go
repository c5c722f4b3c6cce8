package parser

import "strings"

// Separator is the line that ends the front matter and starts the body.
const Separator = "---"

// ExtractBody returns the article body from the lines that follow the heading.
// Everything up to and including the first separator line is dropped, as are
// blank lines directly after it. Without a separator the body is empty.
func ExtractBody(lines []string) string {
	var bodyLines []string

	pastSeparator := false

	for _, line := range lines {
		if !pastSeparator {
			if trimSpace(line) == Separator {
				pastSeparator = true
			}

			continue
		}

		if len(bodyLines) == 0 && trimSpace(line) == "" {
			continue
		}

		bodyLines = append(bodyLines, line)
	}

	return trimSpace(strings.Join(bodyLines, "\n"))
}
