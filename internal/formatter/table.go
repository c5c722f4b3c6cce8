// Package formatter renders display-width aware text for terminal output.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// minColumnWidth keeps separator dashes at least "---".
const minColumnWidth = 3

// Truncate shortens s to at most width display cells, appending "..." when it
// had to cut. CJK characters count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}

	return runewidth.Truncate(s, width, "...")
}

// RenderTable lays out a Markdown style table whose columns are padded to
// their widest cell. Rows shorter than the header are padded with empty cells.
// A "|" inside a cell is written as "\|".
func RenderTable(header []string, rows [][]string) []string {
	header = escapeRow(header)

	escaped := make([][]string, 0, len(rows))
	for _, row := range rows {
		escaped = append(escaped, escapeRow(row))
	}

	rows = escaped

	colCount := len(header)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	if colCount == 0 {
		return nil
	}

	// Calculate max widths (using display width)
	colWidths := make([]int, colCount)

	measure := func(row []string) {
		for i := 0; i < len(row) && i < colCount; i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	measure(header)

	for _, row := range rows {
		measure(row)
	}

	for i := range colWidths {
		if colWidths[i] < minColumnWidth {
			colWidths[i] = minColumnWidth
		}
	}

	result := make([]string, 0, len(rows)+2)
	result = append(result, renderRow(header, colWidths, false))
	result = append(result, renderRow(nil, colWidths, true))

	for _, row := range rows {
		result = append(result, renderRow(row, colWidths, false))
	}

	return result
}

func renderRow(row []string, colWidths []int, isSeparator bool) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		sb.WriteString(" ")

		if isSeparator {
			sb.WriteString(strings.Repeat("-", width))
		} else {
			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(content)

			// Pad with spaces based on display width
			if padding := width - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

var cellEscaper = strings.NewReplacer("|", `\|`)

func escapeRow(row []string) []string {
	if row == nil {
		return nil
	}

	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = cellEscaper.Replace(cell)
	}

	return out
}
