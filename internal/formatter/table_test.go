package formatter

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		expected string
	}{
		{
			name:   "Basic table",
			header: []string{"Header 1", "Header 2"},
			rows:   [][]string{{"val 1", "val 2"}},
			expected: `
| Header 1 | Header 2 |
| -------- | -------- |
| val 1    | val 2    |
`,
		},
		{
			name:   "Minimum width",
			header: []string{"H1", "H2"},
			rows:   [][]string{{"v1", "v2"}},
			expected: `
| H1  | H2  |
| --- | --- |
| v1  | v2  |
`,
		},
		{
			name:   "Short rows padded",
			header: []string{"A", "B"},
			rows:   [][]string{{"x"}},
			expected: `
| A   | B   |
| --- | --- |
| x   |     |
`,
		},
		{
			name:   "Pipes in cells are escaped",
			header: []string{"File", "Tags"},
			rows:   [][]string{{"a|b.md", "#x|y"}},
			expected: `
| File    | Tags  |
| ------- | ----- |
| a\|b.md | #x\|y |
`,
		},
		{
			name:   "Mixed CJK and ASCII",
			header: []string{"File", "Title"},
			rows: [][]string{
				{"01.md", "消防處：增至83死。"},
				{"02.md", "Short text"},
			},
			// 消防處：增至 = 12 cells, 83 = 2, 死。 = 4 -> 18
			expected: `
| File  | Title              |
| ----- | ------------------ |
| 01.md | 消防處：增至83死。 |
| 02.md | Short text         |
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(RenderTable(tt.header, tt.rows), "\n")
			if got != strings.TrimSpace(tt.expected) {
				t.Errorf("RenderTable() = \n%v\nwant \n%v", got, tt.expected)
			}
		})
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(nil, nil); got != nil {
		t.Errorf("RenderTable(nil, nil) = %v, want nil", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "Fits", in: "short", width: 10, want: "short"},
		{name: "ASCII cut", in: "abcdefghij", width: 5, want: "ab..."},
		{name: "CJK cut", in: "一二三四五", width: 6, want: "一..."},
		{name: "Zero width disables", in: "abc", width: 0, want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.width); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
