package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"notecorpus/internal/models"
)

func TestEncodeCorpus(t *testing.T) {
	corpus := models.Corpus{
		{Filename: "a.md", Title: "标题 <b> & c", Tags: []string{"商业"}, Body: "正文"},
		{Filename: "b.md", Title: "B", Tags: []string{}, Body: ""},
	}

	got, err := EncodeCorpus(corpus, 2)
	if err != nil {
		t.Fatalf("EncodeCorpus() error = %v", err)
	}

	want := `[
  {
    "filename": "a.md",
    "title": "标题 <b> & c",
    "tags": [
      "商业"
    ],
    "body": "正文"
  },
  {
    "filename": "b.md",
    "title": "B",
    "tags": [],
    "body": ""
  }
]`

	if string(got) != want {
		t.Errorf("EncodeCorpus() = \n%s\nwant \n%s", got, want)
	}
}

func TestEncodeCorpus_Empty(t *testing.T) {
	tests := []struct {
		name   string
		corpus models.Corpus
	}{
		{name: "Nil corpus", corpus: nil},
		{name: "Empty corpus", corpus: models.Corpus{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeCorpus(tt.corpus, 2)
			if err != nil {
				t.Fatalf("EncodeCorpus() error = %v", err)
			}

			if string(got) != "[]" {
				t.Errorf("EncodeCorpus() = %q, want []", got)
			}
		})
	}
}

func TestEncodeCorpus_EscapesControlCharacters(t *testing.T) {
	corpus := models.Corpus{{Filename: "a.md", Title: "t", Tags: []string{}, Body: "line1\nline2\t\"q\""}}

	got, err := EncodeCorpus(corpus, 2)
	if err != nil {
		t.Fatalf("EncodeCorpus() error = %v", err)
	}

	var decoded []models.Article
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded[0].Body != corpus[0].Body {
		t.Errorf("Body = %q, want %q", decoded[0].Body, corpus[0].Body)
	}
}

func TestEncodeTitles(t *testing.T) {
	if got := string(EncodeTitles([]string{"一", "two"})); got != "一\ntwo\n" {
		t.Errorf("EncodeTitles() = %q", got)
	}

	if got := EncodeTitles(nil); len(got) != 0 {
		t.Errorf("EncodeTitles(nil) = %q, want empty", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	digest, err := WriteFile(path, []byte("hello"))
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if digest.Unchanged {
		t.Error("first write reported as unchanged")
	}

	if digest.Size != 5 {
		t.Errorf("Size = %d, want 5", digest.Size)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	if string(content) != "hello" {
		t.Errorf("content = %q, want hello", content)
	}

	digest, err = WriteFile(path, []byte("hello"))
	if err != nil {
		t.Fatalf("second WriteFile() error = %v", err)
	}

	if !digest.Unchanged {
		t.Error("identical rewrite not reported as unchanged")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (temp files left behind?)", len(entries))
	}
}

func TestEncodeCorpus_LineSeparatorsLiteral(t *testing.T) {
	corpus := models.Corpus{{
		Filename: "a.md",
		Title:    "a\u2028b",
		Tags:     []string{"t\u2029"},
		Body:     "c\u2029d",
	}}

	got, err := EncodeCorpus(corpus, 2)
	if err != nil {
		t.Fatalf("EncodeCorpus() error = %v", err)
	}

	for _, want := range []string{"\"title\": \"a\u2028b\"", "\"body\": \"c\u2029d\"", "\"t\u2029\""} {
		if !strings.Contains(string(got), want) {
			t.Errorf("EncodeCorpus() missing %q in:\n%s", want, got)
		}
	}

	if strings.Contains(string(got), `\u202`) {
		t.Errorf("EncodeCorpus() still escapes line separators:\n%s", got)
	}

	var decoded []models.Article
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if !reflect.DeepEqual(models.Corpus(decoded), corpus) {
		t.Errorf("decoded = %+v, want %+v", decoded, corpus)
	}
}

func TestEncodeCorpus_EscapedTextUntouched(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "Literal escape text", body: `x\u2028y`, want: `"body": "x\\u2028y"`},
		{name: "Backslash then separator", body: "\\\u2028", want: `"body": "\\` + "\u2028" + `"`},
		{name: "Two backslashes then escape text", body: `\\u2029`, want: `"body": "\\\\u2029"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corpus := models.Corpus{{Filename: "a.md", Title: "t", Tags: []string{}, Body: tt.body}}

			got, err := EncodeCorpus(corpus, 2)
			if err != nil {
				t.Fatalf("EncodeCorpus() error = %v", err)
			}

			if !strings.Contains(string(got), tt.want) {
				t.Errorf("EncodeCorpus() = \n%s\nwant substring %s", got, tt.want)
			}

			var decoded []models.Article
			if err := json.Unmarshal(got, &decoded); err != nil {
				t.Fatalf("output is not valid JSON: %v", err)
			}

			if decoded[0].Body != tt.body {
				t.Errorf("Body = %q, want %q", decoded[0].Body, tt.body)
			}
		})
	}
}

func TestWriteFile_NewFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if _, err := WriteFile(path, []byte("[]")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if perm := info.Mode().Perm(); perm&^0644 != 0 {
		t.Errorf("mode = %o, want a subset of 0644", perm)
	}
}

func TestWriteFile_KeepsExistingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := os.Chmod(path, 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteFile(path, []byte("new")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("mode = %o, want 600", perm)
	}
}

func TestWriteFile_StaleTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	if err := os.WriteFile(filepath.Join(dir, ".out.txt.tmp"), []byte("leftover"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteFile(path, []byte("fresh")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(content) != "fresh" {
		t.Errorf("content = %q, want fresh", content)
	}

	if _, err := os.Stat(filepath.Join(dir, ".out.txt.tmp")); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}
