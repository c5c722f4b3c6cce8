// Package output serializes a corpus and writes the generated artifacts.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"notecorpus/internal/models"
	"notecorpus/pkg/metadata"
)

// EncodeCorpus renders the corpus as an indented JSON array. Non-ASCII and
// HTML characters are written literally and no trailing newline is added.
func EncodeCorpus(corpus models.Corpus, indent int) ([]byte, error) {
	if corpus == nil {
		corpus = models.Corpus{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))

	if err := enc.Encode(corpus); err != nil {
		return nil, fmt.Errorf("failed to marshal corpus: %w", err)
	}

	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// encoding/json always escapes U+2028 and U+2029, even with HTML escaping off.
var lineSeparatorEscapes = []struct {
	escape  []byte
	literal []byte
}{
	{escape: []byte(`\u2028`), literal: []byte("\u2028")},
	{escape: []byte(`\u2029`), literal: []byte("\u2029")},
}

// unescapeLineSeparators turns the encoder's \u2028 and \u2029 escapes back
// into literal characters. An escape preceded by an odd run of backslashes is
// escaped source text and is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))

	for i := 0; i < len(data); {
		if data[i] == '\\' && precedingBackslashes(data, i)%2 == 0 {
			replaced := false

			for _, sep := range lineSeparatorEscapes {
				if bytes.HasPrefix(data[i:], sep.escape) {
					out = append(out, sep.literal...)
					i += len(sep.escape)
					replaced = true

					break
				}
			}

			if replaced {
				continue
			}
		}

		out = append(out, data[i])
		i++
	}

	return out
}

func precedingBackslashes(data []byte, i int) int {
	n := 0
	for j := i - 1; j >= 0 && data[j] == '\\'; j-- {
		n++
	}

	return n
}

// EncodeTitles renders one title per line, each followed by a newline.
func EncodeTitles(titles []string) []byte {
	var buf bytes.Buffer
	for _, title := range titles {
		buf.WriteString(title)
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// WriteFile writes data to path through a temporary file in the same
// directory, so readers never see a partial artifact. The write is skipped
// when the file already holds identical bytes. A replaced file keeps its
// mode; a new one gets 0644 filtered by the umask.
func WriteFile(path string, data []byte) (metadata.Digest, error) {
	digest := metadata.Digest{
		Path: path,
		Hash: metadata.CalculateHash(data),
		Size: len(data),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return digest, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	same, err := metadata.SameContent(path, data)
	if err != nil {
		return digest, err
	}

	if same {
		digest.Unchanged = true

		return digest, nil
	}

	tmpName := filepath.Join(dir, "."+filepath.Base(path)+".tmp")

	// A leftover from an interrupted run would keep its old mode under O_EXCL.
	if err := os.Remove(tmpName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return digest, fmt.Errorf("failed to remove stale temp file %s: %w", tmpName, err)
	}

	tmp, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return digest, fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return digest, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return digest, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if info, statErr := os.Stat(path); statErr == nil {
		if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
			os.Remove(tmpName)

			return digest, fmt.Errorf("failed to keep mode of %s: %w", path, err)
		}
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)

		return digest, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := metadata.Verify(path, digest.Hash); err != nil {
		return digest, fmt.Errorf("written artifact failed verification: %w", err)
	}

	return digest, nil
}
