// Package metadata provides content digests for generated artifacts.
package metadata

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrHashMismatch is returned by Verify when file content does not match the expected digest.
var ErrHashMismatch = errors.New("hash mismatch")

// Digest describes the content of one written artifact.
type Digest struct {
	Path      string
	Hash      string
	Size      int
	Unchanged bool
}

// CalculateHash computes the SHA-256 hash of data as lowercase hex.
func CalculateHash(data []byte) string {
	hash := sha256.Sum256(data)

	return hex.EncodeToString(hash[:])
}

// SameContent reports whether the file at path already holds exactly data.
// A missing file is not an error.
func SameContent(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return bytes.Equal(existing, data), nil
}

// Verify checks that the file at path hashes to want.
func Verify(path, want string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	got := CalculateHash(data)
	if got != want {
		return fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, want, got)
	}

	return nil
}
