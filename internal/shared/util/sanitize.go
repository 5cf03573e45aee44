package util

import (
	"errors"
	"strings"
)

// ErrInvalidName is returned for names that are empty or try to climb out of a directory.
var ErrInvalidName = errors.New("invalid file name")

// SanitizeFileName flattens path separators so a storage key maps to a single
// file name, and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidName
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", ErrInvalidName
	}
	return s, nil
}
