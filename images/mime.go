package images

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMIME sniffs the content of the file at path and returns its major
// and minor MIME type, e.g. "image" and "png".
func DetectMIME(path string) (string, string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", "", fmt.Errorf("detect MIME type: %w", err)
	}

	return SplitMIME(m.String())
}

// SplitMIME splits "type/subtype; params" into type and subtype.
func SplitMIME(s string) (string, string, error) {
	s, _, _ = strings.Cut(s, ";")

	major, minor, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || major == "" || minor == "" {
		return "", "", fmt.Errorf("malformed MIME type %q", s)
	}

	return major, minor, nil
}
