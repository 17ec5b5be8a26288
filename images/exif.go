package images

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

var ErrNoExif = errors.New("no EXIF data")

// ReadDescription returns the EXIF ImageDescription of the file at path.
func ReadDescription(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return "", ErrNoExif
	}

	tag, err := x.Get(exif.ImageDescription)
	if err != nil {
		return "", ErrNoExif
	}

	desc, err := tag.StringVal()
	if err != nil {
		return "", fmt.Errorf("decode image description: %w", err)
	}

	desc = strings.TrimSpace(desc)
	if desc == "" {
		return "", ErrNoExif
	}

	return desc, nil
}
