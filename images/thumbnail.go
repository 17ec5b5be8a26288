package images

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// Upper bound for generated thumbnails.
const MaxThumbnailWidth = 2000

func DefaultJPEGQuality() int {
	return 90
}

// Dimensions reads the pixel size of an image without decoding it fully.
func Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}

	return cfg.Width, cfg.Height, nil
}

// Thumbnail writes a copy of the image at path scaled to width, keeping the
// aspect ratio. Images narrower than width are not enlarged. The output uses
// the source format; formats imaging cannot write fall back to JPEG.
func Thumbnail(w io.Writer, path string, width int) (imaging.Format, error) {
	if width <= 0 || width > MaxThumbnailWidth {
		return 0, fmt.Errorf("thumbnail width %d out of range", width)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return 0, fmt.Errorf("open image: %w", err)
	}

	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		format = imaging.JPEG
	}

	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(DefaultJPEGQuality())); err != nil {
		return 0, fmt.Errorf("encode thumbnail: %w", err)
	}

	return format, nil
}

// ContentType returns the HTTP content type for an imaging format.
func ContentType(format imaging.Format) string {
	switch format {
	case imaging.PNG:
		return "image/png"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.BMP:
		return "image/bmp"
	default:
		return "image/jpeg"
	}
}
