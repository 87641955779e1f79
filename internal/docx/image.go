package docx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Word measures drawings in English Metric Units. Screen pixels are
// assumed to be 96 per inch.
const (
	emuPerInch  = 914400
	emuPerPixel = 9525

	maxImageWidthEMU  = 6 * emuPerInch
	maxImageHeightEMU = 8 * emuPerInch
)

// ImageInfo describes a decoded raster image header.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// Inspect decodes image metadata without loading pixel data. PNG,
// JPEG, GIF, BMP, and TIFF are recognized.
func Inspect(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("decoding image header: %w", err)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// FitPage scales pixel dimensions into the printable image box,
// preserving aspect ratio. Width is fitted first, then height is
// clamped if the result would overflow the page.
func FitPage(widthPx, heightPx int) (cx, cy int64) {
	if widthPx < 1 {
		widthPx = 1
	}
	if heightPx < 1 {
		heightPx = 1
	}
	aspect := float64(widthPx) / float64(heightPx)
	cx = maxImageWidthEMU
	cy = int64(float64(cx) / aspect)
	if cy > maxImageHeightEMU {
		cy = maxImageHeightEMU
		cx = int64(float64(cy) * aspect)
	}
	return cx, cy
}
