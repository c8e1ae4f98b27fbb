package worldmap

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownRasterFormat is returned for an unsupported heightmap format name.
var ErrUnknownRasterFormat = errors.New("unknown raster format")

// RasterFormat selects the heightmap image encoding.
type RasterFormat string

// Supported raster formats.
const (
	FormatPNG  RasterFormat = "png"
	FormatBMP  RasterFormat = "bmp"
	FormatTIFF RasterFormat = "tiff"
)

// ParseRasterFormat validates a format name, case-insensitively.
// An empty name selects PNG.
func ParseRasterFormat(name string) (RasterFormat, error) {
	switch f := RasterFormat(strings.ToLower(name)); f {
	case "":
		return FormatPNG, nil
	case FormatPNG, FormatBMP, FormatTIFF:
		return f, nil
	case "tif":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRasterFormat, name)
}

// Extension returns the file extension including the dot.
func (f RasterFormat) Extension() string {
	return "." + string(f)
}

// Encode writes img in format f.
func (f RasterFormat) Encode(w io.Writer, img image.Image) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownRasterFormat, string(f))
}
