package worldmap

import (
	"image"
	"math"
)

// FlatFieldLevel is the gray level of every pixel when all elevations are equal.
const FlatFieldLevel uint8 = 0

// RasterizeHeightField renders the field as an 8-bit grayscale image of the
// same dimensions, mapping ext.Min to 0 and ext.Max to 255:
//
//	pixel = round(255 * (h - min) / (max - min))
//
// Results are clamped to [0, 255]; padding cells below the minimum become 0.
// Infinite samples, which Extremes ignores, clamp to 0 or 255; NaN becomes 0.
// A flat field (max == min) yields FlatFieldLevel everywhere.
func RasterizeHeightField(field *HeightField, ext Extremes) (*image.Gray, error) {
	if !ext.Valid {
		return nil, ErrEmptyHeightField
	}

	img := image.NewGray(image.Rect(0, 0, field.Width(), field.Height()))

	span := ext.Span()
	if span == 0 {
		for i := range img.Pix {
			img.Pix[i] = FlatFieldLevel
		}
		return img, nil
	}

	lo := float64(ext.Min)
	for y := 0; y < field.Height(); y++ {
		row := field.Row(y)
		pix := img.Pix[y*img.Stride : y*img.Stride+len(row)]
		for x, h := range row {
			pix[x] = normalize(float64(h), lo, span)
		}
	}

	return img, nil
}

func normalize(h, lo, span float64) uint8 {
	v := math.Round(255 * (h - lo) / span)
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
