package worldmap

import (
	"errors"
	"math"
	"testing"
)

func fieldFromRows(rows [][]float32) *HeightField {
	f := &HeightField{Grid: newGrid[float32](len(rows[0]), len(rows))}
	for y, row := range rows {
		for x, v := range row {
			f.Set(x, y, v)
		}
	}
	return f
}

func extremesOf(f *HeightField) Extremes {
	var e Extremes
	for y := 0; y < f.Height(); y++ {
		for _, v := range f.Row(y) {
			e.Add(v)
		}
	}
	return e
}

func TestRasterizeHeightField_MinMax(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float32
	}{
		{"positive", [][]float32{{10, 20, 30}, {40, 50, 60}}},
		{"negative", [][]float32{{-500, -250}, {-100, -0.5}}},
		{"mixed", [][]float32{{-1e4, 0, 3.25}, {1e4, 7, -2}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			field := fieldFromRows(tc.rows)
			ext := extremesOf(field)

			img, err := RasterizeHeightField(field, ext)
			if err != nil {
				t.Fatalf("RasterizeHeightField failed: %v", err)
			}

			b := img.Bounds()
			if b.Dx() != field.Width() || b.Dy() != field.Height() {
				t.Fatalf("image %dx%d, field %dx%d", b.Dx(), b.Dy(), field.Width(), field.Height())
			}

			for y, row := range tc.rows {
				for x, h := range row {
					got := img.GrayAt(x, y).Y
					if h == ext.Min && got != 0 {
						t.Errorf("min at (%d, %d) = %d, want 0", x, y, got)
					}
					if h == ext.Max && got != 255 {
						t.Errorf("max at (%d, %d) = %d, want 255", x, y, got)
					}
				}
			}
		})
	}
}

func TestRasterizeHeightField_WideRange(t *testing.T) {
	// max - min exceeds the float32 range
	rows := make([][]float32, HeightTileSize)
	for y := range rows {
		rows[y] = make([]float32, HeightTileSize)
		for x := range rows[y] {
			rows[y][x] = 3e38
		}
	}
	rows[10][20] = -3e38

	field := fieldFromRows(rows)
	img, err := RasterizeHeightField(field, extremesOf(field))
	if err != nil {
		t.Fatalf("RasterizeHeightField failed: %v", err)
	}

	if got := img.GrayAt(20, 10).Y; got != 0 {
		t.Errorf("min pixel = %d, want 0", got)
	}
	if got := img.GrayAt(0, 0).Y; got != 255 {
		t.Errorf("max pixel = %d, want 255", got)
	}
}

func TestRasterizeHeightField_InfiniteSamples(t *testing.T) {
	field := fieldFromRows([][]float32{{float32(math.Inf(-1)), 0, 10, float32(math.Inf(1))}})
	ext := extremesOf(field)
	if ext.Min != 0 || ext.Max != 10 {
		t.Fatalf("infinite samples leaked into extremes: %+v", ext)
	}

	img, err := RasterizeHeightField(field, ext)
	if err != nil {
		t.Fatalf("RasterizeHeightField failed: %v", err)
	}

	want := []uint8{0, 0, 255, 255}
	for x, w := range want {
		if got := img.GrayAt(x, 0).Y; got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}
}

func TestRasterizeHeightField_Rounding(t *testing.T) {
	// 255 * 0.5 = 127.5 rounds half away from zero
	field := fieldFromRows([][]float32{{0, 1, 2}})
	img, err := RasterizeHeightField(field, extremesOf(field))
	if err != nil {
		t.Fatalf("RasterizeHeightField failed: %v", err)
	}

	want := []uint8{0, 128, 255}
	for x, w := range want {
		if got := img.GrayAt(x, 0).Y; got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}
}

func TestRasterizeHeightField_Clamps(t *testing.T) {
	// Extremes narrower than the data, as with zero padding below the minimum
	field := fieldFromRows([][]float32{{-50, 10, 20, 90, float32(math.NaN())}})
	ext := Extremes{Min: 10, Max: 20, Valid: true}

	img, err := RasterizeHeightField(field, ext)
	if err != nil {
		t.Fatalf("RasterizeHeightField failed: %v", err)
	}

	want := []uint8{0, 0, 255, 255, 0}
	for x, w := range want {
		if got := img.GrayAt(x, 0).Y; got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}
}

func TestRasterizeHeightField_FlatField(t *testing.T) {
	field := fieldFromRows([][]float32{{7, 7}, {7, 7}})
	ext := extremesOf(field)

	img, err := RasterizeHeightField(field, ext)
	if err != nil {
		t.Fatalf("flat field should not fail: %v", err)
	}

	for i, p := range img.Pix {
		if p != FlatFieldLevel {
			t.Errorf("pixel %d = %d, want FlatFieldLevel %d", i, p, FlatFieldLevel)
		}
	}
}

func TestRasterizeHeightField_Empty(t *testing.T) {
	field := fieldFromRows([][]float32{{1}})

	_, err := RasterizeHeightField(field, Extremes{})
	if !errors.Is(err, ErrEmptyHeightField) {
		t.Errorf("expected ErrEmptyHeightField, got %v", err)
	}
}
