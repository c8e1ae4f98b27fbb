package worldmap

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/rose-conv/pkg/formats"
)

// HeightField is the stitched elevation grid of a whole map.
type HeightField struct {
	Grid[float32]
}

// AssembleHeightField copies every 65x65 height tile of the layout's
// rectangle into one zero-initialized grid and tracks the elevation range.
//
// Tile (x, y) sample (lx, ly) lands at ((x-MinX)*65+lx, (y-MinY)*65+ly).
// Every coordinate is visited; missing or misshapen tiles are collected
// and returned together, and no field is returned if any occurred.
func AssembleHeightField(layout Layout, src TileSource) (*HeightField, Extremes, error) {
	field := &HeightField{Grid: newGrid[float32](layout.Width, layout.Height)}

	var (
		ext  Extremes
		errs error
	)
	for _, c := range layout.Coordinates() {
		him, err := src.HeightTile(c)
		if err != nil {
			errs = multierr.Append(errs, tileError(c, KindHeight, err))
			continue
		}

		tileExt, err := field.place(layout, c, him)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		ext = ext.Merge(tileExt)
	}

	if errs != nil {
		return nil, Extremes{}, errs
	}
	return field, ext, nil
}

// place copies one height tile into the field and returns its extremes.
func (f *HeightField) place(layout Layout, c Coordinate, him *formats.HIM) (Extremes, error) {
	if him.Width != HeightTileSize || him.Length != HeightTileSize || len(him.Heights) != HeightTileSize*HeightTileSize {
		return Extremes{}, &UnexpectedTileDimensionsError{
			Coordinate: c,
			Kind:       KindHeight,
			Expected:   Size{Width: HeightTileSize, Height: HeightTileSize},
			Actual:     Size{Width: int(him.Width), Height: int(him.Length)},
		}
	}

	ox, oy := layout.offset(c, HeightTileSize)

	var ext Extremes
	for ly := 0; ly < HeightTileSize; ly++ {
		src := him.Heights[ly*HeightTileSize : (ly+1)*HeightTileSize]
		dst, ok := f.span(ox, oy+ly, HeightTileSize)
		if !ok {
			return Extremes{}, fmt.Errorf("%w: %s row %d at (%d, %d)", ErrOutOfBounds, c.FileName(string(KindHeight)), ly, ox, oy+ly)
		}
		copy(dst, src)
		for _, v := range src {
			ext.Add(v)
		}
	}

	return ext, nil
}
