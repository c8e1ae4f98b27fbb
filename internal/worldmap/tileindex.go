package worldmap

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/rose-conv/pkg/formats"
)

// GridTileID is a raw tile id as stored in a TIL cell.
type GridTileID int32

// CatalogIndex is a position in the zone tile catalog.
type CatalogIndex int

// CatalogIndex returns the catalog position the grid id refers to.
func (id GridTileID) CatalogIndex() CatalogIndex {
	return CatalogIndex(id)
}

// TileIndexField is the stitched tile-id grid of a whole map.
type TileIndexField struct {
	Grid[GridTileID]
}

// AssembleTileIndexField copies every 16x16 TIL tile of the layout's
// rectangle into one TilesX x TilesY grid. Ids are copied verbatim.
//
// Tile (x, y) cell (lx, ly) lands at ((x-MinX)*16+lx, (y-MinY)*16+ly).
// Errors are collected the same way as AssembleHeightField.
func AssembleTileIndexField(layout Layout, src TileSource) (*TileIndexField, error) {
	field := &TileIndexField{Grid: newGrid[GridTileID](layout.TilesX, layout.TilesY)}

	var errs error
	for _, c := range layout.Coordinates() {
		til, err := src.IndexTile(c)
		if err != nil {
			errs = multierr.Append(errs, tileError(c, KindIndex, err))
			continue
		}
		errs = multierr.Append(errs, field.place(layout, c, til))
	}

	if errs != nil {
		return nil, errs
	}
	return field, nil
}

func (f *TileIndexField) place(layout Layout, c Coordinate, til *formats.TIL) error {
	if til.Width != IndexTileSize || til.Height != IndexTileSize || len(til.Tiles) != IndexTileSize*IndexTileSize {
		return &UnexpectedTileDimensionsError{
			Coordinate: c,
			Kind:       KindIndex,
			Expected:   Size{Width: IndexTileSize, Height: IndexTileSize},
			Actual:     Size{Width: int(til.Width), Height: int(til.Height)},
		}
	}

	ox, oy := layout.offset(c, IndexTileSize)
	for ly := 0; ly < IndexTileSize; ly++ {
		dst, ok := f.span(ox, oy+ly, IndexTileSize)
		if !ok {
			return fmt.Errorf("%w: %s row %d at (%d, %d)", ErrOutOfBounds, c.FileName(string(KindIndex)), ly, ox, oy+ly)
		}
		for lx := range dst {
			dst[lx] = GridTileID(til.Tiles[ly*IndexTileSize+lx].TileID)
		}
	}
	return nil
}
