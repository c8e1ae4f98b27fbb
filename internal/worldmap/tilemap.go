package worldmap

import (
	"go.uber.org/multierr"

	"github.com/Faultbox/rose-conv/pkg/formats"
)

// TilemapTile is a catalog entry with its layer offsets applied.
type TilemapTile struct {
	Layer1   int32                `json:"layer1"`
	Layer2   int32                `json:"layer2"`
	Rotation formats.TileRotation `json:"rotation"`
}

// Tilemap is the exported tile description of a map. Tilemap cells are
// indices into Tiles, which in turn index Textures through their layers.
type Tilemap struct {
	Textures []string       `json:"textures"`
	Tiles    []TilemapTile  `json:"tiles"`
	Tilemap  [][]GridTileID `json:"tilemap"`
}

// MergeZone resolves the zone tile catalog and attaches the stitched grid.
//
// Entries keep catalog order; Layer1 = layer1+offset1 and Layer2 =
// layer2+offset2. Neither the layer sums nor the grid ids are checked
// here, see Validate.
func MergeZone(zone *formats.ZON, field *TileIndexField) *Tilemap {
	tm := &Tilemap{
		Textures: append([]string{}, zone.Textures...),
		Tiles:    make([]TilemapTile, len(zone.Tiles)),
		Tilemap:  field.Rows(),
	}

	for i, t := range zone.Tiles {
		tm.Tiles[i] = TilemapTile{
			Layer1:   t.Layer1 + t.Offset1,
			Layer2:   t.Layer2 + t.Offset2,
			Rotation: t.Rotation,
		}
	}

	return tm
}

// Tile returns the resolved catalog entry for idx.
func (t *Tilemap) Tile(idx CatalogIndex) (TilemapTile, bool) {
	if idx < 0 || int(idx) >= len(t.Tiles) {
		return TilemapTile{}, false
	}
	return t.Tiles[idx], true
}

// Validate reports layer sums outside the texture list and grid ids
// outside the catalog. The tilemap itself is left untouched.
func (t *Tilemap) Validate() error {
	var errs error

	for i, tile := range t.Tiles {
		for layer, index := range [2]int32{tile.Layer1, tile.Layer2} {
			if index < 0 || int(index) >= len(t.Textures) {
				errs = multierr.Append(errs, &LayerIndexError{
					Tile:     CatalogIndex(i),
					Layer:    layer + 1,
					Index:    index,
					Textures: len(t.Textures),
				})
			}
		}
	}

	seen := make(map[GridTileID]bool)
	for y, row := range t.Tilemap {
		for x, id := range row {
			if _, ok := t.Tile(id.CatalogIndex()); ok || seen[id] {
				continue
			}
			seen[id] = true
			errs = multierr.Append(errs, &CatalogIndexError{ID: id, X: x, Y: y, Catalog: len(t.Tiles)})
		}
	}

	return errs
}
