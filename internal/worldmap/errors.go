package worldmap

import (
	"errors"
	"fmt"
)

// Map conversion errors.
var (
	ErrNotDirectory     = errors.New("map path is not a directory")
	ErrNoTilesFound     = errors.New("no height tiles found")
	ErrTileNotFound     = errors.New("tile file not found")
	ErrZoneNotFound     = errors.New("zone file not found")
	ErrEmptyHeightField = errors.New("height field has no samples")
	ErrOutOfBounds      = errors.New("grid cell out of bounds")
)

// TileKind names the per-coordinate file a tile was read from.
type TileKind string

// Tile kinds.
const (
	KindHeight TileKind = "HIM"
	KindIndex  TileKind = "TIL"
)

// Size is a width x height pair.
type Size struct {
	Width  int
	Height int
}

// String returns the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// CoordinateParseError reports a tile file whose name is not "<x>_<y>.<ext>".
type CoordinateParseError struct {
	File string
	Err  error
}

func (e *CoordinateParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid tile coordinate in file name %q: %v", e.File, e.Err)
	}
	return fmt.Sprintf("invalid tile coordinate in file name %q", e.File)
}

func (e *CoordinateParseError) Unwrap() error { return e.Err }

// MissingTileError reports a coordinate inside the bounding rectangle with no tile file.
type MissingTileError struct {
	Coordinate Coordinate
	Kind       TileKind
}

func (e *MissingTileError) Error() string {
	return fmt.Sprintf("missing %s tile %s", e.Kind, e.Coordinate.FileName(string(e.Kind)))
}

func (e *MissingTileError) Is(target error) bool { return target == ErrTileNotFound }

// UnexpectedTileDimensionsError reports a tile whose shape breaks the fixed tile size.
type UnexpectedTileDimensionsError struct {
	Coordinate Coordinate
	Kind       TileKind
	Expected   Size
	Actual     Size
}

func (e *UnexpectedTileDimensionsError) Error() string {
	return fmt.Sprintf("unexpected %s dimensions. Expected %s: %s (%s)",
		e.Kind, e.Expected, e.Coordinate.FileName(string(e.Kind)), e.Actual)
}

// LayerIndexError reports a catalog entry whose combined layer index falls
// outside the zone texture list.
type LayerIndexError struct {
	Tile     CatalogIndex
	Layer    int // 1 or 2
	Index    int32
	Textures int
}

func (e *LayerIndexError) Error() string {
	return fmt.Sprintf("tile %d layer%d index %d outside %d textures", e.Tile, e.Layer, e.Index, e.Textures)
}

// CatalogIndexError reports a grid cell whose tile id has no catalog entry.
// Only the first cell per distinct id is reported.
type CatalogIndexError struct {
	ID      GridTileID
	X, Y    int
	Catalog int
}

func (e *CatalogIndexError) Error() string {
	return fmt.Sprintf("tile id %d at cell (%d, %d) outside catalog of %d tiles", e.ID, e.X, e.Y, e.Catalog)
}
