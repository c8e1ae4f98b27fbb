package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// TIL format errors.
var (
	ErrTruncatedTILData = errors.New("truncated TIL data")
	ErrInvalidTILSize   = errors.New("invalid TIL dimensions")
)

const maxTILSide = 256

// TILTile is a single cell of a tile-index tile.
type TILTile struct {
	BrushID   uint8
	TileIndex uint8
	TileSet   uint8
	TileID    int32 // Index into the zone's tile catalog
}

// TIL represents a parsed tile-index tile.
// Tiles are stored row-major: Tiles[y*Width+x].
type TIL struct {
	Width  int32
	Height int32
	Tiles  []TILTile
}

// GetTile returns the cell at column x, row y.
// Returns nil if coordinates are out of bounds.
func (t *TIL) GetTile(x, y int) *TILTile {
	if x < 0 || y < 0 || x >= int(t.Width) || y >= int(t.Height) {
		return nil
	}
	return &t.Tiles[y*int(t.Width)+x]
}

// ParseTIL parses a TIL file from raw bytes.
func ParseTIL(data []byte) (*TIL, error) {
	if len(data) < 8 {
		return nil, ErrTruncatedTILData
	}

	r := bytes.NewReader(data)
	til := &TIL{}

	if err := binary.Read(r, binary.LittleEndian, &til.Width); err != nil {
		return nil, fmt.Errorf("%w: reading width", ErrTruncatedTILData)
	}
	if err := binary.Read(r, binary.LittleEndian, &til.Height); err != nil {
		return nil, fmt.Errorf("%w: reading height", ErrTruncatedTILData)
	}

	if til.Width <= 0 || til.Height <= 0 || til.Width > maxTILSide || til.Height > maxTILSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTILSize, til.Width, til.Height)
	}

	count := int(til.Width) * int(til.Height)
	til.Tiles = make([]TILTile, count)
	for i := 0; i < count; i++ {
		tile, err := parseTILTile(r)
		if err != nil {
			return nil, fmt.Errorf("parsing tile %d: %w", i, err)
		}
		til.Tiles[i] = tile
	}

	return til, nil
}

// parseTILTile reads one 7-byte cell.
func parseTILTile(r *bytes.Reader) (TILTile, error) {
	var head [3]byte
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		return TILTile{}, fmt.Errorf("%w: reading brush", ErrTruncatedTILData)
	}

	tile := TILTile{
		BrushID:   head[0],
		TileIndex: head[1],
		TileSet:   head[2],
	}
	if err := binary.Read(r, binary.LittleEndian, &tile.TileID); err != nil {
		return TILTile{}, fmt.Errorf("%w: reading tile id", ErrTruncatedTILData)
	}

	return tile, nil
}

// ParseTILFile parses a TIL file from disk.
func ParseTILFile(path string) (*TIL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TIL file: %w", err)
	}
	return ParseTIL(data)
}
