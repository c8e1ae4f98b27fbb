package formats

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/Faultbox/rose-conv/pkg/encoding"
)

// MarshalBinary encodes the tile in the layout ParseHIM reads.
func (h *HIM) MarshalBinary() ([]byte, error) {
	if len(h.Heights) != int(h.Width)*int(h.Length) {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrInvalidHIMSize, len(h.Heights), h.Width, h.Length)
	}

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, h.Width)
	binary.Write(buf, binary.LittleEndian, h.Length)
	binary.Write(buf, binary.LittleEndian, h.GridCount)
	binary.Write(buf, binary.LittleEndian, h.PatchScale)
	binary.Write(buf, binary.LittleEndian, h.Heights)
	return buf.Bytes(), nil
}

// MarshalBinary encodes the tile in the layout ParseTIL reads.
func (t *TIL) MarshalBinary() ([]byte, error) {
	if len(t.Tiles) != int(t.Width)*int(t.Height) {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrInvalidTILSize, len(t.Tiles), t.Width, t.Height)
	}

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, t.Width)
	binary.Write(buf, binary.LittleEndian, t.Height)
	for _, tile := range t.Tiles {
		buf.WriteByte(tile.BrushID)
		buf.WriteByte(tile.TileIndex)
		buf.WriteByte(tile.TileSet)
		binary.Write(buf, binary.LittleEndian, tile.TileID)
	}
	return buf.Bytes(), nil
}

// MarshalBinary encodes the zone with all five blocks. A nil Info.Positions
// is written as Width x Height unused entries.
func (z *ZON) MarshalBinary() ([]byte, error) {
	info, err := z.marshalInfo()
	if err != nil {
		return nil, err
	}

	events := new(bytes.Buffer)
	binary.Write(events, binary.LittleEndian, int32(len(z.EventPoints)))
	for _, p := range z.EventPoints {
		binary.Write(events, binary.LittleEndian, p.Position)
		if err := writeZONString(events, p.Name); err != nil {
			return nil, err
		}
	}

	economy := new(bytes.Buffer)
	var underground int32
	if z.IsUnderground {
		underground = 1
	}
	if err := writeZONString(economy, z.Name); err != nil {
		return nil, err
	}
	binary.Write(economy, binary.LittleEndian, underground)
	if err := writeZONString(economy, z.BackgroundMusic); err != nil {
		return nil, err
	}
	if err := writeZONString(economy, z.Sky); err != nil {
		return nil, err
	}
	binary.Write(economy, binary.LittleEndian, z.Economy)

	textures := new(bytes.Buffer)
	binary.Write(textures, binary.LittleEndian, int32(len(z.Textures)))
	for _, name := range z.Textures {
		if err := writeZONString(textures, name); err != nil {
			return nil, err
		}
	}

	tiles := new(bytes.Buffer)
	binary.Write(tiles, binary.LittleEndian, int32(len(z.Tiles)))
	for _, t := range z.Tiles {
		var blend int32
		if t.Blending {
			blend = 1
		}
		binary.Write(tiles, binary.LittleEndian, zonTileRecord{
			Layer1:   t.Layer1,
			Layer2:   t.Layer2,
			Offset1:  t.Offset1,
			Offset2:  t.Offset2,
			Blending: blend,
			Rotation: int32(t.Rotation),
			TileType: t.TileType,
		})
	}

	// Tiles last, so a cut file truncates the catalog.
	sections := []struct {
		typ  ZONBlockType
		data []byte
	}{
		{ZONBlockInfo, info},
		{ZONBlockEventPoints, events.Bytes()},
		{ZONBlockEconomy, economy.Bytes()},
		{ZONBlockTextures, textures.Bytes()},
		{ZONBlockTiles, tiles.Bytes()},
	}

	out := new(bytes.Buffer)
	binary.Write(out, binary.LittleEndian, int32(len(sections)))
	offset := int32(4 + 8*len(sections))
	for _, s := range sections {
		binary.Write(out, binary.LittleEndian, int32(s.typ))
		binary.Write(out, binary.LittleEndian, offset)
		offset += int32(len(s.data))
	}
	for _, s := range sections {
		out.Write(s.data)
	}
	return out.Bytes(), nil
}

func (z *ZON) marshalInfo() ([]byte, error) {
	in := z.Info
	if in.Width < 0 || in.Height < 0 {
		return nil, fmt.Errorf("%w: zone grid %dx%d", ErrInvalidZONBlock, in.Width, in.Height)
	}
	if in.Positions != nil && len(in.Positions) != int(in.Width) {
		return nil, fmt.Errorf("%w: %d position columns for width %d", ErrInvalidZONBlock, len(in.Positions), in.Width)
	}

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, zonInfoRecord{
		ZoneType:      in.ZoneType,
		Width:         in.Width,
		Height:        in.Height,
		GridCount:     in.GridCount,
		GridSize:      in.GridSize,
		StartPosition: in.StartPosition,
	})
	for x := 0; x < int(in.Width); x++ {
		var column []ZONPosition
		if in.Positions != nil {
			column = in.Positions[x]
			if len(column) != int(in.Height) {
				return nil, fmt.Errorf("%w: %d positions in column %d for height %d", ErrInvalidZONBlock, len(column), x, in.Height)
			}
		}
		for y := 0; y < int(in.Height); y++ {
			var rec zonPositionRecord
			if column != nil {
				if column[y].UseMap {
					rec.UseMap = 1
				}
				rec.X, rec.Y = column[y].Position[0], column[y].Position[1]
			}
			binary.Write(buf, binary.LittleEndian, rec)
		}
	}
	return buf.Bytes(), nil
}

func writeZONString(buf *bytes.Buffer, s string) error {
	raw := encoding.UTF8ToEUCKR(s)
	if len(raw) > 255 {
		return fmt.Errorf("%w: string %q too long", ErrInvalidZONBlock, s)
	}
	buf.WriteByte(byte(len(raw)))
	buf.Write(raw)
	return nil
}
