package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/rose-conv/pkg/encoding"
)

// ZON format errors.
var (
	ErrTruncatedZONData = errors.New("truncated ZON data")
	ErrInvalidZONBlock  = errors.New("invalid ZON block")
	ErrUnknownRotation  = errors.New("unknown tile rotation")
)

// ZONBlockType identifies a section of a zone file.
type ZONBlockType int32

// Block type constants.
const (
	ZONBlockInfo        ZONBlockType = 0
	ZONBlockEventPoints ZONBlockType = 1
	ZONBlockTextures    ZONBlockType = 2
	ZONBlockTiles       ZONBlockType = 3
	ZONBlockEconomy     ZONBlockType = 4
)

// TileRotation is the orientation applied to a rendered tile.
type TileRotation int32

// Rotation constants, in file order.
const (
	RotationUnknown            TileRotation = 0
	RotationNone               TileRotation = 1
	RotationFlipHorizontal     TileRotation = 2
	RotationFlipVertical       TileRotation = 3
	RotationFlip               TileRotation = 4
	RotationClockwise90        TileRotation = 5
	RotationCounterClockwise90 TileRotation = 6
)

var rotationNames = map[TileRotation]string{
	RotationUnknown:            "Unknown",
	RotationNone:               "None",
	RotationFlipHorizontal:     "FlipHorizontal",
	RotationFlipVertical:       "FlipVertical",
	RotationFlip:               "Flip",
	RotationClockwise90:        "Clockwise90",
	RotationCounterClockwise90: "CounterClockwise90",
}

// String returns the rotation name.
func (r TileRotation) String() string {
	if name, ok := rotationNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int32(r))
}

// MarshalText encodes the rotation by name.
func (r TileRotation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a rotation name, including the "Unknown(n)"
// form String produces for values outside the table.
func (r *TileRotation) UnmarshalText(text []byte) error {
	for rot, name := range rotationNames {
		if name == string(text) {
			*r = rot
			return nil
		}
	}
	if inner, ok := strings.CutPrefix(string(text), "Unknown("); ok {
		if digits, ok := strings.CutSuffix(inner, ")"); ok {
			if n, err := strconv.ParseInt(digits, 10, 32); err == nil {
				*r = TileRotation(n)
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownRotation, text)
}

// ZONInfo holds the zone-wide grid parameters.
type ZONInfo struct {
	ZoneType      int32    `json:"zone_type"`
	Width         int32    `json:"width"`
	Height        int32    `json:"height"`
	GridCount     int32    `json:"grid_count"`
	GridSize      float32  `json:"grid_size"`
	StartPosition [2]int32 `json:"start_position"`

	// Positions is indexed [x][y], Width by Height.
	Positions [][]ZONPosition `json:"positions"`
}

// ZONPosition is the per-grid entry of the info block.
type ZONPosition struct {
	UseMap   bool       `json:"use_map"`
	Position [2]float32 `json:"position"`
}

// ZONEventPoint is a named position in the zone.
type ZONEventPoint struct {
	Position [3]float32 `json:"position"`
	Name     string     `json:"name"`
}

// ZONEconomy holds the economy block rates.
type ZONEconomy struct {
	TickRate              int32 `json:"economy_tick_rate"`
	PopulationBase        int32 `json:"population_base"`
	PopulationGrowthRate  int32 `json:"population_growth_rate"`
	MetalConsumption      int32 `json:"metal_consumption"`
	StoneConsumption      int32 `json:"stone_consumption"`
	WoodConsumption       int32 `json:"wood_consumption"`
	LeatherConsumption    int32 `json:"leather_consumption"`
	ClothConsumption      int32 `json:"cloth_consumption"`
	AlchemyConsumption    int32 `json:"alchemy_consumption"`
	ChemicalConsumption   int32 `json:"chemical_consumption"`
	IndustrialConsumption int32 `json:"industrial_consumption"`
	MedicineConsumption   int32 `json:"medicine_consumption"`
	FoodConsumption       int32 `json:"food_consumption"`
}

// ZONTile is one entry of the zone tile catalog.
type ZONTile struct {
	Layer1   int32        `json:"layer1"`
	Layer2   int32        `json:"layer2"`
	Offset1  int32        `json:"offset1"`
	Offset2  int32        `json:"offset2"`
	Blending bool         `json:"blend"`
	Rotation TileRotation `json:"rotation"`
	TileType int32        `json:"tile_type"`
}

// ZON represents a parsed zone file.
type ZON struct {
	Info        ZONInfo         `json:"info"`
	EventPoints []ZONEventPoint `json:"event_points"`
	Textures    []string        `json:"textures"`
	Tiles       []ZONTile       `json:"tiles"`

	// Economy block
	Name            string     `json:"name"`
	IsUnderground   bool       `json:"is_underground"`
	BackgroundMusic string     `json:"background_music"`
	Sky             string     `json:"sky"`
	Economy         ZONEconomy `json:"economy"`
}

// ParseZON parses a ZON file from raw bytes.
// Blocks of unknown type are skipped.
func ParseZON(data []byte) (*ZON, error) {
	r := bytes.NewReader(data)

	var blockCount int32
	if err := binary.Read(r, binary.LittleEndian, &blockCount); err != nil {
		return nil, fmt.Errorf("%w: reading block count", ErrTruncatedZONData)
	}
	if blockCount < 0 || int64(blockCount)*8 > int64(r.Len()) {
		return nil, fmt.Errorf("%w: block count %d", ErrInvalidZONBlock, blockCount)
	}

	type blockEntry struct {
		Type   ZONBlockType
		Offset int32
	}
	blocks := make([]blockEntry, blockCount)
	if err := binary.Read(r, binary.LittleEndian, blocks); err != nil {
		return nil, fmt.Errorf("%w: reading block table", ErrTruncatedZONData)
	}

	zon := &ZON{
		Info:        ZONInfo{Positions: [][]ZONPosition{}},
		EventPoints: []ZONEventPoint{},
		Textures:    []string{},
		Tiles:       []ZONTile{},
	}

	for _, b := range blocks {
		if b.Offset < 0 || int(b.Offset) > len(data) {
			return nil, fmt.Errorf("%w: type %d at offset %d", ErrInvalidZONBlock, b.Type, b.Offset)
		}
		br := bytes.NewReader(data[b.Offset:])

		var err error
		switch b.Type {
		case ZONBlockInfo:
			zon.Info, err = parseZONInfo(br)
		case ZONBlockEventPoints:
			zon.EventPoints, err = parseZONEventPoints(br)
		case ZONBlockTextures:
			zon.Textures, err = parseZONTextures(br)
		case ZONBlockTiles:
			zon.Tiles, err = parseZONTiles(br)
		case ZONBlockEconomy:
			err = parseZONEconomy(br, zon)
		}
		if err != nil {
			return nil, err
		}
	}

	return zon, nil
}

// readZONString reads a u8 length-prefixed EUC-KR string.
func readZONString(r *bytes.Reader) (string, error) {
	length, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	raw := make([]byte, length)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return "", err
	}
	return encoding.EUCKRToUTF8(raw), nil
}

// zonInfoRecord is the fixed head of the info block.
type zonInfoRecord struct {
	ZoneType      int32
	Width         int32
	Height        int32
	GridCount     int32
	GridSize      float32
	StartPosition [2]int32
}

// zonPositionRecord is one on-disk grid entry (9 bytes).
type zonPositionRecord struct {
	UseMap uint8
	X, Y   float32
}

func parseZONInfo(r *bytes.Reader) (ZONInfo, error) {
	var rec zonInfoRecord
	if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
		return ZONInfo{}, fmt.Errorf("%w: reading zone info", ErrTruncatedZONData)
	}
	if rec.Width < 0 || rec.Height < 0 || int64(rec.Width)*int64(rec.Height)*9 > int64(r.Len()) {
		return ZONInfo{}, fmt.Errorf("%w: zone grid %dx%d", ErrInvalidZONBlock, rec.Width, rec.Height)
	}

	records := make([]zonPositionRecord, int(rec.Width)*int(rec.Height))
	if err := binary.Read(r, binary.LittleEndian, records); err != nil {
		return ZONInfo{}, fmt.Errorf("%w: reading zone positions", ErrTruncatedZONData)
	}

	positions := make([][]ZONPosition, rec.Width)
	for x := range positions {
		positions[x] = make([]ZONPosition, rec.Height)
		for y := range positions[x] {
			p := records[x*int(rec.Height)+y]
			positions[x][y] = ZONPosition{UseMap: p.UseMap != 0, Position: [2]float32{p.X, p.Y}}
		}
	}

	return ZONInfo{
		ZoneType:      rec.ZoneType,
		Width:         rec.Width,
		Height:        rec.Height,
		GridCount:     rec.GridCount,
		GridSize:      rec.GridSize,
		StartPosition: rec.StartPosition,
		Positions:     positions,
	}, nil
}

func parseZONEventPoints(r *bytes.Reader) ([]ZONEventPoint, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: reading event point count", ErrTruncatedZONData)
	}
	// 12 bytes of position plus at least the length byte
	if count < 0 || int64(count)*13 > int64(r.Len()) {
		return nil, fmt.Errorf("%w: event point count %d", ErrInvalidZONBlock, count)
	}

	points := make([]ZONEventPoint, count)
	for i := range points {
		if err := binary.Read(r, binary.LittleEndian, &points[i].Position); err != nil {
			return nil, fmt.Errorf("%w: reading event point %d", ErrTruncatedZONData, i)
		}
		name, err := readZONString(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading event point %d name", ErrTruncatedZONData, i)
		}
		points[i].Name = name
	}
	return points, nil
}

func parseZONEconomy(r *bytes.Reader, zon *ZON) error {
	var err error
	if zon.Name, err = readZONString(r); err != nil {
		return fmt.Errorf("%w: reading zone name", ErrTruncatedZONData)
	}
	var underground int32
	if err := binary.Read(r, binary.LittleEndian, &underground); err != nil {
		return fmt.Errorf("%w: reading underground flag", ErrTruncatedZONData)
	}
	zon.IsUnderground = underground != 0
	if zon.BackgroundMusic, err = readZONString(r); err != nil {
		return fmt.Errorf("%w: reading background music", ErrTruncatedZONData)
	}
	if zon.Sky, err = readZONString(r); err != nil {
		return fmt.Errorf("%w: reading sky", ErrTruncatedZONData)
	}
	if err := binary.Read(r, binary.LittleEndian, &zon.Economy); err != nil {
		return fmt.Errorf("%w: reading economy rates", ErrTruncatedZONData)
	}
	return nil
}

func parseZONTextures(r *bytes.Reader) ([]string, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: reading texture count", ErrTruncatedZONData)
	}
	if count < 0 || int(count) > r.Len() {
		return nil, fmt.Errorf("%w: texture count %d", ErrInvalidZONBlock, count)
	}

	textures := make([]string, count)
	for i := range textures {
		name, err := readZONString(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading texture %d", ErrTruncatedZONData, i)
		}
		textures[i] = name
	}
	return textures, nil
}

// zonTileRecord is the on-disk layout of a catalog entry.
type zonTileRecord struct {
	Layer1   int32
	Layer2   int32
	Offset1  int32
	Offset2  int32
	Blending int32
	Rotation int32
	TileType int32
}

func parseZONTiles(r *bytes.Reader) ([]ZONTile, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: reading tile count", ErrTruncatedZONData)
	}
	if count < 0 || int64(count)*28 > int64(r.Len()) {
		return nil, fmt.Errorf("%w: tile count %d", ErrInvalidZONBlock, count)
	}

	records := make([]zonTileRecord, count)
	if err := binary.Read(r, binary.LittleEndian, records); err != nil {
		return nil, fmt.Errorf("%w: reading tiles", ErrTruncatedZONData)
	}

	tiles := make([]ZONTile, count)
	for i, rec := range records {
		tiles[i] = ZONTile{
			Layer1:   rec.Layer1,
			Layer2:   rec.Layer2,
			Offset1:  rec.Offset1,
			Offset2:  rec.Offset2,
			Blending: rec.Blending != 0,
			Rotation: TileRotation(rec.Rotation),
			TileType: rec.TileType,
		}
	}
	return tiles, nil
}

// ParseZONFile parses a ZON file from disk.
func ParseZONFile(path string) (*ZON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ZON file: %w", err)
	}
	return ParseZON(data)
}
