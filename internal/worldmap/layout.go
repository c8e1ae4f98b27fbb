package worldmap

// Fixed tile shapes.
const (
	HeightTileSize = 65 // samples per side of a HIM tile
	IndexTileSize  = 16 // cells per side of a TIL tile

	// tileAlign is the number of height samples per tilemap cell.
	tileAlign = 4
)

// Layout holds the global grid dimensions derived from a bounding rectangle.
//
// The raw height extent is Columns*65 by Rows*65. It is rounded up to a
// multiple of 4 and grown by one shared edge sample, so a single tile
// yields 69x69 samples and 17x17 tilemap cells.
type Layout struct {
	Bounds Bounds
	Width  int // height samples per row
	Height int // height sample rows
	TilesX int // tilemap cells per row
	TilesY int // tilemap rows
}

// NewLayout computes the padded grid dimensions for b.
func NewLayout(b Bounds) Layout {
	width := alignUp(b.Columns()*HeightTileSize, tileAlign) + 1
	height := alignUp(b.Rows()*HeightTileSize, tileAlign) + 1

	return Layout{
		Bounds: b,
		Width:  width,
		Height: height,
		TilesX: width / tileAlign,
		TilesY: height / tileAlign,
	}
}

// Coordinates returns every coordinate of the rectangle, rows outermost.
func (l Layout) Coordinates() []Coordinate {
	coords := make([]Coordinate, 0, l.Bounds.Columns()*l.Bounds.Rows())
	for y := l.Bounds.MinY; y <= l.Bounds.MaxY; y++ {
		for x := l.Bounds.MinX; x <= l.Bounds.MaxX; x++ {
			coords = append(coords, Coordinate{X: x, Y: y})
		}
	}
	return coords
}

// offset returns the global position of local cell (0, 0) of tile c
// for tiles that are size cells wide.
func (l Layout) offset(c Coordinate, size int) (int, int) {
	return (c.X - l.Bounds.MinX) * size, (c.Y - l.Bounds.MinY) * size
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}
