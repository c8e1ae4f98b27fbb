package worldmap

import (
	"fmt"

	"github.com/Faultbox/rose-conv/pkg/formats"
)

// fakeSource serves tiles from memory.
type fakeSource struct {
	heights map[Coordinate]*formats.HIM
	indices map[Coordinate]*formats.TIL
	err     error // returned for every lookup when set
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		heights: make(map[Coordinate]*formats.HIM),
		indices: make(map[Coordinate]*formats.TIL),
	}
}

func (s *fakeSource) HeightTile(c Coordinate) (*formats.HIM, error) {
	if s.err != nil {
		return nil, s.err
	}
	him, ok := s.heights[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTileNotFound, c)
	}
	return him, nil
}

func (s *fakeSource) IndexTile(c Coordinate) (*formats.TIL, error) {
	if s.err != nil {
		return nil, s.err
	}
	til, ok := s.indices[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTileNotFound, c)
	}
	return til, nil
}

// makeHIM builds a height tile whose sample (x, y) is fn(x, y).
func makeHIM(width, length int, fn func(x, y int) float32) *formats.HIM {
	him := &formats.HIM{
		Width:      int32(width),
		Length:     int32(length),
		GridCount:  4,
		PatchScale: 250,
		Heights:    make([]float32, width*length),
	}
	for y := 0; y < length; y++ {
		for x := 0; x < width; x++ {
			him.Heights[y*width+x] = fn(x, y)
		}
	}
	return him
}

func constHIM(v float32) *formats.HIM {
	return makeHIM(HeightTileSize, HeightTileSize, func(int, int) float32 { return v })
}

// makeTIL builds a tile-index tile whose cell (x, y) has id fn(x, y).
func makeTIL(width, height int, fn func(x, y int) int32) *formats.TIL {
	til := &formats.TIL{
		Width:  int32(width),
		Height: int32(height),
		Tiles:  make([]formats.TILTile, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			til.Tiles[y*width+x] = formats.TILTile{TileID: fn(x, y)}
		}
	}
	return til
}

func constTIL(id int32) *formats.TIL {
	return makeTIL(IndexTileSize, IndexTileSize, func(int, int) int32 { return id })
}
