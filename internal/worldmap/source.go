package worldmap

import (
	"errors"
	"fmt"

	"github.com/Faultbox/rose-conv/pkg/formats"
)

// TileSource looks up the per-coordinate tiles of a map.
// Implementations return an error wrapping ErrTileNotFound when the
// coordinate has no file.
type TileSource interface {
	HeightTile(c Coordinate) (*formats.HIM, error)
	IndexTile(c Coordinate) (*formats.TIL, error)
}

// DirSource reads tiles from the directory described by a Scan.
type DirSource struct {
	scan *Scan
}

// NewDirSource creates a tile source over a scanned map directory.
func NewDirSource(scan *Scan) *DirSource {
	return &DirSource{scan: scan}
}

// HeightTile reads "<x>_<y>.HIM".
func (s *DirSource) HeightTile(c Coordinate) (*formats.HIM, error) {
	path, err := s.resolve(c, HeightExt)
	if err != nil {
		return nil, err
	}
	return formats.ParseHIMFile(path)
}

// IndexTile reads "<x>_<y>.TIL".
func (s *DirSource) IndexTile(c Coordinate) (*formats.TIL, error) {
	path, err := s.resolve(c, IndexExt)
	if err != nil {
		return nil, err
	}
	return formats.ParseTILFile(path)
}

// Zone reads "<name>.ZON".
func (s *DirSource) Zone(name string) (*formats.ZON, error) {
	path, ok := s.scan.Path(name + ZoneExt)
	if !ok {
		return nil, fmt.Errorf("%w: %s.ZON", ErrZoneNotFound, name)
	}
	return formats.ParseZONFile(path)
}

func (s *DirSource) resolve(c Coordinate, ext string) (string, error) {
	name := c.FileName(ext)
	path, ok := s.scan.Path(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTileNotFound, name)
	}
	return path, nil
}

// tileError turns a lookup failure for c into the error reported to the caller.
func tileError(c Coordinate, kind TileKind, err error) error {
	if errors.Is(err, ErrTileNotFound) {
		return &MissingTileError{Coordinate: c, Kind: kind}
	}
	return fmt.Errorf("reading %s: %w", c.FileName(string(kind)), err)
}

// progressSource reports every tile lookup to a callback.
type progressSource struct {
	TileSource
	done  int
	total int
	fn    func(done, total int)
}

func (p *progressSource) HeightTile(c Coordinate) (*formats.HIM, error) {
	defer p.step()
	return p.TileSource.HeightTile(c)
}

func (p *progressSource) IndexTile(c Coordinate) (*formats.TIL, error) {
	defer p.step()
	return p.TileSource.IndexTile(c)
}

func (p *progressSource) step() {
	p.done++
	p.fn(p.done, p.total)
}
