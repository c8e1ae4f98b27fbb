package worldmap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/rose-conv/pkg/encoding"
)

// File extensions of the per-map inputs, compared case-insensitively.
const (
	HeightExt = ".him"
	IndexExt  = ".til"
	ZoneExt   = ".zon"
)

// Coordinate is the grid position of one world tile.
type Coordinate struct {
	X int
	Y int
}

// String returns the coordinate as "X_Y", the file stem convention.
func (c Coordinate) String() string {
	return fmt.Sprintf("%d_%d", c.X, c.Y)
}

// FileName returns the tile file name for the given extension, e.g. "31_30.HIM".
func (c Coordinate) FileName(ext string) string {
	return c.String() + "." + strings.TrimPrefix(ext, ".")
}

// Bounds is the inclusive bounding rectangle of a coordinate set.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
}

// Columns returns the number of tile columns covered.
func (b Bounds) Columns() int { return b.MaxX - b.MinX + 1 }

// Rows returns the number of tile rows covered.
func (b Bounds) Rows() int { return b.MaxY - b.MinY + 1 }

// Scan is the result of inspecting a map directory.
type Scan struct {
	Dir         string
	Coordinates []Coordinate // sorted by Y, then X
	Bounds      Bounds

	files map[string]string // folded name -> name on disk
}

// Path resolves a file name inside the scanned directory case-insensitively.
func (s *Scan) Path(name string) (string, bool) {
	actual, ok := s.files[encoding.FoldName(name)]
	if !ok {
		return "", false
	}
	return filepath.Join(s.Dir, actual), true
}

// Missing returns coordinates inside Bounds that have no height tile.
func (s *Scan) Missing() []Coordinate {
	present := make(map[Coordinate]bool, len(s.Coordinates))
	for _, c := range s.Coordinates {
		present[c] = true
	}

	var missing []Coordinate
	for y := s.Bounds.MinY; y <= s.Bounds.MaxY; y++ {
		for x := s.Bounds.MinX; x <= s.Bounds.MaxX; x++ {
			if c := (Coordinate{X: x, Y: y}); !present[c] {
				missing = append(missing, c)
			}
		}
	}
	return missing
}

// ScanCoordinates discovers tile coordinates from "<x>_<y>.HIM" file names in dir.
func ScanCoordinates(dir string) (*Scan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading map directory: %w", err)
	}

	scan := &Scan{
		Dir:   dir,
		files: make(map[string]string, len(entries)),
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		scan.files[encoding.FoldName(name)] = name

		ext := filepath.Ext(name)
		if encoding.FoldName(ext) != HeightExt {
			continue
		}

		c, err := parseCoordinate(strings.TrimSuffix(name, ext))
		if err != nil {
			return nil, &CoordinateParseError{File: name, Err: err}
		}
		scan.Coordinates = append(scan.Coordinates, c)
	}

	if len(scan.Coordinates) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTilesFound, dir)
	}

	sort.Slice(scan.Coordinates, func(i, j int) bool {
		a, b := scan.Coordinates[i], scan.Coordinates[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	first := scan.Coordinates[0]
	scan.Bounds = Bounds{MinX: first.X, MaxX: first.X, MinY: first.Y, MaxY: first.Y}
	for _, c := range scan.Coordinates[1:] {
		scan.Bounds.MinX = min(scan.Bounds.MinX, c.X)
		scan.Bounds.MaxX = max(scan.Bounds.MaxX, c.X)
		scan.Bounds.MinY = min(scan.Bounds.MinY, c.Y)
		scan.Bounds.MaxY = max(scan.Bounds.MaxY, c.Y)
	}

	return scan, nil
}

// parseCoordinate parses a file stem of the form "<x>_<y>".
func parseCoordinate(stem string) (Coordinate, error) {
	parts := strings.Split(stem, "_")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("expected 2 segments, got %d", len(parts))
	}

	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return Coordinate{}, fmt.Errorf("x segment: %w", err)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return Coordinate{}, fmt.Errorf("y segment: %w", err)
	}

	return Coordinate{X: x, Y: y}, nil
}
