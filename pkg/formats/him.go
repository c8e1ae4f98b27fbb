// Package formats provides readers for ROSE Online map file formats.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// HIM format errors.
var (
	ErrTruncatedHIMData = errors.New("truncated HIM data")
	ErrInvalidHIMSize   = errors.New("invalid HIM dimensions")
)

// maxHIMSide bounds allocation for corrupt headers. Real height tiles are 65x65.
const maxHIMSide = 1024

// HIM represents a parsed height map tile.
// Heights are stored row-major: Heights[y*Width+x].
type HIM struct {
	Width      int32
	Length     int32
	GridCount  int32
	PatchScale float32
	Heights    []float32
}

// Height returns the altitude at column x, row y.
// Returns 0 if coordinates are out of bounds.
func (h *HIM) Height(x, y int) float32 {
	if x < 0 || y < 0 || x >= int(h.Width) || y >= int(h.Length) {
		return 0
	}
	return h.Heights[y*int(h.Width)+x]
}

// GetAltitudeRange returns the minimum and maximum altitude in the tile.
func (h *HIM) GetAltitudeRange() (min, max float32) {
	if len(h.Heights) == 0 {
		return 0, 0
	}

	min, max = h.Heights[0], h.Heights[0]
	for _, v := range h.Heights[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// ParseHIM parses a HIM file from raw bytes.
// Patch and quad-tree data following the height samples is not read.
func ParseHIM(data []byte) (*HIM, error) {
	if len(data) < 16 {
		return nil, ErrTruncatedHIMData
	}

	r := bytes.NewReader(data)
	him := &HIM{}

	if err := binary.Read(r, binary.LittleEndian, &him.Width); err != nil {
		return nil, fmt.Errorf("%w: reading width", ErrTruncatedHIMData)
	}
	if err := binary.Read(r, binary.LittleEndian, &him.Length); err != nil {
		return nil, fmt.Errorf("%w: reading length", ErrTruncatedHIMData)
	}
	if err := binary.Read(r, binary.LittleEndian, &him.GridCount); err != nil {
		return nil, fmt.Errorf("%w: reading grid count", ErrTruncatedHIMData)
	}
	if err := binary.Read(r, binary.LittleEndian, &him.PatchScale); err != nil {
		return nil, fmt.Errorf("%w: reading patch scale", ErrTruncatedHIMData)
	}

	if him.Width <= 0 || him.Length <= 0 || him.Width > maxHIMSide || him.Length > maxHIMSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidHIMSize, him.Width, him.Length)
	}

	him.Heights = make([]float32, int(him.Width)*int(him.Length))
	if err := binary.Read(r, binary.LittleEndian, him.Heights); err != nil {
		return nil, fmt.Errorf("%w: reading %d heights", ErrTruncatedHIMData, len(him.Heights))
	}

	return him, nil
}

// ParseHIMFile parses a HIM file from disk.
func ParseHIMFile(path string) (*HIM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading HIM file: %w", err)
	}
	return ParseHIM(data)
}
