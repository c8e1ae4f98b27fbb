package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// createTestHIM creates a HIM file whose sample at (x, y) is x + 100*y.
func createTestHIM(width, length int32) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, width)
	binary.Write(buf, binary.LittleEndian, length)
	binary.Write(buf, binary.LittleEndian, int32(4))
	binary.Write(buf, binary.LittleEndian, float32(250))

	for y := int32(0); y < length; y++ {
		for x := int32(0); x < width; x++ {
			binary.Write(buf, binary.LittleEndian, float32(x+100*y))
		}
	}
	return buf.Bytes()
}

func TestParseHIM_ValidFile(t *testing.T) {
	him, err := ParseHIM(createTestHIM(65, 65))
	if err != nil {
		t.Fatalf("ParseHIM failed: %v", err)
	}

	if him.Width != 65 || him.Length != 65 {
		t.Errorf("expected 65x65, got %dx%d", him.Width, him.Length)
	}
	if him.GridCount != 4 {
		t.Errorf("expected grid count 4, got %d", him.GridCount)
	}
	if him.PatchScale != 250 {
		t.Errorf("expected patch scale 250, got %f", him.PatchScale)
	}
	if len(him.Heights) != 65*65 {
		t.Fatalf("expected %d heights, got %d", 65*65, len(him.Heights))
	}

	if got := him.Height(3, 2); got != 203 {
		t.Errorf("Height(3, 2) = %f, want 203", got)
	}
	if got := him.Height(64, 64); got != 6464 {
		t.Errorf("Height(64, 64) = %f, want 6464", got)
	}
}

func TestParseHIM_OutOfBounds(t *testing.T) {
	him, err := ParseHIM(createTestHIM(2, 2))
	if err != nil {
		t.Fatalf("ParseHIM failed: %v", err)
	}

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := him.Height(c[0], c[1]); got != 0 {
			t.Errorf("Height(%d, %d) = %f, want 0", c[0], c[1], got)
		}
	}
}

func TestParseHIM_AltitudeRange(t *testing.T) {
	him, err := ParseHIM(createTestHIM(3, 3))
	if err != nil {
		t.Fatalf("ParseHIM failed: %v", err)
	}

	min, max := him.GetAltitudeRange()
	if min != 0 || max != 202 {
		t.Errorf("expected range [0, 202], got [%f, %f]", min, max)
	}
}

func TestParseHIM_TruncatedData(t *testing.T) {
	data := createTestHIM(65, 65)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"header only", data[:16]},
		{"missing last sample", data[:len(data)-4]},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseHIM(tc.data)
			if !errors.Is(err, ErrTruncatedHIMData) {
				t.Errorf("expected ErrTruncatedHIMData, got %v", err)
			}
		})
	}
}

func TestParseHIM_InvalidSize(t *testing.T) {
	for _, dims := range [][2]int32{{0, 65}, {65, -1}, {4096, 65}} {
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.LittleEndian, dims[0])
		binary.Write(buf, binary.LittleEndian, dims[1])
		binary.Write(buf, binary.LittleEndian, int32(0))
		binary.Write(buf, binary.LittleEndian, float32(0))

		_, err := ParseHIM(buf.Bytes())
		if !errors.Is(err, ErrInvalidHIMSize) {
			t.Errorf("%dx%d: expected ErrInvalidHIMSize, got %v", dims[0], dims[1], err)
		}
	}
}

func TestHIM_MarshalBinary(t *testing.T) {
	src := &HIM{
		Width:      2,
		Length:     2,
		GridCount:  1,
		PatchScale: 10,
		Heights:    []float32{-5, 0, 2.5, 7},
	}

	data, err := src.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}

	him, err := ParseHIM(data)
	if err != nil {
		t.Fatalf("ParseHIM failed: %v", err)
	}
	if got := him.Height(0, 1); got != 2.5 {
		t.Errorf("Height(0, 1) = %f, want 2.5", got)
	}

	src.Heights = src.Heights[:3]
	if _, err := src.MarshalBinary(); err == nil {
		t.Error("expected error for mismatched sample count")
	}
}
