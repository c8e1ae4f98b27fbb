package worldmap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
)

func TestAssembleHeightField_2x2(t *testing.T) {
	bounds := Bounds{MinX: 10, MaxX: 11, MinY: 20, MaxY: 21}
	src := newFakeSource()
	src.heights[Coordinate{10, 20}] = constHIM(1)
	src.heights[Coordinate{11, 20}] = constHIM(2)
	src.heights[Coordinate{10, 21}] = constHIM(-3)
	src.heights[Coordinate{11, 21}] = constHIM(4)

	layout := NewLayout(bounds)
	field, ext, err := AssembleHeightField(layout, src)
	if err != nil {
		t.Fatalf("AssembleHeightField failed: %v", err)
	}

	if field.Width() != 133 || field.Height() != 133 {
		t.Fatalf("expected 133x133, got %dx%d", field.Width(), field.Height())
	}

	// Hand-stitched expectation: four 65x65 blocks, zero padding beyond 130
	want := make([][]float32, 133)
	for y := range want {
		want[y] = make([]float32, 133)
		for x := range want[y] {
			switch {
			case x >= 130 || y >= 130:
			case x < 65 && y < 65:
				want[y][x] = 1
			case y < 65:
				want[y][x] = 2
			case x < 65:
				want[y][x] = -3
			default:
				want[y][x] = 4
			}
		}
	}
	if diff := cmp.Diff(want, field.Rows()); diff != "" {
		t.Errorf("stitched field mismatch (-want +got):\n%s", diff)
	}

	wantExt := Extremes{Min: -3, Max: 4, Valid: true}
	if ext != wantExt {
		t.Errorf("extremes = %+v, want %+v", ext, wantExt)
	}
}

func TestAssembleHeightField_LocalPlacement(t *testing.T) {
	bounds := Bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 0}
	src := newFakeSource()
	src.heights[Coordinate{0, 0}] = constHIM(0)
	src.heights[Coordinate{1, 0}] = makeHIM(65, 65, func(x, y int) float32 {
		return float32(x + 1000*y)
	})

	field, ext, err := AssembleHeightField(NewLayout(bounds), src)
	if err != nil {
		t.Fatalf("AssembleHeightField failed: %v", err)
	}

	tests := []struct {
		lx, ly int
		want   float32
	}{
		{0, 0, 0},
		{7, 3, 3007},
		{64, 64, 64064},
		{64, 0, 64},
	}
	for _, tc := range tests {
		got, ok := field.At(65+tc.lx, tc.ly)
		if !ok || got != tc.want {
			t.Errorf("global (%d, %d) = %f, %v; want %f", 65+tc.lx, tc.ly, got, ok, tc.want)
		}
	}

	if ext.Min != 0 || ext.Max != 64064 {
		t.Errorf("extremes = [%f, %f], want [0, 64064]", ext.Min, ext.Max)
	}
}

func TestAssembleHeightField_UnexpectedDimensions(t *testing.T) {
	bounds := Bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 0}
	src := newFakeSource()
	src.heights[Coordinate{0, 0}] = constHIM(1)
	src.heights[Coordinate{1, 0}] = makeHIM(64, 65, func(int, int) float32 { return 1 })

	field, _, err := AssembleHeightField(NewLayout(bounds), src)
	if field != nil {
		t.Error("no field should be returned on error")
	}

	var dimErr *UnexpectedTileDimensionsError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected UnexpectedTileDimensionsError, got %v", err)
	}
	if dimErr.Coordinate != (Coordinate{1, 0}) {
		t.Errorf("expected coordinate 1_0, got %s", dimErr.Coordinate)
	}
	if dimErr.Expected != (Size{65, 65}) || dimErr.Actual != (Size{64, 65}) {
		t.Errorf("unexpected sizes: expected %s actual %s", dimErr.Expected, dimErr.Actual)
	}
	if dimErr.Kind != KindHeight {
		t.Errorf("expected kind HIM, got %s", dimErr.Kind)
	}
}

func TestAssembleHeightField_MissingTiles(t *testing.T) {
	bounds := Bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	src := newFakeSource()
	src.heights[Coordinate{0, 0}] = constHIM(1)
	src.heights[Coordinate{1, 1}] = constHIM(1)

	_, _, err := AssembleHeightField(NewLayout(bounds), src)
	if !errors.Is(err, ErrTileNotFound) {
		t.Fatalf("expected ErrTileNotFound, got %v", err)
	}

	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 aggregated errors, got %d: %v", len(errs), err)
	}

	var missing []Coordinate
	for _, e := range errs {
		var m *MissingTileError
		if !errors.As(e, &m) {
			t.Fatalf("expected MissingTileError, got %v", e)
		}
		missing = append(missing, m.Coordinate)
	}
	if diff := cmp.Diff([]Coordinate{{1, 0}, {0, 1}}, missing); diff != "" {
		t.Errorf("missing coordinates mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleHeightField_ReadError(t *testing.T) {
	readErr := errors.New("disk on fire")
	src := newFakeSource()
	src.err = readErr

	_, _, err := AssembleHeightField(NewLayout(Bounds{}), src)
	if !errors.Is(err, readErr) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}

	var m *MissingTileError
	if errors.As(err, &m) {
		t.Error("read errors must not be reported as missing tiles")
	}
}
