package worldmap

// Grid is a dense row-major matrix backed by a single buffer.
// Cell (x, y) lives at y*width+x; all accessors are bounds-checked.
type Grid[T any] struct {
	width  int
	height int
	cells  []T
}

func newGrid[T any](width, height int) Grid[T] {
	return Grid[T]{
		width:  width,
		height: height,
		cells:  make([]T, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// At returns the value at (x, y). ok is false when out of bounds.
func (g *Grid[T]) At(x, y int) (v T, ok bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return v, false
	}
	return g.cells[y*g.width+x], true
}

// Set stores v at (x, y). Returns false when out of bounds.
func (g *Grid[T]) Set(x, y int, v T) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}
	g.cells[y*g.width+x] = v
	return true
}

// span returns the n cells starting at (x, y) within one row.
func (g *Grid[T]) span(x, y, n int) ([]T, bool) {
	if n < 0 || x < 0 || y < 0 || x+n > g.width || y >= g.height {
		return nil, false
	}
	start := y*g.width + x
	return g.cells[start : start+n], true
}

// Row returns row y. The slice aliases the grid.
func (g *Grid[T]) Row(y int) []T {
	row, ok := g.span(0, y, g.width)
	if !ok {
		return nil
	}
	return row
}

// Rows copies the grid into a nested slice, one inner slice per row.
func (g *Grid[T]) Rows() [][]T {
	rows := make([][]T, g.height)
	for y := range rows {
		rows[y] = append([]T(nil), g.Row(y)...)
	}
	return rows
}
