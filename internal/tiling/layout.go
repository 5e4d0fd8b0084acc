package tiling

import (
	"github.com/1broseidon/wslgrid/internal/platform"
)

// Grid describes a fixed columns x rows placement layout.
type Grid struct {
	Cols int
	Rows int
}

// Capacity returns the maximum number of windows the grid can hold.
func (g Grid) Capacity() int {
	return g.Cols * g.Rows
}

// CalculatePositions computes target rectangles for count windows placed on
// display in row-major order (left-to-right, top-to-bottom). Cell sizes use
// integer division; the remainder is absorbed into the last column and last
// row so the union of all cells exactly covers the display.
//
// Precondition: count <= grid.Capacity(). The function is pure and never
// fails under that precondition.
func CalculatePositions(display platform.Rect, grid Grid, count int) []platform.Rect {
	if count <= 0 {
		return nil
	}

	cellWidth := display.Width / grid.Cols
	cellHeight := display.Height / grid.Rows

	positions := make([]platform.Rect, count)

	for i := 0; i < count; i++ {
		col := i % grid.Cols
		row := i / grid.Cols

		w := cellWidth
		h := cellHeight
		if col == grid.Cols-1 {
			w = display.Width - col*cellWidth
		}
		if row == grid.Rows-1 {
			h = display.Height - row*cellHeight
		}

		positions[i] = platform.Rect{
			X:      display.X + col*cellWidth,
			Y:      display.Y + row*cellHeight,
			Width:  w,
			Height: h,
		}
	}

	return positions
}
