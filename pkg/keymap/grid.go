package keymap

import "slices"

// Normalize turns ragged rows of key texts into a rectangular grid.
//
// Steps, in order:
//  1. a row with an odd number of keys gets one trailing gap;
//  2. every row except the last opts.NumberOfThumbs rows gets
//     2*opts.ThumbShiftIn gaps, each inserted at the row's current len/2;
//  3. rows shorter than the longest row are padded by appending and then
//     prepending a gap, alternately, until they reach its length.
//
// Empty rows are legal and come out as rows of gaps. Negative options are
// treated as zero.
func Normalize(rows [][]string, opts GridOptions) [][]Cell {
	grid := make([][]Cell, len(rows))
	for i, row := range rows {
		cells := make([]Cell, 0, len(row)+1)
		for _, text := range row {
			cells = append(cells, Key(text))
		}
		if len(cells)%2 != 0 {
			cells = append(cells, Gap())
		}
		grid[i] = cells
	}

	shifted := len(grid) - max(opts.NumberOfThumbs, 0)
	for i := 0; i < shifted; i++ {
		for range 2 * max(opts.ThumbShiftIn, 0) {
			grid[i] = slices.Insert(grid[i], len(grid[i])/2, Gap())
		}
	}

	maxCols := 0
	for _, row := range grid {
		maxCols = max(maxCols, len(row))
	}
	for i, row := range grid {
		for len(row) < maxCols {
			row = append(row, Gap())
			if len(row) < maxCols {
				row = slices.Insert(row, 0, Gap())
			}
		}
		grid[i] = row
	}
	return grid
}
