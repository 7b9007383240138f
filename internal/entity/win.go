package entity

import "sort"

// axes are the four line directions: horizontal, vertical and the two
// diagonals. Each axis is scanned both ways from the query cell.
var axes = [4]Point{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: 1},
	{Row: 1, Col: -1},
}

// WinningLine reports whether the stone just placed at (row, col) completes
// a line of five or more. It returns the coordinates of the completed run
// sorted by row then column, or nil if no axis reaches five. Overlines count
// as wins (freestyle rule). The board is not modified.
func WinningLine(board *Board, row, col int, color Color) []Point {
	if !board.InBounds(row, col) || board.At(row, col) != color || color == ColorNone {
		return nil
	}

	for _, axis := range axes {
		line := []Point{{Row: row, Col: col}}

		for r, c := row+axis.Row, col+axis.Col; board.InBounds(r, c) && board.At(r, c) == color; r, c = r+axis.Row, c+axis.Col {
			line = append(line, Point{Row: r, Col: c})
		}

		for r, c := row-axis.Row, col-axis.Col; board.InBounds(r, c) && board.At(r, c) == color; r, c = r-axis.Row, c-axis.Col {
			line = append(line, Point{Row: r, Col: c})
		}

		if len(line) >= 5 {
			sort.Slice(line, func(i, j int) bool {
				if line[i].Row != line[j].Row {
					return line[i].Row < line[j].Row
				}
				return line[i].Col < line[j].Col
			})

			return line
		}
	}

	return nil
}
