package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeAll(t *testing.T, board *Board, color Color, points ...Point) {
	t.Helper()
	for _, p := range points {
		require.True(t, board.Place(p.Row, p.Col, color))
	}
}

func TestWinningLine(t *testing.T) {
	t.Run("detects a horizontal five", func(t *testing.T) {
		// Given: five black stones in a row
		board := NewBoard()
		placeAll(t, board, ColorBlack,
			Point{7, 3}, Point{7, 4}, Point{7, 5}, Point{7, 6}, Point{7, 7})

		// When: checking from the last placed stone
		line := WinningLine(board, 7, 7, ColorBlack)

		// Then: the full run is returned in row/column order
		require.Len(t, line, 5)
		assert.Equal(t, []Point{{7, 3}, {7, 4}, {7, 5}, {7, 6}, {7, 7}}, line)
	})

	t.Run("detects a vertical five from the middle of the run", func(t *testing.T) {
		board := NewBoard()
		placeAll(t, board, ColorWhite,
			Point{2, 9}, Point{3, 9}, Point{4, 9}, Point{5, 9}, Point{6, 9})

		line := WinningLine(board, 4, 9, ColorWhite)

		require.Len(t, line, 5)
		assert.Equal(t, []Point{{2, 9}, {3, 9}, {4, 9}, {5, 9}, {6, 9}}, line)
	})

	t.Run("detects both diagonals", func(t *testing.T) {
		board := NewBoard()
		placeAll(t, board, ColorBlack,
			Point{1, 1}, Point{2, 2}, Point{3, 3}, Point{4, 4}, Point{5, 5})

		require.Len(t, WinningLine(board, 1, 1, ColorBlack), 5)

		antiboard := NewBoard()
		placeAll(t, antiboard, ColorBlack,
			Point{5, 1}, Point{4, 2}, Point{3, 3}, Point{2, 4}, Point{1, 5})

		require.Len(t, WinningLine(antiboard, 5, 1, ColorBlack), 5)
	})

	t.Run("overline of six counts as a win", func(t *testing.T) {
		board := NewBoard()
		placeAll(t, board, ColorBlack,
			Point{7, 2}, Point{7, 3}, Point{7, 4}, Point{7, 5}, Point{7, 6}, Point{7, 7})

		line := WinningLine(board, 7, 4, ColorBlack)

		assert.Len(t, line, 6)
	})

	t.Run("four in a row is not a win", func(t *testing.T) {
		board := NewBoard()
		placeAll(t, board, ColorBlack,
			Point{7, 3}, Point{7, 4}, Point{7, 5}, Point{7, 6})

		assert.Nil(t, WinningLine(board, 7, 6, ColorBlack))
	})

	t.Run("opponent stones break the run", func(t *testing.T) {
		board := NewBoard()
		placeAll(t, board, ColorBlack,
			Point{7, 3}, Point{7, 4}, Point{7, 6}, Point{7, 7}, Point{7, 8})
		placeAll(t, board, ColorWhite, Point{7, 5})

		assert.Nil(t, WinningLine(board, 7, 8, ColorBlack))
	})

	t.Run("result is independent of which run stone is queried", func(t *testing.T) {
		// Given: a winning diagonal
		board := NewBoard()
		run := []Point{{4, 4}, {5, 5}, {6, 6}, {7, 7}, {8, 8}}
		placeAll(t, board, ColorWhite, run...)

		// Then: every stone of the run yields the identical sorted line
		for _, p := range run {
			assert.Equal(t, run, WinningLine(board, p.Row, p.Col, ColorWhite))
		}
	})

	t.Run("lines touching the board edge are bounds checked", func(t *testing.T) {
		board := NewBoard()
		placeAll(t, board, ColorBlack,
			Point{0, 0}, Point{0, 1}, Point{0, 2}, Point{0, 3}, Point{0, 4})

		require.Len(t, WinningLine(board, 0, 0, ColorBlack), 5)
	})

	t.Run("single stone at the start of a game", func(t *testing.T) {
		// Given: black at the center, white adjacent
		board := NewBoard()
		placeAll(t, board, ColorBlack, Point{7, 7})
		placeAll(t, board, ColorWhite, Point{7, 8})

		// Then: no winning line is reported
		assert.Nil(t, WinningLine(board, 7, 7, ColorBlack))
	})
}
