package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardforge/gomoku-backend/internal/entity"
)

func placeAll(t *testing.T, board *entity.Board, color entity.Color, points ...entity.Point) {
	t.Helper()
	for _, p := range points {
		require.True(t, board.Place(p.Row, p.Col, color))
	}
}

func TestScanRun(t *testing.T) {
	t.Run("counts an open-ended run", func(t *testing.T) {
		// Given: three black stones in a row with both ends empty
		board := entity.NewBoard()
		placeAll(t, board, entity.ColorBlack,
			entity.Point{Row: 7, Col: 4}, entity.Point{Row: 7, Col: 5}, entity.Point{Row: 7, Col: 6})

		// When: scanning horizontally through the middle stone
		count, openEnds := scanRun(board, 7, 5, entity.ColorBlack, entity.Point{Row: 0, Col: 1})

		// Then: the full run and both open ends are seen
		assert.Equal(t, 3, count)
		assert.Equal(t, 2, openEnds)
	})

	t.Run("opponent stones close an end", func(t *testing.T) {
		board := entity.NewBoard()
		placeAll(t, board, entity.ColorBlack,
			entity.Point{Row: 7, Col: 4}, entity.Point{Row: 7, Col: 5})
		placeAll(t, board, entity.ColorWhite, entity.Point{Row: 7, Col: 6})

		count, openEnds := scanRun(board, 7, 4, entity.ColorBlack, entity.Point{Row: 0, Col: 1})

		assert.Equal(t, 2, count)
		assert.Equal(t, 1, openEnds)
	})

	t.Run("the board edge closes an end", func(t *testing.T) {
		board := entity.NewBoard()
		placeAll(t, board, entity.ColorWhite,
			entity.Point{Row: 0, Col: 0}, entity.Point{Row: 0, Col: 1})

		count, openEnds := scanRun(board, 0, 0, entity.ColorWhite, entity.Point{Row: 0, Col: 1})

		assert.Equal(t, 2, count)
		assert.Equal(t, 1, openEnds)
	})
}

func TestEvaluatePoint(t *testing.T) {
	t.Run("open one-end single stone scores positive", func(t *testing.T) {
		// Given: black at the center, white adjacent
		board := entity.NewBoard()
		placeAll(t, board, entity.ColorBlack, entity.Point{Row: 7, Col: 7})
		placeAll(t, board, entity.ColorWhite, entity.Point{Row: 7, Col: 8})

		// Then: the empty cell extending black scores positive for black
		assert.Positive(t, AttackScore(board, 7, 6, entity.ColorBlack))
	})

	t.Run("fully blocked run scores nothing", func(t *testing.T) {
		// Given: a black pair walled in by white on both ends
		board := entity.NewBoard()
		placeAll(t, board, entity.ColorBlack,
			entity.Point{Row: 7, Col: 5}, entity.Point{Row: 7, Col: 6})
		placeAll(t, board, entity.ColorWhite,
			entity.Point{Row: 7, Col: 4}, entity.Point{Row: 7, Col: 7})

		// Then: the horizontal pair contributes nothing; what remains is the
		// lone-stone value on the three other axes
		score := AttackScore(board, 7, 5, entity.ColorBlack)
		assert.Equal(t, 3*attackerTable[1][2], score)
	})

	t.Run("a five scores the win weight on every end state", func(t *testing.T) {
		board := entity.NewBoard()
		placeAll(t, board, entity.ColorBlack,
			entity.Point{Row: 7, Col: 3}, entity.Point{Row: 7, Col: 4}, entity.Point{Row: 7, Col: 5},
			entity.Point{Row: 7, Col: 6}, entity.Point{Row: 7, Col: 7})

		score := AttackScore(board, 7, 5, entity.ColorBlack)

		assert.GreaterOrEqual(t, score, WinScore)
	})
}

func TestWeightTables_AttackerDominates(t *testing.T) {
	// The attacker weight must be >= the defender weight for every shape, so
	// completing one's own line always outranks blocking the same shape.
	for count := 1; count <= 5; count++ {
		for openEnds := 0; openEnds <= 2; openEnds++ {
			assert.GreaterOrEqual(t, attackerTable[count][openEnds], defenderTable[count][openEnds],
				"count=%d openEnds=%d", count, openEnds)
		}
	}
}

func TestEvaluateBoard(t *testing.T) {
	t.Run("empty board is neutral", func(t *testing.T) {
		assert.Zero(t, EvaluateBoard(entity.NewBoard(), entity.ColorBlack))
	})

	t.Run("material advantage scores positive for the attacker", func(t *testing.T) {
		// Given: black has an open three, white a lone stone
		board := entity.NewBoard()
		placeAll(t, board, entity.ColorBlack,
			entity.Point{Row: 7, Col: 5}, entity.Point{Row: 7, Col: 6}, entity.Point{Row: 7, Col: 7})
		placeAll(t, board, entity.ColorWhite, entity.Point{Row: 11, Col: 11})

		assert.Positive(t, EvaluateBoard(board, entity.ColorBlack))
		assert.Negative(t, EvaluateBoard(board, entity.ColorWhite))
	})
}
