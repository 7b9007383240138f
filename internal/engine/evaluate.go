package engine

import "github.com/boardforge/gomoku-backend/internal/entity"

// WinScore is the value of a completed five, regardless of open ends.
const WinScore = 1_000_000

// weightTable scores a directional run: first index is the run length
// (capped at 5), second is the number of open ends (0..2). Runs that cannot
// be extended to five score nothing.
type weightTable [6][3]int

// attackerTable values the searching side's own shapes. Its weights are
// uniformly >= the defender's for the same shape: completing a line is
// preferred slightly over blocking one.
var attackerTable = weightTable{
	1: {0, 4, 20},
	2: {0, 40, 400},
	3: {0, 1_000, 20_000},
	4: {0, 50_000, 400_000},
	5: {WinScore, WinScore, WinScore},
}

var defenderTable = weightTable{
	1: {0, 2, 10},
	2: {0, 20, 200},
	3: {0, 500, 10_000},
	4: {0, 25_000, 300_000},
	5: {WinScore, WinScore, WinScore},
}

var axes = [4]entity.Point{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: 1},
	{Row: 1, Col: -1},
}

// scanRun counts the contiguous same-color run through (row, col) along one
// axis, treating the query cell itself as color, and how many of the two
// cells beyond the run are empty. A scan stops at the first non-matching
// cell, which may be empty, opponent-colored or the boundary.
func scanRun(board *entity.Board, row, col int, color entity.Color, axis entity.Point) (count, openEnds int) {
	count = 1

	r, c := row+axis.Row, col+axis.Col
	for board.InBounds(r, c) && board.At(r, c) == color {
		count++
		r += axis.Row
		c += axis.Col
	}
	if board.InBounds(r, c) && board.At(r, c) == entity.ColorNone {
		openEnds++
	}

	r, c = row-axis.Row, col-axis.Col
	for board.InBounds(r, c) && board.At(r, c) == color {
		count++
		r -= axis.Row
		c -= axis.Col
	}
	if board.InBounds(r, c) && board.At(r, c) == entity.ColorNone {
		openEnds++
	}

	return count, openEnds
}

func evaluatePoint(board *entity.Board, row, col int, color entity.Color, table weightTable) int {
	score := 0
	for _, axis := range axes {
		count, openEnds := scanRun(board, row, col, color, axis)
		if count > 5 {
			count = 5
		}
		score += table[count][openEnds]
	}

	return score
}

// AttackScore values a cell from the searching side's perspective.
func AttackScore(board *entity.Board, row, col int, color entity.Color) int {
	return evaluatePoint(board, row, col, color, attackerTable)
}

// DefenseScore values a cell from the opponent's perspective.
func DefenseScore(board *entity.Board, row, col int, color entity.Color) int {
	return evaluatePoint(board, row, col, color, defenderTable)
}

// EvaluateBoard is the leaf value of the search: the sum of attack scores
// over all attacker stones minus the sum of defense scores over all
// defender stones.
func EvaluateBoard(board *entity.Board, attacker entity.Color) int {
	defender := attacker.Other()
	score := 0

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			switch board.At(row, col) {
			case attacker:
				score += evaluatePoint(board, row, col, attacker, attackerTable)
			case defender:
				score -= evaluatePoint(board, row, col, defender, defenderTable)
			}
		}
	}

	return score
}
