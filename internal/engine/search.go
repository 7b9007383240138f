package engine

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/boardforge/gomoku-backend/internal/entity"
)

// winCutoff is returned from interior search nodes that reach a five,
// plus the remaining depth so that faster wins are preferred. It dominates
// every positional score but stays clear of integer limits.
const winCutoff = 10_000_000

const center = entity.BoardSize / 2

// ErrBoardFull is returned when no empty cell exists. Callers are expected
// to declare a draw before consulting the engine, so this is a guard, not a
// normal outcome.
var ErrBoardFull = errors.New("no empty cell to play")

// SelectMove picks the attacker's next move. The board is mutated during
// the search and is guaranteed to be restored before returning.
func SelectMove(ctx context.Context, board *entity.Board, attacker entity.Color, difficulty Difficulty) (entity.Point, error) {
	if board.IsFull() {
		return entity.Point{}, ErrBoardFull
	}

	settings := settingsByDifficulty[ParseDifficulty(string(difficulty))]
	defender := attacker.Other()

	// Opening: with at most one stone down there is nothing to search.
	if board.StoneCount() <= 1 {
		return nearestEmptyToCenter(board), nil
	}

	if move, ok := findCompletingCell(board, attacker); ok {
		return move, nil
	}

	if move, ok := findCompletingCell(board, defender); ok {
		return move, nil
	}

	candidates := rankedCandidates(board, attacker, settings.CandidateCap)
	if len(candidates) == 0 {
		return entity.Point{}, ErrBoardFull
	}

	best := candidates[0]
	bestScore := math.MinInt

	for _, candidate := range candidates {
		// An expired context returns the best fully-evaluated candidate so
		// far; an error comes back only when nothing was evaluated yet.
		if err := ctx.Err(); err != nil {
			if bestScore == math.MinInt {
				return entity.Point{}, err
			}
			break
		}

		score := withStone(board, candidate, attacker, func() int {
			return minimax(board, attacker, settings, settings.Depth-1, math.MinInt, math.MaxInt, false)
		})

		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	return best, nil
}

// minimax is a depth-limited alpha-beta search over the capped candidate
// set. Maximizing nodes place attacker stones, minimizing nodes defender
// stones; a five found at an interior node short-circuits the recursion.
func minimax(board *entity.Board, attacker entity.Color, settings searchSettings, depth, alpha, beta int, maximizing bool) int {
	candidates := rankedCandidates(board, attacker, settings.CandidateCap)
	if depth <= 0 || len(candidates) == 0 {
		return EvaluateBoard(board, attacker)
	}

	if maximizing {
		best := math.MinInt
		for _, candidate := range candidates {
			score := withStone(board, candidate, attacker, func() int {
				if entity.WinningLine(board, candidate.Row, candidate.Col, attacker) != nil {
					return winCutoff + depth
				}
				return minimax(board, attacker, settings, depth-1, alpha, beta, false)
			})

			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	defender := attacker.Other()
	best := math.MaxInt
	for _, candidate := range candidates {
		score := withStone(board, candidate, defender, func() int {
			if entity.WinningLine(board, candidate.Row, candidate.Col, defender) != nil {
				return -(winCutoff + depth)
			}
			return minimax(board, attacker, settings, depth-1, alpha, beta, true)
		})

		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

// withStone runs fn with a stone tentatively placed and removes it again no
// matter how fn returns.
func withStone(board *entity.Board, p entity.Point, color entity.Color, fn func() int) int {
	board.Place(p.Row, p.Col, color)
	defer board.Clear(p.Row, p.Col)

	return fn()
}

// findCompletingCell scans every empty cell for one that completes a five
// for the given color.
func findCompletingCell(board *entity.Board, color entity.Color) (entity.Point, bool) {
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if !board.IsEmpty(row, col) {
				continue
			}

			p := entity.Point{Row: row, Col: col}
			wins := withStone(board, p, color, func() int {
				if entity.WinningLine(board, row, col, color) != nil {
					return 1
				}
				return 0
			})

			if wins == 1 {
				return p, true
			}
		}
	}

	return entity.Point{}, false
}

// nearestEmptyToCenter returns the center cell, or the closest empty cell
// by expanding Chebyshev rings around it.
func nearestEmptyToCenter(board *entity.Board) entity.Point {
	if board.IsEmpty(center, center) {
		return entity.Point{Row: center, Col: center}
	}

	for radius := 1; radius < entity.BoardSize; radius++ {
		for row := center - radius; row <= center+radius; row++ {
			for col := center - radius; col <= center+radius; col++ {
				if chebyshev(row, col, center, center) != radius {
					continue
				}
				if board.IsEmpty(row, col) {
					return entity.Point{Row: row, Col: col}
				}
			}
		}
	}

	// Unreachable for a non-full board.
	return entity.Point{Row: center, Col: center}
}

// rankedCandidates collects every empty cell within Chebyshev distance 2 of
// an occupied cell, orders them by combined attack and defense value and
// truncates to the cap. The sort is stable so ties keep scan order.
func rankedCandidates(board *entity.Board, attacker entity.Color, limit int) []entity.Point {
	defender := attacker.Other()

	type scoredPoint struct {
		point entity.Point
		score int
	}

	var scored []scoredPoint
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if !board.IsEmpty(row, col) || !nearStone(board, row, col) {
				continue
			}

			score := AttackScore(board, row, col, attacker) + DefenseScore(board, row, col, defender)
			scored = append(scored, scoredPoint{point: entity.Point{Row: row, Col: col}, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	points := make([]entity.Point, len(scored))
	for i, s := range scored {
		points[i] = s.point
	}

	return points
}

func nearStone(board *entity.Board, row, col int) bool {
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if board.InBounds(r, c) && board.At(r, c) != entity.ColorNone {
				return true
			}
		}
	}

	return false
}

func chebyshev(r1, c1, r2, c2 int) int {
	dr := r1 - r2
	if dr < 0 {
		dr = -dr
	}
	dc := c1 - c2
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}
