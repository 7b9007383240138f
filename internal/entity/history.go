package entity

// Move is one placed stone. Immutable once recorded.
type Move struct {
	Row   int   `json:"r"`
	Col   int   `json:"c"`
	Color Color `json:"color"`
	Seq   int   `json:"seq"`
}

// History is the append-only sequence of moves of one game, one entry per
// placed stone. Its length always equals the number of stones on the board.
type History struct {
	moves []Move
}

func (that *History) Push(row, col int, color Color) Move {
	move := Move{
		Row:   row,
		Col:   col,
		Color: color,
		Seq:   len(that.moves),
	}
	that.moves = append(that.moves, move)

	return move
}

// PopLast removes and returns the most recent move.
func (that *History) PopLast() (Move, bool) {
	if len(that.moves) == 0 {
		return Move{}, false
	}

	last := that.moves[len(that.moves)-1]
	that.moves = that.moves[:len(that.moves)-1]

	return last, true
}

func (that *History) Last() (Move, bool) {
	if len(that.moves) == 0 {
		return Move{}, false
	}
	return that.moves[len(that.moves)-1], true
}

func (that *History) Len() int {
	return len(that.moves)
}

func (that *History) Clear() {
	that.moves = nil
}

// NextColor derives whose turn it is from the history length: Black moves
// on even lengths.
func (that *History) NextColor() Color {
	if len(that.moves)%2 == 0 {
		return ColorBlack
	}
	return ColorWhite
}
