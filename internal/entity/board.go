package entity

// BoardSize is the side length of the playing grid.
const BoardSize = 15

// Color is the state of a single cell. The numeric values are part of the
// wire protocol: clients receive 1 for Black and 2 for White.
type Color int

const (
	ColorNone Color = iota
	ColorBlack
	ColorWhite
)

func (that Color) String() string {
	switch that {
	case ColorBlack:
		return "black"
	case ColorWhite:
		return "white"
	default:
		return "none"
	}
}

// Other returns the opposing color.
func (that Color) Other() Color {
	if that == ColorBlack {
		return ColorWhite
	}
	return ColorBlack
}

// Point is a single cell coordinate.
type Point struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

// Board is a fixed 15x15 grid of cell states. A board is owned by exactly
// one session or one search clone; it is never shared between goroutines.
type Board struct {
	cells  [BoardSize][BoardSize]Color
	stones int
}

func NewBoard() *Board {
	return &Board{}
}

func (that *Board) At(row, col int) Color {
	return that.cells[row][col]
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func (that *Board) IsEmpty(row, col int) bool {
	return that.InBounds(row, col) && that.cells[row][col] == ColorNone
}

// Place puts a stone on an empty in-bounds cell. Returns false and leaves
// the board untouched if the cell is out of bounds or occupied.
func (that *Board) Place(row, col int, color Color) bool {
	if !that.IsEmpty(row, col) || color == ColorNone {
		return false
	}

	that.cells[row][col] = color
	that.stones++

	return true
}

// Clear removes the stone at the given cell, if any.
func (that *Board) Clear(row, col int) {
	if !that.InBounds(row, col) || that.cells[row][col] == ColorNone {
		return
	}

	that.cells[row][col] = ColorNone
	that.stones--
}

func (that *Board) StoneCount() int {
	return that.stones
}

func (that *Board) IsFull() bool {
	return that.stones == BoardSize*BoardSize
}

func (that *Board) Reset() {
	*that = Board{}
}

// Clone returns an independent copy. Used to hand a snapshot to the search
// goroutine while the session keeps mutating the canonical board.
func (that *Board) Clone() *Board {
	clone := *that
	return &clone
}
