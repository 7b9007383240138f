package apperror

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyMember = errors.New("already a member of this room")
	ErrOutOfTurn     = errors.New("it's not your turn")
	ErrInvalidCell   = errors.New("invalid cell")
	ErrGameNotActive = errors.New("game is not active")
	ErrNoPendingUndo = errors.New("no pending undo request")
	ErrNothingToUndo = errors.New("no move to undo")
)
