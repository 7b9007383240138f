package room

import "github.com/boardforge/gomoku-backend/internal/entity"

// Event kinds pushed by the registry and session to participants. Kinds
// answered directly by the transport (room_list, left_room, error) live
// with the transport handlers.
const (
	EventRoomCreated      = "room_created"
	EventRoomJoined       = "room_joined"
	EventGameStart        = "game_start"
	EventStonePlaced      = "stone_placed"
	EventTurnChange       = "turn_change"
	EventGameOver         = "game_over"
	EventOpponentLeft     = "opponent_left"
	EventNewGameRequested = "new_game_requested"
	EventUndoRequested    = "undo_requested"
	EventUndoResponse     = "undo_response"
	EventUndoExecuted     = "undo_executed"
)

// Event is one outbound notification. Sends are fire-and-forget: the
// session never waits on a peer.
type Event struct {
	Kind    string
	Payload any
}

// Participant is a connected peer handle. Send must not block the caller;
// the websocket client buffers outbound events and preserves their order.
type Participant interface {
	ID() string
	Send(event Event)
}

type RoomAckPayload struct {
	RoomID      string `json:"roomId"`
	RoomName    string `json:"roomName"`
	PlayerIndex int    `json:"playerIndex"`
}

type GameStartPayload struct {
	PlayerIndex   int    `json:"playerIndex"`
	CurrentPlayer int    `json:"currentPlayer"`
	RoomName      string `json:"roomName"`
}

type StonePlacedPayload struct {
	Row         int `json:"r"`
	Col         int `json:"c"`
	Color       int `json:"color"`
	PlayerIndex int `json:"playerIndex"`
}

type TurnChangePayload struct {
	CurrentPlayer int `json:"currentPlayer"`
}

// GameOverPayload reports the winner's seat index, or -1 for a draw. The
// completed line is included for last-line highlighting on clients.
type GameOverPayload struct {
	Winner      int            `json:"winner"`
	WinnerColor int            `json:"winnerColor,omitempty"`
	Line        []entity.Point `json:"line,omitempty"`
}

type OpponentLeftPayload struct {
	Message string `json:"message"`
}

type UndoResponsePayload struct {
	Approved bool `json:"approved"`
}

type UndoExecutedPayload struct {
	Row   int `json:"r"`
	Col   int `json:"c"`
	Color int `json:"color"`
}
