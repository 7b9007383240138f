package websocket

import (
	"encoding/json"

	"github.com/boardforge/gomoku-backend/internal/room"
)

// Message is one protocol frame: a kind tag plus a kind-specific payload.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client -> server payloads.

type createRoomPayload struct {
	Name       string `json:"name"`
	Color      int    `json:"color,omitempty"`
	VsBot      bool   `json:"vsBot,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

type joinRoomPayload struct {
	RoomID string `json:"roomId"`
}

type placeStonePayload struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

type undoResponsePayload struct {
	Approved bool `json:"approved"`
}

// Server -> client payloads answered directly by the handlers; everything
// else is pushed by the room package as events.

type roomListPayload struct {
	Rooms []room.Info `json:"rooms"`
}

type errorPayload struct {
	Message string `json:"message"`
}
