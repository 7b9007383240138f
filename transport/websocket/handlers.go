package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/boardforge/gomoku-backend/internal/apperror"
	"github.com/boardforge/gomoku-backend/internal/engine"
	"github.com/boardforge/gomoku-backend/internal/entity"
	"github.com/boardforge/gomoku-backend/internal/room"
)

func (that *Server) handleListRooms(client *Client, _ json.RawMessage) error {
	client.enqueue(Message{
		Type:    "room_list",
		Payload: marshalPayload(client.logger, roomListPayload{Rooms: that.registry.List()}),
	})

	return nil
}

func (that *Server) handleCreateRoom(client *Client, payload json.RawMessage) error {
	var req createRoomPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	color := entity.ColorBlack
	if req.Color == int(entity.ColorWhite) {
		color = entity.ColorWhite
	}

	var bot *room.BotOptions
	if req.VsBot {
		difficulty := that.defaultDifficulty
		if req.Difficulty != "" {
			difficulty = engine.ParseDifficulty(req.Difficulty)
		}
		bot = &room.BotOptions{Difficulty: difficulty, SearchTimeout: that.botSearchTimeout}
	}

	if _, _, err := that.registry.Create(req.Name, color, bot, client); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

func (that *Server) handleJoinRoom(client *Client, payload json.RawMessage) error {
	var req joinRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if _, _, err := that.registry.Join(req.RoomID, client); err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	return nil
}

func (that *Server) handleLeaveRoom(client *Client, _ json.RawMessage) error {
	that.registry.Leave(client.id)

	client.enqueue(Message{Type: "left_room"})

	return nil
}

func (that *Server) handlePlaceStone(client *Client, payload json.RawMessage) error {
	var req placeStonePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	r, ok := that.registry.RoomOf(client.id)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	if err := r.Session.PlaceStone(client.id, req.Row, req.Col); err != nil {
		return fmt.Errorf("failed to place stone: %w", err)
	}

	return nil
}

func (that *Server) handleRequestNewGame(client *Client, _ json.RawMessage) error {
	r, ok := that.registry.RoomOf(client.id)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	if err := r.Session.RequestRematch(client.id); err != nil {
		return fmt.Errorf("failed to request new game: %w", err)
	}

	return nil
}

func (that *Server) handleRequestUndo(client *Client, _ json.RawMessage) error {
	r, ok := that.registry.RoomOf(client.id)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	if err := r.Session.RequestUndo(client.id); err != nil {
		return fmt.Errorf("failed to request undo: %w", err)
	}

	return nil
}

func (that *Server) handleUndoResponse(client *Client, payload json.RawMessage) error {
	var req undoResponsePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	r, ok := that.registry.RoomOf(client.id)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	if err := r.Session.ResolveUndo(client.id, req.Approved); err != nil {
		return fmt.Errorf("failed to resolve undo: %w", err)
	}

	return nil
}
