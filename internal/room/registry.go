package room

import (
	"log/slog"
	"sync"
	"time"

	"github.com/boardforge/gomoku-backend/internal/apperror"
	"github.com/boardforge/gomoku-backend/internal/engine"
	"github.com/boardforge/gomoku-backend/internal/entity"
	"github.com/boardforge/gomoku-backend/internal/pkg"
)

// Room binds an identifier and display name to its session.
type Room struct {
	ID      string
	Name    string
	Session *Session
}

// Info is the lobby view of one room.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
	GameStarted bool   `json:"gameStarted"`
}

// BotOptions seats the engine in the second slot of a new room. A zero
// SearchTimeout lets a search run until the session context ends.
type BotOptions struct {
	Difficulty    engine.Difficulty
	SearchTimeout time.Duration
}

// Registry owns the map from room id to session. It is the only holder of
// that map; connection handlers get a registry handle, never ambient state.
type Registry struct {
	logger *slog.Logger

	mu            sync.RWMutex
	rooms         map[string]*Room
	byParticipant map[string]*Room
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:        logger.With("component", "registry"),
		rooms:         make(map[string]*Room),
		byParticipant: make(map[string]*Room),
	}
}

// List snapshots the lobby.
func (that *Registry) List() []Info {
	that.mu.RLock()
	defer that.mu.RUnlock()

	infos := make([]Info, 0, len(that.rooms))
	for _, r := range that.rooms {
		infos = append(infos, Info{
			ID:          r.ID,
			Name:        r.Name,
			PlayerCount: r.Session.PlayerCount(),
			GameStarted: r.Session.Started(),
		})
	}

	return infos
}

// Create opens a new room with the creator on the seat of the requested
// color (default Black). With bot options set, the engine occupies the
// opposite seat and the game starts immediately.
func (that *Registry) Create(name string, color entity.Color, bot *BotOptions, creator Participant) (*Room, int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.byParticipant[creator.ID()]; ok {
		return nil, 0, apperror.ErrAlreadyMember
	}

	if name == "" {
		name = "room"
	}

	r := &Room{
		ID:      pkg.GenerateRoomID(),
		Name:    name,
		Session: newSession(that.logger.With("room", name), name),
	}

	index := 0
	if color == entity.ColorWhite {
		index = 1
	}

	that.rooms[r.ID] = r
	that.byParticipant[creator.ID()] = r

	if bot != nil {
		r.Session.botDifficulty = bot.Difficulty
		r.Session.botSearchTimeout = bot.SearchTimeout
		r.Session.joinAt(1-index, nil, true)
	}

	r.Session.joinAt(index, creator, false)

	creator.Send(Event{
		Kind:    EventRoomCreated,
		Payload: RoomAckPayload{RoomID: r.ID, RoomName: r.Name, PlayerIndex: index},
	})

	r.Session.StartIfReady()

	that.logger.Info("room created", "roomID", r.ID, "name", name, "withBot", bot != nil)

	return r, index, nil
}

// Join fills the free seat of an existing room.
func (that *Registry) Join(roomID string, p Participant) (*Room, int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	r, ok := that.rooms[roomID]
	if !ok {
		return nil, 0, apperror.ErrRoomNotFound
	}

	if _, inRoom := that.byParticipant[p.ID()]; inRoom {
		return nil, 0, apperror.ErrAlreadyMember
	}

	index, err := r.Session.Join(p)
	if err != nil {
		return nil, 0, err
	}

	that.byParticipant[p.ID()] = r

	p.Send(Event{
		Kind:    EventRoomJoined,
		Payload: RoomAckPayload{RoomID: r.ID, RoomName: r.Name, PlayerIndex: index},
	})

	r.Session.StartIfReady()

	that.logger.Info("player joined room", "roomID", r.ID, "playerIndex", index)

	return r, index, nil
}

// Leave removes the participant from their room, destroying the room when
// the last human seat empties. Safe to call for participants that are not
// in any room (disconnect path).
func (that *Registry) Leave(participantID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	r, ok := that.byParticipant[participantID]
	if !ok {
		return
	}

	delete(that.byParticipant, participantID)

	if r.Session.Leave(participantID) {
		delete(that.rooms, r.ID)
		that.logger.Info("room destroyed", "roomID", r.ID)
	}
}

// RoomOf returns the room a participant currently occupies.
func (that *Registry) RoomOf(participantID string) (*Room, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	r, ok := that.byParticipant[participantID]
	return r, ok
}

// Shutdown cancels every session; called once on process teardown.
func (that *Registry) Shutdown() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id, r := range that.rooms {
		r.Session.cancel()
		delete(that.rooms, id)
	}
	that.byParticipant = make(map[string]*Room)
}
