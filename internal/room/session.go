package room

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/boardforge/gomoku-backend/internal/apperror"
	"github.com/boardforge/gomoku-backend/internal/engine"
	"github.com/boardforge/gomoku-backend/internal/entity"
)

const (
	StatusWaiting  = "waiting"
	StatusActive   = "active"
	StatusFinished = "finished"
)

const noPendingUndo = -1

// seat is one of the two color slots. Index 0 is the Black seat, index 1
// the White seat.
type seat struct {
	participant Participant
	isBot       bool
	rematchVote bool
}

func (that *seat) occupied() bool {
	return that.isBot || that.participant != nil
}

func (that *seat) id() string {
	if that.participant == nil {
		return ""
	}
	return that.participant.ID()
}

func colorForIndex(index int) entity.Color {
	if index == 0 {
		return entity.ColorBlack
	}
	return entity.ColorWhite
}

// Session is the authoritative state of one match: the canonical board,
// the move history, the turn pointer and the two seats. Every operation
// runs under the session mutex, which serializes all messages of one room;
// rooms never share state, so no cross-room locking exists.
type Session struct {
	mu     sync.Mutex
	logger *slog.Logger

	roomName string
	board    *entity.Board
	history  *entity.History
	turn     entity.Color
	status   string
	seats    [2]seat

	pendingUndo int // requester's seat index, or noPendingUndo

	// epoch guards results computed off the dispatch path: a bot search
	// started under one epoch is discarded if the session restarted or a
	// move was undone while it was thinking.
	epoch            int
	botDifficulty    engine.Difficulty
	botSearchTimeout time.Duration
	ctx              context.Context
	cancel           context.CancelFunc
}

func newSession(logger *slog.Logger, roomName string) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		logger:      logger,
		roomName:    roomName,
		board:       entity.NewBoard(),
		history:     &entity.History{},
		turn:        entity.ColorBlack,
		status:      StatusWaiting,
		pendingUndo: noPendingUndo,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Join fills a free seat. The caller sends its join acknowledgement and
// then calls StartIfReady, so the ack reaches the participant's ordered
// queue ahead of game_start.
func (that *Session) Join(p Participant) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	free := -1
	for i := range that.seats {
		if that.seats[i].id() == p.ID() && that.seats[i].occupied() {
			return 0, apperror.ErrAlreadyMember
		}
		if !that.seats[i].occupied() && free == -1 {
			free = i
		}
	}

	if free == -1 {
		return 0, apperror.ErrRoomFull
	}

	that.seats[free] = seat{participant: p}

	return free, nil
}

// joinAt seats a participant (or the bot) on a specific slot at creation
// time, so a creator can claim the White seat.
func (that *Session) joinAt(index int, p Participant, isBot bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.seats[index] = seat{participant: p, isBot: isBot}
}

// StartIfReady begins a fresh game once both seats are occupied. Also
// covers the seat refilled after an opponent left a finished session.
func (that *Session) StartIfReady() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status == StatusActive {
		return
	}

	if that.seats[0].occupied() && that.seats[1].occupied() {
		that.startLocked()
	}
}

// startLocked resets the match state and announces game_start to each
// human seat with its own index.
func (that *Session) startLocked() {
	that.board.Reset()
	that.history.Clear()
	that.turn = entity.ColorBlack
	that.status = StatusActive
	that.pendingUndo = noPendingUndo
	that.epoch++
	for i := range that.seats {
		that.seats[i].rematchVote = false
	}

	for i := range that.seats {
		if that.seats[i].participant == nil {
			continue
		}
		that.seats[i].participant.Send(Event{
			Kind: EventGameStart,
			Payload: GameStartPayload{
				PlayerIndex:   i,
				CurrentPlayer: int(that.turn),
				RoomName:      that.roomName,
			},
		})
	}

	that.maybeScheduleBotLocked()
}

// PlaceStone validates and applies one move from a seated participant.
// A rejected move never touches the board.
func (that *Session) PlaceStone(participantID string, row, col int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	index, ok := that.seatIndexLocked(participantID)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	return that.placeLocked(index, row, col)
}

func (that *Session) placeLocked(index, row, col int) error {
	if that.status != StatusActive {
		return apperror.ErrGameNotActive
	}

	color := colorForIndex(index)
	if color != that.turn {
		return apperror.ErrOutOfTurn
	}

	if !that.board.InBounds(row, col) || !that.board.IsEmpty(row, col) {
		return apperror.ErrInvalidCell
	}

	that.board.Place(row, col, color)
	that.history.Push(row, col, color)
	that.pendingUndo = noPendingUndo

	that.broadcastLocked(Event{
		Kind: EventStonePlaced,
		Payload: StonePlacedPayload{
			Row:         row,
			Col:         col,
			Color:       int(color),
			PlayerIndex: index,
		},
	})

	if line := entity.WinningLine(that.board, row, col, color); line != nil {
		that.finishLocked(GameOverPayload{Winner: index, WinnerColor: int(color), Line: line})
		return nil
	}

	if that.board.IsFull() {
		that.finishLocked(GameOverPayload{Winner: -1})
		return nil
	}

	that.turn = color.Other()
	that.broadcastLocked(Event{
		Kind:    EventTurnChange,
		Payload: TurnChangePayload{CurrentPlayer: int(that.turn)},
	})

	that.maybeScheduleBotLocked()

	return nil
}

func (that *Session) finishLocked(payload GameOverPayload) {
	that.status = StatusFinished
	that.epoch++
	that.broadcastLocked(Event{Kind: EventGameOver, Payload: payload})
}

// Leave vacates the seat of the departing participant. It returns true when
// no human remains and the room should be destroyed; otherwise the
// remaining participant is notified and the session is no longer playable
// until a fresh rematch.
func (that *Session) Leave(participantID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	index, ok := that.seatIndexLocked(participantID)
	if !ok {
		return false
	}

	that.seats[index] = seat{}
	that.epoch++
	that.pendingUndo = noPendingUndo

	remaining := that.seats[1-index]
	if !remaining.occupied() || remaining.isBot {
		that.cancel()
		return true
	}

	that.status = StatusFinished
	if remaining.participant != nil {
		remaining.participant.Send(Event{
			Kind:    EventOpponentLeft,
			Payload: OpponentLeftPayload{Message: "your opponent left the room"},
		})
	}

	return false
}

// RequestRematch records a rematch vote and notifies the opponent. The
// session restarts only when both seats agree; a bot seat agrees
// implicitly.
func (that *Session) RequestRematch(participantID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	index, ok := that.seatIndexLocked(participantID)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	opponent := &that.seats[1-index]
	if !opponent.occupied() {
		return apperror.ErrGameNotActive
	}

	that.seats[index].rematchVote = true
	if opponent.isBot {
		opponent.rematchVote = true
	}

	if opponent.participant != nil && !opponent.rematchVote {
		opponent.participant.Send(Event{Kind: EventNewGameRequested})
	}

	if that.seats[0].rematchVote && that.seats[1].rematchVote {
		that.startLocked()
	}

	return nil
}

// RequestUndo proposes taking back the most recent move. The opponent
// decides via ResolveUndo; a bot opponent approves immediately.
func (that *Session) RequestUndo(participantID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	index, ok := that.seatIndexLocked(participantID)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	if that.status != StatusActive {
		return apperror.ErrGameNotActive
	}

	if that.history.Len() == 0 {
		return apperror.ErrNothingToUndo
	}

	if that.pendingUndo != noPendingUndo {
		// One proposal at a time; the duplicate is dropped.
		return nil
	}

	opponent := &that.seats[1-index]
	if opponent.isBot {
		that.undoAgainstBotLocked(index)
		return nil
	}

	that.pendingUndo = index

	if opponent.participant != nil {
		opponent.participant.Send(Event{Kind: EventUndoRequested})
	}

	return nil
}

// undoAgainstBotLocked approves immediately and takes back moves up to and
// including the requester's own last one. Popping only the engine's reply
// would hand it the turn and it would replay the same position.
func (that *Session) undoAgainstBotLocked(index int) {
	that.pendingUndo = noPendingUndo

	if requester := that.seats[index].participant; requester != nil {
		requester.Send(Event{Kind: EventUndoResponse, Payload: UndoResponsePayload{Approved: true}})
	}

	for {
		move, ok := that.history.PopLast()
		if !ok {
			break
		}

		that.board.Clear(move.Row, move.Col)
		that.turn = move.Color
		that.broadcastLocked(Event{
			Kind:    EventUndoExecuted,
			Payload: UndoExecutedPayload{Row: move.Row, Col: move.Col, Color: int(move.Color)},
		})

		if move.Color == colorForIndex(index) {
			break
		}
	}

	that.epoch++
	that.broadcastLocked(Event{
		Kind:    EventTurnChange,
		Payload: TurnChangePayload{CurrentPlayer: int(that.turn)},
	})
}

// ResolveUndo processes the opponent's answer to a pending undo proposal.
// Approval pops exactly one move; denial notifies only the requester.
func (that *Session) ResolveUndo(participantID string, approved bool) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	index, ok := that.seatIndexLocked(participantID)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	if that.pendingUndo == noPendingUndo || that.pendingUndo == index {
		return apperror.ErrNoPendingUndo
	}

	requester := that.seats[that.pendingUndo].participant

	if !approved {
		that.pendingUndo = noPendingUndo
		if requester != nil {
			requester.Send(Event{Kind: EventUndoResponse, Payload: UndoResponsePayload{Approved: false}})
		}
		return nil
	}

	that.executeUndoLocked()

	return nil
}

// executeUndoLocked pops the single most recent move, clears its cell and
// hands the turn back to the color that played it.
func (that *Session) executeUndoLocked() {
	requesterIndex := that.pendingUndo
	that.pendingUndo = noPendingUndo

	move, ok := that.history.PopLast()
	if !ok {
		return
	}

	that.board.Clear(move.Row, move.Col)
	that.turn = move.Color
	that.epoch++

	if requester := that.seats[requesterIndex].participant; requester != nil {
		requester.Send(Event{Kind: EventUndoResponse, Payload: UndoResponsePayload{Approved: true}})
	}

	that.broadcastLocked(Event{
		Kind:    EventUndoExecuted,
		Payload: UndoExecutedPayload{Row: move.Row, Col: move.Col, Color: int(move.Color)},
	})
	that.broadcastLocked(Event{
		Kind:    EventTurnChange,
		Payload: TurnChangePayload{CurrentPlayer: int(that.turn)},
	})

	that.maybeScheduleBotLocked()
}

func (that *Session) seatIndexLocked(participantID string) (int, bool) {
	for i := range that.seats {
		if that.seats[i].participant != nil && that.seats[i].id() == participantID {
			return i, true
		}
	}
	return 0, false
}

func (that *Session) broadcastLocked(event Event) {
	for i := range that.seats {
		if that.seats[i].participant != nil {
			that.seats[i].participant.Send(event)
		}
	}
}

// PlayerCount reports the number of occupied seats, bot included.
func (that *Session) PlayerCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	count := 0
	for i := range that.seats {
		if that.seats[i].occupied() {
			count++
		}
	}
	return count
}

func (that *Session) Started() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.status != StatusWaiting
}

// Turn returns the color to move. Exposed for tests and diagnostics.
func (that *Session) Turn() entity.Color {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.turn
}

func (that *Session) Status() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.status
}

// HistoryLen returns the number of recorded moves.
func (that *Session) HistoryLen() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.history.Len()
}

// StoneAt exposes the canonical board read-only.
func (that *Session) StoneAt(row, col int) entity.Color {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board.At(row, col)
}
