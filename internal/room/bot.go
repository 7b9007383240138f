package room

import (
	"context"
	"errors"

	"github.com/boardforge/gomoku-backend/internal/engine"
	"github.com/boardforge/gomoku-backend/internal/entity"
)

// botSeatIndex finds the bot's seat, or -1 for a human-only session.
func (that *Session) botSeatIndexLocked() int {
	for i := range that.seats {
		if that.seats[i].isBot {
			return i
		}
	}
	return -1
}

// maybeScheduleBotLocked launches a search whenever the bot is to move.
// The search runs on a board snapshot off the dispatch path so a deep
// search never stalls message delivery; the result goes back through the
// same serialized path and is dropped if the session moved on meanwhile.
func (that *Session) maybeScheduleBotLocked() {
	index := that.botSeatIndexLocked()
	if index == -1 || that.status != StatusActive || that.turn != colorForIndex(index) {
		return
	}

	epoch := that.epoch
	snapshot := that.board.Clone()
	color := colorForIndex(index)
	difficulty := that.botDifficulty
	timeout := that.botSearchTimeout

	go func() {
		ctx := that.ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		move, err := engine.SelectMove(ctx, snapshot, color, difficulty)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				that.logger.Error("bot search failed", "error", err)
			}
			return
		}

		that.applyBotMove(epoch, move)
	}()
}

// applyBotMove commits a finished search unless the session has advanced
// past the epoch the search started under (restart, undo, disconnect).
func (that *Session) applyBotMove(epoch int, move entity.Point) {
	that.mu.Lock()
	defer that.mu.Unlock()

	index := that.botSeatIndexLocked()
	if index == -1 || epoch != that.epoch || that.status != StatusActive || that.turn != colorForIndex(index) {
		return
	}

	if err := that.placeLocked(index, move.Row, move.Col); err != nil {
		that.logger.Error("bot move rejected", "error", err, "row", move.Row, "col", move.Col)
	}
}
