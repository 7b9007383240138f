package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/boardforge/gomoku-backend/internal/room"
)

// Client is one connected peer. It implements room.Participant: outbound
// events are enqueued on a buffered channel drained by a single writer
// goroutine, which keeps per-client delivery ordered.
type Client struct {
	id     string
	logger *slog.Logger
	conn   *websocket.Conn
	send   chan Message

	done      chan struct{}
	closeOnce sync.Once
}

func (that *Client) ID() string { return that.id }

// Send implements room.Participant. It never blocks the session: a client
// that cannot drain its queue is disconnected instead.
func (that *Client) Send(event room.Event) {
	that.enqueue(Message{Type: event.Kind, Payload: marshalPayload(that.logger, event.Payload)})
}

func (that *Client) enqueue(message Message) {
	select {
	case <-that.done:
	case that.send <- message:
	default:
		that.logger.Error("send buffer full, dropping client")
		that.close()
	}
}

func (that *Client) sendError(err error) {
	that.enqueue(Message{
		Type:    "error",
		Payload: marshalPayload(that.logger, errorPayload{Message: err.Error()}),
	})
}

func (that *Client) writePump() {
	for {
		select {
		case <-that.done:
			that.conn.Close()
			return
		case message := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteJSON(message); err != nil {
				that.logger.Error("failed to write message", "error", err)
				that.close()
				that.conn.Close()
				return
			}
		}
	}
}

func (that *Client) close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

func marshalPayload(logger *slog.Logger, payload any) json.RawMessage {
	if payload == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal payload", "error", err)
		return nil
	}

	return data
}
