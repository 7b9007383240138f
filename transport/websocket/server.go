package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/boardforge/gomoku-backend/internal/engine"
	"github.com/boardforge/gomoku-backend/internal/pkg"
	"github.com/boardforge/gomoku-backend/internal/room"
)

const (
	writeWait       = 10 * time.Second
	sendBufferSize  = 32
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	logger   *slog.Logger
	registry *room.Registry

	defaultDifficulty engine.Difficulty
	botSearchTimeout  time.Duration
	upgrader          websocket.Upgrader

	handlers map[string]func(client *Client, payload json.RawMessage) error
}

func New(logger *slog.Logger, registry *room.Registry, defaultDifficulty engine.Difficulty, botSearchTimeout time.Duration) *Server {
	server := &Server{
		logger:            logger,
		registry:          registry,
		defaultDifficulty: defaultDifficulty,
		botSearchTimeout:  botSearchTimeout,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		handlers: make(map[string]func(*Client, json.RawMessage) error),
	}

	server.handlers["list_rooms"] = server.handleListRooms
	server.handlers["create_room"] = server.handleCreateRoom
	server.handlers["join_room"] = server.handleJoinRoom
	server.handlers["leave_room"] = server.handleLeaveRoom
	server.handlers["place_stone"] = server.handlePlaceStone
	server.handlers["request_new_game"] = server.handleRequestNewGame
	server.handlers["request_undo"] = server.handleRequestUndo
	server.handlers["undo_response"] = server.handleUndoResponse

	return server
}

// Start runs the websocket endpoint until the context is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeConnection(w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("websocket server shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) upgradeConnection(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	id := pkg.GenerateSessionID()
	client := &Client{
		id:     id,
		logger: that.logger.With("clientID", id),
		conn:   conn,
		send:   make(chan Message, sendBufferSize),
		done:   make(chan struct{}),
	}

	log.Info("client connected", "clientID", client.id)

	go client.writePump()
	that.readLoop(client)
}

// readLoop consumes inbound messages one at a time, so each message is
// handled to completion before the next one from this connection.
func (that *Server) readLoop(client *Client) {
	defer that.disconnect(client)

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			client.logger.Info("connection closed", "error", err)
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			// Malformed frames are dropped, not surfaced.
			client.logger.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Type]
		if !ok {
			client.logger.Error("unknown message type", "type", message.Type)
			continue
		}

		if err = handler(client, message.Payload); err != nil {
			client.logger.Error("error processing message", "type", message.Type, "error", err)
			client.sendError(err)
		}
	}
}

// disconnect tears the client down with leave semantics: the registry
// notifies the opponent and destroys the room if it emptied.
func (that *Server) disconnect(client *Client) {
	that.registry.Leave(client.id)
	client.close()
}
