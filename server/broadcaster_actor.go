// File: server/broadcaster_actor.go
package server

import (
	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/game"
	"golang.org/x/net/websocket"
)

// BroadcasterActor fans the updates of one game out to its websocket clients.
// It subscribes to the game on start and stops itself after the game is over.
type BroadcasterActor struct {
	sessionID string
	gamePID   *bollywood.PID
	clients   map[*websocket.Conn]Role
	over      bool
}

// NewBroadcasterProps creates props for a broadcaster serving gamePID.
func NewBroadcasterProps(sessionID string, gamePID *bollywood.PID) *bollywood.Props {
	return bollywood.NewProps(func() bollywood.Actor {
		return &BroadcasterActor{
			sessionID: sessionID,
			gamePID:   gamePID,
			clients:   make(map[*websocket.Conn]Role),
		}
	}).WithName("broadcaster")
}

// Receive handles messages for the BroadcasterActor.
func (a *BroadcasterActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		ctx.Send(a.gamePID, game.Subscribe{PID: ctx.Self()})

	case AddClient:
		if msg.Conn == nil || a.over {
			ctx.Reply(ErrSessionNotFound)
			return
		}
		a.clients[msg.Conn] = msg.Role
		ctx.Reply(len(a.clients))

	case RemoveClient:
		delete(a.clients, msg.Conn)

	case game.StateUpdate:
		a.broadcast(ctx, stateMessage{MessageType: messageState, GameState: msg.State})

	case game.GameOver:
		ctx.Logger().Info("Broadcaster: game over, closing connections", "session", a.sessionID, "clients", len(a.clients))
		a.over = true
		a.broadcast(ctx, gameOverMessage{MessageType: messageGameOver, GameOver: msg})
		ctx.Stop(ctx.Self())

	case bollywood.Stopping:
		ctx.Send(a.gamePID, game.Unsubscribe{PID: ctx.Self()})
		a.closeAll()
	}
}

// broadcast sends v to every client and forgets the ones that are gone.
func (a *BroadcasterActor) broadcast(ctx bollywood.Context, v interface{}) {
	for ws := range a.clients {
		if err := sendJSON(ws, v); err != nil {
			if !isClosedErr(err) {
				ctx.Logger().Warn("Broadcaster: failed to write to client", "session", a.sessionID, "remote", ws.Request().RemoteAddr, "error", err)
			}
			delete(a.clients, ws)
			_ = ws.Close()
		}
	}
}

// closeAll closes every client socket. Their read loops then end their handlers.
func (a *BroadcasterActor) closeAll() {
	for ws := range a.clients {
		_ = ws.Close()
	}
	a.clients = make(map[*websocket.Conn]Role)
}
