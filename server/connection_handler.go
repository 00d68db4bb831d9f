// File: server/connection_handler.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/lguibr/eggchef/bollywood"
	"golang.org/x/net/websocket"
)

// Role is what a websocket client may do in a session.
type Role string

const (
	// RolePlayer controls the chef.
	RolePlayer Role = "player"
	// RoleSpectator only receives updates.
	RoleSpectator Role = "spectator"
)

const readLoopExitTimeout = 2 * time.Second

// ConnectionHandlerActor manages a single WebSocket connection lifecycle.
// A goroutine reads frames and hands them to the actor, which forwards the
// player's commands to the game. Writes are done by the session's broadcaster.
type ConnectionHandlerActor struct {
	conn           *websocket.Conn
	managerPID     *bollywood.PID
	session        Session
	role           Role
	connAddr       string
	stopReadLoop   chan struct{}
	readLoopExited chan struct{}
	done           chan struct{}
	stopOnce       sync.Once
	closeOnce      sync.Once
}

// ConnectionHandlerArgs holds arguments for creating the actor.
type ConnectionHandlerArgs struct {
	Conn *websocket.Conn
	// Manager is told when a player leaves.
	Manager *bollywood.PID
	Session Session
	Role    Role
	// Done is closed after the actor has stopped.
	Done chan struct{}
}

// NewConnectionHandlerProps creates props for a ConnectionHandlerActor.
func NewConnectionHandlerProps(args ConnectionHandlerArgs) *bollywood.Props {
	return bollywood.NewProps(func() bollywood.Actor {
		addr := "unknown"
		if args.Conn != nil && args.Conn.Request() != nil {
			addr = args.Conn.Request().RemoteAddr
		}
		return &ConnectionHandlerActor{
			conn:           args.Conn,
			managerPID:     args.Manager,
			session:        args.Session,
			role:           args.Role,
			connAddr:       addr,
			stopReadLoop:   make(chan struct{}),
			readLoopExited: make(chan struct{}),
			done:           args.Done,
		}
	}).WithName("conn")
}

// Receive handles messages for the ConnectionHandlerActor.
func (a *ConnectionHandlerActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		if a.conn == nil {
			ctx.Logger().Error("ConnectionHandlerActor: no connection, stopping")
			close(a.readLoopExited)
			ctx.Stop(ctx.Self())
			return
		}
		go a.readLoop(ctx.Engine(), ctx.Self())

	case clientMessage:
		a.handleClientMessage(ctx, msg)

	case readLoopExited:
		if msg.Err != nil && !isClosedErr(msg.Err) {
			ctx.Logger().Warn("ConnectionHandlerActor: read failed", "remote", a.connAddr, "error", msg.Err)
		}
		ctx.Send(a.session.Broadcaster, RemoveClient{Conn: a.conn})
		if a.role == RolePlayer && a.managerPID != nil {
			ctx.Send(a.managerPID, PlayerLeft{SessionID: a.session.ID})
		}
		ctx.Stop(ctx.Self())

	case bollywood.Stopping:
		a.signalAndWaitForReadLoop(ctx)

	case bollywood.Stopped:
		a.closeOnce.Do(func() {
			if a.done != nil {
				close(a.done)
			}
		})
	}
}

func (a *ConnectionHandlerActor) handleClientMessage(ctx bollywood.Context, msg clientMessage) {
	if msg.Err != nil {
		sendError(a.conn, fmt.Errorf("%w: %v", ErrBadCommand, msg.Err))
		return
	}
	if a.role != RolePlayer {
		ctx.Logger().Debug("ConnectionHandlerActor: ignoring spectator command", "remote", a.connAddr, "type", msg.Command.Type)
		return
	}
	gameMsg, err := msg.Command.toGameMessage()
	if err != nil {
		sendError(a.conn, err)
		return
	}
	ctx.Send(a.session.Game, gameMsg)
}

// readLoop decodes frames until the socket fails or the actor stops.
func (a *ConnectionHandlerActor) readLoop(engine *bollywood.Engine, selfPID *bollywood.PID) {
	var exitErr error
	defer func() {
		if r := recover(); r != nil {
			exitErr = fmt.Errorf("read loop panic: %v", r)
			engine.Logger().Error("ConnectionHandlerActor: panic in read loop", "remote", a.connAddr, "panic", r, "stack", string(debug.Stack()))
		}
		close(a.readLoopExited)
		engine.Send(selfPID, readLoopExited{Err: exitErr}, nil)
	}()

	for {
		select {
		case <-a.stopReadLoop:
			return
		default:
		}

		var cmd clientCommand
		err := websocket.JSON.Receive(a.conn, &cmd)
		if err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				engine.Send(selfPID, clientMessage{Err: err}, nil)
				continue
			}
			exitErr = err
			return
		}
		engine.Send(selfPID, clientMessage{Command: cmd}, nil)
	}
}

// signalAndWaitForReadLoop tells the readLoop goroutine to exit and waits for confirmation.
func (a *ConnectionHandlerActor) signalAndWaitForReadLoop(ctx bollywood.Context) {
	a.stopOnce.Do(func() { close(a.stopReadLoop) })

	// Closing the socket unblocks a pending Receive.
	if a.conn != nil {
		_ = a.conn.Close()
	}

	select {
	case <-a.readLoopExited:
	case <-time.After(readLoopExitTimeout):
		ctx.Logger().Warn("ConnectionHandlerActor: timeout waiting for read loop to exit", "remote", a.connAddr)
	}
}
