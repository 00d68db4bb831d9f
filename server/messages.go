// File: server/messages.go
package server

import (
	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/utils"
	"golang.org/x/net/websocket"
)

// --- SessionManagerActor Messages ---

// CreateSession asks the manager for a new session (used via Ask).
// The reply is a Session or ErrTooManySessions.
type CreateSession struct{}

// FindSession looks up a running session by ID (used via Ask).
// The reply is a Session or ErrSessionNotFound.
type FindSession struct {
	ID string
}

// ListSessions asks for every known session, running or finished (used via Ask).
// The reply is a []SessionInfo in creation order.
type ListSessions struct{}

// UpdateConfig replaces the config used for sessions created from now on.
type UpdateConfig struct {
	Config utils.Config
}

// PlayerLeft tells the manager that a session's player disconnected.
// A round that is still running is abandoned and its game stopped.
type PlayerLeft struct {
	SessionID string
}

// Session identifies the actors serving one game.
type Session struct {
	ID          string
	Game        *bollywood.PID
	Broadcaster *bollywood.PID
}

// stopSession ends a finished session after its linger period.
type stopSession struct {
	ID string
}

// --- BroadcasterActor Messages ---

// AddClient registers a websocket with a broadcaster (used via Ask).
type AddClient struct {
	Conn *websocket.Conn
	Role Role
}

// RemoveClient unregisters a websocket.
type RemoveClient struct {
	Conn *websocket.Conn
}

// --- ConnectionHandlerActor Messages ---

// clientMessage is a decoded frame handed from the read loop to its actor.
// Err is set when the frame was not valid JSON.
type clientMessage struct {
	Command clientCommand
	Err     error
}

// readLoopExited is sent by the read loop when the socket is done.
type readLoopExited struct {
	Err error
}
