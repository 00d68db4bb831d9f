// File: server/websocket.go
package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/lguibr/eggchef/game"
	"github.com/lguibr/eggchef/utils"
	"golang.org/x/net/websocket"
)

const writeTimeout = 5 * time.Second

// Client -> server command types.
const (
	commandMove   = "move"
	commandPause  = "pause"
	commandResume = "resume"
)

// Server -> client message types.
const (
	messageSession  = "session"
	messageState    = "state"
	messageGameOver = "gameOver"
	messageError    = "error"
)

// clientCommand is a frame sent by a browser, e.g. {"type":"move","direction":"left"}.
type clientCommand struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"`
}

// toGameMessage translates the command into the message the game actor understands.
func (c clientCommand) toGameMessage() (interface{}, error) {
	switch c.Type {
	case commandMove:
		dir := utils.DirectionFromString(c.Direction)
		if dir == "" {
			return nil, fmt.Errorf("%w: direction %q", ErrBadCommand, c.Direction)
		}
		return game.MoveChef{Direction: dir}, nil
	case commandPause:
		return game.PauseGame{}, nil
	case commandResume:
		return game.ResumeGame{}, nil
	}
	return nil, fmt.Errorf("%w: type %q", ErrBadCommand, c.Type)
}

type sessionMessage struct {
	MessageType string `json:"messageType"`
	SessionID   string `json:"sessionId"`
	Role        Role   `json:"role"`
}

type stateMessage struct {
	MessageType string `json:"messageType"`
	game.GameState
}

type gameOverMessage struct {
	MessageType string `json:"messageType"`
	game.GameOver
}

type errorMessage struct {
	MessageType string `json:"messageType"`
	Error       string `json:"error"`
}

// sendJSON writes v as one text frame, giving up after writeTimeout.
func sendJSON(ws *websocket.Conn, v interface{}) error {
	_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	err := websocket.JSON.Send(ws, v)
	_ = ws.SetWriteDeadline(time.Time{})
	return err
}

func sendError(ws *websocket.Conn, err error) {
	_ = sendJSON(ws, errorMessage{MessageType: messageError, Error: err.Error()})
}

// isClosedErr reports errors that mean the peer is gone rather than a bad frame.
func isClosedErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer")
}
