// File: server/server.go
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lguibr/eggchef/audio"
	"github.com/lguibr/eggchef/bollywood"
	"golang.org/x/net/websocket"
)

var logger = slog.Default()

// SetLogger replaces the package logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// SoundSource renders sound cues for download.
type SoundSource interface {
	WAV(id audio.SoundID) ([]byte, error)
}

// Server exposes the session manager over HTTP and websockets.
type Server struct {
	engine     *bollywood.Engine
	manager    *bollywood.PID
	sounds     SoundSource
	askTimeout time.Duration
}

// New creates a server talking to the SessionManagerActor at manager.
func New(engine *bollywood.Engine, manager *bollywood.PID, sounds SoundSource, askTimeout time.Duration) *Server {
	return &Server{
		engine:     engine,
		manager:    manager,
		sounds:     sounds,
		askTimeout: askTimeout,
	}
}

// Routes returns the HTTP handler serving every endpoint.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.HandleHealth())
	mux.Handle("GET /play", websocket.Handler(s.HandlePlay()))
	mux.Handle("GET /watch", websocket.Handler(s.HandleWatch()))
	mux.HandleFunc("GET /sessions", s.HandleListSessions())
	mux.HandleFunc("GET /sessions/ascii", s.HandleASCII())
	mux.HandleFunc("GET /sounds/{file}", s.HandleSound())
	return mux
}
