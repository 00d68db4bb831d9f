// File: server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/lguibr/eggchef/audio"
	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/game"
	"golang.org/x/net/websocket"
)

const (
	defaultASCIIResolution = 48
	maxASCIIResolution     = 400
)

// HandlePlay starts a new session and lets the websocket control its chef.
func (s *Server) HandlePlay() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		defer ws.Close()

		reply, err := s.engine.Ask(s.manager, CreateSession{}, s.askTimeout)
		if err != nil {
			logger.Warn("HandlePlay: cannot create session", "remote", ws.Request().RemoteAddr, "error", err)
			sendError(ws, err)
			return
		}
		s.serve(ws, reply.(Session), RolePlayer)
	}
}

// HandleWatch attaches a spectator to the session named by ?session=.
func (s *Server) HandleWatch() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		defer ws.Close()

		id := ws.Request().URL.Query().Get("session")
		reply, err := s.engine.Ask(s.manager, FindSession{ID: id}, s.askTimeout)
		if err != nil {
			sendError(ws, err)
			return
		}
		s.serve(ws, reply.(Session), RoleSpectator)
	}
}

// serve registers ws with the session's broadcaster and blocks until the
// connection handler has stopped.
func (s *Server) serve(ws *websocket.Conn, sess Session, role Role) {
	remote := ws.Request().RemoteAddr
	if err := sendJSON(ws, sessionMessage{MessageType: messageSession, SessionID: sess.ID, Role: role}); err != nil {
		return
	}
	if _, err := s.engine.Ask(sess.Broadcaster, AddClient{Conn: ws, Role: role}, s.askTimeout); err != nil {
		sendError(ws, err)
		return
	}

	done := make(chan struct{})
	pid := s.engine.Spawn(NewConnectionHandlerProps(ConnectionHandlerArgs{
		Conn:    ws,
		Manager: s.manager,
		Session: sess,
		Role:    role,
		Done:    done,
	}))
	if pid == nil {
		s.engine.Send(sess.Broadcaster, RemoveClient{Conn: ws}, nil)
		return
	}
	logger.Info("Client connected", "session", sess.ID, "role", role, "remote", remote)
	<-done
	logger.Info("Client disconnected", "session", sess.ID, "role", role, "remote", remote)
}

// HandleHealth reports that the server is up.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// HandleListSessions returns every known session as JSON.
func (s *Server) HandleListSessions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply, err := s.engine.Ask(s.manager, ListSessions{}, s.askTimeout)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reply.([]SessionInfo))
	}
}

// HandleASCII renders a running session as text, ?resolution= columns wide.
func (s *Server) HandleASCII() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resolution := defaultASCIIResolution
		if raw := r.URL.Query().Get("resolution"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 || n > maxASCIIResolution {
				http.Error(w, fmt.Sprintf("resolution must be 1..%d", maxASCIIResolution), http.StatusBadRequest)
				return
			}
			resolution = n
		}

		reply, err := s.engine.Ask(s.manager, FindSession{ID: r.URL.Query().Get("session")}, s.askTimeout)
		if err != nil {
			httpError(w, err)
			return
		}
		frame, err := s.engine.Ask(reply.(Session).Game, game.GetASCII{Resolution: resolution}, s.askTimeout)
		if err != nil {
			httpError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(frame.(string)))
	}
}

// HandleSound serves /sounds/{id}.wav.
func (s *Server) HandleSound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := r.PathValue("file")
		name, ok := strings.CutSuffix(file, ".wav")
		if !ok {
			http.NotFound(w, r)
			return
		}
		id, err := audio.ParseSoundID(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		data, err := s.sounds.WAV(id)
		if err != nil {
			logger.Error("HandleSound: render failed", "sound", name, "error", err)
			http.Error(w, "cannot render sound", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Error writing HTTP response", "error", err)
	}
}

// httpError maps actor and session errors to status codes.
func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrTooManySessions),
		errors.Is(err, bollywood.ErrAskTimeout),
		errors.Is(err, bollywood.ErrActorNotFound),
		errors.Is(err, bollywood.ErrEngineStopping):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
