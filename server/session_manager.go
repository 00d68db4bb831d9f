// File: server/session_manager.go
package server

import (
	"fmt"
	"sort"
	"time"

	"github.com/lguibr/eggchef/audio"
	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/game"
	"github.com/lguibr/eggchef/utils"
)

// DefaultSessionLinger is how long a finished game stays alive so its last
// sounds and messages are delivered.
const DefaultSessionLinger = 2 * time.Second

// SessionInfo describes a session for listings.
type SessionInfo struct {
	ID      string         `json:"id"`
	Running bool           `json:"running"`
	Started time.Time      `json:"started"`
	Result  *game.GameOver `json:"result,omitempty"`

	// Abandoned is set when the player left before the round ended.
	Abandoned bool `json:"abandoned,omitempty"`
}

type sessionEntry struct {
	Session
	seq  int
	info SessionInfo
}

// SessionManagerActor creates and owns every game session. Games and their
// broadcasters are its children.
type SessionManagerActor struct {
	cfg     utils.Config
	player  audio.Player
	linger  time.Duration
	nextID  int
	running int

	sessions map[string]*sessionEntry
	order    []string // Finished sessions, oldest first
}

// SessionManagerInput configures the manager.
type SessionManagerInput struct {
	Config utils.Config
	Player audio.Player
	// Linger defaults to DefaultSessionLinger.
	Linger time.Duration
}

// NewSessionManagerProps validates in and creates props for the manager.
func NewSessionManagerProps(in SessionManagerInput) (*bollywood.Props, error) {
	if err := in.Config.Validate(); err != nil {
		return nil, err
	}
	if in.Player == nil {
		return nil, fmt.Errorf("session manager: no audio player")
	}
	if in.Linger <= 0 {
		in.Linger = DefaultSessionLinger
	}
	return bollywood.NewProps(func() bollywood.Actor {
		return &SessionManagerActor{
			cfg:      in.Config,
			player:   in.Player,
			linger:   in.Linger,
			nextID:   1,
			sessions: make(map[string]*sessionEntry),
		}
	}).WithName("sessions"), nil
}

// Receive Method
func (a *SessionManagerActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		ctx.Logger().Info("SessionManagerActor: started", "maxSessions", a.cfg.MaxSessions)

	case CreateSession:
		a.handleCreateSession(ctx)

	case FindSession:
		entry, ok := a.sessions[msg.ID]
		if !ok || !entry.info.Running {
			ctx.Reply(fmt.Errorf("%w: %q", ErrSessionNotFound, msg.ID))
			return
		}
		ctx.Reply(entry.Session)

	case ListSessions:
		ctx.Reply(a.list())

	case UpdateConfig:
		if err := msg.Config.Validate(); err != nil {
			ctx.Logger().Warn("SessionManagerActor: rejected config update", "error", err)
			return
		}
		a.cfg = msg.Config
		ctx.Logger().Info("SessionManagerActor: config updated", "maxSessions", a.cfg.MaxSessions)

	case game.GameOver:
		a.handleGameOver(ctx, msg)

	case PlayerLeft:
		a.handlePlayerLeft(ctx, msg.SessionID)

	case stopSession:
		if entry, ok := a.sessions[msg.ID]; ok {
			ctx.Stop(entry.Game)
			ctx.Stop(entry.Broadcaster)
		}

	case bollywood.Terminated:
		a.handleTerminated(ctx, msg.Who)

	case bollywood.Stopping:
		ctx.Logger().Info("SessionManagerActor: stopping", "running", a.running)

	default:
		if ctx.RequestID() != "" {
			ctx.Reply(fmt.Errorf("unknown message type: %T", msg))
		}
	}
}

func (a *SessionManagerActor) handleCreateSession(ctx bollywood.Context) {
	if a.running >= a.cfg.MaxSessions {
		ctx.Logger().Warn("SessionManagerActor: max sessions reached", "maxSessions", a.cfg.MaxSessions)
		ctx.Reply(fmt.Errorf("%w (%d)", ErrTooManySessions, a.cfg.MaxSessions))
		return
	}

	id := fmt.Sprintf("session-%d", a.nextID)
	props, err := game.NewEggGameProps(id, a.cfg, a.player)
	if err != nil {
		ctx.Reply(err)
		return
	}
	gamePID := ctx.Spawn(props)
	if gamePID == nil {
		ctx.Reply(fmt.Errorf("session %s: spawn failed", id))
		return
	}
	broadcasterPID := ctx.Spawn(NewBroadcasterProps(id, gamePID))
	if broadcasterPID == nil {
		ctx.Stop(gamePID)
		ctx.Reply(fmt.Errorf("session %s: spawn broadcaster failed", id))
		return
	}
	a.nextID++
	a.running++

	entry := &sessionEntry{
		Session: Session{ID: id, Game: gamePID, Broadcaster: broadcasterPID},
		seq:     a.nextID - 1,
		info:    SessionInfo{ID: id, Running: true, Started: ctx.Clock().Now()},
	}
	a.sessions[id] = entry
	ctx.Logger().Info("SessionManagerActor: session created", "session", id, "running", a.running)
	ctx.Reply(entry.Session)
}

// handleGameOver records the result and schedules the session's shutdown.
func (a *SessionManagerActor) handleGameOver(ctx bollywood.Context, result game.GameOver) {
	entry, ok := a.sessions[result.SessionID]
	if !ok || entry.info.Result != nil {
		return
	}
	entry.info.Result = &result
	ctx.After(a.linger, stopSession{ID: result.SessionID})
}

// handlePlayerLeft stops a session whose player is gone. Finished rounds are
// left to their linger timer.
func (a *SessionManagerActor) handlePlayerLeft(ctx bollywood.Context, id string) {
	entry, ok := a.sessions[id]
	if !ok || !entry.info.Running || entry.info.Result != nil {
		return
	}
	entry.info.Abandoned = true
	ctx.Logger().Info("SessionManagerActor: player left, stopping session", "session", id)
	ctx.Stop(entry.Game)
}

// handleTerminated marks a session finished once its game actor is gone and
// trims the oldest finished sessions beyond MaxSessions.
func (a *SessionManagerActor) handleTerminated(ctx bollywood.Context, who *bollywood.PID) {
	for id, entry := range a.sessions {
		if !who.Equal(entry.Game) {
			continue
		}
		if !entry.info.Running {
			return
		}
		entry.info.Running = false
		a.running--
		ctx.Stop(entry.Broadcaster)
		a.order = append(a.order, id)
		for len(a.order) > a.cfg.MaxSessions {
			delete(a.sessions, a.order[0])
			a.order = a.order[1:]
		}
		ctx.Logger().Info("SessionManagerActor: session ended", "session", id, "running", a.running)
		return
	}
}

func (a *SessionManagerActor) list() []SessionInfo {
	entries := make([]*sessionEntry, 0, len(a.sessions))
	for _, entry := range a.sessions {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]SessionInfo, 0, len(entries))
	for _, entry := range entries {
		info := entry.info
		if info.Result != nil {
			result := *info.Result
			info.Result = &result
		}
		out = append(out, info)
	}
	return out
}
