// File: server/session_manager_test.go
package server

import (
	"testing"
	"time"

	"github.com/lguibr/eggchef/audio"
	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/game"
	"github.com/lguibr/eggchef/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 3 * time.Second
const pollEvery = 10 * time.Millisecond

// fastConfig returns a config with a short round that starts immediately.
func fastConfig() utils.Config {
	cfg := utils.DefaultConfig()
	cfg.HenCount = 2
	cfg.ReadyCountdown = 0
	cfg.ReadyTick = 10 * time.Millisecond
	cfg.GameDuration = 600 * time.Millisecond
	cfg.GameTick = 100 * time.Millisecond
	cfg.EggLayInterval = 80 * time.Millisecond
	cfg.EggFallDuration = 120 * time.Millisecond
	cfg.ChefMoveDuration = 30 * time.Millisecond
	cfg.FrameInterval = 10 * time.Millisecond
	cfg.BroadcastPeriod = 20 * time.Millisecond
	cfg.ComboWindow = 50 * time.Millisecond
	cfg.SoundDebounce = 50 * time.Millisecond
	return cfg
}

func startManager(t *testing.T, cfg utils.Config) (*bollywood.Engine, *bollywood.PID) {
	t.Helper()
	engine := bollywood.NewEngine()
	t.Cleanup(func() { engine.Shutdown(time.Second) })

	props, err := NewSessionManagerProps(SessionManagerInput{
		Config: cfg,
		Player: &audio.Recorder{},
		Linger: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	pid := engine.Spawn(props)
	require.NotNil(t, pid)
	return engine, pid
}

func createSession(t *testing.T, engine *bollywood.Engine, manager *bollywood.PID) (Session, error) {
	t.Helper()
	reply, err := engine.Ask(manager, CreateSession{}, time.Second)
	if err != nil {
		return Session{}, err
	}
	return reply.(Session), nil
}

func listSessions(t *testing.T, engine *bollywood.Engine, manager *bollywood.PID) []SessionInfo {
	t.Helper()
	reply, err := engine.Ask(manager, ListSessions{}, time.Second)
	require.NoError(t, err)
	return reply.([]SessionInfo)
}

func TestSessionManager_CreateFindAndLimit(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.MaxSessions = 2
	engine, manager := startManager(t, cfg)

	first, err := createSession(t, engine, manager)
	require.NoError(t, err)
	assert.Equal(t, "session-1", first.ID)
	assert.True(t, engine.Alive(first.Game))
	assert.True(t, engine.Alive(first.Broadcaster))

	second, err := createSession(t, engine, manager)
	require.NoError(t, err)
	assert.Equal(t, "session-2", second.ID)

	_, err = createSession(t, engine, manager)
	assert.ErrorIs(t, err, ErrTooManySessions)

	reply, err := engine.Ask(manager, FindSession{ID: "session-2"}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, second, reply)

	_, err = engine.Ask(manager, FindSession{ID: "session-9"}, time.Second)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sessions := listSessions(t, engine, manager)
	require.Len(t, sessions, 2)
	assert.Equal(t, "session-1", sessions[0].ID)
	assert.True(t, sessions[0].Running)
	assert.Nil(t, sessions[0].Result)
}

func TestSessionManager_FinishedSessionKeepsResult(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxSessions = 1
	engine, manager := startManager(t, cfg)

	sess, err := createSession(t, engine, manager)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		sessions := listSessions(t, engine, manager)
		return len(sessions) == 1 && !sessions[0].Running && sessions[0].Result != nil
	}, waitFor, pollEvery)

	result := listSessions(t, engine, manager)[0].Result
	assert.Equal(t, sess.ID, result.SessionID)
	assert.Eventually(t, func() bool {
		return !engine.Alive(sess.Game) && !engine.Alive(sess.Broadcaster)
	}, waitFor, pollEvery)

	_, err = engine.Ask(manager, FindSession{ID: sess.ID}, time.Second)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// The slot is free again.
	next, err := createSession(t, engine, manager)
	require.NoError(t, err)
	assert.Equal(t, "session-2", next.ID)
}

func TestSessionManager_PlayerLeftEndsSession(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.MaxSessions = 1
	engine, manager := startManager(t, cfg)

	sess, err := createSession(t, engine, manager)
	require.NoError(t, err)
	engine.Send(sess.Game, game.PauseGame{}, nil)

	engine.Send(manager, PlayerLeft{SessionID: "session-9"}, nil)
	engine.Send(manager, PlayerLeft{SessionID: sess.ID}, nil)

	assert.Eventually(t, func() bool {
		sessions := listSessions(t, engine, manager)
		return len(sessions) == 1 && !sessions[0].Running
	}, waitFor, pollEvery)
	info := listSessions(t, engine, manager)[0]
	assert.True(t, info.Abandoned)
	assert.Nil(t, info.Result)
	assert.Eventually(t, func() bool {
		return !engine.Alive(sess.Game) && !engine.Alive(sess.Broadcaster)
	}, waitFor, pollEvery)

	_, err = createSession(t, engine, manager)
	assert.NoError(t, err)
}

func TestSessionManager_PlayerLeftAfterGameOverKeepsResult(t *testing.T) {
	engine, manager := startManager(t, fastConfig())
	_, err := createSession(t, engine, manager)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return listSessions(t, engine, manager)[0].Result != nil
	}, waitFor, pollEvery)
	engine.Send(manager, PlayerLeft{SessionID: "session-1"}, nil)

	assert.Eventually(t, func() bool { return !listSessions(t, engine, manager)[0].Running }, waitFor, pollEvery)
	info := listSessions(t, engine, manager)[0]
	assert.False(t, info.Abandoned)
	assert.NotNil(t, info.Result)
}

func TestSessionManager_UpdateConfig(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.MaxSessions = 1
	engine, manager := startManager(t, cfg)

	_, err := createSession(t, engine, manager)
	require.NoError(t, err)
	_, err = createSession(t, engine, manager)
	assert.ErrorIs(t, err, ErrTooManySessions)

	cfg.MaxSessions = 2
	engine.Send(manager, UpdateConfig{Config: cfg}, nil)
	_, err = createSession(t, engine, manager)
	require.NoError(t, err)

	invalid := cfg
	invalid.MaxSessions = 0
	engine.Send(manager, UpdateConfig{Config: invalid}, nil)
	_, err = createSession(t, engine, manager)
	assert.ErrorIs(t, err, ErrTooManySessions)
	assert.Len(t, listSessions(t, engine, manager), 2)
}

func TestSessionManager_StoppingStopsSessions(t *testing.T) {
	engine, manager := startManager(t, utils.DefaultConfig())
	sess, err := createSession(t, engine, manager)
	require.NoError(t, err)

	engine.Stop(manager)
	assert.Eventually(t, func() bool {
		return !engine.Alive(sess.Game) && !engine.Alive(sess.Broadcaster)
	}, waitFor, pollEvery)
}

func TestNewSessionManagerProps_Validates(t *testing.T) {
	bad := utils.DefaultConfig()
	bad.CanvasWidth = 0
	_, err := NewSessionManagerProps(SessionManagerInput{Config: bad, Player: &audio.Recorder{}})
	assert.ErrorIs(t, err, utils.ErrInvalidConfig)

	_, err = NewSessionManagerProps(SessionManagerInput{Config: utils.DefaultConfig()})
	assert.Error(t, err)
}
