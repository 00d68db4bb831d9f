// File: game/test_utils_test.go
package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/render"
)

const (
	waitFor   = 2 * time.Second
	pollEvery = 5 * time.Millisecond
)

var epoch = time.Unix(0, 0)

// --- Test Receiver Actor (Mock Parent) ---

// spawnChildRequest makes a MockParentActor spawn a child and reply with its PID.
type spawnChildRequest struct {
	Props *bollywood.Props
}

// MockParentActor owns the actor under test and records what it sends upward.
type MockParentActor struct {
	mu       sync.Mutex
	received []interface{}
}

func (m *MockParentActor) Receive(ctx bollywood.Context) {
	if req, ok := ctx.Message().(spawnChildRequest); ok {
		ctx.Reply(ctx.Spawn(req.Props))
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = append(m.received, ctx.Message())
}

func (m *MockParentActor) GetMessages() []interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := make([]interface{}, len(m.received))
	copy(msgs, m.received)
	return msgs
}

// messagesOf returns every recorded message of type T, in arrival order.
func messagesOf[T any](m *MockParentActor) []T {
	var out []T
	for _, msg := range m.GetMessages() {
		if typed, ok := msg.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func terminatedCount(m *MockParentActor, who *bollywood.PID) int {
	n := 0
	for _, term := range messagesOf[bollywood.Terminated](m) {
		if term.Who.Equal(who) {
			n++
		}
	}
	return n
}

// newManualEngine returns an engine driven by a ManualClock, shut down at test end.
func newManualEngine(t *testing.T) (*bollywood.Engine, *bollywood.ManualClock) {
	t.Helper()
	clock := bollywood.NewManualClock(epoch)
	engine := bollywood.NewEngine(bollywood.WithClock(clock))
	t.Cleanup(func() { engine.Shutdown(time.Second) })
	return engine, clock
}

// spawnUnderMock starts props as a child of a fresh MockParentActor.
func spawnUnderMock(t *testing.T, engine *bollywood.Engine, props *bollywood.Props) (*MockParentActor, *bollywood.PID, *bollywood.PID) {
	t.Helper()
	parent := &MockParentActor{}
	parentPID := engine.Spawn(bollywood.NewProps(func() bollywood.Actor { return parent }))
	require.NotNil(t, parentPID)

	reply, err := engine.Ask(parentPID, spawnChildRequest{Props: props}, time.Second)
	require.NoError(t, err)
	child, ok := reply.(*bollywood.PID)
	require.True(t, ok, "unexpected reply %T", reply)
	require.NotNil(t, child)
	return parent, parentPID, child
}

// waitArmed blocks until the earliest armed deadline is exactly at.
func waitArmed(t *testing.T, clock *bollywood.ManualClock, at time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool {
		next, ok := clock.Next()
		return ok && next.Equal(epoch.Add(at))
	}, waitFor, pollEvery, "nothing armed at %s", at)
}

// recordingObserver captures animation callbacks.
type recordingObserver struct {
	mu        sync.Mutex
	frames    []render.Transform
	completed []render.Transform
}

func (o *recordingObserver) AnimationFrame(id string, t render.Transform, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.frames = append(o.frames, t)
}

func (o *recordingObserver) AnimationComplete(id string, final render.Transform) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.completed = append(o.completed, final)
}

func (o *recordingObserver) counts() (frames, completed int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.frames), len(o.completed)
}
