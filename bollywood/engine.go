package bollywood

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const defaultMailboxSize = 1024

var (
	// ErrAskTimeout is returned by Ask when no reply arrives in time.
	ErrAskTimeout = errors.New("bollywood: ask timed out")
	// ErrActorNotFound is returned by Ask when the target is not running.
	ErrActorNotFound = errors.New("bollywood: actor not found")
	// ErrEngineStopping is returned by Ask once Shutdown has begun.
	ErrEngineStopping = errors.New("bollywood: engine is stopping")
	// ErrActorPanicked is returned to an asker whose request made the actor panic.
	ErrActorPanicked = errors.New("bollywood: actor panicked")
)

// Engine manages the lifecycle and message dispatching for actors.
type Engine struct {
	pidCounter  uint64
	askCounter  uint64
	actors      map[string]*process
	mu          sync.RWMutex // Protects the actors map
	stopping    atomic.Bool  // Indicates if the engine is shutting down
	pending     map[string]chan futureResponse
	pendingMu   sync.Mutex
	clock       Clock
	logger      *slog.Logger
	mailboxSize int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock sets the clock used for actor timers (After/Every).
func WithClock(c Clock) EngineOption {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the logger handed to actors through their Context.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithMailboxSize sets the per-actor mailbox capacity.
func WithMailboxSize(size int) EngineOption {
	return func(e *Engine) {
		if size > 0 {
			e.mailboxSize = size
		}
	}
}

// NewEngine creates a new actor engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		actors:      make(map[string]*process),
		pending:     make(map[string]chan futureResponse),
		clock:       RealClock{},
		logger:      logger,
		mailboxSize: defaultMailboxSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Clock returns the clock driving actor timers.
func (e *Engine) Clock() Clock { return e.clock }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// nextPID generates a unique process ID.
func (e *Engine) nextPID(name string) *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	if name == "" {
		name = "actor"
	}
	return &PID{ID: fmt.Sprintf("%s-%d", name, id)}
}

// Spawn creates and starts a new root actor based on the provided Props.
// It returns the PID of the newly created actor, or nil if the engine is stopping.
func (e *Engine) Spawn(props *Props) *PID {
	return e.spawn(props, nil)
}

func (e *Engine) spawn(props *Props, parent *PID) *PID {
	if e.stopping.Load() {
		e.logger.Warn("Engine is stopping, cannot spawn new actors")
		return nil
	}

	pid := e.nextPID(props.name)
	proc := newProcess(e, pid, parent, props)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	if parent != nil {
		parentProc := e.lookup(parent)
		if parentProc == nil || !parentProc.adopt(pid) {
			e.mu.Lock()
			delete(e.actors, pid.ID)
			e.mu.Unlock()
			e.logger.Warn("Parent is not running, child not spawned", "parent", parent.String())
			return nil
		}
	}

	go proc.run()

	return pid
}

func (e *Engine) lookup(pid *PID) *process {
	if pid == nil {
		return nil
	}
	e.mu.RLock()
	proc := e.actors[pid.ID]
	e.mu.RUnlock()
	return proc
}

// Alive reports whether the actor is registered and has not been asked to stop.
func (e *Engine) Alive(pid *PID) bool {
	proc := e.lookup(pid)
	return proc != nil && !proc.stopped.Load()
}

// Send delivers a message to the actor identified by the PID.
// sender can be nil if the message originates from outside the actor system.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if e.stopping.Load() {
		return
	}
	if proc := e.lookup(pid); proc != nil {
		proc.sendMessage(message, sender, "")
	}
}

// Stop requests an actor to stop. Its timers are canceled before Stop returns;
// its children are stopped and Stopping/Stopped are delivered asynchronously.
func (e *Engine) Stop(pid *PID) {
	if proc := e.lookup(pid); proc != nil {
		proc.stop()
	}
}

// Ask sends message to pid and waits for the actor to call Context.Reply.
// The timeout is measured on the wall clock, independent of the engine Clock.
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if e.stopping.Load() {
		return nil, ErrEngineStopping
	}
	proc := e.lookup(pid)
	if proc == nil || proc.stopped.Load() {
		return nil, fmt.Errorf("%w: %s", ErrActorNotFound, pid)
	}

	requestID := fmt.Sprintf("ask-%d", atomic.AddUint64(&e.askCounter, 1))
	ch := make(chan futureResponse, 1)
	e.pendingMu.Lock()
	e.pending[requestID] = ch
	e.pendingMu.Unlock()
	defer func() {
		e.pendingMu.Lock()
		delete(e.pending, requestID)
		e.pendingMu.Unlock()
	}()

	proc.sendMessage(message, nil, requestID)

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case resp := <-ch:
		return resp.Result, resp.Err
	case <-timer.C:
		return nil, fmt.Errorf("%w: %T to %s after %s", ErrAskTimeout, message, pid, timeout)
	}
}

// reply completes a pending Ask. Late replies are dropped.
func (e *Engine) reply(requestID string, result interface{}, err error) {
	e.pendingMu.Lock()
	ch, ok := e.pending[requestID]
	e.pendingMu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- futureResponse{Result: result, Err: err}:
	default:
	}
}

// remove removes an actor process from the engine's tracking and tells its parent.
func (e *Engine) remove(proc *process) {
	e.mu.Lock()
	delete(e.actors, proc.pid.ID)
	e.mu.Unlock()

	if proc.parent == nil {
		return
	}
	if parentProc := e.lookup(proc.parent); parentProc != nil {
		parentProc.disown(proc.pid)
		parentProc.sendMessage(Terminated{Who: proc.pid}, proc.pid, "")
	}
}

// Shutdown stops all actors and waits for them to terminate gracefully.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		e.logger.Debug("Engine already shutting down")
		return
	}

	e.mu.RLock()
	toStop := make([]*process, 0, len(e.actors))
	for _, proc := range e.actors {
		toStop = append(toStop, proc)
	}
	e.mu.RUnlock()

	e.logger.Debug("Engine shutdown initiated", "actors", len(toStop))
	for _, proc := range toStop {
		proc.stop()
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		e.mu.RLock()
		remaining := len(e.actors)
		e.mu.RUnlock()
		if remaining == 0 {
			e.logger.Debug("Engine shutdown complete")
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	e.mu.Lock()
	remaining := make([]string, 0, len(e.actors))
	for id := range e.actors {
		remaining = append(remaining, id)
	}
	e.actors = make(map[string]*process)
	e.mu.Unlock()
	e.logger.Warn("Engine shutdown timeout, actors did not stop gracefully", "remaining", remaining)
}
