package bollywood

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// process represents the running instance of an actor, including its state and mailbox.
type process struct {
	engine   *Engine
	pid      *PID
	parent   *PID
	actor    Actor
	mailbox  chan *messageEnvelope
	props    *Props
	log      *slog.Logger
	stopCh   chan struct{} // Closed once by stop()
	stopOnce sync.Once
	stopped  atomic.Bool

	mu           sync.Mutex // Protects children and timers
	children     map[string]*PID
	timers       map[uint64]Timer
	timerSeq     uint64
	timersClosed bool
}

func newProcess(engine *Engine, pid, parent *PID, props *Props) *process {
	return &process{
		engine:   engine,
		pid:      pid,
		parent:   parent,
		props:    props,
		log:      engine.logger.With("pid", pid.ID),
		mailbox:  make(chan *messageEnvelope, engine.mailboxSize),
		stopCh:   make(chan struct{}),
		children: make(map[string]*PID),
		timers:   make(map[uint64]Timer),
	}
}

// sendMessage sends a message to the actor's mailbox without blocking.
func (p *process) sendMessage(message interface{}, sender *PID, requestID string) {
	if p.stopped.Load() {
		return
	}

	envelope := &messageEnvelope{
		Sender:    sender,
		Message:   message,
		RequestID: requestID,
	}

	select {
	case p.mailbox <- envelope:
	default:
		p.log.Warn("Mailbox full, dropping message", "type", fmt.Sprintf("%T", message))
	}
}

// stop marks the process stopped, cancels every owned timer and wakes the run loop.
func (p *process) stop() {
	p.stopOnce.Do(func() {
		p.stopped.Store(true)
		p.cancelTimers()
		close(p.stopCh)
	})
}

// adopt registers a child. It fails once the process is stopping.
func (p *process) adopt(child *PID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped.Load() {
		return false
	}
	p.children[child.ID] = child
	return true
}

func (p *process) disown(child *PID) {
	p.mu.Lock()
	delete(p.children, child.ID)
	p.mu.Unlock()
}

func (p *process) childList() []*PID {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*PID, 0, len(p.children))
	for _, pid := range p.children {
		out = append(out, pid)
	}
	return out
}

// schedule arms a timer owned by this process that delivers message to itself.
func (p *process) schedule(d time.Duration, message interface{}, repeat bool) Cancel {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timersClosed {
		return func() {}
	}
	if repeat && d <= 0 {
		p.log.Warn("Refusing repeating timer with non-positive interval", "interval", d)
		return func() {}
	}

	p.timerSeq++
	id := p.timerSeq
	var fire func()
	fire = func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if _, ok := p.timers[id]; !ok {
			return
		}
		if repeat {
			p.timers[id] = p.engine.clock.AfterFunc(d, fire)
		} else {
			delete(p.timers, id)
		}
		p.sendMessage(message, p.pid, "")
	}
	p.timers[id] = p.engine.clock.AfterFunc(d, fire)

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if t, ok := p.timers[id]; ok {
			t.Stop()
			delete(p.timers, id)
		}
	}
}

func (p *process) cancelTimers() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
	p.timersClosed = true
}

// run is the main loop for the actor process.
func (p *process) run() {
	defer p.finish()

	if !p.produce() {
		return
	}
	p.invokeReceive(Started{}, nil, "")

	for {
		// Stop takes priority over queued user messages.
		select {
		case <-p.stopCh:
			p.shutdown()
			return
		default:
		}

		select {
		case <-p.stopCh:
			p.shutdown()
			return
		case envelope := <-p.mailbox:
			if p.stopped.Load() {
				continue
			}
			p.invokeReceive(envelope.Message, envelope.Sender, envelope.RequestID)
		}
	}
}

func (p *process) produce() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("Actor producer panicked", "panic", r, "stack", string(debug.Stack()))
			p.stop()
			ok = false
		}
	}()
	p.actor = p.props.Produce()
	if p.actor == nil {
		p.log.Error("Actor producer returned nil actor")
		p.stop()
		return false
	}
	return true
}

// shutdown stops children and lets the actor clean up.
func (p *process) shutdown() {
	for _, child := range p.childList() {
		p.engine.Stop(child)
	}
	p.invokeReceive(Stopping{}, nil, "")
}

// finish delivers Stopped and unregisters the process.
func (p *process) finish() {
	p.stopped.Store(true)
	p.cancelTimers()
	if p.actor != nil {
		p.invokeReceive(Stopped{}, nil, "")
	}
	p.engine.remove(p)
}

// invokeReceive calls the actor's Receive method within a protected context.
func (p *process) invokeReceive(msg interface{}, sender *PID, requestID string) {
	ctx := &context{
		proc:      p,
		sender:    sender,
		message:   msg,
		requestID: requestID,
	}

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("Actor panicked during Receive",
				"type", fmt.Sprintf("%T", msg), "panic", r, "stack", string(debug.Stack()))
			if requestID != "" {
				p.engine.reply(requestID, nil, fmt.Errorf("%w: %v", ErrActorPanicked, r))
			}
		}
	}()
	p.actor.Receive(ctx)
}
