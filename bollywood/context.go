package bollywood

import (
	"log/slog"
	"time"
)

// Cancel stops a timer armed with Context.After or Context.Every.
// Calling it more than once is safe.
type Cancel func()

// Context provides information and capabilities to an Actor during message processing.
type Context interface {
	// Engine returns the Actor Engine managing this actor.
	Engine() *Engine
	// Self returns the PID of the actor processing the message.
	Self() *PID
	// Sender returns the PID of the actor that sent the message, if available.
	Sender() *PID
	// Parent returns the PID of the actor that spawned this one, nil for root actors.
	Parent() *PID
	// Message returns the actual message being processed.
	Message() interface{}

	// Spawn starts a child owned by this actor. Children are stopped with their parent.
	Spawn(props *Props) *PID
	// Children returns the currently running children.
	Children() []*PID
	// Send delivers message to pid with this actor as sender.
	Send(pid *PID, message interface{})
	// SendParent delivers message to the parent. It is a no-op for root actors.
	SendParent(message interface{})
	// Stop stops pid (usually a child or Self).
	Stop(pid *PID)

	// After delivers message to this actor once, d from now.
	After(d time.Duration, message interface{}) Cancel
	// Every delivers message to this actor every d until canceled or stopped.
	Every(d time.Duration, message interface{}) Cancel
	// Clock returns the engine clock.
	Clock() Clock

	// RequestID returns the Ask request identifier, empty for plain sends.
	RequestID() string
	// Reply answers the current Ask. An error value is returned to the asker as its error.
	// Without a pending Ask the reply is sent to Sender as a normal message.
	Reply(message interface{})

	// Logger returns a logger tagged with this actor's PID.
	Logger() *slog.Logger
}

// context implements the Context interface.
type context struct {
	proc      *process
	sender    *PID
	message   interface{}
	requestID string
}

func (c *context) Engine() *Engine      { return c.proc.engine }
func (c *context) Self() *PID           { return c.proc.pid }
func (c *context) Sender() *PID         { return c.sender }
func (c *context) Parent() *PID         { return c.proc.parent }
func (c *context) Message() interface{} { return c.message }
func (c *context) RequestID() string    { return c.requestID }
func (c *context) Clock() Clock         { return c.proc.engine.clock }
func (c *context) Logger() *slog.Logger { return c.proc.log }
func (c *context) Children() []*PID     { return c.proc.childList() }

func (c *context) Spawn(props *Props) *PID {
	return c.proc.engine.spawn(props, c.proc.pid)
}

func (c *context) Send(pid *PID, message interface{}) {
	c.proc.engine.Send(pid, message, c.proc.pid)
}

func (c *context) SendParent(message interface{}) {
	if c.proc.parent == nil {
		return
	}
	c.proc.engine.Send(c.proc.parent, message, c.proc.pid)
}

func (c *context) Stop(pid *PID) {
	c.proc.engine.Stop(pid)
}

func (c *context) After(d time.Duration, message interface{}) Cancel {
	return c.proc.schedule(d, message, false)
}

func (c *context) Every(d time.Duration, message interface{}) Cancel {
	return c.proc.schedule(d, message, true)
}

func (c *context) Reply(message interface{}) {
	if c.requestID == "" {
		if c.sender != nil {
			c.proc.engine.Send(c.sender, message, c.proc.pid)
		}
		return
	}
	if err, ok := message.(error); ok {
		c.proc.engine.reply(c.requestID, nil, err)
		return
	}
	c.proc.engine.reply(c.requestID, message, nil)
}
