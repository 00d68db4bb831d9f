package bollywood

// --- System Messages ---

// Started is delivered to an actor before any other message.
type Started struct{}

// Stopping is sent to an actor to signal it should prepare to stop.
// Its children are already stopping and its timers are already canceled.
// No more user messages will be delivered after Stopping.
type Stopping struct{}

// Stopped is the final message an actor will receive.
type Stopped struct{}

// Terminated is sent to a parent when one of its children has stopped.
type Terminated struct {
	Who *PID
}

// --- Message Envelope ---

// messageEnvelope wraps a user message with sender information.
// RequestID is set when the message was sent with Ask.
type messageEnvelope struct {
	Sender    *PID
	Message   interface{}
	RequestID string
}

// futureResponse is used internally to pass Ask results back.
type futureResponse struct {
	Result interface{}
	Err    error
}
