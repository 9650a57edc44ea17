package live

// MessageType distinguishes the frames carried over a session's
// WebSocket connection.
type MessageType uint8

const (
	// FrameMutations carries a batch of recorded Mutation values.
	FrameMutations MessageType = 0x00
	// FrameEvent carries a client-originated Event.
	FrameEvent MessageType = 0x01
	// FrameControl carries a handshake/keepalive control message.
	FrameControl MessageType = 0x02
)

// Event is a client-originated DOM event forwarded to the server so the
// session's fiber can react to it. NodeID identifies the element the
// listener fired on, using the same ID sequence a Recorder assigned
// when it was created; Name is the lowercase event name ("click",
// "input", "keydown"); Value carries whatever payload the client-side
// adapter extracted from the browser event (see wasmjs.EventString),
// or the empty string for payload-less events like click.
type Event struct {
	NodeID uint32
	Name   string
	Value  string
}
