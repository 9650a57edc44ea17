//go:build js && wasm

package live

import (
	"syscall/js"

	"github.com/solstice-ui/vdom/pkg/debug"
)

// Client is the browser-side counterpart of Server/Session: it opens a
// WebSocket to a live session, decodes incoming Mutation batches, and
// encodes outgoing Events.
type Client struct {
	ws      js.Value
	url     string
	onMuts  func([]Mutation)
	onReady func()
	onError func(error)
}

// NewClient creates a client bound to url (typically
// "ws://host/live/<sessionID>").
func NewClient(url string) *Client {
	return &Client{url: url}
}

// Connect opens the WebSocket and wires its callbacks.
func (c *Client) Connect() error {
	c.ws = js.Global().Get("WebSocket").New(c.url)
	c.ws.Set("binaryType", "arraybuffer")

	c.ws.Set("onopen", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		debug.Log("[live] connected")
		if c.onReady != nil {
			c.onReady()
		}
		return nil
	}))

	c.ws.Set("onmessage", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		data := args[0].Get("data")
		buffer := js.Global().Get("Uint8Array").New(data)
		length := buffer.Get("length").Int()
		bytes := make([]byte, length)
		js.CopyBytesToGo(bytes, buffer)
		c.handleMessage(bytes)
		return nil
	}))

	c.ws.Set("onerror", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if c.onError != nil {
			c.onError(errJSWebSocket)
		}
		return nil
	}))

	c.ws.Set("onclose", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		debug.Log("[live] disconnected")
		return nil
	}))

	return nil
}

func (c *Client) handleMessage(data []byte) {
	if len(data) == 0 {
		return
	}
	switch MessageType(data[0]) {
	case FrameMutations:
		muts, err := DecodeMutations(data)
		if err != nil {
			debug.Logf("[live] failed to decode mutations: %v", err)
			return
		}
		if c.onMuts != nil {
			c.onMuts(muts)
		}
	case FrameControl:
		// Hello/pong acknowledgements carry no client-visible state yet.
	}
}

// SendEvent encodes and sends a client event to the server.
func (c *Client) SendEvent(evt Event) error {
	if !c.ws.Truthy() {
		return nil
	}
	data := EncodeEvent(evt)
	arrayBuffer := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arrayBuffer, data)
	c.ws.Call("send", arrayBuffer)
	return nil
}

// Close closes the WebSocket connection.
func (c *Client) Close() {
	if c.ws.Truthy() {
		c.ws.Call("close")
	}
}

// OnMutations sets the handler invoked with each decoded mutation batch.
func (c *Client) OnMutations(handler func([]Mutation)) { c.onMuts = handler }

// OnReady sets the handler invoked once the socket is open.
func (c *Client) OnReady(handler func()) { c.onReady = handler }

// OnError sets the handler invoked on a WebSocket error event.
func (c *Client) OnError(handler func(error)) { c.onError = handler }

type jsWebSocketError struct{}

func (jsWebSocketError) Error() string { return "live: websocket error" }

var errJSWebSocket error = jsWebSocketError{}
