//go:build !(js && wasm)

package live

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrSessionNotFound is returned by Server.GetSession callers that look
// up a session ID the server has never seen or has since evicted.
var ErrSessionNotFound = errors.New("live: session not found")

// Server upgrades HTTP connections to WebSocket and keeps one Session
// per client, each fed by the caller's own Recorder-wrapped patch
// cycle. It has no opinion about what produced a Mutation batch or what
// an incoming Event should do — that wiring lives in cmd/vdomctl.
type Server struct {
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewServer creates a live protocol server. log defaults to
// slog.Default() when nil.
func NewServer(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// HandleWebSocket upgrades the request and attaches it to the session
// named by sessionID, creating one if needed.
func (s *Server) HandleWebSocket(sessionID string, w http.ResponseWriter, r *http.Request) error {
	if sessionID == "" {
		return errors.New("live: session id required")
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("live: upgrade: %w", err)
	}

	session := s.attach(sessionID, conn)
	go session.run()
	return nil
}

func (s *Server) attach(sessionID string, conn *websocket.Conn) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[sessionID]; ok {
		session.mu.Lock()
		if session.conn != nil {
			session.conn.Close()
		}
		session.conn = conn
		session.mu.Unlock()
		return session
	}

	session := &Session{
		ID:        sessionID,
		conn:      conn,
		log:       s.log.With("session", sessionID),
		sendChan:  make(chan []byte, 256),
		closeChan: make(chan struct{}),
	}
	s.sessions[sessionID] = session
	return session
}

// GetSession retrieves a session by ID.
func (s *Server) GetSession(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

// Broadcast sends a mutation batch to every currently attached
// session, logging (rather than failing) any individual send error so
// one slow or dead client can't block the rest.
func (s *Server) Broadcast(muts []Mutation) {
	if len(muts) == 0 {
		return
	}
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.RUnlock()

	for _, session := range sessions {
		if err := session.SendMutations(muts); err != nil {
			s.log.Warn("broadcast failed", "session", session.ID, "error", err)
		}
	}
}

// RemoveSession drops a session from the server's table. It does not
// close the underlying connection; callers that want that should close
// it before or after calling RemoveSession.
func (s *Server) RemoveSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Session is one client's live connection: a WebSocket plus the
// sequence number of the last mutation batch sent over it. Mutation
// delivery is push-only from the caller via SendMutations; incoming
// Events are handed to whatever handler OnEvent last registered.
type Session struct {
	ID   string
	log  *slog.Logger
	conn *websocket.Conn

	mu       sync.RWMutex
	lastSeq  uint64
	onEvent  func(Event)
	sendChan chan []byte

	closeOnce sync.Once
	closeChan chan struct{}
}

// OnEvent registers the handler invoked whenever this session receives
// a client Event. Typically the caller's handler looks up the fiber a
// NodeID belongs to and marks it dirty.
func (s *Session) OnEvent(handler func(Event)) {
	s.mu.Lock()
	s.onEvent = handler
	s.mu.Unlock()
}

// SendMutations encodes and queues a batch of recorded mutations for
// delivery. A nil or empty batch is a no-op — callers are expected to
// call this once per Patch cycle, including cycles a Recorder.Drain
// produced nothing for.
func (s *Session) SendMutations(muts []Mutation) error {
	if len(muts) == 0 {
		return nil
	}
	data := EncodeMutations(muts)
	select {
	case s.sendChan <- data:
		s.mu.Lock()
		s.lastSeq++
		s.mu.Unlock()
		return nil
	default:
		return errors.New("live: send buffer full")
	}
}

func (s *Session) run() {
	defer s.close()

	writerReady := make(chan struct{})
	go func() {
		close(writerReady)
		s.writer()
	}()
	<-writerReady

	s.sendControl("HELLO")

	s.conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		return nil
	})

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("unexpected close", "error", err)
			}
			return
		}
		if messageType == websocket.BinaryMessage {
			s.handleBinaryMessage(data)
		}
	}
}

func (s *Session) writer() {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-s.sendChan:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				s.log.Warn("write failed", "error", err)
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.closeChan:
			return
		}
	}
}

func (s *Session) handleBinaryMessage(data []byte) {
	if len(data) == 0 {
		return
	}
	switch MessageType(data[0]) {
	case FrameEvent:
		evt, err := DecodeEvent(data)
		if err != nil {
			s.log.Warn("failed to decode event", "error", err)
			return
		}
		s.mu.RLock()
		handler := s.onEvent
		s.mu.RUnlock()
		if handler != nil {
			handler(*evt)
		}

	case FrameControl:
		decoder := NewDecoder(bytes.NewReader(data[1:]))
		msgType, err := decoder.ReadString()
		if err != nil {
			s.log.Warn("failed to decode control message", "error", err)
			return
		}
		if msgType == "PING" {
			s.sendControl("PONG")
		}
	}
}

func (s *Session) sendControl(msgType string) {
	var buf bytes.Buffer
	encoder := NewEncoder(&buf)
	encoder.WriteBytes([]byte{byte(FrameControl)})
	encoder.WriteString(msgType)
	select {
	case s.sendChan <- buf.Bytes():
	default:
	}
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.conn.Close()
		close(s.closeChan)
	})
}
