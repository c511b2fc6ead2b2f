package netclient

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/hersh/termtris/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	// A snapshot costs about six bytes per cell; this covers a 100x100 board
	// with room to spare.
	maxMessageSize = 1 << 20
)

// ConnectedMsg is sent when the hub assigns this watcher an id.
type ConnectedMsg struct {
	WatcherID string
}

// SnapshotMsg carries the latest board of the watched game.
type SnapshotMsg struct {
	protocol.BoardSnapshotPayload
}

// GameOverMsg is sent when the watched game ends.
type GameOverMsg struct {
	protocol.GameOverPayload
}

// DisconnectedMsg is sent when the WebSocket connection is lost.
type DisconnectedMsg struct {
	Err error
}

// Sender receives messages from the client. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Client manages the WebSocket connection to a spectator hub.
type Client struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	program Sender
	closed  bool
}

// New creates a Client connected to the given hub URL.
func New(serverURL string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// SetProgram sets the bubbletea program so the client can send messages to it.
func (c *Client) SetProgram(p Sender) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.program = p
}

// Start launches the read pump.
func (c *Client) Start() {
	go c.readPump()
}

// Close shuts down the client connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

func (c *Client) send(msg tea.Msg) {
	c.mu.Lock()
	p := c.program
	c.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// readPump reads messages from the WebSocket and sends them to the program.
func (c *Client) readPump() {
	var readErr error
	defer func() {
		c.send(DisconnectedMsg{Err: readErr})
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPingHandler(func(data string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("readPump error: %v", err)
				readErr = err
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		env, err := protocol.Decode(message)
		if err != nil {
			log.Printf("client unmarshal error: %v", err)
			continue
		}
		if msg := dispatch(env); msg != nil {
			c.send(msg)
		}
	}
}

// dispatch turns an envelope into the matching tea.Msg. Unknown or malformed
// messages yield nil.
func dispatch(env protocol.RawEnvelope) tea.Msg {
	switch env.Type {
	case protocol.MsgAssignID:
		var payload protocol.AssignIDPayload
		if json.Unmarshal(env.Payload, &payload) == nil {
			return ConnectedMsg{WatcherID: payload.WatcherID}
		}
	case protocol.MsgBoardSnapshot:
		var payload protocol.BoardSnapshotPayload
		if json.Unmarshal(env.Payload, &payload) == nil {
			return SnapshotMsg{payload}
		}
	case protocol.MsgGameOver:
		var payload protocol.GameOverPayload
		if json.Unmarshal(env.Payload, &payload) == nil {
			return GameOverMsg{payload}
		}
	default:
		log.Printf("unknown message type: %s", env.Type)
	}
	return nil
}
