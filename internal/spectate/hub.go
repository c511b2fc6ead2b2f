package spectate

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hersh/termtris/internal/game"
	"github.com/hersh/termtris/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// watcher is one connected spectator.
type watcher struct {
	id     string
	conn   *websocket.Conn
	sendCh chan []byte
}

// send queues data without blocking. A watcher that cannot keep up loses the
// message; the next snapshot supersedes it anyway.
func (w *watcher) send(data []byte) {
	select {
	case w.sendCh <- data:
	default:
		log.Printf("send channel full for watcher %s, dropping message", w.id)
	}
}

func (w *watcher) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		w.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-w.sendCh:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				w.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := w.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only services control frames. Watchers never send data, so the
// pump exists to notice when the connection goes away.
func (w *watcher) readPump() {
	w.conn.SetReadLimit(maxMessageSize)
	w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		w.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error for watcher %s: %v", w.id, err)
			}
			return
		}
	}
}

// Hub streams board snapshots of the local game to any number of watchers.
// Publish never blocks, so it is safe to call from the game loop.
type Hub struct {
	mu       sync.RWMutex
	watchers map[string]*watcher
	snapshot []byte
	gameOver []byte
	closed   bool
}

func NewHub() *Hub {
	return &Hub{
		watchers: make(map[string]*watcher),
	}
}

// Handler serves the websocket endpoint on /ws and a health check on /health.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleConnection)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Publish sends s to every watcher and keeps it for watchers that join later.
func (h *Hub) Publish(s game.Snapshot) {
	data, err := protocol.Encode(protocol.MsgBoardSnapshot, payloadFor(s))
	if err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	h.broadcast(data, &h.snapshot)
}

// GameOver tells every watcher the game has ended.
func (h *Hub) GameOver(score uint32, quit bool) {
	data, err := protocol.Encode(protocol.MsgGameOver, protocol.GameOverPayload{Score: score, Quit: quit})
	if err != nil {
		log.Printf("game over: %v", err)
		return
	}
	h.broadcast(data, &h.gameOver)
}

func (h *Hub) broadcast(data []byte, cache *[]byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	*cache = data
	for _, w := range h.watchers {
		w.send(data)
	}
}

// Watchers returns the number of connected watchers.
func (h *Hub) Watchers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers)
}

// Close disconnects every watcher. Later publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, w := range h.watchers {
		close(w.sendCh)
		delete(h.watchers, id)
	}
}

func (h *Hub) handleConnection(rw http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		log.Printf("upgrade error: %v", err)
		return
	}

	w := &watcher{
		id:     uuid.NewString(),
		conn:   conn,
		sendCh: make(chan []byte, sendBuffer),
	}
	if !h.register(w) {
		conn.Close()
		return
	}
	log.Printf("watcher %s connected from %s", w.id, r.RemoteAddr)

	go w.writePump()
	w.readPump()

	h.unregister(w.id)
	log.Printf("watcher %s disconnected", w.id)
}

// register queues the greeting and the cached state ahead of any live
// update, then adds w to the broadcast set.
func (h *Hub) register(w *watcher) bool {
	hello, err := protocol.Encode(protocol.MsgAssignID, protocol.AssignIDPayload{WatcherID: w.id})
	if err != nil {
		log.Printf("assign id: %v", err)
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	w.send(hello)
	if h.snapshot != nil {
		w.send(h.snapshot)
	}
	if h.gameOver != nil {
		w.send(h.gameOver)
	}
	h.watchers[w.id] = w
	return true
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if w, ok := h.watchers[id]; ok {
		close(w.sendCh)
		delete(h.watchers, id)
	}
}

func payloadFor(s game.Snapshot) protocol.BoardSnapshotPayload {
	return protocol.BoardSnapshotPayload{
		Width:  s.Width,
		Height: s.Height,
		Score:  s.Score,
		Over:   s.Over,
		Board:  s.Board,
	}
}
