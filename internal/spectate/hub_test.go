package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hersh/termtris/internal/game"
	"github.com/hersh/termtris/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) protocol.RawEnvelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	env, err := protocol.Decode(data)
	require.NoError(t, err)
	return env
}

func readSnapshot(t *testing.T, conn *websocket.Conn) protocol.BoardSnapshotPayload {
	t.Helper()
	env := readEnvelope(t, conn)
	require.Equal(t, protocol.MsgBoardSnapshot, env.Type)
	var p protocol.BoardSnapshotPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	return p
}

func TestHealth(t *testing.T) {
	_, srv := startHub(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestWatcherGetsIDThenSnapshots(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)

	env := readEnvelope(t, conn)
	require.Equal(t, protocol.MsgAssignID, env.Type)
	var hello protocol.AssignIDPayload
	require.NoError(t, json.Unmarshal(env.Payload, &hello))
	_, err := uuid.Parse(hello.WatcherID)
	assert.NoError(t, err)

	hub.Publish(game.Snapshot{Width: 2, Height: 2, Score: 42, Board: []bool{false, true, true, false}})

	snap := readSnapshot(t, conn)
	assert.Equal(t, 2, snap.Width)
	assert.Equal(t, uint32(42), snap.Score)
	assert.Equal(t, []bool{false, true, true, false}, snap.Board)
}

func TestLateWatcherGetsCachedState(t *testing.T) {
	hub, srv := startHub(t)
	hub.Publish(game.Snapshot{Width: 1, Height: 1, Score: 7, Board: []bool{true}})
	hub.Publish(game.Snapshot{Width: 1, Height: 1, Score: 9, Board: []bool{false}, Over: true})
	hub.GameOver(9, false)

	conn := dial(t, srv)
	require.Equal(t, protocol.MsgAssignID, readEnvelope(t, conn).Type)

	snap := readSnapshot(t, conn)
	assert.Equal(t, uint32(9), snap.Score, "only the latest snapshot is kept")
	assert.True(t, snap.Over)

	env := readEnvelope(t, conn)
	require.Equal(t, protocol.MsgGameOver, env.Type)
	var over protocol.GameOverPayload
	require.NoError(t, json.Unmarshal(env.Payload, &over))
	assert.Equal(t, uint32(9), over.Score)
	assert.False(t, over.Quit)
}

func TestEveryWatcherReceivesBroadcast(t *testing.T) {
	hub, srv := startHub(t)
	a := dial(t, srv)
	b := dial(t, srv)
	readEnvelope(t, a)
	readEnvelope(t, b)
	require.Equal(t, 2, hub.Watchers())

	hub.Publish(game.Snapshot{Width: 1, Height: 1, Score: 100, Board: []bool{true}})

	assert.Equal(t, uint32(100), readSnapshot(t, a).Score)
	assert.Equal(t, uint32(100), readSnapshot(t, b).Score)
}

func TestDisconnectedWatcherIsForgotten(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	readEnvelope(t, conn)
	require.Equal(t, 1, hub.Watchers())

	conn.Close()

	assert.Eventually(t, func() bool { return hub.Watchers() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestPublishDoesNotBlockOnSlowWatcher(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	readEnvelope(t, conn)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10*sendBuffer; i++ {
			hub.Publish(game.Snapshot{Width: 1, Height: 1, Score: uint32(i), Board: []bool{true}})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Publish blocked")
	}
}

func TestCloseDisconnectsWatchers(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	readEnvelope(t, conn)

	hub.Close()
	hub.Publish(game.Snapshot{Width: 1, Height: 1, Board: []bool{true}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	assert.Zero(t, hub.Watchers())
}
