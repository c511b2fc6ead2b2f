package protocol

import (
	"encoding/json"
	"fmt"
)

// MessageType identifies the kind of message sent over the wire.
type MessageType string

// Every message flows from the game's spectator hub to a watcher.
const (
	MsgAssignID      MessageType = "assign_id"
	MsgBoardSnapshot MessageType = "board_snapshot"
	MsgGameOver      MessageType = "game_over"
)

// Envelope is the top-level wire format for all messages.
type Envelope struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// RawEnvelope is an envelope whose payload has not been decoded yet.
type RawEnvelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AssignIDPayload is sent when a watcher first connects.
type AssignIDPayload struct {
	WatcherID string `json:"watcher_id"`
}

// BoardSnapshotPayload is the game's board state.
type BoardSnapshotPayload struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Score  uint32 `json:"score"`
	Over   bool   `json:"over"`
	// Board is a flat row-major array of Width * Height cells, true when
	// the cell holds a block.
	Board []bool `json:"board"`
}

// Full reports whether the cell at (x, y) holds a block. Cells outside the
// payload's board are empty.
func (p BoardSnapshotPayload) Full(x, y int) bool {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return false
	}
	i := y*p.Width + x
	return i < len(p.Board) && p.Board[i]
}

// GameOverPayload is sent once when the game ends.
type GameOverPayload struct {
	Score uint32 `json:"score"`
	Quit  bool   `json:"quit"`
}

// Encode marshals an envelope of type t carrying payload.
func Encode(t MessageType, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(Envelope{Type: t, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return data, nil
}

// Decode parses the envelope header of a message.
func Decode(data []byte) (RawEnvelope, error) {
	var env RawEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return RawEnvelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}
