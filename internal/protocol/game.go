package protocol

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Game is one entry of the games broadcast. The lobby lists them and the
// game view renders the one matching the client's current game id.
type Game struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Board json.RawMessage `json:"board"`
	Chat  []ChatMessage   `json:"chat"`
}

// EmptyGame is what the game view renders while no game matches: an empty
// board and no chat.
func EmptyGame() Game {
	return Game{
		Board: json.RawMessage("[]"),
		Chat:  []ChatMessage{},
	}
}

func (g Game) Clone() Game {
	out := g
	out.Board = bytes.Clone(g.Board)
	out.Chat = slices.Clone(g.Chat)
	return out
}

// ChatMessage accepts either a bare string or {"from": ..., "message": ...}.
type ChatMessage struct {
	From string `json:"from,omitempty"`
	Text string `json:"message"`
}

func (m *ChatMessage) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		*m = ChatMessage{}
		return json.Unmarshal(trimmed, &m.Text)
	}
	type plain ChatMessage
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*m = ChatMessage(p)
	return nil
}

func (m ChatMessage) String() string {
	if m.From == "" {
		return m.Text
	}
	return m.From + ": " + m.Text
}
