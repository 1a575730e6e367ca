package chat

import (
	"sync"
	"time"

	"github.com/nikogura/portfolio-chat/pkg/topic"
)

// Author says who wrote a turn.
type Author string

const (
	AuthorUser Author = "user"
	AuthorBot  Author = "bot"
)

// Turn is one message in the conversation. User turns carry the text as typed
// (or the chip phrase); bot turns carry the rendered body and the topic answered.
type Turn struct {
	Seq    int         `json:"seq"`
	Author Author      `json:"author"`
	Text   string      `json:"text,omitempty"`
	Body   string      `json:"body"`
	Topic  topic.Topic `json:"topic,omitempty"`
	At     time.Time   `json:"at"`
}

// Transcript is an append-only list of turns.
type Transcript struct {
	mu    sync.RWMutex
	turns []Turn
}

// Append adds a turn, stamping its sequence number, and returns the stored copy.
func (t *Transcript) Append(turn Turn) (stored Turn) {
	t.mu.Lock()
	turn.Seq = len(t.turns) + 1
	t.turns = append(t.turns, turn)
	t.mu.Unlock()

	stored = turn
	return stored
}

// Turns returns a copy of every turn in order.
func (t *Transcript) Turns() (turns []Turn) {
	t.mu.RLock()
	turns = make([]Turn, len(t.turns))
	copy(turns, t.turns)
	t.mu.RUnlock()
	return turns
}

// Len returns the number of turns.
func (t *Transcript) Len() (n int) {
	t.mu.RLock()
	n = len(t.turns)
	t.mu.RUnlock()
	return n
}
