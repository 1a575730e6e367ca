package chat

import (
	"github.com/nikogura/portfolio-chat/pkg/suggest"
)

// EventType names a change the presentation layer may react to.
type EventType string

const (
	EventTurnAppended       EventType = "turn_appended"
	EventTyping             EventType = "typing"
	EventSuggestionsChanged EventType = "suggestions_changed"
	EventStateChanged       EventType = "state_changed"
)

// Event describes one change. Only the field matching Type is set.
type Event struct {
	Type        EventType            `json:"type"`
	Turn        *Turn                `json:"turn,omitempty"`
	Typing      bool                 `json:"typing"`
	Suggestions []suggest.Suggestion `json:"suggestions,omitempty"`
	State       State                `json:"state,omitempty"`
}

// Listener receives events synchronously, in order. It must not call back
// into Submit or ChipClicked.
type Listener func(Event)

// Subscribe registers l and returns a func that removes it.
func (c *Controller) Subscribe(l Listener) (unsubscribe func()) {
	c.listenersMu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.listenersMu.Unlock()

	unsubscribe = func() {
		c.listenersMu.Lock()
		delete(c.listeners, id)
		c.listenersMu.Unlock()
	}
	return unsubscribe
}

func (c *Controller) emit(ev Event) {
	c.listenersMu.Lock()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.listenersMu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}
