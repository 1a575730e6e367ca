package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nikogura/portfolio-chat/pkg/intent"
	"github.com/nikogura/portfolio-chat/pkg/logger"
	"github.com/nikogura/portfolio-chat/pkg/portfolio"
	"github.com/nikogura/portfolio-chat/pkg/renderer"
	"github.com/nikogura/portfolio-chat/pkg/suggest"
	"github.com/nikogura/portfolio-chat/pkg/topic"
	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned for blank submissions. Callers ignore it silently.
	ErrEmptyInput = errors.New("empty input")
	// ErrBusy is returned when a submission arrives while another is pending.
	ErrBusy = errors.New("a response is already pending")
	// ErrUnknownTopic is returned for chip tags that are not offered as chips.
	ErrUnknownTopic = errors.New("unknown chip topic")
)

// State is the controller's position in the exchange.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingResponse State = "awaiting_response"
)

// Classifier maps free text to a topic.
type Classifier interface {
	Classify(text string) topic.Topic
}

// Responder renders the answer for a topic.
type Responder interface {
	Render(t topic.Topic, data portfolio.Record) string
}

// Suggester produces chip sets.
type Suggester interface {
	Initial() []suggest.Suggestion
	Next() []suggest.Suggestion
}

// RecordSource yields the portfolio record at answer time.
type RecordSource interface {
	Record() portfolio.Record
}

// Snapshot is a consistent read of everything the presentation layer draws.
type Snapshot struct {
	Transcript  []Turn               `json:"transcript"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
	State       State                `json:"state"`
	Typing      bool                 `json:"typing"`
	LastTopic   topic.Topic          `json:"last_topic,omitempty"`
}

// Controller runs one conversation: one submission at a time, each producing
// a user turn immediately and a bot turn after two simulated pauses.
type Controller struct {
	records    RecordSource
	classifier Classifier
	responder  Responder
	suggester  Suggester
	delay      DelaySource
	clock      func() time.Time
	log        *logger.Logger

	transcript Transcript

	mu          sync.Mutex
	state       State
	typing      bool
	lastTopic   topic.Topic
	suggestions []suggest.Suggestion

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// Option configures a Controller.
type Option func(*Controller)

// WithClassifier replaces the keyword classifier.
func WithClassifier(classifier Classifier) Option {
	return func(c *Controller) {
		c.classifier = classifier
	}
}

// WithResponder replaces the HTML renderer.
func WithResponder(responder Responder) Option {
	return func(c *Controller) {
		c.responder = responder
	}
}

// WithSuggester replaces the chip provider.
func WithSuggester(suggester Suggester) Option {
	return func(c *Controller) {
		c.suggester = suggester
	}
}

// WithDelay sets the source for both simulated pauses.
func WithDelay(delay DelaySource) Option {
	return func(c *Controller) {
		c.delay = delay
	}
}

// WithClock sets the timestamp source for turns.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// NewController creates an idle controller showing the initial chip set.
func NewController(records RecordSource, opts ...Option) (controller *Controller) {
	controller = &Controller{
		records:    records,
		classifier: intent.NewClassifier(),
		responder:  renderer.New(renderer.DefaultOptions()),
		suggester:  suggest.NewProvider(),
		delay:      RandomDelay(DefaultMinDelay, DefaultMaxDelay),
		clock:      time.Now,
		log:        logger.Nop(),
		state:      StateIdle,
		listeners:  make(map[int]Listener),
	}

	for _, opt := range opts {
		opt(controller)
	}

	controller.suggestions = controller.suggester.Initial()
	return controller
}

// Submit handles typed text. The user turn is appended before Submit waits;
// the returned turn is the bot's answer.
func (c *Controller) Submit(ctx context.Context, text string) (bot Turn, err error) {
	message := strings.TrimSpace(text)
	if message == "" {
		err = ErrEmptyInput
		return bot, err
	}

	bot, err = c.exchange(ctx, message, func() topic.Topic {
		return c.classifier.Classify(message)
	})
	return bot, err
}

// ChipClicked handles a chip. The chip's phrase becomes the user turn and its
// topic is answered directly without classification.
func (c *Controller) ChipClicked(ctx context.Context, t topic.Topic) (bot Turn, err error) {
	if !t.Chippable() {
		err = errors.Wrapf(ErrUnknownTopic, "topic %q", t)
		return bot, err
	}

	bot, err = c.exchange(ctx, t.Phrase(), func() topic.Topic {
		return t
	})
	return bot, err
}

// exchange runs Idle -> AwaitingResponse -> Idle for one submission.
func (c *Controller) exchange(ctx context.Context, message string, resolve func() topic.Topic) (bot Turn, err error) {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		err = ErrBusy
		return bot, err
	}
	c.state = StateAwaitingResponse
	c.mu.Unlock()

	c.emit(Event{Type: EventStateChanged, State: StateAwaitingResponse})

	defer func() {
		c.mu.Lock()
		c.state = StateIdle
		c.typing = false
		c.mu.Unlock()
		c.emit(Event{Type: EventStateChanged, State: StateIdle})
	}()

	user := c.transcript.Append(Turn{
		Author: AuthorUser,
		Text:   message,
		Body:   renderer.UserMessage(message),
		At:     c.clock(),
	})
	c.emit(Event{Type: EventTurnAppended, Turn: &user})

	// thinking time
	err = pause(ctx, c.delay())
	if err != nil {
		err = errors.Wrap(err, "response interrupted")
		return bot, err
	}

	t := resolve()
	body := c.responder.Render(t, c.records.Record())

	c.setTyping(true)

	// typing time
	err = pause(ctx, c.delay())
	if err != nil {
		c.setTyping(false)
		err = errors.Wrap(err, "response interrupted")
		return bot, err
	}

	c.setTyping(false)

	bot = c.transcript.Append(Turn{
		Author: AuthorBot,
		Body:   body,
		Topic:  t,
		At:     c.clock(),
	})

	next := c.suggester.Next()

	c.mu.Lock()
	c.lastTopic = t
	c.suggestions = next
	c.mu.Unlock()

	c.emit(Event{Type: EventTurnAppended, Turn: &bot})
	c.emit(Event{Type: EventSuggestionsChanged, Suggestions: next})

	c.log.Debug("answered", "topic", t, "turns", c.transcript.Len())

	return bot, err
}

func (c *Controller) setTyping(typing bool) {
	c.mu.Lock()
	changed := c.typing != typing
	c.typing = typing
	c.mu.Unlock()

	if changed {
		c.emit(Event{Type: EventTyping, Typing: typing})
	}
}

// Snapshot returns the transcript and current chips.
func (c *Controller) Snapshot() (snap Snapshot) {
	c.mu.Lock()
	snap.State = c.state
	snap.Typing = c.typing
	snap.LastTopic = c.lastTopic
	snap.Suggestions = make([]suggest.Suggestion, len(c.suggestions))
	copy(snap.Suggestions, c.suggestions)
	c.mu.Unlock()

	snap.Transcript = c.transcript.Turns()
	return snap
}

// Transcript returns every turn so far.
func (c *Controller) Transcript() (turns []Turn) {
	turns = c.transcript.Turns()
	return turns
}

// Suggestions returns the current chip set.
func (c *Controller) Suggestions() (suggestions []suggest.Suggestion) {
	suggestions = c.Snapshot().Suggestions
	return suggestions
}

// State returns the current state.
func (c *Controller) State() (state State) {
	c.mu.Lock()
	state = c.state
	c.mu.Unlock()
	return state
}

// LastTopic returns the topic of the most recent bot turn.
func (c *Controller) LastTopic() (t topic.Topic) {
	c.mu.Lock()
	t = c.lastTopic
	c.mu.Unlock()
	return t
}
