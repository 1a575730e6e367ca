package suggest

import (
	"math/rand/v2"

	"github.com/nikogura/portfolio-chat/pkg/topic"
)

// Suggestion is one chip offered to the visitor.
type Suggestion struct {
	Topic topic.Topic `json:"topic"`
	Label string      `json:"label"`
}

// InitialTopics are shown before the first exchange, in this order.
//
//nolint:gochecknoglobals // Fixed chip set
var InitialTopics = []topic.Topic{
	topic.About,
	topic.Skills,
	topic.Projects,
	topic.Experience,
	topic.Education,
	topic.Languages,
	topic.Contact,
}

// FollowUpPool is sampled after every bot turn. About is deliberately absent.
//
//nolint:gochecknoglobals // Fixed chip set
var FollowUpPool = []topic.Topic{
	topic.Skills,
	topic.Experience,
	topic.Projects,
	topic.Education,
	topic.Languages,
	topic.Contact,
}

// FollowUpCount is how many chips follow a bot turn.
const FollowUpCount = 5

// Shuffler permutes n elements through swap.
type Shuffler func(n int, swap func(i, j int))

// Provider produces chip sets.
type Provider struct {
	shuffle Shuffler
}

// NewProvider creates a provider backed by math/rand/v2.
func NewProvider() (provider *Provider) {
	provider = NewProviderWithShuffler(rand.Shuffle)
	return provider
}

// NewProviderWithShuffler creates a provider with an injected permutation source.
func NewProviderWithShuffler(shuffle Shuffler) (provider *Provider) {
	provider = &Provider{shuffle: shuffle}
	return provider
}

// Initial returns the fixed opening set.
func (p *Provider) Initial() (suggestions []Suggestion) {
	suggestions = toSuggestions(InitialTopics)
	return suggestions
}

// Next returns FollowUpCount distinct chips drawn from FollowUpPool.
func (p *Provider) Next() (suggestions []Suggestion) {
	pool := make([]topic.Topic, len(FollowUpPool))
	copy(pool, FollowUpPool)

	p.shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	suggestions = toSuggestions(pool[:FollowUpCount])
	return suggestions
}

func toSuggestions(topics []topic.Topic) (suggestions []Suggestion) {
	suggestions = make([]Suggestion, len(topics))
	for i, t := range topics {
		suggestions[i] = Suggestion{Topic: t, Label: t.Label()}
	}
	return suggestions
}
