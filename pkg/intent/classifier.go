package intent

import (
	"strings"

	"github.com/nikogura/portfolio-chat/pkg/topic"
)

// Rule maps any of its keywords to a topic. Keywords are matched as
// lower-case substrings.
type Rule struct {
	Topic    topic.Topic
	Keywords []string
}

// DefaultRules is the ordered rule table. The first rule with a matching
// keyword wins, so order is significant: "my professional skills" is skills,
// not experience. The two achievements rules are kept apart so that
// certification wording beats projects while award wording does not.
//
//nolint:gochecknoglobals // Classification table
var DefaultRules = []Rule{
	{Topic: topic.Skills, Keywords: []string{"skill", "technolog", "expertise", "programming", "eda", "vlsi"}},
	{Topic: topic.Experience, Keywords: []string{"experience", "work", "job", "professional"}},
	{Topic: topic.Achievements, Keywords: []string{"cert", "qualification", "badge"}},
	{Topic: topic.Projects, Keywords: []string{"project", "portfolio", "built"}},
	{Topic: topic.Achievements, Keywords: []string{"achievement", "award", "accomplish"}},
	{Topic: topic.Contact, Keywords: []string{"contact", "reach", "hire", "email", "phone"}},
	{Topic: topic.Education, Keywords: []string{"education", "degree", "study", "college", "university"}},
	{Topic: topic.Languages, Keywords: []string{"language", "speak"}},
	{Topic: topic.About, Keywords: []string{"about", "who", "yourself", "tell"}},
}

// Classifier resolves free text to a topic.
type Classifier struct {
	rules    []Rule
	fallback topic.Topic
}

// NewClassifier creates a classifier over DefaultRules.
func NewClassifier() (classifier *Classifier) {
	classifier = NewClassifierWithRules(DefaultRules)
	return classifier
}

// NewClassifierWithRules creates a classifier over a custom ordered rule table.
func NewClassifierWithRules(rules []Rule) (classifier *Classifier) {
	classifier = &Classifier{
		rules:    rules,
		fallback: topic.General,
	}
	return classifier
}

// Classify returns the topic of the first matching rule, or general.
func (c *Classifier) Classify(text string) (result topic.Topic) {
	result, _ = c.Explain(text)
	return result
}

// Explain is Classify plus the keyword that decided it. The keyword is empty
// when nothing matched.
func (c *Classifier) Explain(text string) (result topic.Topic, keyword string) {
	lower := strings.ToLower(text)

	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				result = rule.Topic
				keyword = kw
				return result, keyword
			}
		}
	}

	result = c.fallback
	return result, keyword
}

// Rules returns the ordered rule table in use.
func (c *Classifier) Rules() (rules []Rule) {
	rules = c.rules
	return rules
}
