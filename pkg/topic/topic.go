package topic

import (
	"strings"

	"github.com/pkg/errors"
)

// Topic selects a response template.
type Topic string

const (
	About        Topic = "about"
	Skills       Topic = "skills"
	Experience   Topic = "experience"
	Projects     Topic = "projects"
	Achievements Topic = "achievements"
	Contact      Topic = "contact"
	Education    Topic = "education"
	Languages    Topic = "languages"
	General      Topic = "general"
)

// All lists every topic in declaration order.
//
//nolint:gochecknoglobals // Fixed topic table
var All = []Topic{About, Skills, Experience, Projects, Achievements, Contact, Education, Languages, General}

//nolint:gochecknoglobals // Fixed chip phrases
var phrases = map[Topic]string{
	About:        "Tell me about yourself",
	Skills:       "What are your technical skills?",
	Experience:   "Show me your work experience",
	Projects:     "Tell me about your projects",
	Achievements: "What are your achievements?",
	Contact:      "How can I contact you?",
	Education:    "Tell me about your education",
	Languages:    "What languages do you speak?",
}

//nolint:gochecknoglobals // Fixed chip labels
var labels = map[Topic]string{
	About:        "About",
	Skills:       "Skills",
	Experience:   "Experience",
	Projects:     "Projects",
	Achievements: "Achievements",
	Contact:      "📞 Contact",
	Education:    "Education",
	Languages:    "Languages",
}

// Phrase returns the canonical user text a chip submits. Topics without a
// phrase fall back to their label.
func (t Topic) Phrase() (phrase string) {
	phrase, ok := phrases[t]
	if !ok {
		phrase = t.Label()
	}
	return phrase
}

// Label returns the chip caption.
func (t Topic) Label() (label string) {
	label, ok := labels[t]
	if !ok {
		label = string(t)
	}
	return label
}

// Chippable reports whether the topic can be offered as a chip.
func (t Topic) Chippable() (ok bool) {
	_, ok = labels[t]
	return ok
}

func (t Topic) String() string {
	return string(t)
}

// Parse converts a tag into a Topic.
func Parse(tag string) (t Topic, err error) {
	candidate := Topic(strings.ToLower(strings.TrimSpace(tag)))
	for _, known := range All {
		if candidate == known {
			t = known
			return t, err
		}
	}

	err = errors.Errorf("unknown topic %q", tag)
	return t, err
}
