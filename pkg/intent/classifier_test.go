package intent

import (
	"testing"

	"github.com/nikogura/portfolio-chat/pkg/topic"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected topic.Topic
	}{
		{name: "skills beats experience", input: "my professional skills", expected: topic.Skills},
		{name: "no match", input: "xyz", expected: topic.General},
		{name: "certification", input: "I'd like to discuss my certifications", expected: topic.Achievements},
		{name: "work experience", input: "Tell me about your work experience", expected: topic.Experience},
		{name: "chip phrase skills", input: "What are your technical skills?", expected: topic.Skills},
		{name: "chip phrase about", input: "Tell me about yourself", expected: topic.About},
		{name: "chip phrase experience", input: "Show me your work experience", expected: topic.Experience},
		{name: "chip phrase projects", input: "Tell me about your projects", expected: topic.Projects},
		{name: "chip phrase achievements", input: "What are your achievements?", expected: topic.Achievements},
		{name: "chip phrase contact", input: "How can I contact you?", expected: topic.Contact},
		{name: "chip phrase education", input: "Tell me about your education", expected: topic.Education},
		{name: "chip phrase languages", input: "What languages do you speak?", expected: topic.Languages},
		{name: "case insensitive", input: "VLSI DESIGN", expected: topic.Skills},
		{name: "substring eda", input: "cedar wood", expected: topic.Skills},
		{name: "cert beats project", input: "project certificate", expected: topic.Achievements},
		{name: "project beats award", input: "award winning project", expected: topic.Projects},
		{name: "accomplishment project", input: "accomplishment-based project", expected: topic.Projects},
		{name: "experience beats cert", input: "job certification", expected: topic.Experience},
		{name: "award alone", input: "any awards?", expected: topic.Achievements},
		{name: "contact beats education", input: "email your university", expected: topic.Contact},
		{name: "education beats languages", input: "did you study a language", expected: topic.Education},
		{name: "languages beats about", input: "tell me what you speak", expected: topic.Languages},
		{name: "about", input: "who are you", expected: topic.About},
		{name: "hire", input: "can I hire you", expected: topic.Contact},
		{name: "greeting", input: "hello there", expected: topic.General},
	}

	classifier := NewClassifier()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.input)
			if got != tt.expected {
				t.Errorf("Classify(%q): expected %s, got %s", tt.input, tt.expected, got)
			}
		})
	}
}

func TestExplain(t *testing.T) {
	classifier := NewClassifier()

	result, keyword := classifier.Explain("my professional skills")
	if result != topic.Skills || keyword != "skill" {
		t.Errorf("Expected skills via 'skill', got %s via '%s'", result, keyword)
	}

	result, keyword = classifier.Explain("xyz")
	if result != topic.General || keyword != "" {
		t.Errorf("Expected general with no keyword, got %s via '%s'", result, keyword)
	}
}

func TestRuleOrder(t *testing.T) {
	expected := []topic.Topic{
		topic.Skills,
		topic.Experience,
		topic.Achievements,
		topic.Projects,
		topic.Achievements,
		topic.Contact,
		topic.Education,
		topic.Languages,
		topic.About,
	}

	rules := NewClassifier().Rules()
	if len(rules) != len(expected) {
		t.Fatalf("Expected %d rules, got %d", len(expected), len(rules))
	}

	for i, rule := range rules {
		if rule.Topic != expected[i] {
			t.Errorf("Rule %d: expected %s, got %s", i+1, expected[i], rule.Topic)
		}
	}
}

func TestCustomRules(t *testing.T) {
	classifier := NewClassifierWithRules([]Rule{
		{Topic: topic.Contact, Keywords: []string{"ping"}},
	})

	if got := classifier.Classify("PING me"); got != topic.Contact {
		t.Errorf("Expected contact, got %s", got)
	}

	if got := classifier.Classify("skills"); got != topic.General {
		t.Errorf("Expected general, got %s", got)
	}
}
