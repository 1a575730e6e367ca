package renderer

import (
	"net/url"
	"strings"
	"testing"

	"github.com/nikogura/portfolio-chat/pkg/portfolio"
	"github.com/nikogura/portfolio-chat/pkg/topic"
)

func fullRecord() (record portfolio.Record) {
	record = portfolio.Record{
		Personal: portfolio.Personal{
			Name:       "Divya Rao",
			Title:      "ASIC Design Engineer",
			Location:   "Bengaluru",
			Summary:    "Automates silicon flows.",
			Highlights: []string{"Cut regression time in half", "Led flow migration"},
			Status:     "Available Immediately",
		},
		Skills: map[string][]string{
			portfolio.SkillProgramming: {"Python", "Tcl"},
			portfolio.SkillEDATools:    {},
			portfolio.SkillDevOps:      {"Jenkins"},
		},
		Experience: []portfolio.Experience{
			{Position: "Senior Engineer", Company: "First Co", Duration: "2021-2024", Location: "Remote", Achievements: []string{"Built a flow"}},
			{Position: "Engineer", Company: "Second Co", Duration: "2019-2021", Location: "Pune"},
		},
		Projects: []portfolio.Project{
			{Title: "Regression Bot", Description: "Runs nightly suites", Impact: "Saved 10 hours a week", Technologies: []string{"Python"}},
			{Title: "Lint Wrapper", Description: "Wraps lint tools"},
		},
		Achievements: []string{"Spot award 2023"},
		Contact: portfolio.Contact{
			Email:     "divya@example.com",
			Phone:     "+911234567890",
			WhatsApp:  "911234567890",
			LinkedIn:  "https://linkedin.com/in/divya",
			Portfolio: "https://example.com/resume.pdf",
		},
		Education: []portfolio.Education{
			{Degree: "B.Tech ECE", Institution: "State University", Year: "2019", Grade: "8.9 CGPA"},
			{Degree: "Diploma", Institution: "Polytechnic", Year: "2015"},
		},
		Languages: []portfolio.Language{
			{Language: "English", Level: "Fluent"},
		},
	}
	return record
}

func TestRenderEveryTopicWithEmptyRecord(t *testing.T) {
	r := New(Options{})

	for _, tp := range topic.All {
		t.Run(string(tp), func(t *testing.T) {
			body := r.Render(tp, portfolio.Record{})
			if body == "" {
				t.Errorf("Expected non-empty body for %s with empty record", tp)
			}
		})
	}
}

func TestRenderFallbacks(t *testing.T) {
	r := New(Options{})
	empty := portfolio.Record{}

	tests := []struct {
		topic    topic.Topic
		contains []string
	}{
		{topic: topic.About, contains: []string{"I'm there, a <strong>Professional</strong> based in somewhere.", FallbackSummary, FallbackHighlight, FallbackStatus}},
		{topic: topic.Skills, contains: []string{NoSkills}},
		{topic: topic.Experience, contains: []string{NoExperience}},
		{topic: topic.Projects, contains: []string{NoProjects}},
		{topic: topic.Achievements, contains: []string{FallbackAchievement, "striving for excellence"}},
		{topic: topic.Education, contains: []string{NoEducation}},
		{topic: topic.Languages, contains: []string{NoLanguages}},
		{topic: topic.General, contains: []string{"I'm there, a <strong>Professional</strong>."}},
	}

	for _, tt := range tests {
		t.Run(string(tt.topic), func(t *testing.T) {
			body := r.Render(tt.topic, empty)
			for _, want := range tt.contains {
				if !strings.Contains(body, want) {
					t.Errorf("Expected body to contain %q, got:\n%s", want, body)
				}
			}
		})
	}
}

func TestRenderAbout(t *testing.T) {
	body := New(Options{}).Render(topic.About, fullRecord())

	for _, want := range []string{
		"I'm Divya Rao, a <strong>ASIC Design Engineer</strong> based in Bengaluru.",
		"<li>Cut regression time in half</li>",
		"<li>Led flow migration</li>",
		"Available Immediately",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected about body to contain %q", want)
		}
	}

	if strings.Contains(body, FallbackHighlight) {
		t.Error("Expected no fallback highlight when highlights exist")
	}
}

func TestRenderSkillsOmitsEmptyCategories(t *testing.T) {
	body := New(Options{}).Render(topic.Skills, fullRecord())

	if !strings.Contains(body, "<h4>Programming Languages</h4>") {
		t.Error("Expected programming heading")
	}

	if !strings.Contains(body, "<h4>DevOps &amp; CI/CD</h4>") {
		t.Error("Expected devops heading")
	}

	if strings.Contains(body, "EDA Tools") {
		t.Error("Expected empty eda_tools category to be omitted")
	}

	if strings.Contains(body, "Version Control") {
		t.Error("Expected absent version_control category to be omitted")
	}

	if strings.Index(body, "Programming Languages") > strings.Index(body, "DevOps") {
		t.Error("Expected programming before devops")
	}

	if strings.Contains(body, NoSkills) {
		t.Error("Expected no skills fallback when categories exist")
	}
}

func TestRenderExperienceOrder(t *testing.T) {
	body := New(Options{}).Render(topic.Experience, fullRecord())

	if strings.Count(body, "class=\"experience-item\"") != 2 {
		t.Errorf("Expected 2 experience blocks, got %d", strings.Count(body, "class=\"experience-item\""))
	}

	first := strings.Index(body, "First Co")
	second := strings.Index(body, "Second Co")
	if first == -1 || second == -1 || first > second {
		t.Error("Expected experience blocks in record order")
	}

	// second entry has no achievements
	if !strings.Contains(body, "<li>"+FallbackDuty+"</li>") {
		t.Error("Expected fallback bullet for entry without achievements")
	}

	if !strings.Contains(body, "📅 2021-2024") || !strings.Contains(body, "📍 Remote") {
		t.Error("Expected duration and location meta")
	}
}

func TestRenderProjects(t *testing.T) {
	body := New(Options{}).Render(topic.Projects, fullRecord())

	if strings.Count(body, "💡 Impact:") != 1 {
		t.Error("Expected exactly one impact line")
	}

	if strings.Count(body, "class=\"skill-tags\"") != 1 {
		t.Error("Expected exactly one technology tag list")
	}

	if !strings.Contains(body, "Lint Wrapper") {
		t.Error("Expected second project title")
	}
}

func TestRenderContact(t *testing.T) {
	r := New(Options{})
	body := r.Render(topic.Contact, fullRecord())

	for _, want := range []string{
		"href=\"mailto:divya@example.com?subject=Job%20Opportunity%20-%20ASIC%20Design%20Engineer\"",
		"href=\"tel:+911234567890\"",
		"href=\"https://wa.me/911234567890?text=Hi%20Divya%2C%20I%20found%20your%20portfolio%21\"",
		"href=\"https://linkedin.com/in/divya\"",
		"<span>Resume</span>",
		"2-4 hours",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected contact body to contain %q, got:\n%s", want, body)
		}
	}

	if strings.Count(body, "class=\"contact-btn\"") != 5 {
		t.Errorf("Expected 5 contact links, got %d", strings.Count(body, "class=\"contact-btn\""))
	}
}

func TestRenderContactNoChannels(t *testing.T) {
	record := fullRecord()
	record.Contact = portfolio.Contact{}

	body := New(Options{}).Render(topic.Contact, record)

	if strings.Contains(body, "class=\"contact-btn\"") {
		t.Error("Expected zero contact links")
	}

	if !strings.Contains(body, "I typically respond within") {
		t.Error("Expected closing remark without channels")
	}
}

func TestContactLinksIndependent(t *testing.T) {
	record := portfolio.Record{Contact: portfolio.Contact{Phone: "123", LinkedIn: "https://linkedin.com/in/x"}}

	links := New(Options{}).ContactLinks(record)
	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d", len(links))
	}

	if links[0].Channel != "phone" || links[1].Channel != "linkedin" {
		t.Errorf("Expected phone then linkedin, got %s then %s", links[0].Channel, links[1].Channel)
	}

	if links[0].External || !links[1].External {
		t.Error("Expected only linkedin to open externally")
	}
}

func TestRenderEducationGradeOptional(t *testing.T) {
	body := New(Options{}).Render(topic.Education, fullRecord())

	if strings.Count(body, "🎯") != 1 {
		t.Errorf("Expected one grade, got %d", strings.Count(body, "🎯"))
	}
}

func TestRenderEscapesRecordText(t *testing.T) {
	record := portfolio.Record{Achievements: []string{"<script>alert(1)</script>"}}

	body := New(Options{}).Render(topic.Achievements, record)
	if strings.Contains(body, "<script>") {
		t.Error("Expected record text to be escaped")
	}
}

func TestRenderIdempotent(t *testing.T) {
	r := New(Options{})
	record := fullRecord()

	for _, tp := range topic.All {
		first := r.Render(tp, record)
		second := r.Render(tp, record)
		if first != second {
			t.Errorf("Expected identical output for %s", tp)
		}
	}
}

func TestUnknownTopicRendersGeneral(t *testing.T) {
	r := New(Options{})
	record := fullRecord()

	if r.Render(topic.Topic("weather"), record) != r.Render(topic.General, record) {
		t.Error("Expected unknown topic to render general")
	}
}

func TestCustomOptions(t *testing.T) {
	r := New(Options{ResponseTime: "one day"})
	body := r.Render(topic.Contact, portfolio.Record{})

	if !strings.Contains(body, "<strong>one day</strong>") {
		t.Error("Expected custom response time")
	}
}

func TestContactLinksEscapeQueryValues(t *testing.T) {
	record := portfolio.Record{
		Personal: portfolio.Personal{Name: "A&B Team", Title: "R&D Engineer"},
		Contact:  portfolio.Contact{Email: "d@example.com", WhatsApp: "123"},
	}

	links := New(Options{}).ContactLinks(record)
	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d", len(links))
	}

	tests := []struct {
		href  string
		key   string
		value string
	}{
		{href: links[0].Href, key: "subject", value: "Job Opportunity - R&D Engineer"},
		{href: links[1].Href, key: "text", value: "Hi A&B, I found your portfolio!"},
	}

	for _, tt := range tests {
		parsed, err := url.Parse(tt.href)
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", tt.href, err)
		}
		got := parsed.Query().Get(tt.key)
		if got != tt.value {
			t.Errorf("Expected %s %q, got %q (href %s)", tt.key, tt.value, got, tt.href)
		}
		if strings.Contains(tt.href, "+") {
			t.Errorf("Expected spaces as %%20, got %s", tt.href)
		}
	}
}

func TestWhatsAppGreetingWithoutPlaceholder(t *testing.T) {
	record := portfolio.Record{
		Personal: portfolio.Personal{Name: "Divya Rao"},
		Contact:  portfolio.Contact{WhatsApp: "123"},
	}

	links := New(Options{WhatsAppGreeting: "Hello from your site"}).ContactLinks(record)
	if len(links) != 1 {
		t.Fatalf("Expected 1 link, got %d", len(links))
	}

	expected := "https://wa.me/123?text=Hello%20from%20your%20site"
	if links[0].Href != expected {
		t.Errorf("Expected %s, got %s", expected, links[0].Href)
	}
}

func TestRenderContactDefaultStatus(t *testing.T) {
	body := New(Options{}).Render(topic.Contact, portfolio.Record{})

	if strings.Contains(body, "opportunities for new opportunities") {
		t.Errorf("Expected status sentence to read cleanly, got:\n%s", body)
	}
	if !strings.Contains(body, "Current status: <strong class=\"status status--success\">Open to opportunities</strong>.") {
		t.Errorf("Expected default status in contact opener, got:\n%s", body)
	}
}
