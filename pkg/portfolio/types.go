package portfolio

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Record is the complete portfolio document the chat answers from.
// Every field may be absent; renderers fall back rather than fail.
type Record struct {
	Personal     Personal            `json:"personal" yaml:"personal"`
	Skills       map[string][]string `json:"skills,omitempty" yaml:"skills,omitempty"`
	Experience   []Experience        `json:"experience,omitempty" yaml:"experience,omitempty"`
	Projects     []Project           `json:"projects,omitempty" yaml:"projects,omitempty"`
	Achievements []string            `json:"achievements,omitempty" yaml:"achievements,omitempty"`
	Contact      Contact             `json:"contact" yaml:"contact"`
	Education    []Education         `json:"education,omitempty" yaml:"education,omitempty"`
	Languages    []Language          `json:"languages,omitempty" yaml:"languages,omitempty"`
}

// Personal represents the owner's profile.
type Personal struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Title      string   `json:"title,omitempty" yaml:"title,omitempty"`
	Location   string   `json:"location,omitempty" yaml:"location,omitempty"`
	Summary    string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Status     string   `json:"status,omitempty" yaml:"status,omitempty"`
}

// Experience represents a single position held.
type Experience struct {
	Position     string   `json:"position" yaml:"position"`
	Company      string   `json:"company" yaml:"company"`
	Duration     string   `json:"duration" yaml:"duration"`
	Location     string   `json:"location" yaml:"location"`
	Achievements []string `json:"achievements,omitempty" yaml:"achievements,omitempty"`
}

// Project represents a delivered project.
type Project struct {
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Impact       string   `json:"impact,omitempty" yaml:"impact,omitempty"`
	Technologies []string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
}

// Contact holds the reachable channels. All are optional.
type Contact struct {
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty" yaml:"whatsapp,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty" yaml:"portfolio,omitempty"`
}

// Education represents a degree or course of study.
type Education struct {
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	Year        Text   `json:"year" yaml:"year"`
	Grade       Text   `json:"grade,omitempty" yaml:"grade,omitempty"`
}

// Language represents a spoken language and proficiency.
type Language struct {
	Language string `json:"language" yaml:"language"`
	Level    string `json:"level" yaml:"level"`
}

// Skill category keys understood by the renderer.
const (
	SkillProgramming    = "programming"
	SkillEDATools       = "eda_tools"
	SkillDevOps         = "devops"
	SkillAIML           = "ai_ml"
	SkillGenerativeAI   = "generative_ai"
	SkillVersionControl = "version_control"
	SkillVisualization  = "visualization"
)

// MissingSections lists the top-level sections that are absent or empty.
func (r Record) MissingSections() (missing []string) {
	missing = make([]string, 0)

	if r.Personal.Name == "" && r.Personal.Title == "" && r.Personal.Summary == "" {
		missing = append(missing, "personal")
	}
	if len(r.Skills) == 0 {
		missing = append(missing, "skills")
	}
	if len(r.Experience) == 0 {
		missing = append(missing, "experience")
	}
	if len(r.Projects) == 0 {
		missing = append(missing, "projects")
	}
	if len(r.Achievements) == 0 {
		missing = append(missing, "achievements")
	}
	if r.Contact == (Contact{}) {
		missing = append(missing, "contact")
	}
	if len(r.Education) == 0 {
		missing = append(missing, "education")
	}
	if len(r.Languages) == 0 {
		missing = append(missing, "languages")
	}

	return missing
}

// Text is a string field that also accepts a bare number or boolean, so
// "year": 2019 and "grade": 8.9 decode the same as their quoted forms.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) (err error) {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		err = json.Unmarshal(data, &s)
		if err != nil {
			return err
		}
		*t = Text(s)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		err = errors.Errorf("expected a scalar, got %s", data)
		return err
	default:
		*t = Text(data)
	}

	return err
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Text) UnmarshalYAML(node *yaml.Node) (err error) {
	if node.Kind != yaml.ScalarNode {
		err = errors.Errorf("line %d: expected a scalar", node.Line)
		return err
	}

	if node.Tag == "!!null" {
		*t = ""
		return err
	}

	*t = Text(node.Value)
	return err
}
