package renderer

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/nikogura/portfolio-chat/pkg/portfolio"
	"github.com/nikogura/portfolio-chat/pkg/topic"
)

// Fallback text used when a section of the record is absent.
const (
	FallbackName        = "there"
	FallbackTitle       = "Professional"
	FallbackLocation    = "somewhere"
	FallbackSummary     = "A skilled professional with years of experience."
	FallbackStatus      = "Open to opportunities"
	FallbackHighlight   = "Dedicated professional with extensive experience"
	FallbackDuty        = "Professional experience"
	FallbackAchievement = "Accomplished professional"
	NoSkills            = "No skills data available"
	NoExperience        = "No experience data available"
	NoProjects          = "No project data available"
	NoEducation         = "No education data available"
	NoLanguages         = "No language data available"
)

// SkillCategory pairs a record key with its heading.
type SkillCategory struct {
	Key     string
	Heading string
}

// SkillCategories is the fixed display order of skill groups.
//
//nolint:gochecknoglobals // Display table
var SkillCategories = []SkillCategory{
	{Key: portfolio.SkillProgramming, Heading: "Programming Languages"},
	{Key: portfolio.SkillEDATools, Heading: "EDA Tools"},
	{Key: portfolio.SkillDevOps, Heading: "DevOps & CI/CD"},
	{Key: portfolio.SkillAIML, Heading: "AI & Machine Learning"},
	{Key: portfolio.SkillGenerativeAI, Heading: "Generative AI & LLMs"},
	{Key: portfolio.SkillVersionControl, Heading: "Version Control"},
	{Key: portfolio.SkillVisualization, Heading: "Visualization & Tools"},
}

// Options tune the contact links.
type Options struct {
	// MailSubject prefixes the mailto subject. The owner's title is appended when known.
	MailSubject string
	// WhatsAppGreeting is prefilled in the chat link. The first %s, if any,
	// receives the owner's first name. Any other text is used as is.
	WhatsAppGreeting string
	// ResponseTime appears in the contact closing remark.
	ResponseTime string
}

// DefaultOptions returns the stock contact wording.
func DefaultOptions() (opts Options) {
	opts = Options{
		MailSubject:      "Job Opportunity",
		WhatsAppGreeting: "Hi %s, I found your portfolio!",
		ResponseTime:     "2-4 hours",
	}
	return opts
}

// GreetingNamePlaceholder marks where the first name goes in WhatsAppGreeting.
const GreetingNamePlaceholder = "%s"

// Renderer turns a topic and a record into an HTML response body.
type Renderer struct {
	opts Options
}

// New creates a renderer. Empty option fields take their defaults.
func New(opts Options) (r *Renderer) {
	defaults := DefaultOptions()
	if opts.MailSubject == "" {
		opts.MailSubject = defaults.MailSubject
	}
	if opts.WhatsAppGreeting == "" {
		opts.WhatsAppGreeting = defaults.WhatsAppGreeting
	}
	if opts.ResponseTime == "" {
		opts.ResponseTime = defaults.ResponseTime
	}

	r = &Renderer{opts: opts}
	return r
}

// Render produces the response body for t. Unknown topics render as general.
// Output depends only on its arguments.
func (r *Renderer) Render(t topic.Topic, data portfolio.Record) (body string) {
	var b strings.Builder

	switch t {
	case topic.About:
		r.renderAbout(&b, data)
	case topic.Skills:
		r.renderSkills(&b, data)
	case topic.Experience:
		r.renderExperience(&b, data)
	case topic.Projects:
		r.renderProjects(&b, data)
	case topic.Achievements:
		r.renderAchievements(&b, data)
	case topic.Contact:
		r.renderContact(&b, data)
	case topic.Education:
		r.renderEducation(&b, data)
	case topic.Languages:
		r.renderLanguages(&b, data)
	default:
		r.renderGeneral(&b, data)
	}

	body = b.String()
	return body
}

func (r *Renderer) renderAbout(b *strings.Builder, data portfolio.Record) {
	p := data.Personal

	heading(b, "👨‍💻 About Me")
	fmt.Fprintf(b, "<p>I'm %s, a <strong>%s</strong> based in %s.</p>\n",
		text(p.Name, FallbackName), text(p.Title, FallbackTitle), text(p.Location, FallbackLocation))
	fmt.Fprintf(b, "<p>%s</p>\n", text(p.Summary, FallbackSummary))
	heading(b, "🏆 Key Highlights:")
	bulletList(b, p.Highlights, FallbackHighlight)
	fmt.Fprintf(b, "<p>I'm currently %s!</p>\n", status(p.Status))
}

func (r *Renderer) renderSkills(b *strings.Builder, data portfolio.Record) {
	heading(b, "🛠️ Technical Skills")
	b.WriteString("<p>Here's my technical expertise:</p>\n")

	present := make([]SkillCategory, 0, len(SkillCategories))
	for _, category := range SkillCategories {
		if len(data.Skills[category.Key]) > 0 {
			present = append(present, category)
		}
	}

	renderOrFallback(b, len(present) > 0, NoSkills, func() {
		b.WriteString("<div class=\"skills-grid\">\n")
		for _, category := range present {
			b.WriteString("<div class=\"skill-category\">\n")
			fmt.Fprintf(b, "<h4>%s</h4>\n", html.EscapeString(category.Heading))
			tagList(b, data.Skills[category.Key])
			b.WriteString("</div>\n")
		}
		b.WriteString("</div>\n")
	})
}

func (r *Renderer) renderExperience(b *strings.Builder, data portfolio.Record) {
	heading(b, "💼 Work Experience")
	b.WriteString("<p>Here's my professional journey:</p>\n")

	renderOrFallback(b, len(data.Experience) > 0, NoExperience, func() {
		b.WriteString("<div class=\"experience-list\">\n")
		for _, exp := range data.Experience {
			b.WriteString("<div class=\"experience-item\">\n")
			fmt.Fprintf(b, "<div class=\"experience-position\">%s</div>\n", html.EscapeString(exp.Position))
			fmt.Fprintf(b, "<div class=\"experience-company\">%s</div>\n", html.EscapeString(exp.Company))
			fmt.Fprintf(b, "<div class=\"experience-meta\"><span>📅 %s</span><span>📍 %s</span></div>\n",
				html.EscapeString(exp.Duration), html.EscapeString(exp.Location))
			bulletList(b, exp.Achievements, FallbackDuty)
			b.WriteString("</div>\n")
		}
		b.WriteString("</div>\n")
	})
}

func (r *Renderer) renderProjects(b *strings.Builder, data portfolio.Record) {
	heading(b, "🚀 Key Projects")
	b.WriteString("<p>Here are some impactful projects I've delivered:</p>\n")

	renderOrFallback(b, len(data.Projects) > 0, NoProjects, func() {
		b.WriteString("<div class=\"experience-list\">\n")
		for _, project := range data.Projects {
			b.WriteString("<div class=\"experience-item\">\n")
			fmt.Fprintf(b, "<div class=\"experience-position\">%s</div>\n", html.EscapeString(project.Title))
			fmt.Fprintf(b, "<div class=\"experience-company\">%s</div>\n", html.EscapeString(project.Description))
			if project.Impact != "" {
				fmt.Fprintf(b, "<div class=\"experience-meta\"><strong>💡 Impact:</strong> %s</div>\n", html.EscapeString(project.Impact))
			}
			if len(project.Technologies) > 0 {
				tagList(b, project.Technologies)
			}
			b.WriteString("</div>\n")
		}
		b.WriteString("</div>\n")
	})
}

func (r *Renderer) renderAchievements(b *strings.Builder, data portfolio.Record) {
	heading(b, "🎯 Achievements")
	b.WriteString("<p>Some highlights from my career:</p>\n")
	bulletList(b, data.Achievements, FallbackAchievement)
	b.WriteString("<p>I'm proud of these accomplishments and always striving for excellence!</p>\n")
}

func (r *Renderer) renderContact(b *strings.Builder, data portfolio.Record) {
	heading(b, "📞 Let's Connect!")
	fmt.Fprintf(b, "<p>Current status: %s. Here's how you can reach me:</p>\n", status(data.Personal.Status))

	b.WriteString("<div class=\"contact-buttons\">\n")
	for _, link := range r.ContactLinks(data) {
		target := ""
		if link.External {
			target = " target=\"_blank\""
		}
		fmt.Fprintf(b, "<a href=\"%s\" class=\"contact-btn\"%s><span class=\"contact-icon\">%s</span><span>%s</span></a>\n",
			html.EscapeString(link.Href), target, link.Icon, link.Label)
	}
	b.WriteString("</div>\n")

	fmt.Fprintf(b, "<p>I typically respond within <strong>%s</strong> during business hours!</p>\n", html.EscapeString(r.opts.ResponseTime))
}

func (r *Renderer) renderEducation(b *strings.Builder, data portfolio.Record) {
	heading(b, "🎓 Education")
	b.WriteString("<p>My educational background:</p>\n")

	renderOrFallback(b, len(data.Education) > 0, NoEducation, func() {
		b.WriteString("<div class=\"experience-list\">\n")
		for _, edu := range data.Education {
			b.WriteString("<div class=\"experience-item\">\n")
			fmt.Fprintf(b, "<div class=\"experience-position\">%s</div>\n", html.EscapeString(edu.Degree))
			fmt.Fprintf(b, "<div class=\"experience-company\">%s</div>\n", html.EscapeString(edu.Institution))
			fmt.Fprintf(b, "<div class=\"experience-meta\"><span>📅 %s</span>", html.EscapeString(string(edu.Year)))
			if edu.Grade != "" {
				fmt.Fprintf(b, "<span>🎯 %s</span>", html.EscapeString(string(edu.Grade)))
			}
			b.WriteString("</div>\n</div>\n")
		}
		b.WriteString("</div>\n")
	})
}

func (r *Renderer) renderLanguages(b *strings.Builder, data portfolio.Record) {
	heading(b, "🌐 Languages")
	b.WriteString("<p>I can communicate in multiple languages:</p>\n")

	renderOrFallback(b, len(data.Languages) > 0, NoLanguages, func() {
		b.WriteString("<div class=\"experience-list\">\n")
		for _, lang := range data.Languages {
			b.WriteString("<div class=\"experience-item\">\n")
			fmt.Fprintf(b, "<div class=\"experience-position\">%s</div>\n", html.EscapeString(lang.Language))
			fmt.Fprintf(b, "<div class=\"experience-company\">%s</div>\n", html.EscapeString(lang.Level))
			b.WriteString("</div>\n")
		}
		b.WriteString("</div>\n")
	})
}

// renderGeneral is the greeting. It shares the about fallbacks so a record
// that never loaded still produces a greeting.
func (r *Renderer) renderGeneral(b *strings.Builder, data portfolio.Record) {
	p := data.Personal

	heading(b, "👋 Hello!")
	fmt.Fprintf(b, "<p>I'm %s, a <strong>%s</strong>.</p>\n", text(p.Name, FallbackName), text(p.Title, FallbackTitle))
	b.WriteString("<p>Ask me about my <strong>skills, experience, projects, achievements, education and languages</strong>, or how to get in touch.</p>\n")
	fmt.Fprintf(b, "<p>I'm %s!</p>\n", status(p.Status))
	b.WriteString("<p>What would you like to know about my background?</p>\n")
}

// ContactLink is one actionable contact channel.
type ContactLink struct {
	Channel  string
	Href     string
	Icon     string
	Label    string
	External bool
}

// ContactLinks returns a link per present channel in fixed order.
func (r *Renderer) ContactLinks(data portfolio.Record) (links []ContactLink) {
	c := data.Contact
	links = make([]ContactLink, 0, 5)

	if c.Email != "" {
		subject := r.opts.MailSubject
		if data.Personal.Title != "" {
			subject += " - " + data.Personal.Title
		}
		links = append(links, ContactLink{
			Channel: "email",
			Href:    "mailto:" + c.Email + "?subject=" + queryEscape(subject),
			Icon:    "📧",
			Label:   "Email",
		})
	}

	if c.Phone != "" {
		links = append(links, ContactLink{
			Channel: "phone",
			Href:    "tel:" + c.Phone,
			Icon:    "📞",
			Label:   "Call",
		})
	}

	if c.WhatsApp != "" {
		greeting := strings.Replace(r.opts.WhatsAppGreeting, GreetingNamePlaceholder, firstName(data.Personal.Name), 1)
		links = append(links, ContactLink{
			Channel:  "whatsapp",
			Href:     "https://wa.me/" + c.WhatsApp + "?text=" + queryEscape(greeting),
			Icon:     "💬",
			Label:    "WhatsApp",
			External: true,
		})
	}

	if c.LinkedIn != "" {
		links = append(links, ContactLink{
			Channel:  "linkedin",
			Href:     c.LinkedIn,
			Icon:     "🔗",
			Label:    "LinkedIn",
			External: true,
		})
	}

	if c.Portfolio != "" {
		links = append(links, ContactLink{
			Channel:  "portfolio",
			Href:     c.Portfolio,
			Icon:     "📄",
			Label:    "Resume",
			External: true,
		})
	}

	return links
}

// queryEscape encodes a single query value. Spaces become %20 rather than +
// since mail clients do not decode + in mailto headers.
func queryEscape(value string) (escaped string) {
	escaped = strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
	return escaped
}

func firstName(name string) (first string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		first = FallbackName
		return first
	}
	first = fields[0]
	return first
}
