package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/budgetly/budgetly/web"
)

// Template names under web/templates/mail.
const (
	TemplateVerify = "mail/verify.html"
	TemplateReset  = "mail/reset.html"
)

// LinkData is the view model of the lifecycle emails.
type LinkData struct {
	Link string
	TTL  time.Duration
}

// Renderer produces email bodies from embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded mail templates.
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"humanDuration": HumanDuration,
	}
	tpl, err := template.New("mail").Funcs(funcMap).ParseFS(web.Templates, "templates/mail/*.html")
	if err != nil {
		return nil, fmt.Errorf("mail: parse templates: %w", err)
	}
	return &Renderer{templates: tpl}, nil
}

// Render executes a named template.
func (r *Renderer) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("mail: render %s: %w", name, err)
	}
	return buf.String(), nil
}

// HumanDuration renders a TTL as the email copy states it, e.g. "1 hour",
// "6 hours" or "30 minutes".
func HumanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
