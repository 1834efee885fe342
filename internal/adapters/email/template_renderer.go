package email

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/cockroachdb/errors"

	"eventbooking/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// TemplateRenderer renders the embedded email templates. Each template name maps
// to three files: <name>_subject.txt, <name>.html and <name>.txt.
type TemplateRenderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

var _ domain.EmailTemplateRenderer = (*TemplateRenderer)(nil)

// NewTemplateRenderer parses every embedded template up front.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, errors.Wrap(err, "parse text templates")
	}
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse html templates")
	}
	return &TemplateRenderer{text: text, html: html}, nil
}

// Render executes the named template (e.g. "event_request_received") with data.
func (r *TemplateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, name+"_subject.txt", data); err != nil {
		return "", "", "", errors.Wrap(err, "render subject")
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if err := r.html.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", "", "", errors.Wrap(err, "render html")
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := r.text.ExecuteTemplate(&buf, name+".txt", data); err != nil {
		return "", "", "", errors.Wrap(err, "render text")
	}
	return subject, htmlBody, buf.String(), nil
}
