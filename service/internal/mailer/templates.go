package mailer

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"

	"go.lumeweb.com/provision/core"
)

const EMAIL_FS_PREFIX = "templates"

const (
	subjectSuffix = "_subject.tpl"
	bodySuffix    = "_body.tpl"
)

//go:embed templates/*
var templateFS embed.FS

var ErrTemplateNotFound = errors.New("template not found")

type EmailTemplate struct {
	subject *template.Template
	body    *template.Template
}

func (et *EmailTemplate) Subject() *template.Template {
	return et.subject
}

func (et *EmailTemplate) Body() *template.Template {
	return et.body
}

func NewMailerTemplate(subject *template.Template, body *template.Template) *EmailTemplate {
	return &EmailTemplate{
		subject: subject,
		body:    body,
	}
}

// ParseTemplate builds a template pair from raw subject and body sources.
func ParseTemplate(name, subject, body string) (*EmailTemplate, error) {
	subjectTmpl, err := template.New(name).Option("missingkey=error").Parse(subject)
	if err != nil {
		return nil, err
	}

	bodyTmpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, err
	}

	return NewMailerTemplate(subjectTmpl, bodyTmpl), nil
}

type templateKey struct {
	area    string
	name    string
	storeID uint
}

// TemplateRegistry holds templates per area. A template registered for a specific
// store shadows the area default for that store only.
type TemplateRegistry struct {
	templates   map[templateKey]*EmailTemplate
	templatesMu sync.RWMutex
}

func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[templateKey]*EmailTemplate),
	}
}

// LoadTemplates registers every embedded <area>/<name>_subject.tpl and its matching
// body as the area default.
func (tr *TemplateRegistry) LoadTemplates() error {
	subjectTemplates, err := fs.Glob(templateFS, EMAIL_FS_PREFIX+"/*/*"+subjectSuffix)
	if err != nil {
		return err
	}

	for _, subjectTemplate := range subjectTemplates {
		area := path.Base(path.Dir(subjectTemplate))
		name := strings.TrimSuffix(path.Base(subjectTemplate), subjectSuffix)
		bodyTemplate := strings.TrimSuffix(subjectTemplate, subjectSuffix) + bodySuffix

		subjectContent, err := fs.ReadFile(templateFS, subjectTemplate)
		if err != nil {
			return err
		}

		bodyContent, err := fs.ReadFile(templateFS, bodyTemplate)
		if err != nil {
			return fmt.Errorf("template %s/%s has no body: %w", area, name, err)
		}

		tmpl, err := ParseTemplate(name, string(subjectContent), string(bodyContent))
		if err != nil {
			return err
		}

		tr.RegisterTemplate(area, name, tmpl)
	}

	return nil
}

func (tr *TemplateRegistry) RegisterTemplate(area, name string, tmpl *EmailTemplate) {
	tr.RegisterStoreTemplate(area, name, 0, tmpl)
}

func (tr *TemplateRegistry) RegisterStoreTemplate(area, name string, storeID uint, tmpl *EmailTemplate) {
	tr.templatesMu.Lock()
	defer tr.templatesMu.Unlock()
	tr.templates[templateKey{area: area, name: name, storeID: storeID}] = tmpl
}

func (tr *TemplateRegistry) lookup(area, name string, storeID uint) (*EmailTemplate, bool) {
	tr.templatesMu.RLock()
	defer tr.templatesMu.RUnlock()

	if storeID != 0 {
		if tmpl, ok := tr.templates[templateKey{area: area, name: name, storeID: storeID}]; ok {
			return tmpl, true
		}
	}

	tmpl, ok := tr.templates[templateKey{area: area, name: name}]
	return tmpl, ok
}

func (tr *TemplateRegistry) RenderTemplate(templateName string, options core.TemplateOptions, vars core.MailerTemplateData) (*Email, error) {
	tmpl, ok := tr.lookup(options.Area, templateName, options.StoreID)
	if !ok {
		return nil, ErrTemplateNotFound
	}

	var subjectBuilder strings.Builder
	err := tmpl.Subject().Execute(&subjectBuilder, vars)
	if err != nil {
		return nil, err
	}

	var bodyBuilder strings.Builder
	err = tmpl.Body().Execute(&bodyBuilder, vars)
	if err != nil {
		return nil, err
	}

	return NewEmail(strings.TrimSpace(subjectBuilder.String()), bodyBuilder.String()), nil
}
