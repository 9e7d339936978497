package template

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"provardx-cli/internal/interfaces"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const propertiesTemplateName = "templates/provardx-properties.json.tmpl"

// Processor implements the TemplateRenderer interface
type Processor struct {
	templatePath string
}

// NewProcessor creates a new template processor. An empty templatePath
// selects the built-in properties template.
func NewProcessor(templatePath string) *Processor {
	return &Processor{
		templatePath: templatePath,
	}
}

// RenderProperties renders the properties file template with data
func (p *Processor) RenderProperties(data interfaces.PropertiesTemplateData) ([]byte, error) {
	tmpl, err := p.LoadTemplate()
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return []byte(buf.String()), nil
}

// LoadTemplate loads the configured template, or the built-in one
func (p *Processor) LoadTemplate() (*template.Template, error) {
	if p.templatePath == "" {
		content, err := templatesFS.ReadFile(propertiesTemplateName)
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in template: %w", err)
		}
		return p.parse(filepath.Base(propertiesTemplateName), string(content))
	}

	content, err := os.ReadFile(p.templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", p.templatePath, err)
	}
	return p.parse(filepath.Base(p.templatePath), string(content))
}

func (p *Processor) parse(name, content string) (*template.Template, error) {
	tmpl := template.New(name)

	// Register helper functions before parsing
	if err := p.registerHelpersToTemplate(tmpl); err != nil {
		return nil, fmt.Errorf("failed to register helper functions: %w", err)
	}

	tmpl, err := tmpl.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// registerHelpersToTemplate registers both sprig and custom helper functions to a template
func (p *Processor) registerHelpersToTemplate(tmpl *template.Template) error {
	funcMap := sprig.TxtFuncMap()

	customFuncs := template.FuncMap{
		"toSlash": filepath.ToSlash,
	}

	for name, fn := range customFuncs {
		funcMap[name] = fn
	}

	tmpl.Funcs(funcMap)

	return nil
}
