package interfaces

// PropertiesTemplateData holds the values substituted into a generated
// properties file
type PropertiesTemplateData struct {
	ProvarHome  string
	ProjectPath string
	ResultsPath string
}

// TemplateRenderer produces the content of a new properties file
type TemplateRenderer interface {
	// RenderProperties renders the default properties file
	RenderProperties(data PropertiesTemplateData) ([]byte, error)
}
