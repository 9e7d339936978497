package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"provardx-cli/internal/config"
	"provardx-cli/internal/orchestrator"
	"provardx-cli/internal/template"
	"provardx-cli/pkg/logging"
	"provardx-cli/pkg/models"
)

// PropertiesTemplateEnv names a template file that replaces the built-in
// properties template for config generate.
const PropertiesTemplateEnv = "PROVARDX_PROPERTIES_TEMPLATE"

// output receives command results
var output io.Writer = os.Stdout

type command func(orch *orchestrator.Orchestrator) (models.CommandResult, error)

// execute wires the real collaborators, runs one command and renders its result
func execute(request *models.CommandRequest, successMessage string, run command) error {
	store, err := config.NewDefaultStore()
	if err != nil {
		return orchestrator.NewConfigurationError("failed to locate the configuration directory", err)
	}
	if err := store.Load(); err != nil {
		return orchestrator.NewConfigurationError("failed to read "+contractPath(store.Path()), err)
	}

	var opts []orchestrator.Option
	if templatePath := os.Getenv(PropertiesTemplateEnv); templatePath != "" {
		logging.Debug("App", "using properties template %s", templatePath)
		opts = append(opts, orchestrator.WithTemplateRenderer(template.NewProcessor(templatePath)))
	}

	orch, err := orchestrator.New(store, opts...)
	if err != nil {
		return err
	}

	result, err := run(orch)
	if err != nil {
		return err
	}

	return orchestrator.NewFormatter(output, request.JSONOutput).Render(result, successMessage)
}

// Generate writes a new properties file from the template
func Generate(request *models.CommandRequest) error {
	return execute(request, orchestrator.MsgGenerated, func(orch *orchestrator.Orchestrator) (models.CommandResult, error) {
		return orch.Generate(request.PropertiesPath, request.NoPrompt)
	})
}

// Load makes a properties file the active one
func Load(request *models.CommandRequest) error {
	return execute(request, orchestrator.MsgLoaded, func(orch *orchestrator.Orchestrator) (models.CommandResult, error) {
		return orch.Load(request.PropertiesPath)
	})
}

// Validate checks the active properties file
func Validate(request *models.CommandRequest) error {
	return execute(request, orchestrator.MsgValidated, func(orch *orchestrator.Orchestrator) (models.CommandResult, error) {
		return orch.Validate()
	})
}

// Get prints one property of the active properties file
func Get(request *models.CommandRequest) error {
	var property string
	if len(request.Args) > 0 {
		property = request.Args[0]
	}
	return execute(request, "", func(orch *orchestrator.Orchestrator) (models.CommandResult, error) {
		return orch.Get(property)
	})
}

// Set updates properties of the active properties file
func Set(request *models.CommandRequest) error {
	return execute(request, orchestrator.MsgUpdated, func(orch *orchestrator.Orchestrator) (models.CommandResult, error) {
		return orch.Set(request.Args)
	})
}

// DownloadMetadata downloads metadata for the requested connections
func DownloadMetadata(ctx context.Context, request *models.CommandRequest) error {
	return execute(request, orchestrator.MsgMetadata, func(orch *orchestrator.Orchestrator) (models.CommandResult, error) {
		return orch.DownloadMetadata(ctx, request.Connections)
	})
}

// Compile compiles the project named by the active properties file
func Compile(ctx context.Context, request *models.CommandRequest) error {
	return execute(request, orchestrator.MsgCompiled, func(orch *orchestrator.Orchestrator) (models.CommandResult, error) {
		return orch.Compile(ctx)
	})
}

// contractPath converts a full path back to use ~ for the home directory
func contractPath(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	homeDirWithSlash := homeDir + string(filepath.Separator)
	pathWithSlash := path + string(filepath.Separator)

	if strings.HasPrefix(pathWithSlash, homeDirWithSlash) {
		relativePath := path[len(homeDir):]
		if relativePath == "" {
			return "~"
		}
		return "~" + relativePath
	}

	return path
}
