package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"provardx-cli/internal/config"
	"provardx-cli/internal/interactive"
	"provardx-cli/internal/interfaces"
	"provardx-cli/internal/properties"
	"provardx-cli/internal/report"
	"provardx-cli/internal/runner"
	"provardx-cli/internal/schema"
	"provardx-cli/internal/template"
	"provardx-cli/pkg/logging"
	"provardx-cli/pkg/models"
)

// Success messages printed by the commands.
const (
	MsgGenerated = "The properties file was generated successfully."
	MsgLoaded    = "The properties file was loaded successfully."
	MsgValidated = "The properties file was validated successfully."
	MsgUpdated   = "The properties file was updated successfully."
	MsgCompiled  = "The project was compiled successfully."
	MsgMetadata  = "The metadata was downloaded successfully."
)

// ProvarHomeEnv seeds provarHome in generated properties files.
const ProvarHomeEnv = "PROVAR_HOME"

// Orchestrator runs the properties-file commands against one config store
type Orchestrator struct {
	store     interfaces.ConfigStore
	validator *schema.Validator
	renderer  interfaces.TemplateRenderer
	confirmer interfaces.Confirmer
	java      *runner.Java
	getwd     func() (string, error)
	readFile  func(path string) (properties.Document, error)
}

// Option customizes an Orchestrator
type Option func(*Orchestrator)

// WithTemplateRenderer replaces the built-in properties template
func WithTemplateRenderer(r interfaces.TemplateRenderer) Option {
	return func(o *Orchestrator) { o.renderer = r }
}

// WithConfirmer replaces the interactive overwrite prompt
func WithConfirmer(c interfaces.Confirmer) Option {
	return func(o *Orchestrator) { o.confirmer = c }
}

// WithProcessRunner replaces the runner used to start the Java tool
func WithProcessRunner(r interfaces.ProcessRunner) Option {
	return func(o *Orchestrator) { o.java = runner.NewJava(r) }
}

// WithWorkingDir fixes the directory generated files are based on
func WithWorkingDir(dir string) Option {
	return func(o *Orchestrator) {
		o.getwd = func() (string, error) { return dir, nil }
	}
}

// New creates an orchestrator with all required components
func New(store interfaces.ConfigStore, opts ...Option) (*Orchestrator, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		store:     store,
		validator: validator,
		renderer:  template.NewProcessor(""),
		confirmer: interactive.NewPrompter(),
		java:      runner.NewJava(runner.NewExecRunner()),
		getwd:     os.Getwd,
		readFile:  properties.ReadFile,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// loadActive resolves and parses the active properties file. Failures the
// user can fix are recorded on agg and yield a nil document.
func (o *Orchestrator) loadActive(agg *report.Aggregator) (string, properties.Document, error) {
	path, exists := config.ActivePath(o.store)
	if !exists {
		logging.Debug("Orchestrator", "active properties file %q is not available", path)
		agg.Add(report.CodeMissingFile, report.MsgMissingFile)
		return path, nil, nil
	}

	doc, err := o.readFile(path)
	switch {
	case err == nil:
		return path, doc, nil
	case properties.IsMalformed(err):
		logging.Debug("Orchestrator", "properties file %s does not parse: %v", path, err)
		agg.Add(report.CodeMalformedFile, report.MsgMalformedFile)
		return path, nil, nil
	case errors.Is(err, os.ErrNotExist):
		agg.Add(report.CodeMissingFile, report.MsgMissingFile)
		return path, nil, nil
	case errors.Is(err, os.ErrPermission):
		agg.Add(report.CodeInsufficientPermissions, report.MsgInsufficientPerms)
		return path, nil, nil
	default:
		return path, nil, NewPropertiesFileError(path, err)
	}
}

// validate runs the file, parse and schema steps in order, stopping at the
// first step that records a failure.
func (o *Orchestrator) validate(agg *report.Aggregator) (string, properties.Document, error) {
	path, doc, err := o.loadActive(agg)
	if err != nil || doc == nil {
		return path, nil, err
	}
	if err := o.validator.Validate(doc, agg); err != nil {
		return path, nil, err
	}
	return path, doc, nil
}

// Validate checks the active properties file against the schema
func (o *Orchestrator) Validate() (models.CommandResult, error) {
	agg := report.NewAggregator()
	if _, _, err := o.validate(agg); err != nil {
		return models.CommandResult{}, err
	}
	return Format(agg, nil), nil
}

// Load makes path the active properties file. The previous pointer is
// restored when the file does not validate.
func (o *Orchestrator) Load(path string) (models.CommandResult, error) {
	agg := report.NewAggregator()

	absPath, err := filepath.Abs(config.ExpandPath(path))
	if err != nil {
		return models.CommandResult{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		code, msg, ok := classifyFSError(err)
		if !ok {
			return models.CommandResult{}, NewPropertiesFileError(absPath, err)
		}
		agg.Add(code, msg)
		return Format(agg, nil), nil
	}
	if info.IsDir() {
		agg.Add(report.CodeInvalidPath, report.MsgInvalidPath)
		return Format(agg, nil), nil
	}

	previous := o.store.Persisted(config.PropertiesFilePathKey)
	o.store.Set(config.PropertiesFilePathKey, absPath)
	if err := o.store.Write(); err != nil {
		o.resetPointer(previous)
		return models.CommandResult{}, NewConfigurationError("failed to save the active properties file", err)
	}

	if _, _, err := o.validate(agg); err != nil {
		if rollbackErr := o.restorePointer(previous); rollbackErr != nil {
			logging.Error("Orchestrator", rollbackErr, "failed to restore the previous properties file")
		}
		return models.CommandResult{}, err
	}

	if !agg.Success() {
		logging.Info("Orchestrator", "%s did not validate, restoring the previous properties file", absPath)
		if err := o.restorePointer(previous); err != nil {
			return models.CommandResult{}, NewConfigurationError("failed to restore the active properties file", err)
		}
	}
	return Format(agg, nil), nil
}

// resetPointer puts previous back in memory, unsetting the key when there
// was no saved pointer
func (o *Orchestrator) resetPointer(previous string) {
	if previous != "" {
		o.store.Set(config.PropertiesFilePathKey, previous)
	} else {
		o.store.Unset(config.PropertiesFilePathKey)
	}
}

// restorePointer puts previous back and saves it
func (o *Orchestrator) restorePointer(previous string) error {
	o.resetPointer(previous)
	return o.store.Write()
}

// Get returns the value of property in the active properties file
func (o *Orchestrator) Get(property string) (models.CommandResult, error) {
	agg := report.NewAggregator()
	if property == "" {
		agg.Add(report.CodeMissingProperty, "The property name is missing.")
		return Format(agg, nil), nil
	}

	_, doc, err := o.loadActive(agg)
	if err != nil || doc == nil {
		return Format(agg, nil), err
	}

	value, found := properties.Lookup(doc, property)
	if !found {
		agg.Add(report.CodeUnknownProperty, fmt.Sprintf("The property '%s' is not present in the properties file.", property))
		return Format(agg, nil), nil
	}
	return FormatFound(agg, value), nil
}

type assignment struct {
	property string
	value    interface{}
}

// parseAssignments turns property=value arguments into assignments,
// recording one error per malformed argument
func parseAssignments(args []string, agg *report.Aggregator) []assignment {
	if len(args) == 0 {
		agg.Add(report.CodeInvalidArgument, report.MsgInvalidArgument)
		return nil
	}

	assignments := make([]assignment, 0, len(args))
	for _, arg := range args {
		property, raw, ok := strings.Cut(arg, "=")
		switch {
		case !ok || raw == "":
			agg.Add(report.CodeMissingValue, fmt.Sprintf("The value for '%s' is missing.", property))
		case property == "":
			agg.Add(report.CodeMissingProperty, fmt.Sprintf("The property name for value '%s' is missing.", raw))
		default:
			assignments = append(assignments, assignment{property: property, value: properties.ParseValue(raw)})
		}
	}
	return assignments
}

// Set applies property=value arguments to the active properties file and
// writes it once. Nothing is written when any argument is rejected.
func (o *Orchestrator) Set(args []string) (models.CommandResult, error) {
	agg := report.NewAggregator()

	assignments := parseAssignments(args, agg)
	if !agg.Success() {
		return Format(agg, nil), nil
	}

	path, doc, err := o.loadActive(agg)
	if err != nil || doc == nil {
		return Format(agg, nil), err
	}

	for _, a := range assignments {
		logging.Debug("Orchestrator", "setting %s", a.property)
		properties.Assign(doc, a.property, a.value)
	}

	if err := properties.WriteFile(path, doc); err != nil {
		code, msg, ok := classifyFSError(err)
		if !ok {
			return models.CommandResult{}, NewPropertiesFileError(path, err)
		}
		agg.Add(code, msg)
	}
	return Format(agg, nil), nil
}

// Generate writes a new properties file at path from the template
func (o *Orchestrator) Generate(path string, noPrompt bool) (models.CommandResult, error) {
	agg := report.NewAggregator()

	if !strings.EqualFold(filepath.Ext(path), ".json") {
		agg.Add(report.CodeInvalidFileExtension, report.MsgInvalidFileExtension)
		return Format(agg, nil), nil
	}

	absPath, err := filepath.Abs(config.ExpandPath(path))
	if err != nil {
		return models.CommandResult{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(absPath)
	switch {
	case err == nil && info.IsDir():
		agg.Add(report.CodeInvalidPath, report.MsgInvalidPath)
		return Format(agg, nil), nil
	case err == nil && !noPrompt:
		overwrite, err := o.confirmer.ConfirmOverwrite(absPath)
		if err != nil && !isDeclinedAnswer(err) {
			return models.CommandResult{}, err
		}
		if !overwrite {
			agg.Add(report.CodeGenerateOperationDenied, report.MsgOperationDenied)
			return Format(agg, nil), nil
		}
	case err != nil && !errors.Is(err, os.ErrNotExist):
		code, msg, ok := classifyFSError(err)
		if !ok {
			return models.CommandResult{}, NewPropertiesFileError(absPath, err)
		}
		agg.Add(code, msg)
		return Format(agg, nil), nil
	}

	wd, err := o.getwd()
	if err != nil {
		return models.CommandResult{}, fmt.Errorf("failed to get working directory: %w", err)
	}

	content, err := o.renderer.RenderProperties(interfaces.PropertiesTemplateData{
		ProvarHome:  os.Getenv(ProvarHomeEnv),
		ProjectPath: wd,
		ResultsPath: filepath.Join(wd, "ANT", "Results"),
	})
	if err != nil {
		return models.CommandResult{}, err
	}

	if err := os.WriteFile(absPath, content, 0644); err != nil {
		code, msg, ok := classifyFSError(err)
		if !ok {
			return models.CommandResult{}, NewPropertiesFileError(absPath, err)
		}
		agg.Add(code, msg)
	}
	return Format(agg, nil), nil
}

// isDeclinedAnswer reports whether a prompt error means the user did not agree
func isDeclinedAnswer(err error) bool {
	return errors.Is(err, terminal.InterruptErr) || errors.Is(err, interactive.ErrInvalidAnswer)
}

// DownloadMetadata runs the tool's metadata download for connections
func (o *Orchestrator) DownloadMetadata(ctx context.Context, connections []string) (models.CommandResult, error) {
	agg := report.NewAggregator()

	var names []string
	for _, c := range connections {
		if c = strings.TrimSpace(c); c != "" {
			names = append(names, c)
		}
	}
	if len(names) == 0 {
		agg.Add(report.CodeMissingValue, "At least one connection name is required.")
		return Format(agg, nil), nil
	}

	return o.runTool(ctx, agg, toolRun{
		command: runner.CommandMetadata,
		marker:  runner.DownloadErrorMarker,
		code:    report.CodeDownloadError,
		prepare: func(doc properties.Document) {
			doc["connectionName"] = strings.Join(names, ",")
		},
	})
}

// Compile runs the tool's project compilation
func (o *Orchestrator) Compile(ctx context.Context) (models.CommandResult, error) {
	return o.runTool(ctx, report.NewAggregator(), toolRun{
		command: runner.CommandCompile,
		marker:  runner.CompileErrorMarker,
		code:    report.CodeCompilationError,
	})
}

type toolRun struct {
	command string
	marker  string
	code    report.ErrorCode
	prepare func(properties.Document)
}

// runTool validates the active properties file, hands a prepared copy to
// the Java tool and turns marked stderr lines into error records.
func (o *Orchestrator) runTool(ctx context.Context, agg *report.Aggregator, run toolRun) (models.CommandResult, error) {
	_, doc, err := o.validate(agg)
	if err != nil {
		return models.CommandResult{}, err
	}
	if !agg.Success() {
		return Format(agg, nil), nil
	}

	if run.prepare != nil {
		run.prepare(doc)
	}
	provarHome, _ := doc["provarHome"].(string)

	tmpPath, err := writeTempProperties(doc)
	if err != nil {
		return models.CommandResult{}, NewExternalToolError(run.command, err)
	}
	defer os.Remove(tmpPath)

	output, err := o.java.Run(ctx, provarHome, tmpPath, run.command)
	if err != nil {
		agg.Add(run.code, err.Error())
		return Format(agg, nil), nil
	}

	for _, msg := range runner.Scrape(output.Stderr, run.marker) {
		agg.Add(run.code, msg)
	}
	if agg.Success() && output.ExitCode != 0 {
		msg := strings.TrimSpace(output.Stderr)
		if msg == "" {
			msg = fmt.Sprintf("The %s command exited with code %d.", run.command, output.ExitCode)
		}
		agg.Add(run.code, msg)
	}
	return Format(agg, nil), nil
}

func writeTempProperties(doc properties.Document) (string, error) {
	data, err := properties.Encode(doc)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "provardx-properties-*.json")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
