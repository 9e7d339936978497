package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"provardx-cli/internal/app"
	"provardx-cli/internal/orchestrator"
	"provardx-cli/pkg/logging"
	"provardx-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

// logLevelEnv sets the log level when --log-level is not given
const logLevelEnv = "PROVARDX_LOG_LEVEL"

var rootCmd = &cobra.Command{
	Use:   "provardx",
	Short: "Manage ProvarDX properties files and run the ProvarDX tool",
	Long: `provardx manages the JSON properties file that describes a Provar test run.

Generate a properties file, load it as the active file, then read, update and
validate it. Metadata download and project compilation run the ProvarDX Java
tool from $PROVAR_HOME against the active file.

Every command accepts --json to print a structured result instead of text.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "provardx version %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built: %s\n", date)
		fmt.Fprintf(out, "  go version: %s\n", goVersion)
		fmt.Fprintf(out, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate, load, read and update properties files",
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a properties file",
	Long:  "Generate a properties file from the built-in template, or from the template named by PROVARDX_PROPERTIES_TEMPLATE.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.Generate(request)
	},
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a properties file as the active one",
	Long:  "Validate a properties file and record it as the active one. The previous active file is kept when validation fails.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.Load(request)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the active properties file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.Validate(request)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <property>",
	Short: "Print a property of the active properties file",
	Long:  "Print a property of the active properties file. Dotted names such as metadata.metadataLevel address nested properties.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.Get(request)
	},
}

var setCmd = &cobra.Command{
	Use:   "set <property>=<value>...",
	Short: "Update properties of the active properties file",
	Long: `Update properties of the active properties file. Values that parse as JSON are
stored as JSON, anything else is stored as a string. Dotted names such as
environment.webBrowser address nested properties.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.Set(request)
	},
}

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Work with Salesforce connection metadata",
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download metadata for one or more connections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.DownloadMetadata(cmd.Context(), request)
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Work with the Provar project",
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the project named by the active properties file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.Compile(cmd.Context(), request)
	},
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(projectCmd)

	configCmd.AddCommand(generateCmd)
	configCmd.AddCommand(loadCmd)
	configCmd.AddCommand(validateCmd)
	configCmd.AddCommand(getCmd)
	configCmd.AddCommand(setCmd)
	metadataCmd.AddCommand(downloadCmd)
	projectCmd.AddCommand(compileCmd)

	// Add command specific flags
	generateCmd.Flags().StringP("properties-file", "p", "", "path of the properties file to create")
	generateCmd.Flags().BoolP("no-prompt", "n", false, "overwrite an existing file without asking")
	_ = generateCmd.MarkFlagRequired("properties-file")

	loadCmd.Flags().StringP("properties-file", "p", "", "path of the properties file to load")
	_ = loadCmd.MarkFlagRequired("properties-file")

	downloadCmd.Flags().StringSliceP("connections", "c", []string{}, "comma-separated connection names")

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "print the result as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error (default warn, env "+logLevelEnv+")")
}

// initLogging installs the CLI logger from --log-level or the environment
func initLogging(cmd *cobra.Command) error {
	value, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("invalid log-level flag: %w", err)
	}
	if value == "" {
		value = os.Getenv(logLevelEnv)
	}

	level, err := logging.ParseLevel(value)
	if err != nil {
		return err
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())
	return nil
}

// buildRequestFromFlags constructs a CommandRequest from command flags and arguments
func buildRequestFromFlags(cmd *cobra.Command, args []string) (*models.CommandRequest, error) {
	request := models.NewCommandRequest()
	request.Args = append(request.Args, args...)

	var err error

	if request.JSONOutput, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, fmt.Errorf("invalid json flag: %w", err)
	}

	if cmd.Flags().Lookup("properties-file") != nil {
		if request.PropertiesPath, err = cmd.Flags().GetString("properties-file"); err != nil {
			return nil, fmt.Errorf("invalid properties-file flag: %w", err)
		}
		request.PropertiesPath = strings.TrimSpace(request.PropertiesPath)
	}

	if cmd.Flags().Lookup("no-prompt") != nil {
		if request.NoPrompt, err = cmd.Flags().GetBool("no-prompt"); err != nil {
			return nil, fmt.Errorf("invalid no-prompt flag: %w", err)
		}
	}

	if cmd.Flags().Lookup("connections") != nil {
		connections, err := cmd.Flags().GetStringSlice("connections")
		if err != nil {
			return nil, fmt.Errorf("invalid connections flag: %w", err)
		}
		request.Connections = append(request.Connections, connections...)
	}

	return request, nil
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		var cmdErr *orchestrator.CommandError
		if errors.As(err, &cmdErr) {
			errorStyle := lipgloss.NewRenderer(os.Stderr).NewStyle().Foreground(lipgloss.Color("1"))
			fmt.Fprintln(os.Stderr, errorStyle.Render(cmdErr.Error()))
			if suggestion := cmdErr.Suggestion(); suggestion != "" {
				fmt.Fprintf(os.Stderr, "Try this: %s\n", suggestion)
			}
			os.Exit(cmdErr.ExitCode)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
