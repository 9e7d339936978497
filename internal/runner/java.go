package runner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"provardx-cli/internal/interfaces"
)

const (
	// JarPath is the tool's jar relative to provarHome.
	JarPath = "provardx/provardx.jar"

	// MainClass is the tool's entry point.
	MainClass = "com.provar.provardx.DxCommandExecuter"
)

// Tool commands and the markers that prefix their failures on stderr.
const (
	CommandMetadata = "Metadata"
	CommandCompile  = "Compile"

	DownloadErrorMarker = "[DOWNLOAD_ERROR]"
	CompileErrorMarker  = "[COMPILE_ERROR]"
)

// Java runs ProvarDX tool commands
type Java struct {
	runner interfaces.ProcessRunner
	binary string
}

// NewJava creates a tool launcher using the java binary from $JAVA_HOME,
// falling back to the one on PATH
func NewJava(runner interfaces.ProcessRunner) *Java {
	return &Java{
		runner: runner,
		binary: javaBinary(os.Getenv("JAVA_HOME")),
	}
}

func javaBinary(javaHome string) string {
	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}
	if javaHome == "" {
		return name
	}
	return filepath.Join(javaHome, "bin", name)
}

// Args builds the tool command line for one command
func Args(provarHome, propertiesFile, command string) []string {
	return []string{
		"-cp", filepath.Join(provarHome, filepath.FromSlash(JarPath)),
		MainClass,
		propertiesFile,
		command,
	}
}

// Run executes command against propertiesFile and blocks until the tool exits
func (j *Java) Run(ctx context.Context, provarHome, propertiesFile, command string) (interfaces.ProcessOutput, error) {
	return j.runner.Run(ctx, j.binary, Args(provarHome, propertiesFile, command)...)
}
