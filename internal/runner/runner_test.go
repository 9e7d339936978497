package runner

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provardx-cli/internal/interfaces"
)

func TestScrape(t *testing.T) {
	stream := "INFO starting\n" +
		"[DOWNLOAD_ERROR] Connection 'Admin' could not be authenticated.\n" +
		"WARN slow\n" +
		"2026-01-01 [DOWNLOAD_ERROR]   Metadata cache is locked.  \r\n"

	assert.Equal(t, []string{
		"Connection 'Admin' could not be authenticated.",
		"Metadata cache is locked.",
	}, Scrape(stream, DownloadErrorMarker))

	assert.Empty(t, Scrape(stream, CompileErrorMarker))
	assert.Empty(t, Scrape("", DownloadErrorMarker))
}

func TestArgs(t *testing.T) {
	args := Args("/opt/provar", "/tmp/props.json", CommandCompile)

	assert.Equal(t, []string{
		"-cp", filepath.Join("/opt/provar", "provardx", "provardx.jar"),
		MainClass,
		"/tmp/props.json",
		"Compile",
	}, args)
}

func TestJavaBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("binary name differs on windows")
	}
	assert.Equal(t, "java", javaBinary(""))
	assert.Equal(t, filepath.Join("/usr/lib/jvm/17", "bin", "java"), javaBinary("/usr/lib/jvm/17"))
}

type recordingRunner struct {
	name string
	args []string
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) (interfaces.ProcessOutput, error) {
	r.name = name
	r.args = args
	return interfaces.ProcessOutput{Stdout: "ok"}, nil
}

func TestJava_Run(t *testing.T) {
	t.Setenv("JAVA_HOME", "")
	rec := &recordingRunner{}

	out, err := NewJava(rec).Run(context.Background(), "/opt/provar", "/tmp/p.json", CommandMetadata)
	require.NoError(t, err)

	assert.Equal(t, "ok", out.Stdout)
	assert.Equal(t, javaBinary(""), rec.name)
	assert.Equal(t, Args("/opt/provar", "/tmp/p.json", CommandMetadata), rec.args)
}

func TestExecRunner_Run(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	out, err := NewExecRunner().Run(context.Background(), sh, "-c", "echo out; echo err >&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, "out\n", out.Stdout)
	assert.Equal(t, "err\n", out.Stderr)
	assert.Equal(t, 3, out.ExitCode)
}

func TestExecRunner_RunMissingBinary(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), filepath.Join(t.TempDir(), "no-such-binary"))
	assert.Error(t, err)
}
