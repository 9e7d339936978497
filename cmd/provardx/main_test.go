package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provardx-cli/pkg/models"
)

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().StringP("properties-file", "p", "", "")
	cmd.Flags().Bool("no-prompt", false, "")
	cmd.Flags().StringSlice("connections", []string{}, "")
	return cmd
}

func TestBuildRequestFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		flags    map[string]string
		expected *models.CommandRequest
	}{
		{
			name:  "generate",
			flags: map[string]string{"properties-file": " ./props.json ", "no-prompt": "true"},
			expected: &models.CommandRequest{
				PropertiesPath: "./props.json",
				NoPrompt:       true,
				Args:           []string{},
				Connections:    []string{},
			},
		},
		{
			name:  "set with json output",
			args:  []string{"provarHome=/opt/provar", "stopOnError=true"},
			flags: map[string]string{"json": "true"},
			expected: &models.CommandRequest{
				JSONOutput:  true,
				Args:        []string{"provarHome=/opt/provar", "stopOnError=true"},
				Connections: []string{},
			},
		},
		{
			name:  "connections",
			flags: map[string]string{"connections": "Admin,Portal"},
			expected: &models.CommandRequest{
				Args:        []string{},
				Connections: []string{"Admin", "Portal"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newFlagCommand()
			for flag, value := range tt.flags {
				require.NoError(t, cmd.Flags().Set(flag, value))
			}

			result, err := buildRequestFromFlags(cmd, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestBuildRequestFromFlags_CommandWithoutFileFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("json", false, "")

	result, err := buildRequestFromFlags(cmd, []string{"metadata.metadataLevel"})
	require.NoError(t, err)
	assert.Equal(t, []string{"metadata.metadataLevel"}, result.Args)
	assert.Empty(t, result.PropertiesPath)
}

func TestBuildRequestFromFlags_MissingJSONFlag(t *testing.T) {
	_, err := buildRequestFromFlags(&cobra.Command{}, nil)
	assert.Error(t, err)
}

func TestInitLogging(t *testing.T) {
	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv(logLevelEnv, "not-a-level")
		cmd := newFlagCommand()
		require.NoError(t, cmd.Flags().Set("log-level", "debug"))
		assert.NoError(t, initLogging(cmd))
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(logLevelEnv, "loud")
		assert.Error(t, initLogging(newFlagCommand()))
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(logLevelEnv, "")
		assert.NoError(t, initLogging(newFlagCommand()))
	})
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "provardx version dev")
	assert.Contains(t, out.String(), "platform:")
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"config", "generate"},
		{"config", "load"},
		{"config", "validate"},
		{"config", "get"},
		{"config", "set"},
		{"metadata", "download"},
		{"project", "compile"},
		{"version"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
