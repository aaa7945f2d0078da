package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evefrontier/fixgen/internal/iologger"
	"github.com/evefrontier/fixgen/internal/iotesting"
	"github.com/evefrontier/fixgen/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME to a temporary directory and drops FIXGEN_*
// variables of the developer's shell.
func isolate(t *testing.T) {
	t.Helper()
	iotesting.ClearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FIXGEN_LOG_DESTINATION", "stderr")
	t.Setenv("FIXGEN_LOG_LEVEL", "error")
}

// execute runs the root command with args and returns what commands
// wrote to their output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	iologger.Close()
	return buf.String(), err
}

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "fixgen", cmd.Use,
		"Command name should be fixgen")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()

	// Set a test version
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should contain version")
	assert.Contains(t, output, "abc123",
		"Version output should contain build")
	assert.NotContains(t, output, "fixgen version:",
		"Should use custom version template")
}

// TestGetRootCmd_ShortVersionFlag verifies
// -V flag works.
func TestGetRootCmd_ShortVersionFlag(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "v1.2.3",
		"Version output should work with -V flag")
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "fixgen")
	assert.Contains(t, helpText, "EVE Frontier")
	assert.Contains(t, helpText, "FIXGEN_")
}

// TestGetRootCmd_Subcommands verifies every command is registered.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{
		"extract", "status", "record", "verify", "corridor", "inspect",
	} {
		assert.Contains(t, names, want)
	}
}

// TestGetRootCmd_Settings verifies bootstrap, run function and error
// silencing.
func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors,
		"Errors should be silenced")
	assert.True(t, cmd.SilenceUsage,
		"Usage should be silenced on errors")
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")

	cmd1.Version = "version1"
	cmd2.Version = "version2"

	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	isolate(t)
	_, err := execute(t, "nonexistent-command")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

// TestRunRoot verifies bootstrap creates the config file and the root
// command prints the effective configuration.
func TestRunRoot(t *testing.T) {
	isolate(t)
	t.Setenv("FIXGEN_SOURCE_PATH", "/data/static_data.db")
	out, err := execute(t)
	require.NoError(t, err)

	assert.Contains(t, out, "path: /data/static_data.db")
	assert.Contains(t, out, "level: error")
	assert.True(t, strings.Contains(out, "log:"))

	require.NotNil(t, cfg)
	assert.FileExists(t, config.ConfigFilePath(cfg.HomeDir))
	assert.DirExists(t, config.LogDir(cfg.HomeDir))
}

// TestLicenseHeader verifies command sources carry the project MIT
// header.
func TestLicenseHeader(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)
	files = append(files, filepath.Join("fixgen", "main.go"))

	for _, f := range files {
		if strings.HasSuffix(f, "_test.go") || f == "flags.go" {
			continue
		}
		data, err := os.ReadFile(f)
		require.NoError(t, err)
		text := string(data)
		assert.True(t,
			strings.HasPrefix(text, "/*\nCopyright © 2025 The fixgen Authors\n"), f)
		assert.Contains(t, text, "Permission is hereby granted, free of charge", f)
	}
}
