package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		commit      string
		date        string
		builtBy     string
		wantUse     string
		wantShort   string
		wantAliases []string
	}{
		{
			name:        "creates root command with version info",
			version:     "1.0.0",
			commit:      "abc123",
			date:        "2025-11-05",
			builtBy:     "goreleaser",
			wantUse:     "bstats",
			wantShort:   "Query the Brawl Stars API",
			wantAliases: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCommand(tt.version, tt.commit, tt.date, tt.builtBy)

			assert.Equal(t, tt.wantUse, cmd.Use)
			assert.Equal(t, tt.wantShort, cmd.Short)
			assert.NotEmpty(t, cmd.Long)
			assert.NotEmpty(t, cmd.Example)
		})
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	tests := []struct {
		name     string
		flagName string
		wantType string
	}{
		{
			name:     "has config flag",
			flagName: "config",
			wantType: "string",
		},
		{
			name:     "has json flag",
			flagName: "json",
			wantType: "bool",
		},
		{
			name:     "has quiet flag",
			flagName: "quiet",
			wantType: "bool",
		},
		{
			name:     "has verbose flag",
			flagName: "verbose",
			wantType: "bool",
		},
		{
			name:     "has token flag",
			flagName: "token",
			wantType: "string",
		},
		{
			name:     "has timeout flag",
			flagName: "timeout",
			wantType: "int",
		},
		{
			name:     "has async flag",
			flagName: "async",
			wantType: "bool",
		},
		{
			name:     "has no-cache flag",
			flagName: "no-cache",
			wantType: "bool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")

			flag := cmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "flag %s should exist", tt.flagName)
			assert.Equal(t, tt.wantType, flag.Value.Type())
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	tests := []struct {
		name        string
		commandName string
		wantShort   string
	}{
		{
			name:        "has version command",
			commandName: "version",
			wantShort:   "Print version information",
		},
		{
			name:        "has player command",
			commandName: "player",
			wantShort:   "Show a player's profile",
		},
		{
			name:        "has battlelog command",
			commandName: "battlelog",
			wantShort:   "Show a player's recent battles",
		},
		{
			name:        "has club command",
			commandName: "club",
			wantShort:   "Show a club and its members",
		},
		{
			name:        "has members command",
			commandName: "members",
			wantShort:   "List the members of a club",
		},
		{
			name:        "has brawlers command",
			commandName: "brawlers",
			wantShort:   "List every brawler in the game",
		},
		{
			name:        "has leaderboard command",
			commandName: "leaderboard",
			wantShort:   "Show trophy rankings",
		},
		{
			name:        "has rotation command",
			commandName: "rotation",
			wantShort:   "Show the current event rotation",
		},
		{
			name:        "has dashboard command",
			commandName: "dashboard",
			wantShort:   "Interactive dashboard with event rotation and rankings",
		},
		{
			name:        "has config command",
			commandName: "config",
			wantShort:   "Manage configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")

			subCmd := findCommand(cmd, tt.commandName)
			require.NotNil(t, subCmd, "command %s should exist", tt.commandName)
			assert.Equal(t, tt.wantShort, subCmd.Short)
		})
	}
}

func TestRootCommand_Execute(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantOutput string
		wantErr    bool
	}{
		{
			name:       "help flag",
			args:       []string{"--help"},
			wantOutput: "bstats is a CLI tool for the official Brawl Stars statistics API",
			wantErr:    false,
		},
		{
			name:       "version command",
			args:       []string{"version"},
			wantOutput: "bstats version dev",
			wantErr:    false,
		},
		{
			name:       "invalid command",
			args:       []string{"invalid"},
			wantOutput: "",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)

			cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")
			cmd.SetArgs(tt.args)

			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)

			err := cmd.Execute()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				if tt.wantOutput != "" {
					assert.Contains(t, out.String(), tt.wantOutput)
				}
			}
		})
	}
}

func TestRootCommand_FlagInteractions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "json and quiet flags are mutually exclusive",
			args:    []string{"--json", "--quiet", "version"},
			wantErr: true,
			errMsg:  "if any flags in the group [json quiet] are set none of the others can be",
		},
		{
			name:    "verbose and quiet flags are mutually exclusive",
			args:    []string{"--verbose", "--quiet", "version"},
			wantErr: true,
			errMsg:  "if any flags in the group [verbose quiet] are set none of the others can be",
		},
		{
			name:    "json and verbose flags can be used together",
			args:    []string{"--json", "--verbose", "version"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)

			cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")
			cmd.SetArgs(tt.args)

			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)

			err := cmd.Execute()

			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetLogger(t *testing.T) {
	isolateConfig(t)

	// Initialize logger by creating a command and running PersistentPreRunE
	cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	require.NoError(t, err)

	// GetLogger should return a non-nil logger
	logger := GetLogger()
	assert.NotNil(t, logger)
}

func TestFlagAccessors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		accessor func() bool
		want     bool
	}{
		{
			name:     "IsJSONOutput returns true when --json is set",
			args:     []string{"--json", "version"},
			accessor: IsJSONOutput,
			want:     true,
		},
		{
			name:     "IsJSONOutput returns false when --json is not set",
			args:     []string{"version"},
			accessor: IsJSONOutput,
			want:     false,
		},
		{
			name:     "IsQuiet returns true when --quiet is set",
			args:     []string{"--quiet", "version"},
			accessor: IsQuiet,
			want:     true,
		},
		{
			name:     "IsQuiet returns false when --quiet is not set",
			args:     []string{"version"},
			accessor: IsQuiet,
			want:     false,
		},
		{
			name:     "IsVerbose returns true when --verbose is set",
			args:     []string{"--verbose", "version"},
			accessor: IsVerbose,
			want:     true,
		},
		{
			name:     "IsVerbose returns false when --verbose is not set",
			args:     []string{"version"},
			accessor: IsVerbose,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags for each test
			jsonOut = false
			quiet = false
			verbose = false

			isolateConfig(t)

			cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")
			cmd.SetArgs(tt.args)

			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)

			err := cmd.Execute()
			require.NoError(t, err)

			got := tt.accessor()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRootCommand_FlagsOverrideConfig(t *testing.T) {
	home := isolateConfig(t)
	writeConfig(t, home, "token: from-file-0000\ntimeout: 30\n")
	t.Setenv("BSTATS_TIMEOUT", "20")

	cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")
	cmd.SetArgs([]string{"--json", "--token", "flag-token-9999", "--no-cache", "config", "show"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())

	var result struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "****9999", result.Data["token"])
	assert.EqualValues(t, 20, result.Data["timeout"], "environment overrides the file")
	assert.True(t, viper.GetBool("no_cache"))
	assert.True(t, viper.GetBool("json"))
}

func TestRootCommand_ConfigLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		level string
		want  slog.Level
	}{
		{name: "level from config", args: []string{"version"}, level: "debug", want: slog.LevelDebug},
		{name: "warn level", args: []string{"version"}, level: "warn", want: slog.LevelWarn},
		{name: "quiet wins", args: []string{"--quiet", "version"}, level: "debug", want: slog.LevelError},
		{name: "verbose wins", args: []string{"--verbose", "version"}, level: "error", want: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiet = false
			verbose = false

			home := isolateConfig(t)
			writeConfig(t, home, "logging:\n  level: "+tt.level+"\n")

			cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.want, logLevel.Level())
		})
	}
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	isolateConfig(t)
	defer func() { cfgFile = "" }()

	cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "version"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize config")
}

// isolateConfig points the config directory at a temporary location and
// resets the global viper instance.
func isolateConfig(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	viper.Reset()
	t.Cleanup(viper.Reset)

	return home
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()

	dir := filepath.Join(home, "bstats")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))
}

// Helper function to find a command by name
func findCommand(rootCmd *cobra.Command, name string) *cobra.Command {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}
