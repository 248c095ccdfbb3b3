package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	appconfig "github.com/steviee/go-bstats/internal/config"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by init when a config file is already present.
var ErrConfigExists = errors.New("config file already exists")

// NewCommand creates the config command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View and create bstats configuration.

Configuration is stored in ~/.config/bstats/config.yaml by default
($XDG_CONFIG_HOME is honored). Every key can be overridden with a BSTATS_
environment variable, e.g. BSTATS_TOKEN or BSTATS_CACHE_TTL, and the
global flags override both.`,
		Example: `  # View the effective configuration
  bstats config show

  # Create a config file with your API token
  bstats config init --token eyJ0eXAi...

  # Show configuration file path
  bstats config path`,
		Aliases: []string{"cfg"},
	}

	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewPathCommand())
	cmd.AddCommand(NewInitCommand())

	return cmd
}

// NewShowCommand creates the config show command
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  "Show the configuration after merging the file, environment and flags. The token is masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout())
		},
	}
}

// NewPathCommand creates the config path command
func NewPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd.OutOrStdout())
		},
	}
}

// InitFlags holds all flags for the config init command
type InitFlags struct {
	Token string
	Force bool
}

// NewInitCommand creates the config init command
func NewInitCommand() *cobra.Command {
	flags := &InitFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Long: `Create a configuration file with default settings.

The file is written with mode 0600 since it holds the API token. With
--force an existing file is kept as config.yaml.bak.`,
		Example: `  # Create the default config
  bstats config init --token eyJ0eXAi...

  # Overwrite an existing file
  bstats config init --token eyJ0eXAi... --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.Token, "token", "", "API token to store")
	cmd.Flags().BoolVarP(&flags.Force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}

func runShow(stdout io.Writer) error {
	cfg, err := appconfig.FromViper(viper.GetViper())
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg.Redacted())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if !viper.GetBool("json") {
		_, err = stdout.Write(data)
		return err
	}

	// Round-trip through YAML so JSON keys match the file format.
	var settings map[string]any
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("failed to convert config: %w", err)
	}

	return writeJSON(stdout, settings)
}

func runPath(stdout io.Writer) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if viper.GetBool("json") {
		_, statErr := os.Stat(path)
		return writeJSON(stdout, map[string]any{
			"path":   path,
			"exists": statErr == nil,
		})
	}

	_, err = fmt.Fprintln(stdout, path)
	return err
}

func runInit(stdout io.Writer, flags *InitFlags) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists && !flags.Force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	if err := appconfig.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	cfg := appconfig.DefaultConfig()
	cfg.Token = flags.Token

	save := appconfig.Save
	if exists {
		// --force keeps the previous file as config.yaml.bak
		save = appconfig.Replace
	}
	if err := save(path, cfg); err != nil {
		return err
	}

	if viper.GetBool("json") {
		return writeJSON(stdout, map[string]any{"path": path})
	}

	_, err = fmt.Fprintf(stdout, "Config written to %s\n", path)
	return err
}

// configPath returns the file in use, or the default location.
func configPath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	return appconfig.Path()
}

func writeJSON(w io.Writer, data any) error {
	output := struct {
		Status string `json:"status"`
		Data   any    `json:"data"`
	}{
		Status: "success",
		Data:   data,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}
