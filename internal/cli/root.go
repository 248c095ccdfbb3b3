package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/steviee/go-bstats/internal/cli/config"
	"github.com/steviee/go-bstats/internal/cli/stats"
	appconfig "github.com/steviee/go-bstats/internal/config"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	quiet   bool
	verbose bool
	token   string
	timeout int
	async   bool
	noCache bool

	// Global logger
	logger   *slog.Logger
	logLevel = new(slog.LevelVar)
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date, builtBy string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bstats",
		Short: "Query the Brawl Stars API",
		Long: `bstats is a CLI tool for the official Brawl Stars statistics API.

It provides a simple interface for:
  - Looking up player profiles, battle logs and clubs
  - Browsing the brawler catalogue
  - Global and regional rankings for players, clubs and brawlers
  - The current event rotation
  - A live terminal dashboard

An API token from https://developer.brawlstars.com is required. Set it with
'bstats config init --token <token>', the BSTATS_TOKEN environment variable
or the --token flag.`,
		Example: `  # Show a player
  bstats player '#2PP'

  # Recent battles as JSON
  bstats battlelog 2PP --json

  # Top 10 clubs in Germany
  bstats leaderboard clubs --region de --limit 10

  # Open TUI dashboard
  bstats dashboard`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger based on flags
			if err := initLogger(cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			// Initialize config
			if err := initConfig(); err != nil {
				logger.Error("failed to initialize config", "error", err)
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			applyConfigLogLevel()

			return nil
		},
	}

	// Add global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ~/.config/bstats/config.yaml)")
	flags.BoolVar(&jsonOut, "json", false, "output in JSON format")
	flags.BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	flags.BoolVar(&verbose, "verbose", false, "enable verbose logging")
	flags.StringVar(&token, "token", "", "API token (overrides config and BSTATS_TOKEN)")
	flags.IntVar(&timeout, "timeout", 45, "request timeout in seconds")
	flags.BoolVar(&async, "async", false, "use the asynchronous client")
	flags.BoolVar(&noCache, "no-cache", false, "bypass the response cache")

	// Flags take precedence over the config file and environment
	bindFlag(rootCmd, "token", "token")
	bindFlag(rootCmd, "timeout", "timeout")
	bindFlag(rootCmd, "asynchronous", "async")
	bindFlag(rootCmd, "no_cache", "no-cache")
	bindFlag(rootCmd, "json", "json")

	// Mark json and quiet as mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Add version command
	rootCmd.AddCommand(NewVersionCommand(version, commit, date, builtBy))

	// Add API commands
	rootCmd.AddCommand(stats.NewCommands()...)
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	return config.NewCommand()
}

// bindFlag binds a persistent flag to a viper key.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// initLogger initializes the global logger based on flags
func initLogger(out io.Writer) error {
	var handler slog.Handler

	// Determine log level
	switch {
	case quiet:
		logLevel.Set(slog.LevelError)
	case verbose:
		logLevel.Set(slog.LevelDebug)
	default:
		logLevel.Set(slog.LevelInfo)
	}

	// Create handler based on output format
	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	if jsonOut {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)

	return nil
}

// applyConfigLogLevel applies logging.level unless --quiet or --verbose is set.
func applyConfigLogLevel() {
	if quiet || verbose {
		return
	}

	switch strings.ToLower(viper.GetString("logging.level")) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "warn":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() error {
	appconfig.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := appconfig.Dir()
		if err != nil {
			return err
		}

		// Search config in ~/.config/bstats directory
		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	return nil
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return logger
}

// IsJSONOutput returns true if JSON output is enabled
func IsJSONOutput() bool {
	return jsonOut
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
