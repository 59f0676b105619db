// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"streamable/internal/config"
	"streamable/internal/provider"
	"streamable/internal/ui"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagUser     string
	flagPlayer   string
	flagContinue bool
	flagJSON     bool
	flagDebug    bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

// logger is replaced in loadConfig once the debug setting is known.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "streamable [shortcode|url]",
	Short: "Inspect, play and download Streamable videos from the terminal",
	Long: `streamable looks up videos on streamable.com by shortcode or share URL.
It can show metadata, fetch thumbnails, resolve the mp4 URL, play it with
mpv/vlc, or download it. Private videos need an account: set --user and
STREAMABLE_PASSWORD, or enter the password when prompted.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
	RunE:              playRun,
}

// Execute runs the root command. An interrupt cancels in-flight requests.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "Streamable account username (password from "+config.EnvPassword+" or prompt)")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output metadata as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")
	rootCmd.Flags().BoolVarP(&flagContinue, "continue", "c", false, "Resume from the position saved in history")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(thumbnailCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration, then sets up logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagUser != "" {
		cfg.Username = flagUser
	}
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err = newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// newLogger returns a development logger in debug mode and a quiet console
// logger otherwise. Both write to stderr so stdout stays parseable.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		c := zap.NewDevelopmentConfig()
		c.OutputPaths = []string{"stderr"}
		return c.Build()
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	c.Encoding = "console"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.OutputPaths = []string{"stderr"}
	c.DisableStacktrace = true
	return c.Build()
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	logger.Sugar().Debugf(format, args...)
}

func encodeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newClient builds an API client from the merged configuration. When a
// username is configured without a password in the environment, the password
// is read from the terminal.
func newClient() (*provider.Streamable, error) {
	opts := []provider.ClientOption{
		provider.WithBase(cfg.APIBase),
		provider.WithTimeout(cfg.TimeoutDuration()),
		provider.WithLogger(logger.Named("streamable")),
	}

	if cfg.Username != "" {
		password := os.Getenv(config.EnvPassword)
		if password == "" {
			var err error
			password, err = ui.Password(fmt.Sprintf("Password for %s: ", cfg.Username))
			if err != nil {
				return nil, err
			}
		}
		opts = append(opts, provider.WithCredentials(cfg.Username, password))
		debugf("authenticating as %s", cfg.Username)
	}

	return provider.NewStreamable(opts...), nil
}

// shortcodeArg resolves the first argument, or prompts for one.
func shortcodeArg(args []string) (string, error) {
	var input string
	if len(args) > 0 {
		input = args[0]
	} else {
		var err error
		input, err = ui.Input("Shortcode or URL")
		if err != nil {
			return "", fmt.Errorf("no shortcode provided")
		}
	}
	return provider.ParseShortcode(input)
}
