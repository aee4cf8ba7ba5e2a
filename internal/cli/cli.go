// Package cli implements the memestyle command-line interface.
//
// Commands read and write caption styles in the store selected by the
// configuration file (see internal/config):
//   - show, set, reset, clear, attrs, list: inspect and edit stored styles
//   - preview: render a style to PNG
//   - edit: interactive terminal editor
//   - serve: HTTP API over the store
//   - path, config: locate and manage files
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context; see withLogger and loggerFromContext.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/memestyle/internal/config"
	"github.com/matzehuels/memestyle/pkg/buildinfo"
	"github.com/matzehuels/memestyle/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "memestyle"

// Log levels for New and SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool

	// openStore is replaced in tests.
	openStore func(ctx context.Context, cfg *config.Config) (storage.Store, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		openStore: openStore,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Memestyle edits and previews meme caption styles",
		Long:          `Memestyle keeps the text styles of meme captions (font, colors, outline, shadow, alignment) in a file, redis or mongo store and renders previews of them.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/memestyle/config.toml)")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.setCommand())
	root.AddCommand(c.resetCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.attrsCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Store
// =============================================================================

// resolveConfigPath returns --config or the default location.
func (c *CLI) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}

// loadConfig reads the configuration file.
func (c *CLI) loadConfig() (*config.Config, error) {
	path, err := c.resolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if level, err := cfg.LogLevel(); err == nil && c.Logger.GetLevel() > level {
		c.SetLogLevel(level)
	}
	return cfg, nil
}

// withStore loads the configuration, opens the configured store, runs fn
// and closes the store.
func (c *CLI) withStore(ctx context.Context, fn func(storage.Store) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := c.openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			loggerFromContext(ctx).Warn("close store", "err", err)
		}
	}()
	return fn(store)
}

// openStore opens the configured backend, showing a spinner for network
// backends.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	opts := cfg.StorageOptions()
	logger := loggerFromContext(ctx)
	logger.Debug("opening store", "backend", opts.Backend)

	switch opts.Backend {
	case storage.BackendRedis, storage.BackendMongo:
		spinner := newSpinnerWithContext(ctx, "Connecting to "+string(opts.Backend)+"...")
		spinner.Start()
		store, err := storage.Open(ctx, opts)
		if err != nil {
			spinner.StopWithError("Could not connect to " + string(opts.Backend))
			return nil, err
		}
		spinner.StopWithSuccess("Connected to " + string(opts.Backend))
		return store, nil
	default:
		return storage.Open(ctx, opts)
	}
}
