// Package cli implements the pcbdrill command-line interface.
//
// This package provides commands for converting circuit JSON boards into
// Excellon drill files, inspecting their tool tables, serving the HTTP API
// and managing the result cache. The CLI is built using cobra and logs via
// the charmbracelet/log library.
//
// # Commands
//
//   - convert: Convert circuit JSON files to .drl (and optionally JSON command lists)
//   - tools: Print the tool table of a board
//   - serve: Run the HTTP API
//   - cache: Inspect or clear the result cache
//   - config: Show the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so per-file work can add its own fields.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pcbdrill/pkg/buildinfo"
	"github.com/matzehuels/pcbdrill/pkg/cache"
	"github.com/matzehuels/pcbdrill/pkg/config"
	"github.com/matzehuels/pcbdrill/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
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

	// ConfigPath overrides the default configuration file location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "pcbdrill converts circuit JSON boards into Excellon drill files",
		Long:         `pcbdrill reads the hole-bearing elements of a circuit JSON board (plated holes, unplated holes and vias) and writes an Excellon program that drills and routes them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/pcbdrill/config.toml)")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.toolsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// configPath returns --config or the XDG default.
func (c *CLI) configPath() (string, error) {
	if c.ConfigPath != "" {
		return c.ConfigPath, nil
	}
	return config.Path()
}

// loadConfig reads the configuration file. Without a resolvable home
// directory the defaults are used.
func (c *CLI) loadConfig() (config.Config, error) {
	path, err := c.configPath()
	if err != nil {
		c.Logger.Debug("no config path, using defaults", "error", err)
		return config.Default(), nil
	}
	return config.Load(path)
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	opts, err := cfg.CacheOptions()
	if err != nil {
		return nil, err
	}
	ch, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened cache", "backend", opts.Backend, "location", cache.Describe(opts))
	r := pipeline.NewRunner(ch, nil, c.Logger)
	r.TTL = cfg.Cache.TTL.Duration
	return r, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{pipeline.FormatDrill}
	}
	return formats
}
