package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pcbdrill/pkg/cache"
	"github.com/matzehuels/pcbdrill/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the conversion cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := cfg.CacheOptions()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			switch opts.Backend {
			case cache.BackendFile:
			case cache.BackendNone, cache.BackendMemory:
				printInfo("Cache backend %q keeps nothing on disk", opts.Backend)
				return nil
			default:
				return errors.New(errors.ErrCodeUnsupported, "cache clear is not supported for the %s backend; expire keys on the server instead", opts.Backend)
			}

			fc, err := cache.NewFileCache(opts.Dir)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := cfg.CacheOptions()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cache.Describe(opts))
			return nil
		},
	}
}
