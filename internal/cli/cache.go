package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inspectreport/pkg/cache"
	"github.com/matzehuels/inspectreport/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered report cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheInfoCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context())
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context) error {
	ui := c.ui()
	store, err := c.newCache(ctx, false)
	if err != nil {
		return err
	}
	defer store.Close()

	switch s := store.(type) {
	case *cache.FileCache:
		n, err := s.ClearCount()
		if err != nil {
			return err
		}
		if n == 0 {
			ui.info("Cache is empty")
			return nil
		}
		ui.success("Cleared %d cached entries", n)
		ui.detail("Directory: %s", s.Dir())
	case cache.Clearer:
		if err := s.Clear(ctx); err != nil {
			return err
		}
		ui.success("Cleared %s cache", c.cfg.Cache.Backend)
	default:
		ui.info("Caching is disabled")
	}
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			c.ui().line(dir)
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache backend and its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheInfo(cmd.Context())
		},
	}
}

func (c *CLI) runCacheInfo(ctx context.Context) error {
	ui := c.ui()
	cc := c.cfg.Cache
	ui.keyValue("Backend", cc.Backend)
	ui.keyValue("TTL", cc.TTL.String())
	switch cc.Backend {
	case config.BackendRedis:
		ui.keyValue("Address", cc.Addr)
		ui.keyValue("Namespace", cc.Namespace)
		return nil
	case config.BackendNone:
		return nil
	}

	store, err := c.newCache(ctx, false)
	if err != nil {
		return err
	}
	defer store.Close()
	fc, ok := store.(*cache.FileCache)
	if !ok {
		return nil
	}
	entries, size, err := fc.Stats()
	if err != nil {
		return err
	}
	ui.keyValue("Directory", fc.Dir())
	ui.keyValue("Entries", humanize.Comma(int64(entries)))
	ui.keyValue("Size", humanize.Bytes(uint64(size)))
	return nil
}
