package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pearls/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the grid and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached grids and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newCache(false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printWarning("Cache backend does not support clearing")
				return nil
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared cache")
			printDetail("%s", c.cacheLocation())
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
			fmt.Println(c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes where the active cache lives: a directory for the
// file cache, a redis:// address otherwise.
func (c *CLI) cacheLocation() string {
	if c.RedisAddr != "" {
		return "redis://" + c.RedisAddr + "/" + redisPrefix + "*"
	}
	dir, err := cacheDir()
	if err != nil {
		return "(unavailable: " + err.Error() + ")"
	}
	return dir
}
