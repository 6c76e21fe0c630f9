// Package cli implements the pearls command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pearls/pkg/buildinfo"
	"github.com/matzehuels/pearls/pkg/cache"
	"github.com/matzehuels/pearls/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pearls"

	// redisEnv names the environment variable that selects a Redis cache.
	redisEnv = "PEARLS_REDIS_ADDR"

	// redisPrefix namespaces every key the CLI writes to Redis.
	redisPrefix = "pearls:"
)

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

	// RedisAddr selects a Redis cache instead of the file cache when set.
	RedisAddr string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		RedisAddr: os.Getenv(redisEnv),
	}
}

// SetLogLevel updates the logger's level. Debug level also installs the
// logging observability hooks.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		installLogHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Pearls grows seeded pearl-string compositions",
		Long: `Pearls grows clusters of occupied cells on a grid with a seeded random walk
and draws them as disks joined by connectors, one layer per
palette color. The same seed always produces the same composition.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.RedisAddr, "redis", c.RedisAddr, "Redis address for the shared cache (env "+redisEnv+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.RedisAddr != "" {
		c.Logger.Debug("using redis cache", "addr", c.RedisAddr)
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:   c.RedisAddr,
			Prefix: redisPrefix,
		}), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pearls/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// parseColors splits a comma- or space-separated color list. Commas inside
// rgb(...) notation are kept.
func parseColors(s string) []string {
	var (
		colors []string
		cur    strings.Builder
		depth  int
	)
	flush := func() {
		if v := strings.TrimSpace(cur.String()); v != "" {
			colors = append(colors, v)
		}
		cur.Reset()
	}
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case (r == ',' || r == ' ') && depth == 0:
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return colors
}
