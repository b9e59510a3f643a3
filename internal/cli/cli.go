// Package cli implements the neurograph command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/buildinfo"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/cache"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/config"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "neurograph"

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

	// ConfigPath overrides the default config file location.
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
		Short:        "NeuroGraph visualizes drug interaction graphs",
		Long:         `NeuroGraph is a CLI tool for exploring biomedical interaction graphs of drugs, proteins, and side effects, using a force-directed layout engine.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default ~/.config/neurograph/neurograph.toml)")

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factories
// =============================================================================

// loadConfig reads the configuration file, falling back to defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.ConfigPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return config.Default(), nil
		}
		path = filepath.Join(home, ".config", appName, appName+".toml")
	}
	return config.Load(path)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	backend, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == config.CacheBackendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == config.CacheBackendRedis {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			printWarning("layout cache disabled: %v", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// pipelineOptions converts config into base pipeline options.
func pipelineOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Width:          cfg.Viewport.Width,
		Height:         cfg.Viewport.Height,
		LinkDistance:   cfg.Physics.LinkDistance,
		ChargeStrength: cfg.Physics.ChargeStrength,
		CollideRadius:  cfg.Physics.CollideRadius,
		Seed:           cfg.Physics.Seed,
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/neurograph/).
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
// Input Helpers
// =============================================================================

// loadGraph reads and validates a graph document from a file, or from stdin
// when path is "-".
func loadGraph(path string) (graph.Graph, error) {
	if path == "-" {
		return graph.ReadGraph(os.Stdin)
	}
	return graph.ReadGraphFile(path)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatHTML}
	}
	return strings.Split(s, ",")
}
