// Package cli implements the owl2json command-line interface.
//
// # Commands
//
//   - convert: turn an ontology class hierarchy into a size-annotated JSON tree
//   - browse: explore a generated tree interactively
//   - cache: inspect or clear the local cache
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Every convert flag can also be set in a TOML or YAML file passed with
// --config. Flags given on the command line win over the file.
//
// # Logging
//
// Logs go to stderr through charmbracelet/log at info level, or debug level
// with --verbose. Results are printed to stdout.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"

	"github.com/tburdett/owl2json/pkg/buildinfo"
	"github.com/tburdett/owl2json/pkg/cache"
	"github.com/tburdett/owl2json/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "owl2json"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *Config
}

// New creates a new CLI instance logging to w.
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
		Use:   appName,
		Short: "owl2json turns ontology class hierarchies into sized JSON trees",
		Long: dedent.Dedent(`
			owl2json reads an ontology, walks its class hierarchy from the top
			class down and writes a JSON tree of {uri, name, size, children}
			nodes. Sizes come from leaf counts, a local count table, ZOOMA or a
			MongoDB annotation collection. The tree can be cut off at a depth and
			small branches folded into "Other ..." nodes.`),
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (TOML or YAML)")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		path = defaultConfigPath()
	}
	if path == "" {
		c.config = &Config{}
		return nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded config", "path", path)
	c.config = cfg
	return nil
}

// defaultConfigPath returns the first config file present in the user
// config directory, or "" when there is none.
func defaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, appName, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// cfg returns the loaded config, or an empty one before PersistentPreRunE.
func (c *CLI) cfg() *Config {
	if c.config == nil {
		return &Config{}
	}
	return c.config
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, keyer, c.Logger), nil
}

// newCache selects Redis when configured, otherwise the file cache. The file
// cache falls back to no caching when no cache directory can be found.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache || c.cfg().Cache.Disabled {
		return cache.NewNullCache(), nil, nil
	}
	if r := c.cfg().Cache.Redis; r != nil {
		backend, err := cache.NewRedisCache(ctx, *r)
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using redis cache", "addr", r.Addr, "db", r.DB)
		return backend, cache.NewScopedKeyer(nil, appName+":"), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil, nil
	}
	backend, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return backend, nil, nil
}

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/owl2json/).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.cfg().Cache.Dir; dir != "" {
		return dir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
