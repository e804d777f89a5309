// Package cli implements the modelgraph command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/buildinfo"
	"github.com/matzehuels/modelgraph/pkg/cache"
	"github.com/matzehuels/modelgraph/pkg/config"
	"github.com/matzehuels/modelgraph/pkg/observability"
	"github.com/matzehuels/modelgraph/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "modelgraph"
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

	// Config is loaded before any command runs.
	Config     config.Config
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "modelgraph compiles and edits DMN and BPMN diagrams",
		Long:              `modelgraph turns DMN and BPMN documents into render graphs, checks connections against each flavor's structure rules and applies resize, divider and connection edits the way a diagram editor does.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.compileCommand())
	root.AddCommand(c.structureCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.edgesCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.dividerCommand())
	root.AddCommand(c.connectCommand())
	root.AddCommand(c.addNodeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config, applies the log level and attaches the logger to
// the command context. --verbose wins over the configured level and also
// reports engine events.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.configPath != "" {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.Config = cfg
	}

	level := c.Config.Level()
	if c.verbose {
		level = LogDebug
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetEngineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetRequestHooks(hooks)
	}
	c.SetLogLevel(level)
	log.SetDefault(c.Logger)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Session Factory
// =============================================================================

// openSession opens the document at path with the configured grid. The
// configured minimum sizes apply when the document has the configured
// flavor.
func (c *CLI) openSession(path string, page int) (*session.Session, error) {
	s, err := session.Open(path, c.sessionOptions(page))
	if err != nil {
		return nil, err
	}
	if s.Flavor().Name != c.Config.Flavor || len(c.Config.MinSizes) == 0 {
		return s, nil
	}
	return session.New(c.Config.ApplyTo(s.Flavor()), s.Document(), c.sessionOptions(page))
}

func (c *CLI) sessionOptions(page int) session.Options {
	return session.Options{Grid: c.Config.SnapGrid, Page: page, Logger: c.Logger}
}

// =============================================================================
// Artifact Cache
// =============================================================================

// newCache opens the configured artifact cache, falling back to the user
// cache directory.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NullCache{}, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, rendering without cache", "err", err)
	}
	return c.Config.OpenCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG one
// (~/.cache/modelgraph/) when none is configured.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
