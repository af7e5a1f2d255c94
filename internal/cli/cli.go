package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inspectreport/pkg/archive"
	"github.com/matzehuels/inspectreport/pkg/buildinfo"
	"github.com/matzehuels/inspectreport/pkg/cache"
	"github.com/matzehuels/inspectreport/pkg/config"
	"github.com/matzehuels/inspectreport/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// cacheKeyType labels cache events reported to the observability hooks.
	cacheKeyType = "artifact"
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

	configFlag string
	cfg        config.Config
	cfgPath    string
	out        io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output, which defaults to stdout.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Inspectreport turns vehicle inspection records into paginated reports",
		Long: `Inspectreport lays out a vehicle inspection record (photos, section
conditions, checklist results and an overall score) as a fixed-size multi-page
report and writes it as PDF, PNG, SVG or JSON.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFlag, "config", "", "config file (default $"+config.EnvVar+" or $XDG_CONFIG_HOME/"+appName+"/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.scoreCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.archiveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the configuration file. A missing default file is not
// an error; a missing file named by flag or environment is.
func (c *CLI) loadConfig() error {
	cfg, path, err := config.Find(c.configFlag)
	if err != nil {
		return err
	}
	c.cfg, c.cfgPath = cfg, path
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cache.Observed(store, cacheKeyType), nil, c.Logger)
	r.TTL = c.cfg.Cache.TTL.Duration
	return r, nil
}

// newCache opens the configured cache backend. A file cache whose directory
// cannot be determined degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc := c.cfg.Cache
	switch cc.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:      cc.Addr,
			Password:  cc.Password,
			DB:        cc.DB,
			Namespace: cc.Namespace,
		})
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newArchive opens the configured archive, or returns nil when archiving is
// disabled.
func (c *CLI) newArchive(ctx context.Context) (archive.Store, error) {
	ac := c.cfg.Archive
	switch ac.Backend {
	case config.BackendFile:
		dir := ac.Dir
		if dir == "" {
			data, err := config.DataDir()
			if err != nil {
				return nil, err
			}
			dir = data
		}
		return archive.NewFileStore(dir)
	case config.BackendMongo:
		return archive.NewMongoStore(ctx, archive.MongoConfig{
			URI:        ac.URI,
			Database:   ac.Database,
			Collection: ac.Collection,
		})
	}
	return nil, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory: the configured one, or the XDG
// default (~/.cache/inspectreport/).
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}
