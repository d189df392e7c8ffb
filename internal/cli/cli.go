// Package cli implements the showcase command-line interface.
//
// Commands inspect the container layouts, plan and inspect camera tours,
// render snapshots and videos, preview tours in the terminal and serve the
// JSON API. Settings come from an optional TOML file (--config) with flags
// taking precedence.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/voxarel/showcase/internal/config"
)

const appName = "showcase"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var version = "dev"

// SetVersion sets the version shown by --version and stamped into reports.
func SetVersion(v string) { version = v }

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Showcase renders container-loading tours",
		Long:         `Showcase computes container packing layouts, drives a camera tour over them and renders the result as images, video, a terminal preview or JSON.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML config file")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.tourCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// binder registers config-backed flags on fs, writing into cfg.
type binder func(fs *pflag.FlagSet, cfg *config.Config)

// bindFlags registers the flags on cmd with the built-in defaults.
func bindFlags(cmd *cobra.Command, bind binder) {
	bind(cmd.Flags(), config.Default())
}

// loadConfig reads the config file and replays every flag the user set on
// top of it, so flags win over the file and the file wins over defaults.
func (c *CLI) loadConfig(cmd *cobra.Command, bind binder) (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	cfg.BuildVersion = version

	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	bind(fs, cfg)
	var setErr error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if setErr != nil || fs.Lookup(f.Name) == nil {
			return
		}
		if err := fs.Set(f.Name, f.Value.String()); err != nil {
			setErr = fmt.Errorf("flag --%s: %w", f.Name, err)
		}
	})
	if setErr != nil {
		return nil, setErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sceneFlags selects what is on screen.
func sceneFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.Policy, "policy", cfg.Policy, "layout policy: inefficient, efficient, feature")
	fs.StringVar(&cfg.Tour, "tour", cfg.Tour, "tour preset or YAML file (empty plans one from the layout)")
	fs.BoolVar(&cfg.Compare, "compare", cfg.Compare, "render manual and optimized packing side by side")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "frame width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "frame height")
	fs.Float64Var(&cfg.Spin, "spin", cfg.Spin, "scene rotation in radians per second")
	fs.BoolVar(&cfg.Wireframe, "wireframe", cfg.Wireframe, "outline the container")
	fs.StringVar(&cfg.Accent, "accent", cfg.Accent, "accent color (hex)")
}
