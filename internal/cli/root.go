// Package cli wires the showcase commands together.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"showcase/internal/catalog"
	"showcase/internal/config"
	"showcase/internal/domain"
	"showcase/internal/logging"
)

// options are the flags shared by every command
type options struct {
	dir      string
	cfgPath  string
	logLevel string
	watch    bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "showcase [example]",
		Short: "Browse a directory of runnable Go examples",
		Long: "Showcase opens an interactive gallery over a directory of examples.\n" +
			"Press s to fuzzy-search them by name, description or source.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGallery(cmd.Context(), opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "d", "", "examples directory (overrides the config)")
	flags.StringVarP(&opts.cfgPath, "config", "c", "", "config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload examples when files change")

	cmd.AddCommand(
		newListCmd(opts),
		newSearchCmd(opts),
		newCheckCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

// loadConfig resolves the config and applies flag overrides
func loadConfig(opts *options) (*config.Config, string, error) {
	cfg, path, err := config.Resolve(opts.cfgPath, opts.dir)
	if err != nil {
		return nil, "", err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.watch {
		cfg.UI.Watch = true
	}
	return cfg, path, nil
}

func newLoader(cfg *config.Config) (*catalog.Loader, error) {
	return catalog.NewLoader(catalog.Options{
		CodeStyle:     cfg.UI.CodeStyle,
		MarkdownStyle: cfg.UI.MarkdownStyle,
		DocsWidth:     cfg.UI.DocsWidth,
	})
}

// loadCatalog loads the pool for the non-interactive commands. Logs go to
// stderr so they don't mix with the command output.
func loadCatalog(ctx context.Context, opts *options, stderr io.Writer) ([]domain.Example, error) {
	cfg, _, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if opts.logLevel == "" {
		level = "warn"
	}
	logging.InitWriter(stderr, level)

	loader, err := newLoader(cfg)
	if err != nil {
		return nil, err
	}
	examples, err := loader.Load(ctx, cfg.ExamplesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load examples: %w", err)
	}
	return examples, nil
}
