package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"showcase/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(opts), newConfigPathCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var (
		local bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: "Write the default configuration to the user config file, to --config,\n" +
			"or with --local to .showcase.toml in the examples directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigService()
			switch {
			case opts.cfgPath != "":
				svc = config.NewConfigServiceAt(opts.cfgPath)
			case local:
				dir := opts.dir
				if dir == "" {
					dir = config.DefaultConfig().ExamplesDir
				}
				svc = config.NewConfigServiceAt(filepath.Join(dir, config.LocalFileName))
			}

			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", svc.Path())
			}

			cfg := config.DefaultConfig()
			if local {
				// the local file lives in the examples directory
				cfg.ExamplesDir = "."
			}
			if err := svc.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", okStyle.Render("✓"), svc.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "write .showcase.toml into the examples directory")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigPathCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := loadConfig(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
