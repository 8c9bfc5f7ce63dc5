package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate every example's metadata and docs",
		Long: "Load the examples directory the way the gallery does and report the\n" +
			"first broken example: missing metadata, missing fields, or headings\n" +
			"in the markdown fields.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			examples, err := loadCatalog(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d examples ok\n", okStyle.Render("✓"), len(examples))
			return nil
		},
	}
}
