package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"showcase/internal/fuzzy"
)

func newSearchCmd(opts *options) *cobra.Command {
	var (
		plain bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank the examples against a query, best first",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			examples, err := loadCatalog(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			ranked := fuzzy.RankScored(examples, query, fuzzy.SubsequenceMatcher{})
			if limit > 0 && len(ranked) > limit {
				ranked = ranked[:limit]
			}

			out := cmd.OutOrStdout()
			if len(ranked) == 0 {
				if !plain {
					fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("No examples match %q.", query)))
				}
				return nil
			}

			if plain {
				for _, r := range ranked {
					ex := examples[r.Index]
					fmt.Fprintf(out, "%d\t%s\t%s\n", r.Score, ex.Slug, ex.Summary)
				}
				return nil
			}

			t := newTable("SCORE", "EXAMPLE", "DESCRIPTION")
			for _, r := range ranked {
				ex := examples[r.Index]
				t.Row(strconv.Itoa(int(r.Score)), ex.Slug, ex.Summary)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "tab-separated output")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n results")
	return cmd
}
